package indicator

import (
	"context"
	"errors"
	"testing"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// risingSeries 每日固定上漲的收盤序列 (時間順序)
func risingSeries(n int, start, step float64) ([]float64, []int64) {
	closes := make([]float64, n)
	volumes := make([]int64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
		volumes[i] = 1_000_000
	}
	return closes, volumes
}

func TestNewMomentumCalculator(t *testing.T) {
	t.Run("rejects non-positive periods", func(t *testing.T) {
		if _, err := NewMomentumCalculator(0, 5); !errors.Is(err, market.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if _, err := NewMomentumCalculator(10, -1); !errors.Is(err, market.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("accepts valid periods", func(t *testing.T) {
		calc, err := NewMomentumCalculator(10, 5)
		if err != nil {
			t.Fatal(err)
		}
		if calc.MinBars() != 15 {
			t.Errorf("expected MinBars 15, got %d", calc.MinBars())
		}
	})
}

func TestMomentumCalculate(t *testing.T) {
	calc := DefaultMomentumCalculator()
	ctx := context.Background()

	t.Run("insufficient data", func(t *testing.T) {
		closes, volumes := risingSeries(10, 100, 1)
		_, err := calc.Calculate(ctx, "2330", testBars(closes, volumes))
		if !errors.Is(err, market.ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("accelerating uptrend is strong buy", func(t *testing.T) {
		closes, volumes := risingSeries(30, 100, 0.5)
		// 最後一日跳漲, 動量高於自身均線
		closes[29] = closes[28] * 1.05

		result, err := calc.Calculate(ctx, "2330", testBars(closes, volumes))
		if err != nil {
			t.Fatal(err)
		}
		if result.MTM <= 0 {
			t.Errorf("expected positive MTM, got %.2f", result.MTM)
		}
		if result.Direction != DirectionAccelerating {
			t.Errorf("expected ACCELERATING, got %s", result.Direction)
		}
		if result.Signal != MTMSignalStrongBuy {
			t.Errorf("expected STRONG_BUY, got %s", result.Signal)
		}
		if result.Strength < 0 || result.Strength > 100 {
			t.Errorf("strength out of range: %.1f", result.Strength)
		}
	})

	t.Run("downtrend is weak", func(t *testing.T) {
		closes, volumes := risingSeries(30, 130, -1)

		result, err := calc.Calculate(ctx, "2330", testBars(closes, volumes))
		if err != nil {
			t.Fatal(err)
		}
		if result.MTM >= 0 {
			t.Errorf("expected negative MTM, got %.2f", result.MTM)
		}
		if result.Signal != MTMSignalWeak {
			t.Errorf("expected WEAK, got %s", result.Signal)
		}
	})
}
