package indicator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// testBars 產生由新到舊的日線序列
// closes / volumes 為時間順序 (舊 → 新)
func testBars(closes []float64, volumes []int64) []market.PriceBar {
	n := len(closes)
	bars := make([]market.PriceBar, n)
	for i := 0; i < n; i++ {
		j := n - 1 - i // 反轉為由新到舊
		bars[j] = market.PriceBar{
			Date:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   closes[i] * 0.99,
			High:   closes[i] * 1.01,
			Low:    closes[i] * 0.98,
			Close:  closes[i],
			Volume: volumes[i],
		}
	}
	return bars
}

// flatSeries 固定價量序列
func flatSeries(n int, close float64, volume int64) ([]float64, []int64) {
	closes := make([]float64, n)
	volumes := make([]int64, n)
	for i := range closes {
		closes[i] = close
		volumes[i] = volume
	}
	return closes, volumes
}

func TestVAOCalculate(t *testing.T) {
	calc := NewVAOCalculator()
	ctx := context.Background()

	t.Run("insufficient data", func(t *testing.T) {
		closes, volumes := flatSeries(10, 100, 1_000_000)
		_, err := calc.Calculate(ctx, "2330", testBars(closes, volumes), 0)
		if !errors.Is(err, market.ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("volume spike with big up day is strong", func(t *testing.T) {
		closes, volumes := flatSeries(30, 100, 1_000_000)
		// 最後一日: 爆量 10 倍, 上漲 6%
		closes[29] = 106
		volumes[29] = 10_000_000

		result, err := calc.Calculate(ctx, "2330", testBars(closes, volumes), 0)
		if err != nil {
			t.Fatal(err)
		}
		if result.Score < 70 {
			t.Errorf("expected score >= 70, got %.1f", result.Score)
		}
		if result.Signal != VAOSignalStrong {
			t.Errorf("expected STRONG, got %s", result.Signal)
		}
		if result.ChangePct < 5.9 || result.ChangePct > 6.1 {
			t.Errorf("expected ~6%% change, got %.2f", result.ChangePct)
		}
	})

	t.Run("quiet day is weak", func(t *testing.T) {
		closes, volumes := flatSeries(30, 100, 1_000_000)

		result, err := calc.Calculate(ctx, "2330", testBars(closes, volumes), 0)
		if err != nil {
			t.Fatal(err)
		}
		if result.Score != 0 {
			t.Errorf("expected score 0, got %.1f", result.Score)
		}
		if result.Signal != VAOSignalWeak {
			t.Errorf("expected WEAK, got %s", result.Signal)
		}
	})

	t.Run("turnover adds points when shares known", func(t *testing.T) {
		closes, volumes := flatSeries(30, 100, 1_000_000)
		closes[29] = 106
		volumes[29] = 10_000_000

		// 流通 80M 股 → 週轉率 12.5%
		withShares, err := calc.Calculate(ctx, "2330", testBars(closes, volumes), 80_000_000)
		if err != nil {
			t.Fatal(err)
		}
		withoutShares, err := calc.Calculate(ctx, "2330", testBars(closes, volumes), 0)
		if err != nil {
			t.Fatal(err)
		}
		if withShares.Score != withoutShares.Score+20 {
			t.Errorf("expected +20 turnover points, got %.1f vs %.1f",
				withShares.Score, withoutShares.Score)
		}
		if withShares.Score > 100 {
			t.Errorf("score out of range: %.1f", withShares.Score)
		}
	})
}
