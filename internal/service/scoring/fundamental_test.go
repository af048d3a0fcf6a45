package scoring

import (
	"context"
	"testing"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

func floatPtr(v float64) *float64 { return &v }

func TestFundamentalScorer(t *testing.T) {
	scorer := NewFundamentalScorer()
	ctx := context.Background()

	t.Run("nil snapshot is exactly neutral", func(t *testing.T) {
		score, detail := scorer.Calculate(ctx, "2330", nil)
		if score != 50 {
			t.Errorf("expected exactly 50, got %.2f", score)
		}
		if detail.DataAvailable {
			t.Error("expected DataAvailable false")
		}
	})

	t.Run("all fields missing is exactly neutral", func(t *testing.T) {
		score, _ := scorer.Calculate(ctx, "2330", &market.FundamentalSnapshot{Symbol: "2330"})
		if score != 50 {
			t.Errorf("expected exactly 50, got %.2f", score)
		}
	})

	t.Run("strong growth scores high", func(t *testing.T) {
		snapshot := &market.FundamentalSnapshot{
			Symbol:      "2330",
			RevenueYoY:  floatPtr(35),  // > 30 → 100
			RevenueMoM:  floatPtr(15),  // > 10 → 80
			EPS:         floatPtr(9),   // 年增 50% → 80
			PrevYearEPS: floatPtr(6),
			PER:         floatPtr(12), // < 15 → 80
		}

		score, detail := scorer.Calculate(ctx, "2330", snapshot)
		want := 100*0.40 + 80*0.15 + 80*0.30 + 80*0.15
		if score != want {
			t.Errorf("expected %.2f, got %.2f", want, score)
		}
		if !detail.DataAvailable {
			t.Error("expected DataAvailable true")
		}
	})

	t.Run("negative prior eps falls back to neutral", func(t *testing.T) {
		snapshot := &market.FundamentalSnapshot{
			Symbol:      "2330",
			EPS:         floatPtr(2),
			PrevYearEPS: floatPtr(-1),
		}

		_, detail := scorer.Calculate(ctx, "2330", snapshot)
		if detail.EPSGrowthScore != 50 {
			t.Errorf("expected neutral EPS score, got %.1f", detail.EPSGrowthScore)
		}
	})

	t.Run("declining fundamentals score low", func(t *testing.T) {
		snapshot := &market.FundamentalSnapshot{
			Symbol:     "2330",
			RevenueYoY: floatPtr(-25), // < -10 → 15
			PER:        floatPtr(45),  // > 30 → 20
		}

		score, _ := scorer.Calculate(ctx, "2330", snapshot)
		want := 15*0.40 + 50*0.15 + 50*0.30 + 20*0.15
		if score != want {
			t.Errorf("expected %.2f, got %.2f", want, score)
		}
	})
}
