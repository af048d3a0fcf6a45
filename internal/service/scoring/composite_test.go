package scoring

import (
	"testing"

	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
)

func TestDefaultScoringCriteria(t *testing.T) {
	c := scoring.DefaultScoringCriteria()
	sum := c.TechnicalWeight + c.InstitutionalWeight + c.FundamentalWeight
	if sum != 1.0 {
		t.Errorf("weights must sum to 1.0, got %.4f", sum)
	}
}

func TestCompositeScorer(t *testing.T) {
	scorer := NewCompositeScorer(scoring.DefaultScoringCriteria())

	t.Run("balanced high scores reach tier1", func(t *testing.T) {
		result := scorer.Calculate(scoring.DimensionScore{
			Technical: 80, Institutional: 80, Fundamental: 80,
		})
		if result.TotalScore != 80 {
			t.Errorf("expected total 80, got %.1f", result.TotalScore)
		}
		if result.Tier != scoring.Tier1 {
			t.Errorf("expected TIER1, got %s", result.Tier)
		}
		if result.Recommendation != scoring.RecommendBuy {
			t.Errorf("expected BUY, got %s", result.Recommendation)
		}
	})

	t.Run("weak dimension blocks tier1 despite high total", func(t *testing.T) {
		// 總分 80 但基本面僅 50, 低於 TIER1 維度下限
		result := scorer.Calculate(scoring.DimensionScore{
			Technical: 95, Institutional: 90, Fundamental: 50,
		})
		if result.TotalScore < 75 {
			t.Fatalf("scenario should score above tier1 total floor, got %.1f", result.TotalScore)
		}
		if result.Tier == scoring.Tier1 {
			t.Error("expected tier below TIER1")
		}
		if result.Tier != scoring.Tier2 {
			t.Errorf("expected TIER2, got %s", result.Tier)
		}
		if result.Recommendation != scoring.RecommendWatch {
			t.Errorf("expected WATCH, got %s", result.Recommendation)
		}
	})

	t.Run("mid scores land in tier3", func(t *testing.T) {
		result := scorer.Calculate(scoring.DimensionScore{
			Technical: 50, Institutional: 45, Fundamental: 45,
		})
		if result.Tier != scoring.Tier3 {
			t.Errorf("expected TIER3, got %s", result.Tier)
		}
		if result.Recommendation != scoring.RecommendWatch {
			t.Errorf("expected WATCH, got %s", result.Recommendation)
		}
	})

	t.Run("low scores are excluded", func(t *testing.T) {
		result := scorer.Calculate(scoring.DimensionScore{
			Technical: 30, Institutional: 30, Fundamental: 30,
		})
		if result.Tier != scoring.Excluded {
			t.Errorf("expected EXCLUDED, got %s", result.Tier)
		}
		if result.Recommendation != scoring.RecommendAvoid {
			t.Errorf("expected AVOID, got %s", result.Recommendation)
		}
	})

	t.Run("total is rounded to integer", func(t *testing.T) {
		result := scorer.Calculate(scoring.DimensionScore{
			Technical: 71, Institutional: 62, Fundamental: 58,
		})
		if result.TotalScore != float64(int(result.TotalScore)) {
			t.Errorf("expected integral total, got %.4f", result.TotalScore)
		}
	})
}
