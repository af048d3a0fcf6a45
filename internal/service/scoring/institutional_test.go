package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// buildFlows 由時間順序的法人買賣超序列建立最近在前的序列
func buildFlows(flows []market.InstitutionalFlow) []market.InstitutionalFlow {
	n := len(flows)
	out := make([]market.InstitutionalFlow, n)
	for i := 0; i < n; i++ {
		f := flows[i]
		f.Date = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		out[n-1-i] = f
	}
	return out
}

func TestInstitutionalScorer(t *testing.T) {
	scorer := NewInstitutionalScorer()
	ctx := context.Background()

	t.Run("insufficient data", func(t *testing.T) {
		flows := buildFlows([]market.InstitutionalFlow{
			{ForeignNet: 100}, {ForeignNet: 100},
		})
		_, _, err := scorer.Calculate(ctx, "2330", flows)
		if !errors.Is(err, market.ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("sustained foreign and trust buying is healthy", func(t *testing.T) {
		// 外資連買 5 日共 300 萬股, 投信連買 5 日共 100 萬股
		daily := market.InstitutionalFlow{
			ForeignNet:       600_000,
			TrustNet:         200_000,
			DealerNet:        50_000,
			FinancingBalance: 1_000,
			ShortBalance:     100,
		}
		flows := buildFlows([]market.InstitutionalFlow{daily, daily, daily, daily, daily})

		score, detail, err := scorer.Calculate(ctx, "2330", flows)
		if err != nil {
			t.Fatal(err)
		}

		if detail.ForeignStreak != 5 {
			t.Errorf("expected foreign streak 5, got %d", detail.ForeignStreak)
		}
		if detail.ForeignNet5D != 3_000_000 {
			t.Errorf("expected foreign net 3M, got %d", detail.ForeignNet5D)
		}
		if score < 60 {
			t.Errorf("expected score >= 60, got %.1f", score)
		}
		if detail.Sentiment != SentimentHealthy && detail.Sentiment != SentimentStrong {
			t.Errorf("expected healthy or strong, got %s", detail.Sentiment)
		}
	})

	t.Run("sustained selling is avoid", func(t *testing.T) {
		daily := market.InstitutionalFlow{
			ForeignNet: -400_000,
			TrustNet:   -100_000,
			DealerNet:  -20_000,
		}
		flows := buildFlows([]market.InstitutionalFlow{daily, daily, daily, daily, daily})

		score, detail, err := scorer.Calculate(ctx, "2330", flows)
		if err != nil {
			t.Fatal(err)
		}
		if detail.ForeignStreak != 0 {
			t.Errorf("expected streak 0, got %d", detail.ForeignStreak)
		}
		if score >= 40 {
			t.Errorf("expected score < 40, got %.1f", score)
		}
		if detail.Sentiment != SentimentAvoid {
			t.Errorf("expected avoid, got %s", detail.Sentiment)
		}
	})

	t.Run("heavy buying crosses the threshold bonus", func(t *testing.T) {
		// 外資 5 日買超 1,500 萬股, 超過大量門檻
		daily := market.InstitutionalFlow{ForeignNet: 3_000_000}
		flows := buildFlows([]market.InstitutionalFlow{daily, daily, daily, daily, daily})

		_, detail, err := scorer.Calculate(ctx, "2330", flows)
		if err != nil {
			t.Fatal(err)
		}
		if detail.ForeignScore != 100 {
			t.Errorf("expected foreign sub-score 100, got %.1f", detail.ForeignScore)
		}
	})
}
