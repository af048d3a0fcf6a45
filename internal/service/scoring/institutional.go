package scoring

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
)

// 籌碼情緒標籤
const (
	SentimentStrong  = "strong"
	SentimentHealthy = "healthy"
	SentimentWatch   = "watch"
	SentimentAvoid   = "avoid"
)

// 籌碼面評分所需最少天數
const institutionalMinDays = 3

// 外資/投信 5 日累積買超的大量門檻 (股)
const (
	foreignHeavyNet5D = 10_000_000
	trustHeavyNet5D   = 5_000_000
)

// InstitutionalScorer 籌碼面評分器
// SSOT: 籌碼面分數只在這裡計算
// 組成: 外資連續性 40% + 投信連續性 35% + 自營商方向 15% + 信用健康 10%
type InstitutionalScorer struct{}

// NewInstitutionalScorer 建立籌碼面評分器
func NewInstitutionalScorer() *InstitutionalScorer {
	return &InstitutionalScorer{}
}

// Calculate 計算籌碼面分數
// 輸入: 法人買賣超序列 (flows[0] 為最近交易日, 至少 3 筆)
func (s *InstitutionalScorer) Calculate(ctx context.Context, symbol string, flows []market.InstitutionalFlow) (float64, scoring.InstitutionalDetail, error) {
	detail := scoring.InstitutionalDetail{}

	if len(flows) < institutionalMinDays {
		return 0, detail, fmt.Errorf("institutional %s: need %d days, got %d: %w",
			symbol, institutionalMinDays, len(flows), market.ErrInsufficientData)
	}

	detail.ForeignStreak = buyStreak(flows, func(f market.InstitutionalFlow) int64 { return f.ForeignNet })
	detail.TrustStreak = buyStreak(flows, func(f market.InstitutionalFlow) int64 { return f.TrustNet })
	detail.ForeignNet5D = sumNet(flows, 5, func(f market.InstitutionalFlow) int64 { return f.ForeignNet })
	detail.TrustNet5D = sumNet(flows, 5, func(f market.InstitutionalFlow) int64 { return f.TrustNet })

	detail.ForeignScore = clampScore(continuityScore(detail.ForeignStreak, detail.ForeignNet5D, foreignHeavyNet5D))
	detail.TrustScore = clampScore(continuityScore(detail.TrustStreak, detail.TrustNet5D, trustHeavyNet5D))
	detail.DealerScore = clampScore(dealerScore(flows))
	detail.MarginScore = clampScore(marginScore(flows))

	total := detail.ForeignScore*0.40 +
		detail.TrustScore*0.35 +
		detail.DealerScore*0.15 +
		detail.MarginScore*0.10

	switch {
	case total >= 80:
		detail.Sentiment = SentimentStrong
	case total >= 60:
		detail.Sentiment = SentimentHealthy
	case total >= 40:
		detail.Sentiment = SentimentWatch
	default:
		detail.Sentiment = SentimentAvoid
	}

	log.Debug().
		Str("symbol", symbol).
		Float64("score", total).
		Int("foreign_streak", detail.ForeignStreak).
		Int64("foreign_net_5d", detail.ForeignNet5D).
		Str("sentiment", detail.Sentiment).
		Msg("Calculated institutional score")

	return total, detail, nil
}

// buyStreak 自最近一日起連續買超天數
func buyStreak(flows []market.InstitutionalFlow, net func(market.InstitutionalFlow) int64) int {
	streak := 0
	for _, f := range flows {
		if net(f) <= 0 {
			break
		}
		streak++
	}
	return streak
}

// sumNet 最近 n 日累積買賣超
func sumNet(flows []market.InstitutionalFlow, n int, net func(market.InstitutionalFlow) int64) int64 {
	if n > len(flows) {
		n = len(flows)
	}
	var sum int64
	for i := 0; i < n; i++ {
		sum += net(flows[i])
	}
	return sum
}

// continuityScore 連續性子分數
// 連買 3 日以上 60 / 2 日 30 / 1 日 15; 5 日累積為正 +20, 達大量門檻再 +20
func continuityScore(streak int, net5d, heavyThreshold int64) float64 {
	score := 0.0
	switch {
	case streak >= 3:
		score += 60
	case streak == 2:
		score += 30
	case streak == 1:
		score += 15
	}
	if net5d > 0 {
		score += 20
	}
	if net5d > heavyThreshold {
		score += 20
	}
	return score
}

// dealerScore 自營商方向子分數 (5 日淨額正負)
func dealerScore(flows []market.InstitutionalFlow) float64 {
	net := sumNet(flows, 5, func(f market.InstitutionalFlow) int64 { return f.DealerNet })
	switch {
	case net > 0:
		return 70
	case net < 0:
		return 30
	default:
		return 50
	}
}

// marginScore 信用交易健康度子分數
// 基準 50; 融資餘額較 5 日前減少 +25; 券資比 < 0.2 +25
// 無信用資料時維持中性 50
func marginScore(flows []market.InstitutionalFlow) float64 {
	score := 50.0

	financing := flows[0].FinancingBalance
	if financing <= 0 {
		return score
	}

	if len(flows) >= 5 && financing < flows[4].FinancingBalance {
		score += 25
	}
	if float64(flows[0].ShortBalance)/float64(financing) < 0.2 {
		score += 25
	}
	return score
}

// clampScore 限制在 [0, 100]
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
