package scoring

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
)

// 中性分數: 資料缺漏時的預設
const neutralScore = 50.0

// FundamentalScorer 基本面評分器
// SSOT: 基本面分數只在這裡計算
// 組成: 營收年增 40% + 營收月增 15% + EPS 年增 30% + 本益比 15%
// 此評分器不會失敗, 缺漏資料一律退化為中性 50
type FundamentalScorer struct{}

// NewFundamentalScorer 建立基本面評分器
func NewFundamentalScorer() *FundamentalScorer {
	return &FundamentalScorer{}
}

// Calculate 計算基本面分數
// snapshot 可為 nil (完全無資料 → 50 分)
func (s *FundamentalScorer) Calculate(ctx context.Context, symbol string, snapshot *market.FundamentalSnapshot) (float64, scoring.FundamentalDetail) {
	detail := scoring.FundamentalDetail{
		RevenueYoYScore: neutralScore,
		RevenueMoMScore: neutralScore,
		EPSGrowthScore:  neutralScore,
		PERScore:        neutralScore,
	}

	if snapshot == nil {
		return neutralScore, detail
	}
	detail.DataAvailable = true

	if snapshot.RevenueYoY != nil {
		detail.RevenueYoYScore = revenueYoYScore(*snapshot.RevenueYoY)
	}
	if snapshot.RevenueMoM != nil {
		detail.RevenueMoMScore = revenueMoMScore(*snapshot.RevenueMoM)
	}
	if snapshot.EPS != nil && snapshot.PrevYearEPS != nil && *snapshot.PrevYearEPS > 0 {
		growth := (*snapshot.EPS - *snapshot.PrevYearEPS) / *snapshot.PrevYearEPS * 100
		detail.EPSGrowthScore = epsGrowthScore(growth)
	}
	if snapshot.PER != nil && *snapshot.PER > 0 {
		detail.PERScore = perScore(*snapshot.PER)
	}

	total := detail.RevenueYoYScore*0.40 +
		detail.RevenueMoMScore*0.15 +
		detail.EPSGrowthScore*0.30 +
		detail.PERScore*0.15

	log.Debug().
		Str("symbol", symbol).
		Float64("score", total).
		Float64("yoy", detail.RevenueYoYScore).
		Float64("eps", detail.EPSGrowthScore).
		Msg("Calculated fundamental score")

	return total, detail
}

// revenueYoYScore 營收年增率分級
func revenueYoYScore(yoy float64) float64 {
	switch {
	case yoy > 30:
		return 100
	case yoy > 20:
		return 85
	case yoy > 10:
		return 70
	case yoy > 0:
		return 55
	case yoy >= -10:
		return 35
	default:
		return 15
	}
}

// revenueMoMScore 營收月增率分級
func revenueMoMScore(mom float64) float64 {
	switch {
	case mom > 20:
		return 100
	case mom > 10:
		return 80
	case mom > 0:
		return 60
	case mom >= -10:
		return 40
	default:
		return 20
	}
}

// epsGrowthScore EPS 年增率分級
func epsGrowthScore(growth float64) float64 {
	switch {
	case growth > 50:
		return 100
	case growth > 20:
		return 80
	case growth > 0:
		return 60
	case growth >= -20:
		return 40
	default:
		return 20
	}
}

// perScore 本益比分級, 越低越高分
func perScore(per float64) float64 {
	switch {
	case per < 10:
		return 100
	case per < 15:
		return 80
	case per < 20:
		return 60
	case per < 30:
		return 40
	default:
		return 20
	}
}
