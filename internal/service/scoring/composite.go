package scoring

import (
	"math"

	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
)

// CompositeScorer 綜合評分器
// 純函式: 三維度 0-100 分 → 總分 / 分級 / 建議
// 分級除總分門檻外, 另要求每一維度高於下限, 避免單一維度崩壞被加權平均掩蓋
type CompositeScorer struct {
	criteria scoring.ScoringCriteria
}

// NewCompositeScorer 建立綜合評分器
func NewCompositeScorer(criteria scoring.ScoringCriteria) *CompositeScorer {
	return &CompositeScorer{criteria: criteria}
}

// Calculate 計算綜合評分
// 輸入各維度分數須在 0-100, 超出範圍屬呼叫端程式錯誤
func (s *CompositeScorer) Calculate(dims scoring.DimensionScore) scoring.CompositeResult {
	c := s.criteria

	total := math.Round(dims.Technical*c.TechnicalWeight +
		dims.Institutional*c.InstitutionalWeight +
		dims.Fundamental*c.FundamentalWeight)

	minDim := dims.Min()

	var tier scoring.Tier
	switch {
	case total >= c.Tier1MinScore && minDim >= c.Tier1MinDimension:
		tier = scoring.Tier1
	case total >= c.Tier2MinScore && minDim >= c.Tier2MinDimension:
		tier = scoring.Tier2
	case total >= c.Tier3MinScore:
		tier = scoring.Tier3
	default:
		tier = scoring.Excluded
	}

	return scoring.CompositeResult{
		TotalScore:     total,
		Tier:           tier,
		Recommendation: recommendation(tier),
	}
}

func recommendation(tier scoring.Tier) scoring.Recommendation {
	switch tier {
	case scoring.Tier1:
		return scoring.RecommendBuy
	case scoring.Tier2, scoring.Tier3:
		return scoring.RecommendWatch
	default:
		return scoring.RecommendAvoid
	}
}
