package scoring

import "time"

// Tier 綜合評分分級
type Tier string

const (
	Tier1    Tier = "TIER1"
	Tier2    Tier = "TIER2"
	Tier3    Tier = "TIER3"
	Excluded Tier = "EXCLUDED"
)

// Recommendation 操作建議
type Recommendation string

const (
	RecommendBuy   Recommendation = "BUY"
	RecommendWatch Recommendation = "WATCH"
	RecommendAvoid Recommendation = "AVOID"
)

// DimensionScore 三維度各自的分數 (0-100)
type DimensionScore struct {
	Technical     float64 `json:"technical"`
	Institutional float64 `json:"institutional"`
	Fundamental   float64 `json:"fundamental"`
}

// Min 回傳三維度最低分
func (d DimensionScore) Min() float64 {
	min := d.Technical
	if d.Institutional < min {
		min = d.Institutional
	}
	if d.Fundamental < min {
		min = d.Fundamental
	}
	return min
}

// CompositeResult 綜合評分結果
type CompositeResult struct {
	TotalScore     float64        `json:"total_score"` // 加權總分 (0-100, 四捨五入)
	Tier           Tier           `json:"tier"`
	Recommendation Recommendation `json:"recommendation"`
}

// TechnicalDetail 技術面細節
type TechnicalDetail struct {
	VAOScore    float64 `json:"vao_score"`
	VAOSignal   string  `json:"vao_signal"`
	MTMStrength float64 `json:"mtm_strength"`
	MTMSignal   string  `json:"mtm_signal"`
	MAAlignment string  `json:"ma_alignment"`
	AboveMA20   bool    `json:"above_ma20"`

	// 進場訊號
	EntrySignal    bool   `json:"entry_signal"`
	EntryType      string `json:"entry_type"` // BREAKOUT / PULLBACK_BOUNCE / NONE
	CondBreakout   bool   `json:"cond_breakout"`
	CondMomentum   bool   `json:"cond_momentum"`
	CondPullback   bool   `json:"cond_pullback"`
}

// InstitutionalDetail 籌碼面細節
type InstitutionalDetail struct {
	ForeignScore     float64 `json:"foreign_score"`
	TrustScore       float64 `json:"trust_score"`
	DealerScore      float64 `json:"dealer_score"`
	MarginScore      float64 `json:"margin_score"`
	ForeignStreak    int     `json:"foreign_streak"` // 外資連買天數
	TrustStreak      int     `json:"trust_streak"`
	ForeignNet5D     int64   `json:"foreign_net_5d"`
	TrustNet5D       int64   `json:"trust_net_5d"`
	Sentiment        string  `json:"sentiment"` // strong / healthy / watch / avoid
}

// FundamentalDetail 基本面細節
type FundamentalDetail struct {
	RevenueYoYScore float64 `json:"revenue_yoy_score"`
	RevenueMoMScore float64 `json:"revenue_mom_score"`
	EPSGrowthScore  float64 `json:"eps_growth_score"`
	PERScore        float64 `json:"per_score"`
	DataAvailable   bool    `json:"data_available"`
}

// StockScore 單一股票的完整評分結果
type StockScore struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`

	Dimensions DimensionScore `json:"dimensions"`
	Composite  CompositeResult `json:"composite"`

	Technical     TechnicalDetail     `json:"technical_detail"`
	Institutional InstitutionalDetail `json:"institutional_detail"`
	Fundamental   FundamentalDetail   `json:"fundamental_detail"`

	Rank int `json:"rank"` // 1-based, 依總分排序
}

// RunSummary 單次篩選各階段的統計
type RunSummary struct {
	UniverseCount int `json:"universe_count"` // 股票池總數
	FilteredCount int `json:"filtered_count"` // 通過流動性/價格過濾
	ScoredCount   int `json:"scored_count"`   // 完成評分
	SkippedCount  int `json:"skipped_count"`  // 資料不足或評分失敗
}

// ScreenerSnapshot 單次篩選的完整輸出
type ScreenerSnapshot struct {
	SnapshotID  string    `json:"snapshot_id"` // YYYYMMDD-<uuid8>
	TradeDate   time.Time `json:"trade_date"`
	GeneratedAt time.Time `json:"generated_at"`

	Tier1 []StockScore `json:"tier1"` // TIER1 前 10
	Tier2 []StockScore `json:"tier2"` // TIER2 前 20
	Tier3 []StockScore `json:"tier3"` // TIER3 前 20
	TopN  []StockScore `json:"top_n"` // 不分級前 N 名

	Summary RunSummary `json:"summary"`
}

// ScoringCriteria 綜合評分參數
// 權重與門檻為既定契約, 不可由全域狀態修改
type ScoringCriteria struct {
	TechnicalWeight     float64 `json:"technical_weight"`     // 0.40
	InstitutionalWeight float64 `json:"institutional_weight"` // 0.30
	FundamentalWeight   float64 `json:"fundamental_weight"`   // 0.30

	Tier1MinScore     float64 `json:"tier1_min_score"`     // 75
	Tier1MinDimension float64 `json:"tier1_min_dimension"` // 60
	Tier2MinScore     float64 `json:"tier2_min_score"`     // 60
	Tier2MinDimension float64 `json:"tier2_min_dimension"` // 50
	Tier3MinScore     float64 `json:"tier3_min_score"`     // 45
}

// DefaultScoringCriteria 預設評分參數
func DefaultScoringCriteria() ScoringCriteria {
	return ScoringCriteria{
		TechnicalWeight:     0.40,
		InstitutionalWeight: 0.30,
		FundamentalWeight:   0.30,
		Tier1MinScore:       75,
		Tier1MinDimension:   60,
		Tier2MinScore:       60,
		Tier2MinDimension:   50,
		Tier3MinScore:       45,
	}
}

// ScreenerCriteria 篩選引擎參數
type ScreenerCriteria struct {
	MinAvgVolume5D int64   `json:"min_avg_volume_5d"` // 5 日均量下限 (張)
	MinPrice       float64 `json:"min_price"`         // 收盤價下限
	MinBars        int     `json:"min_bars"`          // 評分所需最少日線數
	TopN           int     `json:"top_n"`             // 保留前 N 名
	Tier1Limit     int     `json:"tier1_limit"`
	Tier2Limit     int     `json:"tier2_limit"`
	Tier3Limit     int     `json:"tier3_limit"`
	LookbackBars   int     `json:"lookback_bars"` // 向資料來源要求的日線數
	FlowLookback   int     `json:"flow_lookback"` // 法人資料天數
}

// DefaultScreenerCriteria 預設篩選參數
func DefaultScreenerCriteria() ScreenerCriteria {
	return ScreenerCriteria{
		MinAvgVolume5D: 1000,
		MinPrice:       10,
		MinBars:        60,
		TopN:           20,
		Tier1Limit:     10,
		Tier2Limit:     20,
		Tier3Limit:     20,
		LookbackBars:   90,
		FlowLookback:   10,
	}
}
