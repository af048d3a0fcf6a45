package market

import "time"

// PriceBar 單一交易日的價量資料
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"` // 成交量 (股)
}

// ChangePct 與前一日收盤相比的漲跌幅 (%)
// prev.Close 為 0 時回傳 0
func (b PriceBar) ChangePct(prev PriceBar) float64 {
	if prev.Close == 0 {
		return 0
	}
	return (b.Close - prev.Close) / prev.Close * 100
}

// InstitutionalFlow 單一交易日的三大法人買賣超
// 正值 = 買超, 負值 = 賣超
type InstitutionalFlow struct {
	Date       time.Time `json:"date"`
	ForeignNet int64     `json:"foreign_net"` // 外資買賣超 (股)
	TrustNet   int64     `json:"trust_net"`   // 投信買賣超 (股)
	DealerNet  int64     `json:"dealer_net"`  // 自營商買賣超 (股)

	// 信用交易餘額 (張)
	FinancingBalance int64 `json:"financing_balance"` // 融資餘額
	ShortBalance     int64 `json:"short_balance"`     // 融券餘額
}

// FundamentalSnapshot 最新基本面快照
// 任一欄位皆可能缺漏, 缺漏時計分退化為中性 50, 不視為錯誤
type FundamentalSnapshot struct {
	Symbol string `json:"symbol"`

	RevenueYoY  *float64 `json:"revenue_yoy,omitempty"` // 營收年增率 (%)
	RevenueMoM  *float64 `json:"revenue_mom,omitempty"` // 營收月增率 (%)
	EPS         *float64 `json:"eps,omitempty"`         // 最新 EPS
	PrevYearEPS *float64 `json:"prev_year_eps,omitempty"`
	PER         *float64 `json:"per,omitempty"` // 本益比
}

// StockInfo 股票基本資料
type StockInfo struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	SharesOutstanding int64  `json:"shares_outstanding"` // 流通在外股數, 0 表示未知
}
