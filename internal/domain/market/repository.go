package market

import (
	"context"
	"time"
)

// PriceReader 日線歷史資料來源
// 回傳序列由新到舊 (bars[0] 為最近交易日), 最多 limit 筆; limit <= 0 表示不限
type PriceReader interface {
	GetPriceHistory(ctx context.Context, symbol string, until time.Time, limit int) ([]PriceBar, error)
}

// FlowReader 法人買賣超歷史資料來源
// 回傳序列由新到舊, 最多 limit 筆
type FlowReader interface {
	GetFlowHistory(ctx context.Context, symbol string, until time.Time, limit int) ([]InstitutionalFlow, error)
}

// FundamentalReader 基本面資料來源
// 查無資料時回傳 (nil, nil), 呼叫端以中性分數處理
type FundamentalReader interface {
	GetLatestFundamental(ctx context.Context, symbol string) (*FundamentalSnapshot, error)
}

// UniverseReader 股票池來源
// 回傳指定日期以前出現過的所有股票
type UniverseReader interface {
	GetUniverse(ctx context.Context, until time.Time) ([]StockInfo, error)
}
