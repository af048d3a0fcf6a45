package indicator

import (
	"context"
	"fmt"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// 均線排列
const (
	AlignmentBullish = "BULLISH"
	AlignmentBearish = "BEARISH"
	AlignmentMixed   = "MIXED"
)

// 均線系統最少需要的日線數
const maMinBars = 60

// MAState 單一均線狀態
type MAState struct {
	Value        float64 `json:"value"`
	PriceAbove   bool    `json:"price_above"`
	DeviationPct float64 `json:"deviation_pct"` // (price-MA)/MA*100
}

// MovingAverageSystem 均線系統 (MA5/10/20/60)
type MovingAverageSystem struct {
	MA5  MAState `json:"ma5"`
	MA10 MAState `json:"ma10"`
	MA20 MAState `json:"ma20"`
	MA60 MAState `json:"ma60"`

	Alignment string `json:"alignment"` // BULLISH / BEARISH / MIXED
	AboveMA20 bool   `json:"above_ma20"`
}

// MACalculator 均線系統計算器
type MACalculator struct{}

// NewMACalculator 建立均線計算器
func NewMACalculator() *MACalculator {
	return &MACalculator{}
}

// Calculate 計算均線系統
// 輸入: 日線序列 (bars[0] 為最近交易日, 至少 60 筆)
func (c *MACalculator) Calculate(ctx context.Context, symbol string, bars []market.PriceBar) (MovingAverageSystem, error) {
	if len(bars) < maMinBars {
		return MovingAverageSystem{}, fmt.Errorf("ma %s: need %d bars, got %d: %w",
			symbol, maMinBars, len(bars), market.ErrInsufficientData)
	}

	price := bars[0].Close
	system := MovingAverageSystem{
		MA5:  maState(price, SMA(bars, 5)),
		MA10: maState(price, SMA(bars, 10)),
		MA20: maState(price, SMA(bars, 20)),
		MA60: maState(price, SMA(bars, 60)),
	}

	ma5, ma10, ma20, ma60 := system.MA5.Value, system.MA10.Value, system.MA20.Value, system.MA60.Value
	switch {
	case ma5 > ma10 && ma10 > ma20 && ma20 > ma60:
		system.Alignment = AlignmentBullish
	case ma5 < ma10 && ma10 < ma20 && ma20 < ma60:
		system.Alignment = AlignmentBearish
	default:
		system.Alignment = AlignmentMixed
	}
	system.AboveMA20 = price >= ma20

	return system, nil
}

// SMA 簡單移動平均 (最近 n 筆收盤)
// 日線數不足時回傳 0
func SMA(bars []market.PriceBar, n int) float64 {
	if n <= 0 || len(bars) < n {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += bars[i].Close
	}
	return sum / float64(n)
}

// HighestClose 最近 n 筆的最高收盤價
func HighestClose(bars []market.PriceBar, n int) float64 {
	if n <= 0 || len(bars) < n {
		return 0
	}
	high := bars[0].Close
	for i := 1; i < n; i++ {
		if bars[i].Close > high {
			high = bars[i].Close
		}
	}
	return high
}

func maState(price, ma float64) MAState {
	state := MAState{Value: ma}
	if ma > 0 {
		state.PriceAbove = price > ma
		state.DeviationPct = (price - ma) / ma * 100
	}
	return state
}
