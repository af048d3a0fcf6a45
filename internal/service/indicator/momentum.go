package indicator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// MTM 訊號等級
const (
	MTMSignalStrongBuy = "STRONG_BUY"
	MTMSignalBuy       = "BUY"
	MTMSignalHold      = "HOLD"
	MTMSignalWeak      = "WEAK"
)

// MTM 方向
const (
	DirectionAccelerating = "ACCELERATING"
	DirectionDecelerating = "DECELERATING"
)

// MomentumResult 動量指標結果
type MomentumResult struct {
	MTM       float64 `json:"mtm"`       // close[0] - close[period]
	MTMMA     float64 `json:"mtmma"`     // MTM 的短均線
	Direction string  `json:"direction"` // ACCELERATING / DECELERATING
	Signal    string  `json:"signal"`
	Strength  float64 `json:"strength"` // 0-100
}

// MomentumCalculator 動量 (MTM) 計算器
// SSOT: 動量計算只在這裡
type MomentumCalculator struct {
	period   int // 動量回看天數
	maPeriod int // MTM 均線天數
}

// NewMomentumCalculator 建立動量計算器
// period, maPeriod 必須為正
func NewMomentumCalculator(period, maPeriod int) (*MomentumCalculator, error) {
	if period <= 0 || maPeriod <= 0 {
		return nil, fmt.Errorf("mtm: period=%d maPeriod=%d: %w",
			period, maPeriod, market.ErrInvalidInput)
	}
	return &MomentumCalculator{period: period, maPeriod: maPeriod}, nil
}

// DefaultMomentumCalculator 預設參數 (10, 5)
func DefaultMomentumCalculator() *MomentumCalculator {
	return &MomentumCalculator{period: 10, maPeriod: 5}
}

// MinBars 計算所需的最少日線數
func (c *MomentumCalculator) MinBars() int {
	return c.period + c.maPeriod
}

// Calculate 計算動量訊號
// 輸入: 日線序列 (bars[0] 為最近交易日, 至少 period+maPeriod 筆)
func (c *MomentumCalculator) Calculate(ctx context.Context, symbol string, bars []market.PriceBar) (MomentumResult, error) {
	if len(bars) < c.MinBars() {
		return MomentumResult{}, fmt.Errorf("mtm %s: need %d bars, got %d: %w",
			symbol, c.MinBars(), len(bars), market.ErrInsufficientData)
	}

	result := MomentumResult{}
	result.MTM = bars[0].Close - bars[c.period].Close

	// 最近 maPeriod 天的每日 MTM 平均
	var sum float64
	for i := 0; i < c.maPeriod; i++ {
		sum += bars[i].Close - bars[i+c.period].Close
	}
	result.MTMMA = sum / float64(c.maPeriod)

	if result.MTM > result.MTMMA {
		result.Direction = DirectionAccelerating
	} else {
		result.Direction = DirectionDecelerating
	}

	// 強度加點
	strength := 0.0
	if result.MTM > 0 && result.MTMMA > 0 {
		strength += 40
	}
	if result.MTM > result.MTMMA {
		strength += 30
	}
	if bars[0].Close > bars[1].Close {
		strength += 30
	}
	result.Strength = strength

	switch {
	case strength >= 70:
		result.Signal = MTMSignalStrongBuy
	case strength >= 50:
		result.Signal = MTMSignalBuy
	case strength >= 30:
		result.Signal = MTMSignalHold
	default:
		result.Signal = MTMSignalWeak
	}

	log.Debug().
		Str("symbol", symbol).
		Float64("mtm", result.MTM).
		Float64("mtmma", result.MTMMA).
		Str("direction", result.Direction).
		Float64("strength", result.Strength).
		Msg("Calculated MTM")

	return result, nil
}
