package indicator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// VAO 訊號等級
const (
	VAOSignalStrong   = "STRONG"
	VAOSignalModerate = "MODERATE"
	VAOSignalWeak     = "WEAK"
)

// VAO 最少需要的日線數
const vaoMinBars = 20

// VAOResult 量價突破指標結果
type VAOResult struct {
	Score  float64 `json:"score"`  // 0-100
	Signal string  `json:"signal"` // STRONG / MODERATE / WEAK

	Volume5DRatio  float64 `json:"volume_5d_ratio"`  // 今日量 / 5日均量
	Volume20DRatio float64 `json:"volume_20d_ratio"` // 今日量 / 20日均量
	ChangePct      float64 `json:"change_pct"`       // 當日漲跌幅 (%)
	TurnoverPct    float64 `json:"turnover_pct"`     // 週轉率 (%), 股數未知時為 0
}

// VAOCalculator 量價突破 (VAO) 計算器
// SSOT: VAO 計算只在這裡
type VAOCalculator struct{}

// NewVAOCalculator 建立 VAO 計算器
func NewVAOCalculator() *VAOCalculator {
	return &VAOCalculator{}
}

// Calculate 計算 VAO 分數
// 輸入: 日線序列 (bars[0] 為最近交易日, 至少 20 筆); sharesOutstanding 可為 0
// 分數採條件加點: 量能最多 50, 價格最多 30, 週轉率最多 20
func (c *VAOCalculator) Calculate(ctx context.Context, symbol string, bars []market.PriceBar, sharesOutstanding int64) (VAOResult, error) {
	if len(bars) < vaoMinBars {
		return VAOResult{}, fmt.Errorf("vao %s: need %d bars, got %d: %w",
			symbol, vaoMinBars, len(bars), market.ErrInsufficientData)
	}

	result := VAOResult{Signal: VAOSignalWeak}

	avg5 := averageVolume(bars[:5])
	avg20 := averageVolume(bars[:20])
	volume := float64(bars[0].Volume)

	if avg5 > 0 {
		result.Volume5DRatio = volume / avg5
	}
	if avg20 > 0 {
		result.Volume20DRatio = volume / avg20
	}
	result.ChangePct = bars[0].ChangePct(bars[1])

	// 量能條件 (最多 50 分)
	score := 0.0
	if avg5 > 0 && volume > avg5*1.5 {
		score += 25
	}
	if avg20 > 0 && volume > avg20*2.0 {
		score += 25
	}

	// 價格條件 (最多 30 分)
	if result.ChangePct > 3 {
		score += 15
	}
	if result.ChangePct > 5 {
		score += 15
	}

	// 週轉率條件 (最多 20 分, 需要流通股數)
	if sharesOutstanding > 0 {
		result.TurnoverPct = volume / float64(sharesOutstanding) * 100
		if result.TurnoverPct > 5 {
			score += 10
		}
		if result.TurnoverPct > 10 {
			score += 10
		}
	}

	result.Score = score
	switch {
	case score >= 70:
		result.Signal = VAOSignalStrong
	case score >= 50:
		result.Signal = VAOSignalModerate
	}

	log.Debug().
		Str("symbol", symbol).
		Float64("score", result.Score).
		Str("signal", result.Signal).
		Float64("vol_5d_ratio", result.Volume5DRatio).
		Float64("vol_20d_ratio", result.Volume20DRatio).
		Float64("change_pct", result.ChangePct).
		Msg("Calculated VAO")

	return result, nil
}

// averageVolume 平均成交量
func averageVolume(bars []market.PriceBar) float64 {
	if len(bars) == 0 {
		return 0
	}
	var sum int64
	for _, b := range bars {
		sum += b.Volume
	}
	return float64(sum) / float64(len(bars))
}
