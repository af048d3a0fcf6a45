package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
	"github.com/dazetsai/stock-trading-2026/internal/service/indicator"
)

// 進場型態
const (
	EntryBreakout       = "BREAKOUT"
	EntryPullbackBounce = "PULLBACK_BOUNCE"
	EntryNone           = "NONE"
)

// 技術面評分所需最少日線數
const technicalMinBars = 60

// TechnicalScorer 技術面評分器
// SSOT: 技術面分數只在這裡計算
// 組成: VAO 35% + MTM 強度 30% + 均線系統 35%
type TechnicalScorer struct {
	vao      *indicator.VAOCalculator
	momentum *indicator.MomentumCalculator
	ma       *indicator.MACalculator
}

// NewTechnicalScorer 建立技術面評分器
func NewTechnicalScorer() *TechnicalScorer {
	return &TechnicalScorer{
		vao:      indicator.NewVAOCalculator(),
		momentum: indicator.DefaultMomentumCalculator(),
		ma:       indicator.NewMACalculator(),
	}
}

// Calculate 計算技術面分數
// 輸入: 日線序列 (bars[0] 為最近交易日, 至少 60 筆)
// 資料不足時回傳 0 分與錯誤, 呼叫端視為「無意見」而非中止
func (s *TechnicalScorer) Calculate(ctx context.Context, symbol string, bars []market.PriceBar, sharesOutstanding int64) (float64, scoring.TechnicalDetail, error) {
	detail := scoring.TechnicalDetail{EntryType: EntryNone}

	if len(bars) < technicalMinBars {
		return 0, detail, fmt.Errorf("technical %s: need %d bars, got %d: %w",
			symbol, technicalMinBars, len(bars), market.ErrInsufficientData)
	}

	vao, err := s.vao.Calculate(ctx, symbol, bars, sharesOutstanding)
	if err != nil {
		return 0, detail, err
	}
	mtm, err := s.momentum.Calculate(ctx, symbol, bars)
	if err != nil {
		return 0, detail, err
	}
	system, err := s.ma.Calculate(ctx, symbol, bars)
	if err != nil {
		return 0, detail, err
	}

	detail.VAOScore = vao.Score
	detail.VAOSignal = vao.Signal
	detail.MTMStrength = mtm.Strength
	detail.MTMSignal = mtm.Signal
	detail.MAAlignment = system.Alignment
	detail.AboveMA20 = system.AboveMA20

	// 均線子分數 (0-100): 排列 50 / 25, 站上 MA20 +30, 貼近 MA20 +20
	maScore := 0.0
	switch system.Alignment {
	case indicator.AlignmentBullish:
		maScore += 50
	case indicator.AlignmentMixed:
		maScore += 25
	}
	if system.AboveMA20 {
		maScore += 30
	}
	if math.Abs(system.MA20.DeviationPct) <= 3 {
		maScore += 20
	}

	score := vao.Score*0.35 + mtm.Strength*0.30 + maScore*0.35

	s.evaluateEntry(bars, mtm, system, &detail)

	log.Debug().
		Str("symbol", symbol).
		Float64("score", score).
		Float64("vao", vao.Score).
		Float64("mtm_strength", mtm.Strength).
		Float64("ma_score", maScore).
		Bool("entry", detail.EntrySignal).
		Str("entry_type", detail.EntryType).
		Msg("Calculated technical score")

	return score, detail, nil
}

// evaluateEntry 進場訊號判定
// A: 突破 20 日高點且量 > 1.2 倍 5 日均量
// B: 站上 MA10 且動量為正且加速
// C: 收盤貼近 MA20 (3% 內) 且今日為反轉紅 K (昨日收黑)
// 進場 = (A∧B) ∨ (B∧C)
func (s *TechnicalScorer) evaluateEntry(bars []market.PriceBar, mtm indicator.MomentumResult, system indicator.MovingAverageSystem, detail *scoring.TechnicalDetail) {
	price := bars[0].Close

	// A: 量價突破
	prevHigh := indicator.HighestClose(bars[1:], 20)
	var avg5 float64
	for i := 0; i < 5; i++ {
		avg5 += float64(bars[i].Volume)
	}
	avg5 /= 5
	condA := prevHigh > 0 && price > prevHigh &&
		avg5 > 0 && float64(bars[0].Volume) > avg5*1.2

	// B: 動量確認
	condB := system.MA10.PriceAbove && mtm.MTM > 0 &&
		mtm.Direction == indicator.DirectionAccelerating

	// C: 回測 MA20 反轉
	condC := math.Abs(system.MA20.DeviationPct) <= 3 &&
		bars[0].Close > bars[0].Open &&
		bars[1].Close < bars[1].Open

	detail.CondBreakout = condA
	detail.CondMomentum = condB
	detail.CondPullback = condC

	switch {
	case condA && condB:
		detail.EntrySignal = true
		detail.EntryType = EntryBreakout
	case condB && condC:
		detail.EntrySignal = true
		detail.EntryType = EntryPullbackBounce
	}
}
