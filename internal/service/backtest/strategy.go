package backtest

import (
	"fmt"

	"github.com/dazetsai/stock-trading-2026/internal/domain/backtest"
	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// EntryRule 進場規則
// 對截至當日的歷史視窗做純判斷, 不保留狀態
type EntryRule interface {
	Name() string

	// ShouldEnter 視窗為時間順序 (最後一筆為當日)
	// 視窗短於規則所需回看長度時回傳 false, 不是錯誤
	ShouldEnter(window []market.PriceBar) bool
}

// NewEntryRule 由策略設定建立進場規則
func NewEntryRule(cfg backtest.StrategyConfig) (EntryRule, error) {
	switch cfg.Name {
	case "ma_cross":
		short, long := cfg.ShortPeriod, cfg.LongPeriod
		if short == 0 {
			short = 5
		}
		if long == 0 {
			long = 20
		}
		if short <= 0 || long <= short {
			return nil, fmt.Errorf("ma_cross: short=%d long=%d: %w", short, long, backtest.ErrInvalidConfig)
		}
		return &MACrossRule{Short: short, Long: long}, nil
	case "volume_breakout":
		multiple, minChange := cfg.VolumeMultiple, cfg.MinChangePct
		if multiple == 0 {
			multiple = 2.0
		}
		if minChange == 0 {
			minChange = 3.0
		}
		if multiple <= 0 {
			return nil, fmt.Errorf("volume_breakout: multiple=%.2f: %w", multiple, backtest.ErrInvalidConfig)
		}
		return &VolumeBreakoutRule{Multiple: multiple, MinChangePct: minChange}, nil
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Name, backtest.ErrUnknownStrategy)
	}
}

// MACrossRule 均線黃金交叉進場
// 短均線於前一日尚未高於長均線, 當日向上穿越
type MACrossRule struct {
	Short int
	Long  int
}

func (r *MACrossRule) Name() string { return "ma_cross" }

func (r *MACrossRule) ShouldEnter(window []market.PriceBar) bool {
	// 前一日也要能算長均線
	if len(window) < r.Long+1 {
		return false
	}

	prev := window[:len(window)-1]
	prevShort := smaTail(prev, r.Short)
	prevLong := smaTail(prev, r.Long)
	curShort := smaTail(window, r.Short)
	curLong := smaTail(window, r.Long)

	return prevShort <= prevLong && curShort > curLong
}

// VolumeBreakoutRule 量能突破進場
// 當日量 > Multiple 倍前 5 日均量, 且漲幅達 MinChangePct
type VolumeBreakoutRule struct {
	Multiple     float64
	MinChangePct float64
}

func (r *VolumeBreakoutRule) Name() string { return "volume_breakout" }

func (r *VolumeBreakoutRule) ShouldEnter(window []market.PriceBar) bool {
	if len(window) < 6 {
		return false
	}

	cur := window[len(window)-1]
	prev := window[len(window)-2]

	// 前 5 日均量 (不含當日)
	var sum int64
	for _, b := range window[len(window)-6 : len(window)-1] {
		sum += b.Volume
	}
	avg5 := float64(sum) / 5
	if avg5 == 0 {
		return false
	}

	return float64(cur.Volume) > avg5*r.Multiple &&
		cur.ChangePct(prev) >= r.MinChangePct
}

// smaTail 時間順序序列尾端 n 筆收盤的簡單平均
func smaTail(bars []market.PriceBar, n int) float64 {
	if n <= 0 || len(bars) < n {
		return 0
	}
	var sum float64
	for _, b := range bars[len(bars)-n:] {
		sum += b.Close
	}
	return sum / float64(n)
}
