package backtest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/dazetsai/stock-trading-2026/internal/domain/backtest"
	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// Engine 回測引擎
// 單一部位模型: 同一時間最多持有一檔多單, 不加碼不放空
// 逐日狀態機: FLAT ↔ IN_POSITION, 出場判定優先序為 停損 → 停利 → 移動停利
type Engine struct {
	cost backtest.CostConfig
}

// NewEngine 建立回測引擎
func NewEngine(cost backtest.CostConfig) *Engine {
	return &Engine{cost: cost}
}

// Run 對單一股票執行回測
// bars 必須為時間順序 (舊 → 新)
func (e *Engine) Run(ctx context.Context, symbol string, bars []market.PriceBar, cfg backtest.StrategyConfig) (*backtest.Result, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("backtest %s: %d bars: %w", symbol, len(bars), backtest.ErrInsufficientHistory)
	}

	cfg = backtest.DefaultExitRules(cfg)
	rule, err := NewEntryRule(cfg)
	if err != nil {
		return nil, err
	}

	capital := decimal.NewFromFloat(e.cost.InitialCapital)
	trades := make([]backtest.Trade, 0)
	equity := make([]backtest.EquityPoint, 0, len(bars))

	var pos *backtest.Position
	entryIdx := 0

	for i := range bars {
		bar := bars[i]

		if pos == nil {
			if rule.ShouldEnter(bars[:i+1]) {
				if opened, newCapital, ok := e.openPosition(symbol, bar, capital); ok {
					pos = opened
					capital = newCapital
					entryIdx = i
				}
			}
		} else {
			if bar.Close > pos.HighSinceEntry {
				pos.HighSinceEntry = bar.Close
			}
			if reason := e.exitReason(pos, bar, cfg); reason != "" {
				trade, newCapital := e.closePosition(pos, bar, i-entryIdx, reason, capital)
				trades = append(trades, trade)
				capital = newCapital
				pos = nil
			}
		}

		equity = append(equity, backtest.EquityPoint{
			Date:   bar.Date,
			Equity: markToMarket(capital, pos, bar),
		})
	}

	// 回測結束仍持倉: 以最後收盤強制平倉 (不計滑價), 避免未實現損益被默默丟棄
	if pos != nil {
		last := bars[len(bars)-1]
		trade, newCapital := e.closePosition(pos, last, len(bars)-1-entryIdx, backtest.ExitEndOfPeriod, capital)
		trades = append(trades, trade)
		capital = newCapital
		equity[len(equity)-1].Equity = capital.InexactFloat64()
	}

	result := &backtest.Result{
		Symbol:      symbol,
		Strategy:    rule.Name(),
		StartDate:   bars[0].Date,
		EndDate:     bars[len(bars)-1].Date,
		Trades:      trades,
		EquityCurve: equity,
		Report:      ComputeReport(trades, equity, e.cost),
	}

	log.Info().
		Str("symbol", symbol).
		Str("strategy", rule.Name()).
		Int("trades", len(trades)).
		Float64("total_return_pct", result.Report.TotalReturnPct).
		Msg("Backtest completed")

	return result, nil
}

// openPosition 進場
// 進場價含滑價; 部位大小取整張 (1000 股); 加計手續費超出可用資金時放棄進場
func (e *Engine) openPosition(symbol string, bar market.PriceBar, capital decimal.Decimal) (*backtest.Position, decimal.Decimal, bool) {
	entryPrice := bar.Close * (1 + e.cost.SlippageRate)
	price := decimal.NewFromFloat(entryPrice)
	lotCost := price.Mul(decimal.NewFromInt(e.cost.LotSize))
	if lotCost.LessThanOrEqual(decimal.Zero) {
		return nil, capital, false
	}

	budget := capital.Mul(decimal.NewFromFloat(e.cost.PositionSizePct))
	lots := budget.Div(lotCost).IntPart()
	if lots <= 0 {
		return nil, capital, false
	}

	shares := lots * e.cost.LotSize
	cost := price.Mul(decimal.NewFromInt(shares))
	commission := cost.Mul(decimal.NewFromFloat(e.cost.CommissionRate))
	total := cost.Add(commission)
	if total.GreaterThan(capital) {
		return nil, capital, false
	}

	pos := &backtest.Position{
		Symbol:         symbol,
		EntryDate:      bar.Date,
		EntryPrice:     entryPrice,
		Shares:         shares,
		CostBasis:      total.InexactFloat64(),
		HighSinceEntry: bar.Close,
	}
	return pos, capital.Sub(total), true
}

// exitReason 出場判定, 固定優先序
func (e *Engine) exitReason(pos *backtest.Position, bar market.PriceBar, cfg backtest.StrategyConfig) backtest.ExitReason {
	ret := (bar.Close - pos.EntryPrice) / pos.EntryPrice

	if ret <= -cfg.StopLossPct {
		return backtest.ExitStopLoss
	}
	if ret >= cfg.TakeProfitPct {
		return backtest.ExitTakeProfit
	}

	// 移動停利: 自進場高點報酬達啟動門檻後才生效
	highRet := (pos.HighSinceEntry - pos.EntryPrice) / pos.EntryPrice
	if highRet >= cfg.TrailingActivationPct && pos.HighSinceEntry > 0 {
		drawdown := (pos.HighSinceEntry - bar.Close) / pos.HighSinceEntry
		if drawdown >= cfg.TrailingStopPct {
			return backtest.ExitTrailing
		}
	}

	return ""
}

// closePosition 平倉並實現損益
// 強制平倉 (END_OF_PERIOD) 不計滑價, 手續費與證交稅照收
func (e *Engine) closePosition(pos *backtest.Position, bar market.PriceBar, holdDays int, reason backtest.ExitReason, capital decimal.Decimal) (backtest.Trade, decimal.Decimal) {
	exitPrice := bar.Close
	if reason != backtest.ExitEndOfPeriod {
		exitPrice = bar.Close * (1 - e.cost.SlippageRate)
	}

	price := decimal.NewFromFloat(exitPrice)
	proceeds := price.Mul(decimal.NewFromInt(pos.Shares))
	fees := proceeds.Mul(decimal.NewFromFloat(e.cost.CommissionRate + e.cost.SellTaxRate))
	net := proceeds.Sub(fees)

	costBasis := decimal.NewFromFloat(pos.CostBasis)
	pnl := net.Sub(costBasis)
	returnPct := 0.0
	if costBasis.IsPositive() {
		returnPct = pnl.Div(costBasis).InexactFloat64() * 100
	}

	trade := backtest.Trade{
		Symbol:     pos.Symbol,
		EntryDate:  pos.EntryDate,
		EntryPrice: pos.EntryPrice,
		ExitDate:   bar.Date,
		ExitPrice:  exitPrice,
		Shares:     pos.Shares,
		PnL:        pnl.InexactFloat64(),
		ReturnPct:  returnPct,
		ExitReason: reason,
		HoldDays:   holdDays,
	}

	log.Debug().
		Str("symbol", pos.Symbol).
		Time("exit_date", bar.Date).
		Str("reason", string(reason)).
		Float64("return_pct", returnPct).
		Msg("Position closed")

	return trade, capital.Add(net)
}

// markToMarket 當日權益: 現金 + 持倉市值 (以收盤計)
func markToMarket(capital decimal.Decimal, pos *backtest.Position, bar market.PriceBar) float64 {
	equity := capital.InexactFloat64()
	if pos != nil {
		equity += float64(pos.Shares) * bar.Close
	}
	return equity
}
