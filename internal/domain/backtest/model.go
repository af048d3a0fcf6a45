package backtest

import "time"

// ExitReason 出場原因
type ExitReason string

const (
	ExitStopLoss    ExitReason = "STOP_LOSS"
	ExitTakeProfit  ExitReason = "TAKE_PROFIT"
	ExitTrailing    ExitReason = "TRAILING_STOP"
	ExitEndOfPeriod ExitReason = "END_OF_PERIOD" // 回測結束強制平倉
)

// StrategyConfig 策略設定: 進場規則 + 共用出場規則
type StrategyConfig struct {
	Name string `json:"name"` // ma_cross / volume_breakout

	// 進場參數
	ShortPeriod    int     `json:"short_period,omitempty"`     // ma_cross 短均線
	LongPeriod     int     `json:"long_period,omitempty"`      // ma_cross 長均線
	VolumeMultiple float64 `json:"volume_multiple,omitempty"`  // volume_breakout 量能倍數
	MinChangePct   float64 `json:"min_change_pct,omitempty"`   // volume_breakout 最小漲幅 (%)

	// 出場規則 (比率, 0.05 = 5%)
	StopLossPct           float64 `json:"stop_loss_pct"`
	TakeProfitPct         float64 `json:"take_profit_pct"`
	TrailingStopPct       float64 `json:"trailing_stop_pct"`
	TrailingActivationPct float64 `json:"trailing_activation_pct"`
}

// DefaultExitRules 預設出場參數
func DefaultExitRules(cfg StrategyConfig) StrategyConfig {
	if cfg.StopLossPct == 0 {
		cfg.StopLossPct = 0.07
	}
	if cfg.TakeProfitPct == 0 {
		cfg.TakeProfitPct = 0.15
	}
	if cfg.TrailingStopPct == 0 {
		cfg.TrailingStopPct = 0.05
	}
	if cfg.TrailingActivationPct == 0 {
		cfg.TrailingActivationPct = 0.08
	}
	return cfg
}

// CostConfig 回測經濟參數
type CostConfig struct {
	InitialCapital  float64 `json:"initial_capital"`   // 起始資金
	PositionSizePct float64 `json:"position_size_pct"` // 每筆投入資金比例
	CommissionRate  float64 `json:"commission_rate"`   // 券商手續費 (單邊)
	SellTaxRate     float64 `json:"sell_tax_rate"`     // 證交稅 (賣出)
	SlippageRate    float64 `json:"slippage_rate"`     // 滑價
	RiskFreeRate    float64 `json:"risk_free_rate"`    // 年化無風險利率 (Sharpe 用)
	LotSize         int64   `json:"lot_size"`          // 一張 = 1000 股
}

// DefaultCostConfig 台股預設成本
func DefaultCostConfig() CostConfig {
	return CostConfig{
		InitialCapital:  1_000_000,
		PositionSizePct: 1.0,
		CommissionRate:  0.001425,
		SellTaxRate:     0.003,
		SlippageRate:    0.001,
		RiskFreeRate:    0.02,
		LotSize:         1000,
	}
}

// Position 回測中的未平倉部位
type Position struct {
	Symbol         string    `json:"symbol"`
	EntryDate      time.Time `json:"entry_date"`
	EntryPrice     float64   `json:"entry_price"` // 含滑價
	Shares         int64     `json:"shares"`
	CostBasis      float64   `json:"cost_basis"` // 含進場手續費
	HighSinceEntry float64   `json:"high_since_entry"`
}

// Trade 已平倉交易, 記錄後不再修改
type Trade struct {
	Symbol     string     `json:"symbol"`
	EntryDate  time.Time  `json:"entry_date"`
	EntryPrice float64    `json:"entry_price"`
	ExitDate   time.Time  `json:"exit_date"`
	ExitPrice  float64    `json:"exit_price"`
	Shares     int64      `json:"shares"`
	PnL        float64    `json:"pnl"`        // 已實現損益 (含成本)
	ReturnPct  float64    `json:"return_pct"` // 報酬率 (%)
	ExitReason ExitReason `json:"exit_reason"`
	HoldDays   int        `json:"hold_days"` // 持有交易日數
}

// EquityPoint 權益曲線單點
type EquityPoint struct {
	Date   time.Time `json:"date"`
	Equity float64   `json:"equity"`
}

// PerformanceReport 績效報告, 每次由交易紀錄與權益曲線重新計算
type PerformanceReport struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"` // 0-1

	TotalReturnPct float64 `json:"total_return_pct"`
	FinalCapital   float64 `json:"final_capital"`

	AvgWinPct  float64 `json:"avg_win_pct"`  // 獲利交易平均報酬 (%)
	AvgLossPct float64 `json:"avg_loss_pct"` // 虧損交易平均虧損幅度 (%, 正值)

	MaxDrawdown    float64 `json:"max_drawdown"`     // 絕對金額
	MaxDrawdownPct float64 `json:"max_drawdown_pct"` // %

	SharpeRatio  float64 `json:"sharpe_ratio"`
	ProfitFactor float64 `json:"profit_factor"` // 總獲利 / 總虧損
	Expectancy   float64 `json:"expectancy"`    // 每筆期望報酬 (%)

	MonthlyReturns map[string]float64 `json:"monthly_returns"` // YYYY-MM → 報酬 (%)
}

// Result 單一股票的回測結果
type Result struct {
	Symbol      string            `json:"symbol"`
	Strategy    string            `json:"strategy"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	Trades      []Trade           `json:"trades"`
	EquityCurve []EquityPoint     `json:"equity_curve"`
	Report      PerformanceReport `json:"report"`
}
