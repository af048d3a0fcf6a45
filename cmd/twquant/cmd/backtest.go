package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dazetsai/stock-trading-2026/internal/domain/backtest"
	"github.com/dazetsai/stock-trading-2026/internal/infra/database/postgres"
	btservice "github.com/dazetsai/stock-trading-2026/internal/service/backtest"
)

var (
	btSymbols  string
	btStart    string
	btEnd      string
	btStrategy string
	btJSON     bool
)

// backtestCmd 歷史回測指令
var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "對進場策略執行歷史回測",
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&btSymbols, "symbol", "", "股票代號, 逗號分隔可多檔 (必填)")
	backtestCmd.Flags().StringVar(&btStart, "start", "", "起始日 YYYY-MM-DD (必填)")
	backtestCmd.Flags().StringVar(&btEnd, "end", "", "結束日 YYYY-MM-DD (必填)")
	backtestCmd.Flags().StringVar(&btStrategy, "strategy", "ma_cross", "進場策略 (ma_cross / volume_breakout)")
	backtestCmd.Flags().BoolVar(&btJSON, "json", false, "輸出完整 JSON 結果")
	backtestCmd.MarkFlagRequired("symbol")
	backtestCmd.MarkFlagRequired("start")
	backtestCmd.MarkFlagRequired("end")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	start, err := time.Parse("2006-01-02", btStart)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse("2006-01-02", btEnd)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("--end must be after --start")
	}

	symbols := strings.Split(btSymbols, ",")
	for i := range symbols {
		symbols[i] = strings.TrimSpace(symbols[i])
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	cost := backtest.DefaultCostConfig()
	cost.InitialCapital = cfg.Backtest.InitialCapital
	cost.PositionSizePct = cfg.Backtest.PositionPct
	cost.CommissionRate = cfg.Backtest.CommissionRate
	cost.SellTaxRate = cfg.Backtest.SellTaxRate
	cost.SlippageRate = cfg.Backtest.SlippageRate
	cost.RiskFreeRate = cfg.Backtest.RiskFreeRate

	strategyCfg := backtest.StrategyConfig{Name: btStrategy}
	strategyCfg = backtest.DefaultExitRules(strategyCfg)

	svc := btservice.NewService(postgres.NewPriceRepository(pool.Pool), cost)

	if len(symbols) == 1 {
		result, err := svc.Run(ctx, symbols[0], start, end, strategyCfg)
		if err != nil {
			return fmt.Errorf("backtest failed: %w", err)
		}
		return printBacktestResults([]backtest.Result{*result})
	}

	results := svc.RunBatch(ctx, symbols, start, end, strategyCfg)
	return printBacktestResults(results)
}

func printBacktestResults(results []backtest.Result) error {
	if btJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, res := range results {
		r := res.Report
		fmt.Printf("%s [%s]\n", res.Symbol, res.Strategy)
		fmt.Printf("  trades=%d winRate=%.1f%% totalReturn=%.2f%%\n",
			r.TotalTrades, r.WinRate*100, r.TotalReturnPct)
		fmt.Printf("  maxDrawdown=%.2f%% sharpe=%.2f profitFactor=%.2f expectancy=%.2f\n",
			r.MaxDrawdownPct, r.SharpeRatio, r.ProfitFactor, r.Expectancy)
		fmt.Println()
	}
	return nil
}
