package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/dazetsai/stock-trading-2026/internal/domain/backtest"
)

func TestComputeReport(t *testing.T) {
	cost := backtest.DefaultCostConfig()

	t.Run("empty ledger is a zero report", func(t *testing.T) {
		report := ComputeReport(nil, nil, cost)
		if report.TotalTrades != 0 || report.WinRate != 0 || report.TotalReturnPct != 0 {
			t.Errorf("expected zero report, got %+v", report)
		}
		if report.MonthlyReturns == nil {
			t.Error("expected non-nil monthly returns map")
		}
	})

	t.Run("profit factor from gross win and loss", func(t *testing.T) {
		trades := []backtest.Trade{
			{PnL: 10_000, ReturnPct: 10, ExitDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
			{PnL: -5_000, ReturnPct: -5, ExitDate: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)},
		}

		report := ComputeReport(trades, nil, cost)
		if report.ProfitFactor != 2.0 {
			t.Errorf("expected profit factor 2.0, got %.2f", report.ProfitFactor)
		}
		if report.WinRate != 0.5 {
			t.Errorf("expected win rate 0.5, got %.2f", report.WinRate)
		}
		if report.AvgWinPct != 10 || report.AvgLossPct != 5 {
			t.Errorf("expected avg win 10 / avg loss 5, got %.1f / %.1f",
				report.AvgWinPct, report.AvgLossPct)
		}
		// 期望值 = 0.5*10 - 0.5*5
		if report.Expectancy != 2.5 {
			t.Errorf("expected expectancy 2.5, got %.2f", report.Expectancy)
		}
		if report.MonthlyReturns["2025-01"] != 10 || report.MonthlyReturns["2025-02"] != -5 {
			t.Errorf("unexpected monthly returns: %+v", report.MonthlyReturns)
		}
	})

	t.Run("all winners has infinite profit factor", func(t *testing.T) {
		trades := []backtest.Trade{
			{PnL: 3_000, ReturnPct: 3, ExitDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		}
		report := ComputeReport(trades, nil, cost)
		if !math.IsInf(report.ProfitFactor, 1) {
			t.Errorf("expected +Inf, got %.2f", report.ProfitFactor)
		}
	})
}

func TestMaxDrawdown(t *testing.T) {
	t.Run("empty curve", func(t *testing.T) {
		dd, ddPct := MaxDrawdown(nil)
		if dd != 0 || ddPct != 0 {
			t.Errorf("expected 0/0, got %.2f/%.2f", dd, ddPct)
		}
	})

	t.Run("known curve", func(t *testing.T) {
		// 高點 130 回落至 105: 回落 25, 即 19.23%
		dd, ddPct := MaxDrawdown([]float64{100, 120, 110, 130, 105, 140})
		if dd != 25 {
			t.Errorf("expected drawdown 25, got %.2f", dd)
		}
		if math.Abs(ddPct-19.2307) > 0.001 {
			t.Errorf("expected ~19.23%%, got %.4f", ddPct)
		}
	})

	t.Run("monotonic rise has no drawdown", func(t *testing.T) {
		dd, ddPct := MaxDrawdown([]float64{100, 110, 120})
		if dd != 0 || ddPct != 0 {
			t.Errorf("expected 0/0, got %.2f/%.2f", dd, ddPct)
		}
	})
}

func TestSharpeRatio(t *testing.T) {
	t.Run("constant equity is zero", func(t *testing.T) {
		if got := SharpeRatio([]float64{100, 100, 100, 100}, 0.02); got != 0 {
			t.Errorf("expected 0, got %.4f", got)
		}
	})

	t.Run("too few points is zero", func(t *testing.T) {
		if got := SharpeRatio([]float64{100}, 0.02); got != 0 {
			t.Errorf("expected 0, got %.4f", got)
		}
	})

	t.Run("steady gains beat steady losses", func(t *testing.T) {
		up := []float64{100, 101, 101.8, 103, 104.1, 105}
		down := []float64{105, 104.1, 103, 101.8, 101, 100}

		if SharpeRatio(up, 0.02) <= SharpeRatio(down, 0.02) {
			t.Error("expected rising curve to have higher sharpe")
		}
	})
}
