package backtest

import (
	"math"

	"github.com/dazetsai/stock-trading-2026/internal/domain/backtest"
)

// 台股一年約 252 個交易日
const tradingDaysPerYear = 252

// ComputeReport 由交易紀錄與權益曲線計算績效報告
// 純函式, 與模擬過程無關; 空交易紀錄回傳全零報告, 不是錯誤
func ComputeReport(trades []backtest.Trade, equity []backtest.EquityPoint, cost backtest.CostConfig) backtest.PerformanceReport {
	report := backtest.PerformanceReport{
		MonthlyReturns: make(map[string]float64),
	}
	if len(trades) == 0 {
		return report
	}

	report.TotalTrades = len(trades)

	var sumWinPct, sumLossPct float64
	var grossWin, grossLoss float64
	for _, t := range trades {
		switch {
		case t.PnL > 0:
			report.WinningTrades++
			sumWinPct += t.ReturnPct
			grossWin += t.PnL
		case t.PnL < 0:
			report.LosingTrades++
			sumLossPct += -t.ReturnPct
			grossLoss += -t.PnL
		}
		month := t.ExitDate.Format("2006-01")
		report.MonthlyReturns[month] += t.ReturnPct
	}

	report.WinRate = float64(report.WinningTrades) / float64(report.TotalTrades)
	if report.WinningTrades > 0 {
		report.AvgWinPct = sumWinPct / float64(report.WinningTrades)
	}
	if report.LosingTrades > 0 {
		report.AvgLossPct = sumLossPct / float64(report.LosingTrades)
	}

	report.ProfitFactor = profitFactor(grossWin, grossLoss)
	report.Expectancy = report.WinRate*report.AvgWinPct - (1-report.WinRate)*report.AvgLossPct

	if len(equity) > 0 {
		final := equity[len(equity)-1].Equity
		report.FinalCapital = final
		if cost.InitialCapital > 0 {
			report.TotalReturnPct = (final - cost.InitialCapital) / cost.InitialCapital * 100
		}
		report.MaxDrawdown, report.MaxDrawdownPct = MaxDrawdown(equityValues(equity))
		report.SharpeRatio = SharpeRatio(equityValues(equity), cost.RiskFreeRate)
	}

	return report
}

// MaxDrawdown 權益曲線最大回落 (絕對值與百分比)
func MaxDrawdown(equity []float64) (maxDD, maxDDPct float64) {
	if len(equity) == 0 {
		return 0, 0
	}

	peak := equity[0]
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		dd := peak - v
		if dd > maxDD {
			maxDD = dd
			if peak > 0 {
				maxDDPct = dd / peak * 100
			}
		}
	}
	return maxDD, maxDDPct
}

// SharpeRatio 年化夏普值
// 以權益曲線日報酬計算; 標準差為 0 或資料不足時回傳 0
func SharpeRatio(equity []float64, annualRiskFree float64) float64 {
	if len(equity) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			continue
		}
		returns = append(returns, equity[i]/equity[i-1]-1)
	}
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	stdev := math.Sqrt(variance / float64(len(returns)))
	if stdev == 0 {
		return 0
	}

	dailyRiskFree := annualRiskFree / tradingDaysPerYear
	return (mean - dailyRiskFree) / stdev * math.Sqrt(tradingDaysPerYear)
}

// profitFactor 總獲利 / 總虧損
// 無虧損且有獲利 → +Inf; 無交易 → 0
func profitFactor(grossWin, grossLoss float64) float64 {
	if grossLoss == 0 {
		if grossWin > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return grossWin / grossLoss
}

func equityValues(points []backtest.EquityPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Equity
	}
	return values
}
