package backtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dazetsai/stock-trading-2026/internal/domain/backtest"
	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// Service 回測服務: 讀取歷史資料並驅動引擎
type Service struct {
	engine      *Engine
	priceReader market.PriceReader
}

// NewService 建立回測服務
func NewService(priceReader market.PriceReader, cost backtest.CostConfig) *Service {
	return &Service{
		engine:      NewEngine(cost),
		priceReader: priceReader,
	}
}

// Run 依日期區間回測單一股票
func (s *Service) Run(ctx context.Context, symbol string, start, end time.Time, cfg backtest.StrategyConfig) (*backtest.Result, error) {
	bars, err := s.priceReader.GetPriceHistory(ctx, symbol, end, 0)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", symbol, err)
	}

	window := chronologicalWindow(bars, start)
	if len(window) < 2 {
		return nil, fmt.Errorf("backtest %s: %d bars in range: %w",
			symbol, len(window), backtest.ErrInsufficientHistory)
	}

	return s.engine.Run(ctx, symbol, window, cfg)
}

// RunBatch 以同一策略回測多檔股票, 依總報酬由高到低排序
// 單檔失敗 (例如歷史不足) 記錄後略過, 不中止整批
func (s *Service) RunBatch(ctx context.Context, symbols []string, start, end time.Time, cfg backtest.StrategyConfig) []backtest.Result {
	log.Info().
		Int("symbols", len(symbols)).
		Str("strategy", cfg.Name).
		Msg("Starting backtest batch")

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]backtest.Result, 0, len(symbols))
	)

	// 各檔資料彼此獨立, 可平行模擬
	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			result, err := s.Run(ctx, symbol, start, end, cfg)
			if err != nil {
				log.Warn().Err(err).Str("symbol", symbol).Msg("Backtest failed, skipping")
				return
			}

			mu.Lock()
			results = append(results, *result)
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Report.TotalReturnPct != results[j].Report.TotalReturnPct {
			return results[i].Report.TotalReturnPct > results[j].Report.TotalReturnPct
		}
		return results[i].Symbol < results[j].Symbol
	})

	log.Info().
		Int("succeeded", len(results)).
		Int("failed", len(symbols)-len(results)).
		Msg("Backtest batch completed")

	return results
}

// chronologicalWindow 由新到舊的序列轉為時間順序並裁到起日
func chronologicalWindow(bars []market.PriceBar, start time.Time) []market.PriceBar {
	window := make([]market.PriceBar, 0, len(bars))
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Date.Before(start) {
			continue
		}
		window = append(window, bars[i])
	}
	return window
}
