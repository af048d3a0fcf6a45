package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dazetsai/stock-trading-2026/internal/api/handlers"
	"github.com/dazetsai/stock-trading-2026/internal/api/router"
	"github.com/dazetsai/stock-trading-2026/internal/domain/backtest"
	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
	"github.com/dazetsai/stock-trading-2026/internal/infra/database/postgres"
	btservice "github.com/dazetsai/stock-trading-2026/internal/service/backtest"
	"github.com/dazetsai/stock-trading-2026/internal/service/screener"
)

// serveCmd API Server 指令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "啟動 API Server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Info().
		Str("version", serviceVersion).
		Msg("🚀 Starting twquant API Server...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories
	priceRepo := postgres.NewPriceRepository(pool.Pool)
	flowRepo := postgres.NewFlowRepository(pool.Pool)
	fundamentalRepo := postgres.NewFundamentalRepository(pool.Pool)
	stockRepo := postgres.NewStockRepository(pool.Pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool.Pool)

	// Services
	screenerCriteria := scoring.DefaultScreenerCriteria()
	screenerCriteria.MinAvgVolume5D = cfg.Screener.MinAvgVolume5D
	screenerCriteria.MinPrice = cfg.Screener.MinPrice
	screenerCriteria.TopN = cfg.Screener.TopN

	screenerSvc := screener.NewService(
		priceRepo,
		flowRepo,
		fundamentalRepo,
		stockRepo,
		scoring.DefaultScoringCriteria(),
		screenerCriteria,
	)

	cost := backtest.DefaultCostConfig()
	cost.InitialCapital = cfg.Backtest.InitialCapital
	cost.PositionSizePct = cfg.Backtest.PositionPct
	cost.CommissionRate = cfg.Backtest.CommissionRate
	cost.SellTaxRate = cfg.Backtest.SellTaxRate
	cost.SlippageRate = cfg.Backtest.SlippageRate
	cost.RiskFreeRate = cfg.Backtest.RiskFreeRate
	backtestSvc := btservice.NewService(priceRepo, cost)

	// Handlers + router
	httpHandler := router.NewRouter(&router.Config{
		HealthHandler:   handlers.NewHealthHandler(pool, serviceVersion),
		ScreenerHandler: handlers.NewScreenerHandler(screenerSvc, snapshotRepo),
		BacktestHandler: handlers.NewBacktestHandler(backtestSvc),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("✅ API Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}
