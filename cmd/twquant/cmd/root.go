// Package cmd - twquant CLI commands
package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dazetsai/stock-trading-2026/internal/pkg/config"
	"github.com/dazetsai/stock-trading-2026/internal/pkg/logger"
)

const (
	serviceName    = "twquant"
	serviceVersion = "1.0.0"
)

var (
	// 共用旗標
	verbose bool

	cfg *config.Config
)

// rootCmd 根指令
var rootCmd = &cobra.Command{
	Use:   "twquant",
	Short: "台股量化選股系統 - CLI",
	Long: `台股量化選股系統 - CLI

Usage:
    go run ./cmd/twquant [command]

Commands:
    screen      執行每日選股, 產出分層快照
    backtest    對進場策略執行歷史回測
    serve       啟動 API Server (Port 8199)
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime()
	},
}

// Execute 執行根指令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(screenCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(serveCmd)
}

// initRuntime loads config, timezone and logger
func initRuntime() error {
	// 市場時間一律以台北時區計
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}
	time.Local = loc

	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	if err := logger.Init(logger.Config{
		Level:          level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Debug().Msg("Runtime initialized")
	return nil
}
