// Package main - twquant CLI
// 整合 CLI 進入點
//
// 使用方式:
//
//	go run ./cmd/twquant screen
//	go run ./cmd/twquant backtest --symbol 2330 --start 2025-01-01 --end 2025-06-30
//	go run ./cmd/twquant serve
package main

import (
	"os"

	"github.com/dazetsai/stock-trading-2026/cmd/twquant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
