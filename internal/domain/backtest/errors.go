package backtest

import "errors"

var (
	// ErrInsufficientHistory 歷史資料不足以回測
	ErrInsufficientHistory = errors.New("insufficient price history")

	// ErrUnknownStrategy 不支援的策略名稱
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidConfig 不合法的回測參數
	ErrInvalidConfig = errors.New("invalid backtest config")
)
