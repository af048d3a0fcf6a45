package market

import "errors"

var (
	// ErrInsufficientData 資料長度不足以計算指標
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidInput 不合法的輸入參數 (例如負的週期)
	ErrInvalidInput = errors.New("invalid input")

	// ErrSymbolNotFound 查無此股票
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrDatabaseQuery 資料庫查詢失敗
	ErrDatabaseQuery = errors.New("database query failed")

	// ErrDatabaseInsert 資料庫寫入失敗
	ErrDatabaseInsert = errors.New("database insert failed")
)
