package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// PriceRepository implements market.PriceReader using PostgreSQL
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new PriceRepository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// GetPriceHistory returns daily bars up to and including the given date
// 由新到舊排序; limit <= 0 表示不限筆數
func (r *PriceRepository) GetPriceHistory(ctx context.Context, symbol string, until time.Time, limit int) ([]market.PriceBar, error) {
	query := `
		SELECT trade_date, open, high, low, close, volume
		FROM twquant.prices_daily
		WHERE symbol = $1 AND trade_date <= $2
		ORDER BY trade_date DESC
	`
	args := []any{symbol, until}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", market.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var bars []market.PriceBar
	for rows.Next() {
		var b market.PriceBar
		err := rows.Scan(
			&b.Date,
			&b.Open,
			&b.High,
			&b.Low,
			&b.Close,
			&b.Volume,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", market.ErrDatabaseQuery, err)
		}
		bars = append(bars, b)
	}

	return bars, nil
}

// UpsertBars inserts or replaces daily bars
func (r *PriceRepository) UpsertBars(ctx context.Context, symbol string, bars []market.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}

	query := `
		INSERT INTO twquant.prices_daily (
			symbol, trade_date, open, high, low, close, volume
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", market.ErrDatabaseInsert, err)
	}
	defer tx.Rollback(ctx)

	for _, b := range bars {
		_, err := tx.Exec(ctx, query,
			symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume,
		)
		if err != nil {
			return fmt.Errorf("%w: %v", market.ErrDatabaseInsert, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", market.ErrDatabaseInsert, err)
	}

	return nil
}
