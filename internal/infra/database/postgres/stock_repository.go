package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// StockRepository implements market.UniverseReader using PostgreSQL
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

// GetUniverse returns all stocks with price data on or before the given date
func (r *StockRepository) GetUniverse(ctx context.Context, until time.Time) ([]market.StockInfo, error) {
	query := `
		SELECT s.symbol, s.name, s.shares_outstanding
		FROM twquant.stocks s
		WHERE EXISTS (
			SELECT 1 FROM twquant.prices_daily p
			WHERE p.symbol = s.symbol AND p.trade_date <= $1
		)
		ORDER BY s.symbol
	`

	rows, err := r.pool.Query(ctx, query, until)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", market.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var stocks []market.StockInfo
	for rows.Next() {
		var s market.StockInfo
		if err := rows.Scan(&s.Symbol, &s.Name, &s.SharesOutstanding); err != nil {
			return nil, fmt.Errorf("%w: %v", market.ErrDatabaseQuery, err)
		}
		stocks = append(stocks, s)
	}

	return stocks, nil
}

// UpsertStock inserts or updates a stock listing
func (r *StockRepository) UpsertStock(ctx context.Context, s market.StockInfo) error {
	query := `
		INSERT INTO twquant.stocks (symbol, name, shares_outstanding, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (symbol) DO UPDATE SET
			name = EXCLUDED.name,
			shares_outstanding = EXCLUDED.shares_outstanding,
			updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, s.Symbol, s.Name, s.SharesOutstanding); err != nil {
		return fmt.Errorf("%w: %v", market.ErrDatabaseInsert, err)
	}

	return nil
}
