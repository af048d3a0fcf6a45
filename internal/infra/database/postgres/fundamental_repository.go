package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// FundamentalRepository implements market.FundamentalReader using PostgreSQL
type FundamentalRepository struct {
	pool *pgxpool.Pool
}

// NewFundamentalRepository creates a new FundamentalRepository
func NewFundamentalRepository(pool *pgxpool.Pool) *FundamentalRepository {
	return &FundamentalRepository{pool: pool}
}

// GetLatestFundamental returns the most recent fundamental snapshot
// 查無資料時回傳 (nil, nil), 由計分端以中性分數處理
func (r *FundamentalRepository) GetLatestFundamental(ctx context.Context, symbol string) (*market.FundamentalSnapshot, error) {
	query := `
		SELECT symbol, revenue_yoy, revenue_mom, eps, prev_year_eps, per
		FROM twquant.fundamentals
		WHERE symbol = $1
		ORDER BY report_date DESC
		LIMIT 1
	`

	var s market.FundamentalSnapshot
	err := r.pool.QueryRow(ctx, query, symbol).Scan(
		&s.Symbol,
		&s.RevenueYoY,
		&s.RevenueMoM,
		&s.EPS,
		&s.PrevYearEPS,
		&s.PER,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", market.ErrDatabaseQuery, err)
	}

	return &s, nil
}
