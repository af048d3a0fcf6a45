package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// FlowRepository implements market.FlowReader using PostgreSQL
type FlowRepository struct {
	pool *pgxpool.Pool
}

// NewFlowRepository creates a new FlowRepository
func NewFlowRepository(pool *pgxpool.Pool) *FlowRepository {
	return &FlowRepository{pool: pool}
}

// GetFlowHistory returns institutional flows up to and including the given date
// 由新到舊排序; limit <= 0 表示不限筆數
func (r *FlowRepository) GetFlowHistory(ctx context.Context, symbol string, until time.Time, limit int) ([]market.InstitutionalFlow, error) {
	query := `
		SELECT
			trade_date, foreign_net, trust_net, dealer_net,
			financing_balance, short_balance
		FROM twquant.institutional_flows
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

	var flows []market.InstitutionalFlow
	for rows.Next() {
		var f market.InstitutionalFlow
		err := rows.Scan(
			&f.Date,
			&f.ForeignNet,
			&f.TrustNet,
			&f.DealerNet,
			&f.FinancingBalance,
			&f.ShortBalance,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", market.ErrDatabaseQuery, err)
		}
		flows = append(flows, f)
	}

	return flows, nil
}
