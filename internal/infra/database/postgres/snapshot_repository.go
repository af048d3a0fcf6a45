package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
)

// SnapshotRepository persists screener snapshots using PostgreSQL
// 快照內容以 JSONB 整包保存, 查詢時整包還原
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Save stores a screener snapshot
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *scoring.ScreenerSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO twquant.screener_snapshots (snapshot_id, trade_date, payload, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (snapshot_id) DO UPDATE SET
			payload = EXCLUDED.payload
	`

	if _, err := r.pool.Exec(ctx, query, snapshot.SnapshotID, snapshot.TradeDate, payload); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	return nil
}

// GetLatest returns the most recently created snapshot
func (r *SnapshotRepository) GetLatest(ctx context.Context) (*scoring.ScreenerSnapshot, error) {
	query := `
		SELECT payload
		FROM twquant.screener_snapshots
		ORDER BY created_at DESC
		LIMIT 1
	`

	var payload []byte
	if err := r.pool.QueryRow(ctx, query).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scoring.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	var snapshot scoring.ScreenerSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// GetByID returns a snapshot by its identifier
func (r *SnapshotRepository) GetByID(ctx context.Context, snapshotID string) (*scoring.ScreenerSnapshot, error) {
	query := `
		SELECT payload
		FROM twquant.screener_snapshots
		WHERE snapshot_id = $1
	`

	var payload []byte
	if err := r.pool.QueryRow(ctx, query, snapshotID).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scoring.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("query snapshot %s: %w", snapshotID, err)
	}

	var snapshot scoring.ScreenerSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
