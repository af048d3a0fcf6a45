package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/dazetsai/stock-trading-2026/internal/api/response"
	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
	"github.com/dazetsai/stock-trading-2026/internal/service/screener"
)

// SnapshotStore 快照讀寫介面
type SnapshotStore interface {
	Save(ctx context.Context, snapshot *scoring.ScreenerSnapshot) error
	GetLatest(ctx context.Context) (*scoring.ScreenerSnapshot, error)
	GetByID(ctx context.Context, snapshotID string) (*scoring.ScreenerSnapshot, error)
}

// ScreenerHandler handles screener HTTP requests
type ScreenerHandler struct {
	service *screener.Service
	store   SnapshotStore
}

// NewScreenerHandler creates a new ScreenerHandler
func NewScreenerHandler(service *screener.Service, store SnapshotStore) *ScreenerHandler {
	return &ScreenerHandler{
		service: service,
		store:   store,
	}
}

// GetLatest returns the most recent screener snapshot
// GET /api/screener/latest
func (h *ScreenerHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.store.GetLatest(r.Context())
	if err != nil {
		if errors.Is(err, scoring.ErrSnapshotNotFound) {
			response.NotFound(w, r, "No screener snapshot available")
			return
		}
		response.InternalError(w, r, "Failed to load screener snapshot")
		return
	}

	response.Success(w, r, snapshot)
}

// GetByID returns a screener snapshot by ID
// GET /api/screener/snapshots/{snapshot_id}
func (h *ScreenerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	snapshotID := chi.URLParam(r, "snapshot_id")
	if snapshotID == "" {
		response.BadRequest(w, r, "snapshot_id is required")
		return
	}

	snapshot, err := h.store.GetByID(r.Context(), snapshotID)
	if err != nil {
		if errors.Is(err, scoring.ErrSnapshotNotFound) {
			response.NotFound(w, r, "Snapshot not found")
			return
		}
		response.InternalError(w, r, "Failed to load screener snapshot")
		return
	}

	response.Success(w, r, snapshot)
}

// RunRequest 手動觸發篩選的請求
type RunRequest struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD, 空值表示今日
}

// Run triggers a screener run and persists the snapshot
// POST /api/screener/run
func (h *ScreenerHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, r, "Invalid request body")
			return
		}
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.BadRequest(w, r, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	snapshot, err := h.service.Run(r.Context(), date)
	if err != nil {
		if errors.Is(err, scoring.ErrEmptyUniverse) {
			response.Error(w, r, http.StatusUnprocessableEntity, response.ErrCodeBusinessRuleViolation, "No stocks in universe for the given date")
			return
		}
		response.InternalError(w, r, "Screener run failed")
		return
	}

	if err := h.store.Save(r.Context(), snapshot); err != nil {
		log.Error().Err(err).Str("snapshot_id", snapshot.SnapshotID).Msg("Failed to persist snapshot")
		response.InternalError(w, r, "Failed to persist snapshot")
		return
	}

	response.Created(w, r, snapshot, "Screener run completed")
}
