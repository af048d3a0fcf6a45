package handlers

import (
	"net/http"
	"time"

	"github.com/dazetsai/stock-trading-2026/internal/api/response"
	"github.com/dazetsai/stock-trading-2026/internal/infra/database/postgres"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	dbPool  *postgres.Pool
	version string
	started time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(dbPool *postgres.Pool, version string) *HealthHandler {
	return &HealthHandler{
		dbPool:  dbPool,
		version: version,
		started: time.Now(),
	}
}

// Health returns service and database health
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := h.dbPool.Health(r.Context())

	status := "healthy"
	statusCode := http.StatusOK
	if dbStatus.Status == "unhealthy" {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	body := map[string]interface{}{
		"status":   status,
		"version":  h.version,
		"uptime":   time.Since(h.started).String(),
		"database": dbStatus,
	}

	if statusCode != http.StatusOK {
		response.Error(w, r, statusCode, response.ErrCodeDatabaseError, "database unhealthy")
		return
	}
	response.Success(w, r, body)
}
