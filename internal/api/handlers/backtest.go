package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dazetsai/stock-trading-2026/internal/api/response"
	"github.com/dazetsai/stock-trading-2026/internal/domain/backtest"
	btservice "github.com/dazetsai/stock-trading-2026/internal/service/backtest"
)

// BacktestHandler handles backtest HTTP requests
type BacktestHandler struct {
	service *btservice.Service
}

// NewBacktestHandler creates a new BacktestHandler
func NewBacktestHandler(service *btservice.Service) *BacktestHandler {
	return &BacktestHandler{service: service}
}

// BacktestRequest 單檔或多檔回測請求
type BacktestRequest struct {
	Symbols  []string                `json:"symbols"`
	Start    string                  `json:"start"` // YYYY-MM-DD
	End      string                  `json:"end"`   // YYYY-MM-DD
	Strategy backtest.StrategyConfig `json:"strategy"`
}

// Run executes a backtest for one or more symbols
// POST /api/backtest/run
func (h *BacktestHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body")
		return
	}

	if len(req.Symbols) == 0 {
		response.BadRequest(w, r, "symbols is required")
		return
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		response.BadRequest(w, r, "start must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		response.BadRequest(w, r, "end must be YYYY-MM-DD")
		return
	}
	if !end.After(start) {
		response.BadRequest(w, r, "end must be after start")
		return
	}

	if len(req.Symbols) == 1 {
		result, err := h.service.Run(r.Context(), req.Symbols[0], start, end, req.Strategy)
		if err != nil {
			switch {
			case errors.Is(err, backtest.ErrUnknownStrategy), errors.Is(err, backtest.ErrInvalidConfig):
				response.BadRequest(w, r, err.Error())
			case errors.Is(err, backtest.ErrInsufficientHistory):
				response.Error(w, r, http.StatusUnprocessableEntity, response.ErrCodeBusinessRuleViolation, "Not enough price history for backtest")
			default:
				response.InternalError(w, r, "Backtest failed")
			}
			return
		}
		response.Success(w, r, result)
		return
	}

	results := h.service.RunBatch(r.Context(), req.Symbols, start, end, req.Strategy)
	response.SuccessList(w, r, results, len(results))
}
