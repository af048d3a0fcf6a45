package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// SuccessResponse represents a successful API response
type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// Meta represents metadata in response
type Meta struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
	Count     int       `json:"count,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// Success sends a successful response with data
func Success(w http.ResponseWriter, r *http.Request, data interface{}) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Data: data,
		Meta: Meta{
			RequestID: middleware.GetReqID(r.Context()),
			Timestamp: time.Now(),
		},
	})
}

// SuccessWithMessage sends a successful response with data and message
func SuccessWithMessage(w http.ResponseWriter, r *http.Request, data interface{}, message string) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Data: data,
		Meta: Meta{
			RequestID: middleware.GetReqID(r.Context()),
			Timestamp: time.Now(),
			Message:   message,
		},
	})
}

// SuccessList sends a successful response with list data and count
func SuccessList(w http.ResponseWriter, r *http.Request, data interface{}, count int) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Data: data,
		Meta: Meta{
			RequestID: middleware.GetReqID(r.Context()),
			Timestamp: time.Now(),
			Count:     count,
		},
	})
}

// Created sends a 201 Created response
func Created(w http.ResponseWriter, r *http.Request, data interface{}, message string) {
	writeJSON(w, http.StatusCreated, SuccessResponse{
		Data: data,
		Meta: Meta{
			RequestID: middleware.GetReqID(r.Context()),
			Timestamp: time.Now(),
			Message:   message,
		},
	})
}
