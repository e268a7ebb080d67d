// Package respond writes the API's JSON envelope.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/logger"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Data    any              `json:"data,omitempty"`
	Summary any              `json:"resumen,omitempty"`
	Balance *decimal.Decimal `json:"saldo,omitempty"`
}

// JSON writes a success response carrying data.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WithSummary writes a success response with data and a resumen block.
func WithSummary(w http.ResponseWriter, data, summary any) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data, Summary: summary})
}

// Balance writes a success response whose payload is a top-level saldo.
func Balance(w http.ResponseWriter, balance decimal.Decimal) {
	write(w, http.StatusOK, Envelope{Success: true, Balance: &balance})
}

// Error writes a failure response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message})
}

func write(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.Error().Err(err).Msg("respond: encode payload failed")
	}
}
