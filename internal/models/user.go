// Package models defines the domain entities shared by the stores, the
// services and the HTTP layer.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The mobile client reads currency as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// User captures application-facing fields for an authenticated identity.
// PasswordHash never leaves the process.
type User struct {
	ID           int64           `json:"id"`
	Name         string          `json:"nombre"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Balance      decimal.Decimal `json:"saldo_actual"`
	CreatedAt    time.Time       `json:"-"`
}
