// Package notify publishes balance-change events for downstream consumers.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/models"
)

// EventType is also used as the AMQP routing key.
type EventType string

const (
	ExpenseRecorded EventType = "gasto_creado"
	ExpenseDeleted  EventType = "gasto_eliminado"
	BalanceSet      EventType = "saldo_actualizado"
)

// BalanceEvent announces that a user's balance changed.
type BalanceEvent struct {
	Type      EventType       `json:"tipo"`
	UserID    int64           `json:"usuario_id"`
	Balance   decimal.Decimal `json:"saldo_actual"`
	ExpenseID *int64          `json:"gasto_id,omitempty"`
	At        time.Time       `json:"fecha"`
}

// NewBalanceEvent builds an event from the user's post-change state.
func NewBalanceEvent(kind EventType, user models.User, expenseID *int64) BalanceEvent {
	return BalanceEvent{
		Type:      kind,
		UserID:    user.ID,
		Balance:   user.Balance,
		ExpenseID: expenseID,
		At:        time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e BalanceEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers balance events.
type Publisher interface {
	Publish(ctx context.Context, event BalanceEvent) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, BalanceEvent) error { return nil }
func (Nop) Close() error                                { return nil }
