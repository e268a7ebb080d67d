package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single recorded expense joined with its category display fields.
type Expense struct {
	ID            int64           `json:"id"`
	Description   string          `json:"descripcion"`
	Amount        decimal.Decimal `json:"monto"`
	Date          Date            `json:"fecha"`
	CategoryID    int64           `json:"categoria_id"`
	UserID        int64           `json:"usuario_id"`
	Note          *string         `json:"notas"`
	CategoryName  string          `json:"categoria_nombre"`
	CategoryColor string          `json:"categoria_color"`
	CategoryIcon  string          `json:"categoria_icono"`
	CreatedAt     time.Time       `json:"-"`
}

// NewExpense is the input of a record-expense operation.
type NewExpense struct {
	Description string
	Amount      decimal.Decimal
	Date        Date
	CategoryID  int64
	UserID      int64
	Note        *string
}

// ExpenseUpdate carries the editable fields of an expense.
type ExpenseUpdate struct {
	Description string
	Amount      decimal.Decimal
	Date        Date
	CategoryID  int64
	Note        *string
}

// MaxAmount is the largest magnitude a NUMERIC(12,2) column holds. Amounts
// and balances above it are rejected before they reach a store.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// DateRange is an optional inclusive date interval.
type DateRange struct {
	From *Date
	To   *Date
}

// ExpenseFilter narrows an expense listing.
type ExpenseFilter struct {
	CategoryID *int64
	DateRange
	Limit  int
	Offset int
}
