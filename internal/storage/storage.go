package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidReference indicates a foreign key points at a missing row.
var ErrInvalidReference = errors.New("referenced record does not exist")

// UserStore captures persistence operations on accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUserProfile(ctx context.Context, id int64, name, email string) (models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	// SetBalance overwrites saldo_actual unconditionally.
	SetBalance(ctx context.Context, id int64, balance decimal.Decimal) (models.User, error)
}

// LedgerStore owns the expense mutations that move a user's balance. Both
// RecordExpense and DeleteExpense run as a single transaction and apply the
// balance delta as a relative update inside the database.
type LedgerStore interface {
	RecordExpense(ctx context.Context, expense models.NewExpense) (models.Expense, models.User, error)
	DeleteExpense(ctx context.Context, id int64) (models.User, error)
	// UpdateExpense edits an expense without touching the owner's balance.
	UpdateExpense(ctx context.Context, id int64, update models.ExpenseUpdate) (models.Expense, error)
	FindExpense(ctx context.Context, id int64) (models.Expense, error)
	ListExpenses(ctx context.Context, userID int64, filter models.ExpenseFilter) ([]models.Expense, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// StatsStore provides the read-only aggregation queries.
type StatsStore interface {
	// CategoryTotals groups expenses by category, ordered by total desc then id asc.
	CategoryTotals(ctx context.Context, userID int64, dates models.DateRange) ([]models.CategoryTotal, error)
	// PeriodTotals buckets expenses by granularity, ordered by date asc.
	PeriodTotals(ctx context.Context, userID int64, granularity models.Granularity) ([]models.PeriodTotal, error)
	// SpendTotals returns the sum and count of expenses within dates.
	SpendTotals(ctx context.Context, userID int64, dates models.DateRange) (decimal.Decimal, int64, error)
	// HighestExpense returns ErrNotFound when the user has no expenses.
	HighestExpense(ctx context.Context, userID int64) (models.HighestExpense, error)
	// MostFrequentCategory returns ErrNotFound when the user has no expenses.
	MostFrequentCategory(ctx context.Context, userID int64) (models.CategoryFrequency, error)
}

// PeriodBalanceStore persists manually set per-period balances.
type PeriodBalanceStore interface {
	// GetPeriodBalance returns ErrNotFound when no row exists.
	GetPeriodBalance(ctx context.Context, userID int64, period models.Period) (models.PeriodBalance, error)
	UpsertPeriodBalance(ctx context.Context, userID int64, period models.Period, balance decimal.Decimal) error
}

// Store is the full persistence surface used by the services.
type Store interface {
	UserStore
	LedgerStore
	StatsStore
	PeriodBalanceStore
	Ping(ctx context.Context) error
	Close()
}
