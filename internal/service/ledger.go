package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/hongminglow/moentix-be/internal/logger"
	"github.com/hongminglow/moentix-be/internal/models"
	"github.com/hongminglow/moentix-be/internal/models/dto"
	"github.com/hongminglow/moentix-be/internal/storage"
)

// Pagination bounds for expense listings.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

const (
	msgRequiredFields  = "Todos los campos son obligatorios"
	msgPositiveAmount  = "El monto debe ser mayor a 0"
	msgAmountTooLarge  = "El monto no puede superar 9999999999.99"
	msgExpenseNotFound = "Gasto no encontrado"
	msgUserNotFound    = "Usuario no encontrado"
	msgBadReference    = "Usuario o categoría no encontrados"
	msgBalanceRequired = "El saldo_actual es obligatorio y debe ser un número"
	msgBalanceNegative = "El saldo_actual no puede ser negativo"
	msgBalanceTooLarge = "El saldo_actual no puede superar 9999999999.99"
)

// LedgerStore is the persistence the ledger needs.
type LedgerStore interface {
	storage.UserStore
	storage.LedgerStore
}

// Ledger keeps each user's balance in step with their expenses: recording
// an expense debits its amount and deleting it credits the amount back.
type Ledger struct {
	store     LedgerStore
	mutations metric.Int64Counter
}

// NewLedger constructs the ledger service.
func NewLedger(store LedgerStore) *Ledger {
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"moentix.ledger.mutations",
		metric.WithDescription("Balance-changing ledger operations"),
	)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("ledger mutation counter unavailable")
	}
	return &Ledger{store: store, mutations: counter}
}

// ExpenseQuery narrows and pages a listing. Page is 1-based.
type ExpenseQuery struct {
	CategoryID *int64
	From       *models.Date
	To         *models.Date
	Page       int
	Limit      int
}

// RecordExpense stores a new expense and debits its amount from the owner's
// balance as one unit.
func (l *Ledger) RecordExpense(ctx context.Context, req dto.ExpenseRequest) (expense models.Expense, user models.User, err error) {
	ctx, span := tracer.Start(ctx, "Ledger.RecordExpense",
		trace.WithAttributes(attrUserID.String(logger.HashUserID(req.UserID))))
	defer func() { endSpan(span, err) }()

	if req.UserID <= 0 {
		return models.Expense{}, models.User{}, validationError(msgRequiredFields)
	}
	fields, err := validateExpense(req)
	if err != nil {
		return models.Expense{}, models.User{}, err
	}

	expense, user, err = l.store.RecordExpense(ctx, models.NewExpense{
		Description: fields.Description,
		Amount:      fields.Amount,
		Date:        fields.Date,
		CategoryID:  fields.CategoryID,
		UserID:      req.UserID,
		Note:        fields.Note,
	})
	if err != nil {
		return models.Expense{}, models.User{}, mapLedgerError("record expense", err)
	}

	l.count(ctx, "record")
	logger.Log.Info().
		Str("user", logger.HashUserID(user.ID)).
		Int64("expense_id", expense.ID).
		Str("amount", expense.Amount.StringFixed(2)).
		Msg("expense recorded")
	return expense, user, nil
}

// DeleteExpense removes an expense and credits its stored amount back to
// the owner as one unit.
func (l *Ledger) DeleteExpense(ctx context.Context, id int64) (user models.User, err error) {
	ctx, span := tracer.Start(ctx, "Ledger.DeleteExpense")
	defer func() { endSpan(span, err) }()

	if id <= 0 {
		return models.User{}, notFoundError(msgExpenseNotFound, nil)
	}
	user, err = l.store.DeleteExpense(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, notFoundError(msgExpenseNotFound, err)
		}
		return models.User{}, internalError("delete expense", err)
	}

	l.count(ctx, "delete")
	logger.Log.Info().
		Str("user", logger.HashUserID(user.ID)).
		Int64("expense_id", id).
		Msg("expense deleted")
	return user, nil
}

// SetBalance overwrites a user's balance. Negative values are rejected here
// even though expenses may drive the balance below zero.
func (l *Ledger) SetBalance(ctx context.Context, userID int64, balance *decimal.Decimal) (user models.User, err error) {
	ctx, span := tracer.Start(ctx, "Ledger.SetBalance")
	defer func() { endSpan(span, err) }()

	if balance == nil {
		return models.User{}, validationError(msgBalanceRequired)
	}
	rounded := balance.Round(2)
	if rounded.IsNegative() {
		return models.User{}, validationError(msgBalanceNegative)
	}
	if rounded.GreaterThan(models.MaxAmount) {
		return models.User{}, validationError(msgBalanceTooLarge)
	}
	if userID <= 0 {
		return models.User{}, notFoundError(msgUserNotFound, nil)
	}

	user, err = l.store.SetBalance(ctx, userID, rounded)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, notFoundError(msgUserNotFound, err)
		}
		return models.User{}, internalError("set balance", err)
	}

	l.count(ctx, "set_balance")
	return user, nil
}

// UpdateExpense edits an expense. The owner's balance is not adjusted, even
// when the amount changes.
func (l *Ledger) UpdateExpense(ctx context.Context, id int64, req dto.ExpenseRequest) (expense models.Expense, err error) {
	ctx, span := tracer.Start(ctx, "Ledger.UpdateExpense")
	defer func() { endSpan(span, err) }()

	if _, err = l.GetExpense(ctx, id); err != nil {
		return models.Expense{}, err
	}
	fields, err := validateExpense(req)
	if err != nil {
		return models.Expense{}, err
	}

	expense, err = l.store.UpdateExpense(ctx, id, fields)
	if err != nil {
		return models.Expense{}, mapLedgerError("update expense", err)
	}
	return expense, nil
}

// GetExpense returns one expense with its category display fields.
func (l *Ledger) GetExpense(ctx context.Context, id int64) (models.Expense, error) {
	if id <= 0 {
		return models.Expense{}, notFoundError(msgExpenseNotFound, nil)
	}
	expense, err := l.store.FindExpense(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Expense{}, notFoundError(msgExpenseNotFound, err)
		}
		return models.Expense{}, internalError("find expense", err)
	}
	return expense, nil
}

// ListExpenses pages through a user's expenses, newest first.
func (l *Ledger) ListExpenses(ctx context.Context, userID int64, q ExpenseQuery) ([]models.Expense, error) {
	page := max(q.Page, 1)
	limit := q.Limit
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	expenses, err := l.store.ListExpenses(ctx, userID, models.ExpenseFilter{
		CategoryID: q.CategoryID,
		DateRange:  models.DateRange{From: q.From, To: q.To},
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, internalError("list expenses", err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// Categories returns every category with its presentation style.
func (l *Ledger) Categories(ctx context.Context) ([]models.CategoryWithStyle, error) {
	categories, err := l.store.ListCategories(ctx)
	if err != nil {
		return nil, internalError("list categories", err)
	}
	out := make([]models.CategoryWithStyle, 0, len(categories))
	for _, c := range categories {
		out = append(out, models.CategoryWithStyle{Category: c, Style: models.CategoryStyleFor(c.ID)})
	}
	return out, nil
}

func (l *Ledger) count(ctx context.Context, op string) {
	if l.mutations == nil {
		return
	}
	l.mutations.Add(ctx, 1, metric.WithAttributes(attrOp.String(op)))
}

// validateExpense checks the editable fields and normalizes them: text is
// trimmed, the amount is rounded to cents and a blank note becomes nil.
func validateExpense(req dto.ExpenseRequest) (models.ExpenseUpdate, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" || req.Amount == nil || req.Date == nil || req.Date.IsZero() || req.CategoryID <= 0 {
		return models.ExpenseUpdate{}, validationError(msgRequiredFields)
	}
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return models.ExpenseUpdate{}, validationError(msgPositiveAmount)
	}
	if amount.GreaterThan(models.MaxAmount) {
		return models.ExpenseUpdate{}, validationError(msgAmountTooLarge)
	}

	var note *string
	if req.Note != nil {
		if trimmed := strings.TrimSpace(*req.Note); trimmed != "" {
			note = &trimmed
		}
	}

	return models.ExpenseUpdate{
		Description: description,
		Amount:      amount,
		Date:        *req.Date,
		CategoryID:  req.CategoryID,
		Note:        note,
	}, nil
}

func mapLedgerError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrInvalidReference):
		return notFoundError(msgBadReference, err)
	case errors.Is(err, storage.ErrNotFound):
		return notFoundError(msgExpenseNotFound, err)
	default:
		return internalError(op, err)
	}
}
