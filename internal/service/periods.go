package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/models"
	"github.com/hongminglow/moentix-be/internal/storage"
)

const (
	msgInvalidPeriod   = "Periodo inválido. Use semanal, mensual o anual"
	msgPeriodBalanceNo = "El saldo es obligatorio y debe ser un número"
	msgPeriodBalanceOR = "El saldo debe estar entre -9999999999.99 y 9999999999.99"
)

// PeriodBalances manages the manually set weekly, monthly and yearly
// balances. They are independent of the ledger balance.
type PeriodBalances struct {
	store storage.PeriodBalanceStore
}

// NewPeriodBalances constructs the period balance service.
func NewPeriodBalances(store storage.PeriodBalanceStore) *PeriodBalances {
	return &PeriodBalances{store: store}
}

// Get returns the balance for (userID, period), zero when none was set or
// the period name is not recognised.
func (p *PeriodBalances) Get(ctx context.Context, userID int64, period string) (balance decimal.Decimal, err error) {
	ctx, span := tracer.Start(ctx, "PeriodBalances.Get")
	defer func() { endSpan(span, err) }()

	parsed, err := models.ParsePeriod(period)
	if err != nil {
		return decimal.Zero, nil
	}
	pb, err := p.store.GetPeriodBalance(ctx, userID, parsed)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, internalError("get period balance", err)
	}
	return pb.Balance, nil
}

// Set creates or overwrites the balance for (userID, period).
func (p *PeriodBalances) Set(ctx context.Context, userID int64, period string, balance *decimal.Decimal) (err error) {
	ctx, span := tracer.Start(ctx, "PeriodBalances.Set")
	defer func() { endSpan(span, err) }()

	parsed, err := models.ParsePeriod(period)
	if err != nil {
		return validationError(msgInvalidPeriod)
	}
	if balance == nil {
		return validationError(msgPeriodBalanceNo)
	}
	rounded := balance.Round(2)
	if rounded.Abs().GreaterThan(models.MaxAmount) {
		return validationError(msgPeriodBalanceOR)
	}
	if err := p.store.UpsertPeriodBalance(ctx, userID, parsed, rounded); err != nil {
		if errors.Is(err, storage.ErrInvalidReference) {
			return notFoundError(msgUserNotFound, err)
		}
		return internalError("set period balance", err)
	}
	return nil
}
