package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/moentix-be/internal/logger"
	"github.com/hongminglow/moentix-be/internal/models"
	"github.com/hongminglow/moentix-be/internal/storage"
)

var hundred = decimal.NewFromInt(100)

// Reports builds the read-only spend views. Every failure is internal.
type Reports struct {
	store storage.StatsStore
	now   func() time.Time
}

// NewReports constructs the reporting service on the wall clock.
func NewReports(store storage.StatsStore) *Reports {
	return &Reports{store: store, now: time.Now}
}

// WithClock replaces the clock used to find the current month.
func (r *Reports) WithClock(now func() time.Time) *Reports {
	r.now = now
	return r
}

// ExpensesByCategory groups a user's expenses by category with each
// category's share of the grand total.
func (r *Reports) ExpensesByCategory(ctx context.Context, userID int64, dates models.DateRange) (out models.CategoryBreakdown, err error) {
	ctx, span := tracer.Start(ctx, "Reports.ExpensesByCategory",
		trace.WithAttributes(attrUserID.String(logger.HashUserID(userID))))
	defer func() { endSpan(span, err) }()

	items, err := r.store.CategoryTotals(ctx, userID, dates)
	if err != nil {
		return models.CategoryBreakdown{}, internalError("category totals", err)
	}

	grand := decimal.Zero
	for _, item := range items {
		grand = grand.Add(item.Total)
	}
	for i := range items {
		items[i].Percentage = percentage(items[i].Total, grand)
	}
	slices.SortStableFunc(items, func(a, b models.CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.CategoryID, b.CategoryID)
	})
	if items == nil {
		items = []models.CategoryTotal{}
	}

	return models.CategoryBreakdown{
		Items:           items,
		TotalCategories: len(items),
		TotalSpent:      grand,
	}, nil
}

// ExpensesByPeriod sums a user's expenses per day, ISO week or month.
func (r *Reports) ExpensesByPeriod(ctx context.Context, userID int64, granularity models.Granularity) (out []models.PeriodTotal, err error) {
	ctx, span := tracer.Start(ctx, "Reports.ExpensesByPeriod",
		trace.WithAttributes(attrUserID.String(logger.HashUserID(userID))))
	defer func() { endSpan(span, err) }()

	out, err = r.store.PeriodTotals(ctx, userID, granularity)
	if err != nil {
		return nil, internalError("period totals", err)
	}
	if out == nil {
		out = []models.PeriodTotal{}
	}
	return out, nil
}

// Summary reports totals, the largest expense, the most used category and
// the spend of the current calendar month.
func (r *Reports) Summary(ctx context.Context, userID int64) (out models.Summary, err error) {
	ctx, span := tracer.Start(ctx, "Reports.Summary",
		trace.WithAttributes(attrUserID.String(logger.HashUserID(userID))))
	defer func() { endSpan(span, err) }()

	first, last := models.MonthBounds(r.now())
	out.CurrentMonthStart, out.CurrentMonthEnd = first, last

	var count int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.TotalSpent, count, err = r.store.SpendTotals(gctx, userID, models.DateRange{})
		return err
	})
	g.Go(func() error {
		var err error
		out.CurrentMonthSpend, _, err = r.store.SpendTotals(gctx, userID, models.DateRange{From: &first, To: &last})
		return err
	})
	g.Go(func() error {
		highest, err := r.store.HighestExpense(gctx, userID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil
		case err != nil:
			return err
		}
		out.HighestExpense = &highest
		return nil
	})
	g.Go(func() error {
		frequent, err := r.store.MostFrequentCategory(gctx, userID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil
		case err != nil:
			return err
		}
		out.MostFrequentCategory = &frequent
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Summary{}, internalError("summary", err)
	}

	out.AverageExpense = decimal.Zero
	if count > 0 {
		out.AverageExpense = out.TotalSpent.Div(decimal.NewFromInt(count)).Round(2)
	}
	return out, nil
}

// percentage renders part/total*100 with two decimals; "0.00" for a zero total.
func percentage(part, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.00"
	}
	return part.Div(total).Mul(hundred).StringFixed(2)
}
