package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/models"
)

// to_char patterns per granularity; IYYY-IW is the ISO year and week.
var periodFormats = map[models.Granularity]string{
	models.GranularityDaily:   "YYYY-MM-DD",
	models.GranularityWeekly:  "IYYY-IW",
	models.GranularityMonthly: "YYYY-MM",
}

// CategoryTotals groups a user's expenses by category.
func (s *Store) CategoryTotals(ctx context.Context, userID int64, dates models.DateRange) ([]models.CategoryTotal, error) {
	query, args := appendDateRange(`
		SELECT c.id, c.nombre, c.color, c.icono, COUNT(g.id) AS cantidad, SUM(g.monto) AS total
		FROM gastos g
		INNER JOIN categorias c ON g.categoria_id = c.id
		WHERE g.usuario_id = $1`, []any{userID}, "g.fecha", dates)
	query += `
		GROUP BY c.id, c.nombre, c.color, c.icono
		ORDER BY total DESC, c.id ASC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CategoryTotal, error) {
		var t models.CategoryTotal
		err := row.Scan(&t.CategoryID, &t.Name, &t.Color, &t.Icon, &t.Count, &t.Total)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan category totals: %w", err)
	}
	return totals, nil
}

// PeriodTotals buckets a user's expenses by day, ISO week or month.
func (s *Store) PeriodTotals(ctx context.Context, userID int64, granularity models.Granularity) ([]models.PeriodTotal, error) {
	format, ok := periodFormats[granularity]
	if !ok {
		format = periodFormats[models.GranularityMonthly]
	}
	rows, err := s.db.Query(ctx, `
		SELECT to_char(g.fecha, $2::text) AS periodo, SUM(g.monto) AS total
		FROM gastos g
		WHERE g.usuario_id = $1
		GROUP BY 1
		ORDER BY MIN(g.fecha) ASC`, userID, format)
	if err != nil {
		return nil, fmt.Errorf("query period totals: %w", err)
	}
	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PeriodTotal, error) {
		var t models.PeriodTotal
		err := row.Scan(&t.Label, &t.Total)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan period totals: %w", err)
	}
	return totals, nil
}

// SpendTotals sums and counts a user's expenses inside dates.
func (s *Store) SpendTotals(ctx context.Context, userID int64, dates models.DateRange) (decimal.Decimal, int64, error) {
	query, args := appendDateRange(`
		SELECT COALESCE(SUM(g.monto), 0), COUNT(g.id)
		FROM gastos g
		WHERE g.usuario_id = $1`, []any{userID}, "g.fecha", dates)

	var (
		total decimal.Decimal
		count int64
	)
	if err := s.db.QueryRow(ctx, query, args...).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("query spend totals: %w", err)
	}
	return total, count, nil
}

// HighestExpense returns the largest expense; ties go to the oldest id.
func (s *Store) HighestExpense(ctx context.Context, userID int64) (models.HighestExpense, error) {
	var (
		h    models.HighestExpense
		date time.Time
	)
	err := s.db.QueryRow(ctx, `
		SELECT g.id, g.descripcion, g.monto, g.fecha, c.nombre
		FROM gastos g
		INNER JOIN categorias c ON g.categoria_id = c.id
		WHERE g.usuario_id = $1
		ORDER BY g.monto DESC, g.id ASC
		LIMIT 1`, userID).Scan(&h.ID, &h.Description, &h.Amount, &date, &h.Category)
	if err != nil {
		return models.HighestExpense{}, mapError(err)
	}
	h.Date = models.NewDate(date)
	return h, nil
}

// MostFrequentCategory returns the category with most expenses; ties go to
// the lowest category id.
func (s *Store) MostFrequentCategory(ctx context.Context, userID int64) (models.CategoryFrequency, error) {
	var f models.CategoryFrequency
	err := s.db.QueryRow(ctx, `
		SELECT c.id, c.nombre, COUNT(g.id) AS cantidad
		FROM gastos g
		INNER JOIN categorias c ON g.categoria_id = c.id
		WHERE g.usuario_id = $1
		GROUP BY c.id, c.nombre
		ORDER BY cantidad DESC, c.id ASC
		LIMIT 1`, userID).Scan(&f.ID, &f.Name, &f.Count)
	if err != nil {
		return models.CategoryFrequency{}, mapError(err)
	}
	return f, nil
}
