package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/models"
)

// strftime patterns per granularity; %G-%V is the ISO year and week.
var periodFormats = map[models.Granularity]string{
	models.GranularityDaily:   "%Y-%m-%d",
	models.GranularityWeekly:  "%G-%V",
	models.GranularityMonthly: "%Y-%m",
}

// CategoryTotals groups a user's expenses by category.
func (s *Store) CategoryTotals(ctx context.Context, userID int64, dates models.DateRange) ([]models.CategoryTotal, error) {
	query, args := appendDateRange(`
		SELECT c.id, c.nombre, c.color, c.icono, COUNT(g.id) AS cantidad, SUM(g.monto_centavos) AS total
		FROM gastos g
		INNER JOIN categorias c ON g.categoria_id = c.id
		WHERE g.usuario_id = ?`, []any{userID}, "g.fecha", dates)
	query += `
		GROUP BY c.id, c.nombre, c.color, c.icono
		ORDER BY total DESC, c.id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	totals := []models.CategoryTotal{}
	for rows.Next() {
		var (
			t     models.CategoryTotal
			cents int64
		)
		if err := rows.Scan(&t.CategoryID, &t.Name, &t.Color, &t.Icon, &t.Count, &cents); err != nil {
			return nil, fmt.Errorf("scan category totals: %w", err)
		}
		t.Total = fromCents(cents)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// PeriodTotals buckets a user's expenses by day, ISO week or month.
func (s *Store) PeriodTotals(ctx context.Context, userID int64, granularity models.Granularity) ([]models.PeriodTotal, error) {
	format, ok := periodFormats[granularity]
	if !ok {
		format = periodFormats[models.GranularityMonthly]
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime(?, g.fecha) AS periodo, SUM(g.monto_centavos) AS total
		FROM gastos g
		WHERE g.usuario_id = ?
		GROUP BY periodo
		ORDER BY MIN(g.fecha) ASC`, format, userID)
	if err != nil {
		return nil, fmt.Errorf("query period totals: %w", err)
	}
	defer rows.Close()

	totals := []models.PeriodTotal{}
	for rows.Next() {
		var (
			t     models.PeriodTotal
			cents int64
		)
		if err := rows.Scan(&t.Label, &cents); err != nil {
			return nil, fmt.Errorf("scan period totals: %w", err)
		}
		t.Total = fromCents(cents)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// SpendTotals sums and counts a user's expenses inside dates.
func (s *Store) SpendTotals(ctx context.Context, userID int64, dates models.DateRange) (decimal.Decimal, int64, error) {
	query, args := appendDateRange(`
		SELECT COALESCE(SUM(g.monto_centavos), 0), COUNT(g.id)
		FROM gastos g
		WHERE g.usuario_id = ?`, []any{userID}, "g.fecha", dates)

	var cents, count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&cents, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("query spend totals: %w", err)
	}
	return fromCents(cents), count, nil
}

// HighestExpense returns the largest expense; ties go to the oldest id.
func (s *Store) HighestExpense(ctx context.Context, userID int64) (models.HighestExpense, error) {
	var (
		h     models.HighestExpense
		cents int64
		date  string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT g.id, g.descripcion, g.monto_centavos, g.fecha, c.nombre
		FROM gastos g
		INNER JOIN categorias c ON g.categoria_id = c.id
		WHERE g.usuario_id = ?
		ORDER BY g.monto_centavos DESC, g.id ASC
		LIMIT 1`, userID).Scan(&h.ID, &h.Description, &cents, &date, &h.Category)
	if err != nil {
		return models.HighestExpense{}, mapError(err)
	}
	h.Amount = fromCents(cents)
	if h.Date, err = models.ParseDate(date); err != nil {
		return models.HighestExpense{}, err
	}
	return h, nil
}

// MostFrequentCategory returns the category with most expenses; ties go to
// the lowest category id.
func (s *Store) MostFrequentCategory(ctx context.Context, userID int64) (models.CategoryFrequency, error) {
	var f models.CategoryFrequency
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.nombre, COUNT(g.id) AS cantidad
		FROM gastos g
		INNER JOIN categorias c ON g.categoria_id = c.id
		WHERE g.usuario_id = ?
		GROUP BY c.id, c.nombre
		ORDER BY cantidad DESC, c.id ASC
		LIMIT 1`, userID).Scan(&f.ID, &f.Name, &f.Count)
	if err != nil {
		return models.CategoryFrequency{}, mapError(err)
	}
	return f, nil
}
