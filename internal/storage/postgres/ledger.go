package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/moentix-be/internal/models"
)

const expenseSelect = `
	SELECT g.id, g.descripcion, g.monto, g.fecha, g.categoria_id, g.usuario_id, g.notas,
	       c.nombre, c.color, c.icono, g.created_at
	FROM gastos g
	INNER JOIN categorias c ON g.categoria_id = c.id`

// RecordExpense inserts the expense and decrements the owner's balance in
// one transaction.
func (s *Store) RecordExpense(ctx context.Context, in models.NewExpense) (models.Expense, models.User, error) {
	var (
		expense models.Expense
		user    models.User
	)
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO gastos (descripcion, monto, fecha, categoria_id, usuario_id, notas)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			in.Description, in.Amount, in.Date.Time, in.CategoryID, in.UserID, in.Note,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert expense: %w", mapError(err))
		}

		user, err = scanUser(tx.QueryRow(ctx, `
			UPDATE usuarios SET saldo_actual = saldo_actual - $1
			WHERE id = $2
			RETURNING `+userColumns, in.Amount, in.UserID))
		if err != nil {
			return fmt.Errorf("debit balance: %w", err)
		}

		expense, err = scanExpense(tx.QueryRow(ctx, expenseSelect+` WHERE g.id = $1`, id))
		if err != nil {
			return fmt.Errorf("load expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Expense{}, models.User{}, err
	}
	return expense, user, nil
}

// DeleteExpense removes the expense and credits its stored amount back to
// the owner. The delete and the relative update run as one statement.
func (s *Store) DeleteExpense(ctx context.Context, id int64) (models.User, error) {
	row := s.db.QueryRow(ctx, `
		WITH removed AS (
			DELETE FROM gastos WHERE id = $1
			RETURNING usuario_id, monto
		)
		UPDATE usuarios SET saldo_actual = saldo_actual + removed.monto
		FROM removed
		WHERE usuarios.id = removed.usuario_id
		RETURNING usuarios.id, usuarios.nombre, usuarios.email, usuarios.password,
		          usuarios.saldo_actual, usuarios.created_at`, id)
	user, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("delete expense: %w", err)
	}
	return user, nil
}

// UpdateExpense edits the expense fields. The owner's balance is left as is.
func (s *Store) UpdateExpense(ctx context.Context, id int64, in models.ExpenseUpdate) (models.Expense, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE gastos
		SET descripcion = $2, monto = $3, fecha = $4, categoria_id = $5, notas = $6
		WHERE id = $1`,
		id, in.Description, in.Amount, in.Date.Time, in.CategoryID, in.Note)
	if err != nil {
		return models.Expense{}, fmt.Errorf("update expense: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return models.Expense{}, fmt.Errorf("update expense: %w", mapError(pgx.ErrNoRows))
	}
	return s.FindExpense(ctx, id)
}

// FindExpense fetches one expense joined with its category.
func (s *Store) FindExpense(ctx context.Context, id int64) (models.Expense, error) {
	return scanExpense(s.db.QueryRow(ctx, expenseSelect+` WHERE g.id = $1`, id))
}

// ListExpenses returns a user's expenses, newest first.
func (s *Store) ListExpenses(ctx context.Context, userID int64, filter models.ExpenseFilter) ([]models.Expense, error) {
	query := expenseSelect + ` WHERE g.usuario_id = $1`
	args := []any{userID}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND g.categoria_id = $%d", len(args))
	}
	query, args = appendDateRange(query, args, "g.fecha", filter.DateRange)

	query += " ORDER BY g.fecha DESC, g.id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	expenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan expenses: %w", err)
	}
	return expenses, nil
}

// ListCategories returns the seeded categories by id.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.Query(ctx, `SELECT id, nombre, color, icono FROM categorias ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		var c models.Category
		err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Icon)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return categories, nil
}

func scanExpense(row pgx.Row) (models.Expense, error) {
	var (
		e    models.Expense
		date time.Time
	)
	err := row.Scan(&e.ID, &e.Description, &e.Amount, &date, &e.CategoryID, &e.UserID, &e.Note,
		&e.CategoryName, &e.CategoryColor, &e.CategoryIcon, &e.CreatedAt)
	if err != nil {
		return models.Expense{}, mapError(err)
	}
	e.Date = models.NewDate(date)
	return e, nil
}

func appendDateRange(query string, args []any, column string, dates models.DateRange) (string, []any) {
	if dates.From != nil {
		args = append(args, dates.From.Time)
		query += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if dates.To != nil {
		args = append(args, dates.To.Time)
		query += fmt.Sprintf(" AND %s <= $%d", column, len(args))
	}
	return query, args
}
