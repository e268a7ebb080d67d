package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hongminglow/moentix-be/internal/models"
)

const expenseSelect = `
	SELECT g.id, g.descripcion, g.monto_centavos, g.fecha, g.categoria_id, g.usuario_id, g.notas,
	       c.nombre, c.color, c.icono, g.created_at
	FROM gastos g
	INNER JOIN categorias c ON g.categoria_id = c.id`

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RecordExpense inserts the expense and decrements the owner's balance in
// one transaction.
func (s *Store) RecordExpense(ctx context.Context, in models.NewExpense) (models.Expense, models.User, error) {
	var (
		expense models.Expense
		user    models.User
	)
	cents, err := toCents(in.Amount)
	if err != nil {
		return models.Expense{}, models.User{}, fmt.Errorf("record expense: %w", err)
	}
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO gastos (descripcion, monto_centavos, fecha, categoria_id, usuario_id, notas)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id`,
			in.Description, cents, in.Date.String(), in.CategoryID, in.UserID, in.Note,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert expense: %w", mapError(err))
		}

		user, err = scanUser(tx.QueryRowContext(ctx, `
			UPDATE usuarios SET saldo_centavos = saldo_centavos - ?
			WHERE id = ?
			RETURNING `+userColumns, cents, in.UserID))
		if err != nil {
			return fmt.Errorf("debit balance: %w", err)
		}

		expense, err = findExpense(ctx, tx, id)
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
// the owner in one transaction.
func (s *Store) DeleteExpense(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var userID, cents int64
		err := tx.QueryRowContext(ctx, `
			DELETE FROM gastos WHERE id = ?
			RETURNING usuario_id, monto_centavos`, id).Scan(&userID, &cents)
		if err != nil {
			return fmt.Errorf("delete expense: %w", mapError(err))
		}

		user, err = scanUser(tx.QueryRowContext(ctx, `
			UPDATE usuarios SET saldo_centavos = saldo_centavos + ?
			WHERE id = ?
			RETURNING `+userColumns, cents, userID))
		if err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateExpense edits the expense fields. The owner's balance is left as is.
func (s *Store) UpdateExpense(ctx context.Context, id int64, in models.ExpenseUpdate) (models.Expense, error) {
	cents, err := toCents(in.Amount)
	if err != nil {
		return models.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE gastos
		SET descripcion = ?, monto_centavos = ?, fecha = ?, categoria_id = ?, notas = ?
		WHERE id = ?`,
		in.Description, cents, in.Date.String(), in.CategoryID, in.Note, id)
	if err != nil {
		return models.Expense{}, fmt.Errorf("update expense: %w", mapError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Expense{}, fmt.Errorf("update expense: %w", mapError(sql.ErrNoRows))
	}
	return s.FindExpense(ctx, id)
}

// FindExpense fetches one expense joined with its category.
func (s *Store) FindExpense(ctx context.Context, id int64) (models.Expense, error) {
	return findExpense(ctx, s.db, id)
}

func findExpense(ctx context.Context, q queryRower, id int64) (models.Expense, error) {
	return scanExpense(q.QueryRowContext(ctx, expenseSelect+` WHERE g.id = ?`, id))
}

// ListExpenses returns a user's expenses, newest first.
func (s *Store) ListExpenses(ctx context.Context, userID int64, filter models.ExpenseFilter) ([]models.Expense, error) {
	query := expenseSelect + ` WHERE g.usuario_id = ?`
	args := []any{userID}

	if filter.CategoryID != nil {
		query += ` AND g.categoria_id = ?`
		args = append(args, *filter.CategoryID)
	}
	query, args = appendDateRange(query, args, "g.fecha", filter.DateRange)

	query += ` ORDER BY g.fecha DESC, g.id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// ListCategories returns the seeded categories by id.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, nombre, color, icono FROM categorias ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func scanExpense(row rowScanner) (models.Expense, error) {
	var (
		e         models.Expense
		cents     int64
		date      string
		note      sql.NullString
		createdAt string
	)
	err := row.Scan(&e.ID, &e.Description, &cents, &date, &e.CategoryID, &e.UserID, &note,
		&e.CategoryName, &e.CategoryColor, &e.CategoryIcon, &createdAt)
	if err != nil {
		return models.Expense{}, mapError(err)
	}
	e.Amount = fromCents(cents)
	if e.Date, err = models.ParseDate(date); err != nil {
		return models.Expense{}, err
	}
	if note.Valid {
		e.Note = &note.String
	}
	e.CreatedAt = parseTimestamp(createdAt)
	return e, nil
}

func appendDateRange(query string, args []any, column string, dates models.DateRange) (string, []any) {
	if dates.From != nil {
		query += fmt.Sprintf(" AND %s >= ?", column)
		args = append(args, dates.From.String())
	}
	if dates.To != nil {
		query += fmt.Sprintf(" AND %s <= ?", column)
		args = append(args, dates.To.String())
	}
	return query, args
}
