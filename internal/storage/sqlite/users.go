package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/models"
	"github.com/hongminglow/moentix-be/internal/storage"
)

const userColumns = `id, nombre, email, password, saldo_centavos, created_at`

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	cents, err := toCents(user.Balance)
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO usuarios (nombre, email, password, saldo_centavos)
		VALUES (?, ?, ?, ?)
		RETURNING `+userColumns,
		user.Name, user.Email, user.PasswordHash, cents)
	created, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// FindUserByID fetches a user by id.
func (s *Store) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = ?`, id))
}

// FindUserByEmail fetches a user by email address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM usuarios WHERE email = ?`, email))
}

// UpdateUserProfile changes name and email.
func (s *Store) UpdateUserProfile(ctx context.Context, id int64, name, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE usuarios SET nombre = ?, email = ?
		WHERE id = ?
		RETURNING `+userColumns, name, email, id)
	updated, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

// UpdatePasswordHash replaces the stored credential.
func (s *Store) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE usuarios SET password = ? WHERE id = ?`, hash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetBalance overwrites the balance.
func (s *Store) SetBalance(ctx context.Context, id int64, balance decimal.Decimal) (models.User, error) {
	cents, err := toCents(balance)
	if err != nil {
		return models.User{}, fmt.Errorf("set balance: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
		UPDATE usuarios SET saldo_centavos = ?
		WHERE id = ?
		RETURNING `+userColumns, cents, id)
	updated, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("set balance: %w", err)
	}
	return updated, nil
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		cents     int64
		createdAt string
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &cents, &createdAt); err != nil {
		return models.User{}, mapError(err)
	}
	user.Balance = fromCents(cents)
	user.CreatedAt = parseTimestamp(createdAt)
	return user, nil
}
