package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/models"
	"github.com/hongminglow/moentix-be/internal/storage"
)

const userColumns = `id, nombre, email, password, saldo_actual, created_at`

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO usuarios (nombre, email, password, saldo_actual)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		user.Name, user.Email, user.PasswordHash, user.Balance)
	created, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// FindUserByID fetches a user by id.
func (s *Store) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id)
	return scanUser(row)
}

// FindUserByEmail fetches a user by email address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE email = $1`, email)
	return scanUser(row)
}

// UpdateUserProfile changes name and email.
func (s *Store) UpdateUserProfile(ctx context.Context, id int64, name, email string) (models.User, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE usuarios SET nombre = $2, email = $3
		WHERE id = $1
		RETURNING `+userColumns, id, name, email)
	updated, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

// UpdatePasswordHash replaces the stored credential.
func (s *Store) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	tag, err := s.db.Exec(ctx, `UPDATE usuarios SET password = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetBalance overwrites saldo_actual.
func (s *Store) SetBalance(ctx context.Context, id int64, balance decimal.Decimal) (models.User, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE usuarios SET saldo_actual = $2
		WHERE id = $1
		RETURNING `+userColumns, id, balance)
	updated, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("set balance: %w", err)
	}
	return updated, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Balance, &user.CreatedAt); err != nil {
		return models.User{}, mapError(err)
	}
	return user, nil
}
