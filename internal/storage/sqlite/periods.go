package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/models"
)

// GetPeriodBalance loads the balance for (userID, period).
func (s *Store) GetPeriodBalance(ctx context.Context, userID int64, period models.Period) (models.PeriodBalance, error) {
	var (
		pb        models.PeriodBalance
		raw       string
		cents     int64
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT usuario_id, periodo, saldo_centavos, fecha_actualizacion
		FROM saldos_usuario
		WHERE usuario_id = ? AND periodo = ?`, userID, string(period)).
		Scan(&pb.UserID, &raw, &cents, &updatedAt)
	if err != nil {
		return models.PeriodBalance{}, mapError(err)
	}
	pb.Period = models.Period(raw)
	pb.Balance = fromCents(cents)
	pb.UpdatedAt = parseTimestamp(updatedAt)
	return pb, nil
}

// UpsertPeriodBalance inserts or overwrites the balance and bumps its timestamp.
func (s *Store) UpsertPeriodBalance(ctx context.Context, userID int64, period models.Period, balance decimal.Decimal) error {
	cents, err := toCents(balance)
	if err != nil {
		return fmt.Errorf("upsert period balance: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saldos_usuario (usuario_id, periodo, saldo_centavos)
		VALUES (?, ?, ?)
		ON CONFLICT (usuario_id, periodo)
		DO UPDATE SET saldo_centavos = excluded.saldo_centavos, fecha_actualizacion = CURRENT_TIMESTAMP`,
		userID, string(period), cents)
	if err != nil {
		return fmt.Errorf("upsert period balance: %w", mapError(err))
	}
	return nil
}
