package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/models"
)

// GetPeriodBalance loads the balance for (userID, period).
func (s *Store) GetPeriodBalance(ctx context.Context, userID int64, period models.Period) (models.PeriodBalance, error) {
	var pb models.PeriodBalance
	err := s.db.QueryRow(ctx, `
		SELECT usuario_id, periodo, saldo, fecha_actualizacion
		FROM saldos_usuario
		WHERE usuario_id = $1 AND periodo = $2`, userID, string(period)).
		Scan(&pb.UserID, &pb.Period, &pb.Balance, &pb.UpdatedAt)
	if err != nil {
		return models.PeriodBalance{}, mapError(err)
	}
	return pb, nil
}

// UpsertPeriodBalance inserts or overwrites the balance and bumps its timestamp.
func (s *Store) UpsertPeriodBalance(ctx context.Context, userID int64, period models.Period, balance decimal.Decimal) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO saldos_usuario (usuario_id, periodo, saldo)
		VALUES ($1, $2, $3)
		ON CONFLICT (usuario_id, periodo)
		DO UPDATE SET saldo = EXCLUDED.saldo, fecha_actualizacion = NOW()`,
		userID, string(period), balance)
	if err != nil {
		return fmt.Errorf("upsert period balance: %w", mapError(err))
	}
	return nil
}
