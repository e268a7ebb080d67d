package dto

import (
	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/models"
)

// ExpenseRequest is the body of create and update calls. Pointer fields
// distinguish "missing" from zero values.
type ExpenseRequest struct {
	Description string           `json:"descripcion"`
	Amount      *decimal.Decimal `json:"monto"`
	Date        *models.Date     `json:"fecha"`
	CategoryID  int64            `json:"categoria_id"`
	UserID      int64            `json:"usuario_id"`
	Note        *string          `json:"notas"`
}

type ExpenseCreated struct {
	Expense models.Expense `json:"gasto"`
	User    models.User    `json:"usuario"`
}

type ExpenseDeleted struct {
	User models.User `json:"usuario"`
}

type SetBalanceRequest struct {
	Balance *decimal.Decimal `json:"saldo_actual"`
}

type PeriodBalanceRequest struct {
	Balance *decimal.Decimal `json:"saldo"`
}

type CategorySummary struct {
	TotalCategories int             `json:"total_categorias"`
	TotalSpent      decimal.Decimal `json:"total_gastado"`
}
