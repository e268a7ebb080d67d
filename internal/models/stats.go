package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Granularity selects the time bucket of a period breakdown.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity maps diario/semanal/mensual (or the English names) to a
// granularity. Empty and unrecognised values fall back to monthly.
func ParseGranularity(s string) Granularity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "diario", "daily":
		return GranularityDaily
	case "semanal", "weekly":
		return GranularityWeekly
	default:
		return GranularityMonthly
	}
}

// CategoryTotal is one grouped row of a category breakdown.
type CategoryTotal struct {
	CategoryID int64           `json:"categoria_id"`
	Name       string          `json:"categoria"`
	Color      string          `json:"color"`
	Icon       string          `json:"icono"`
	Count      int64           `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
	Percentage string          `json:"porcentaje"`
}

// CategoryBreakdown is the full category report with its totals.
type CategoryBreakdown struct {
	Items           []CategoryTotal
	TotalCategories int
	TotalSpent      decimal.Decimal
}

// PeriodTotal is the spend of one time bucket.
type PeriodTotal struct {
	Label string          `json:"periodo"`
	Total decimal.Decimal `json:"total"`
}

// HighestExpense is the largest single expense of a user.
type HighestExpense struct {
	ID          int64           `json:"id"`
	Description string          `json:"descripcion"`
	Amount      decimal.Decimal `json:"monto"`
	Date        Date            `json:"fecha"`
	Category    string          `json:"categoria"`
}

// CategoryFrequency is a category together with its expense count.
type CategoryFrequency struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Count int64  `json:"cantidad"`
}

// Summary is the headline report of a user's spending.
type Summary struct {
	TotalSpent           decimal.Decimal    `json:"total_gastado"`
	AverageExpense       decimal.Decimal    `json:"gasto_promedio"`
	HighestExpense       *HighestExpense    `json:"gasto_mas_alto"`
	MostFrequentCategory *CategoryFrequency `json:"categoria_mas_frecuente"`
	CurrentMonthSpend    decimal.Decimal    `json:"gasto_mes_actual"`
	CurrentMonthStart    Date               `json:"fecha_inicio_mes"`
	CurrentMonthEnd      Date               `json:"fecha_fin_mes"`
}
