package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Period identifies an independently tracked balance.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

var periodAliases = map[string]Period{
	"weekly":  PeriodWeekly,
	"semanal": PeriodWeekly,
	"monthly": PeriodMonthly,
	"mensual": PeriodMonthly,
	"yearly":  PeriodYearly,
	"anual":   PeriodYearly,
}

// ParsePeriod accepts the canonical names and the client's Spanish names.
func ParsePeriod(s string) (Period, error) {
	if p, ok := periodAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("invalid period %q: expected weekly, monthly or yearly", s)
}

// PeriodBalance is a manually maintained balance for one (user, period) pair.
type PeriodBalance struct {
	UserID    int64           `json:"usuario_id"`
	Period    Period          `json:"periodo"`
	Balance   decimal.Decimal `json:"saldo"`
	UpdatedAt time.Time       `json:"fecha_actualizacion"`
}
