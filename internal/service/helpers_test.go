package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/moentix-be/internal/auth"
	"github.com/hongminglow/moentix-be/internal/models"
	"github.com/hongminglow/moentix-be/internal/models/dto"
	"github.com/hongminglow/moentix-be/internal/storage/sqlite"
)

type testEnv struct {
	store    *sqlite.Store
	ledger   *Ledger
	reports  *Reports
	periods  *PeriodBalances
	accounts *Accounts
	tokens   *auth.TokenManager
}

func newTestEnv(t require.TestingT) *testEnv {
	store, err := sqlite.New(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	tokens := auth.NewTokenManager("test-secret", "moentix-test", time.Hour)
	return &testEnv{
		store:    store,
		ledger:   NewLedger(store),
		reports:  NewReports(store),
		periods:  NewPeriodBalances(store),
		accounts: NewAccounts(store, tokens),
		tokens:   tokens,
	}
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	t.Cleanup(env.store.Close)
	return env
}

func (e *testEnv) user(t require.TestingT, email, balance string) models.User {
	user, err := e.store.CreateUser(context.Background(), models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Balance:      decimal.RequireFromString(balance),
	})
	require.NoError(t, err)
	return user
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func date(s string) *models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func expenseReq(userID int64, amount, day string, category int64) dto.ExpenseRequest {
	return dto.ExpenseRequest{
		Description: "gasto " + day,
		Amount:      dec(amount),
		Date:        date(day),
		CategoryID:  category,
		UserID:      userID,
	}
}

func (e *testEnv) record(t *testing.T, userID int64, amount, day string, category int64) models.Expense {
	t.Helper()
	expense, _, err := e.ledger.RecordExpense(context.Background(), expenseReq(userID, amount, day, category))
	require.NoError(t, err)
	return expense
}

func (e *testEnv) balance(t require.TestingT, userID int64) decimal.Decimal {
	user, err := e.store.FindUserByID(context.Background(), userID)
	require.NoError(t, err)
	return user.Balance
}
