package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/moentix-be/internal/auth"
	"github.com/hongminglow/moentix-be/internal/models"
	"github.com/hongminglow/moentix-be/internal/notify"
	"github.com/hongminglow/moentix-be/internal/service"
	"github.com/hongminglow/moentix-be/internal/storage/sqlite"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.BalanceEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event notify.BalanceEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) recorded() []notify.BalanceEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notify.BalanceEvent(nil), p.events...)
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Summary json.RawMessage  `json:"resumen"`
	Balance *decimal.Decimal `json:"saldo"`
}

type testAPI struct {
	store     *sqlite.Store
	publisher *recordingPublisher
	mux       *http.ServeMux
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store, err := sqlite.New(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	tokens := auth.NewTokenManager("handler-secret", "moentix-test", time.Hour)
	accounts := service.NewAccounts(store, tokens)
	ledger := service.NewLedger(store)
	reports := service.NewReports(store).WithClock(func() time.Time {
		return time.Date(2025, time.February, 20, 12, 0, 0, 0, time.UTC)
	})
	periods := service.NewPeriodBalances(store)
	publisher := &recordingPublisher{}

	mux := http.NewServeMux()
	NewAuthHandler(accounts).Register(mux)
	NewUserHandler(accounts, ledger, periods, publisher).Register(mux)
	NewExpenseHandler(ledger, reports, publisher).Register(mux)
	NewCategoryHandler(ledger).Register(mux)
	NewHealthHandler(time.Now(), store).Register(mux)

	return &testAPI{store: store, publisher: publisher, mux: mux}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (a *testAPI) user(t *testing.T, email, balance string) models.User {
	t.Helper()
	user, err := a.store.CreateUser(context.Background(), models.User{
		Name:         "Lucía",
		Email:        email,
		PasswordHash: "hash",
		Balance:      decimal.RequireFromString(balance),
	})
	require.NoError(t, err)
	return user
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func expenseBody(userID int64, amount any, day string, category int64) map[string]any {
	return map[string]any{
		"descripcion":  "Almuerzo",
		"monto":        amount,
		"fecha":        day,
		"categoria_id": category,
		"usuario_id":   userID,
	}
}

func TestAuthRoutes(t *testing.T) {
	api := newTestAPI(t)
	creds := map[string]string{"nombre": "Ana", "email": "ana@example.com", "password": "secreto1"}

	status, env := api.do(t, http.MethodPost, "/api/usuarios/registro", creds)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Usuario registrado exitosamente", env.Message)
	registered := decodeData[struct {
		User  models.User `json:"usuario"`
		Token string      `json:"token"`
	}](t, env)
	assert.NotEmpty(t, registered.Token)
	assertDecimal(t, "0", registered.User.Balance)

	status, env = api.do(t, http.MethodPost, "/api/usuarios/registro", creds)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "El email ya está registrado", env.Message)

	status, env = api.do(t, http.MethodPost, "/api/usuarios/login",
		map[string]string{"email": "ana@example.com", "password": "secreto1"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Login exitoso", env.Message)

	status, env = api.do(t, http.MethodPost, "/api/usuarios/login",
		map[string]string{"email": "ana@example.com", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Credenciales incorrectas", env.Message)

	status, env = api.do(t, http.MethodPost, "/api/usuarios/login", "{not json")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, msgInvalidJSON, env.Message)
}

func TestExpenseLifecycle(t *testing.T) {
	api := newTestAPI(t)
	user := api.user(t, "ledger@example.com", "100.00")

	status, env := api.do(t, http.MethodPost, "/api/gastos", expenseBody(user.ID, 25.5, "2025-02-10", models.CategoryFood))
	require.Equal(t, http.StatusCreated, status, env.Message)
	created := decodeData[struct {
		Expense models.Expense `json:"gasto"`
		User    models.User    `json:"usuario"`
	}](t, env)
	assertDecimal(t, "74.50", created.User.Balance)
	assert.Equal(t, "Food", created.Expense.CategoryName)
	assert.Equal(t, "2025-02-10", created.Expense.Date.String())

	path := fmt.Sprintf("/api/gastos/%d", created.Expense.ID)

	status, env = api.do(t, http.MethodGet, fmt.Sprintf("/api/gastos/detalle/%d", created.Expense.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assertDecimal(t, "25.50", decodeData[models.Expense](t, env).Amount)

	update := expenseBody(user.ID, 40, "2025-02-11", models.CategoryTransport)
	status, env = api.do(t, http.MethodPut, path, update)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, "Gasto actualizado exitosamente", env.Message)
	assertDecimal(t, "40", decodeData[models.Expense](t, env).Amount)

	status, env = api.do(t, http.MethodGet, fmt.Sprintf("/api/usuarios/perfil/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assertDecimal(t, "74.50", decodeData[models.User](t, env).Balance)

	// Delete credits the stored amount, which the update changed.
	status, env = api.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, status)
	deleted := decodeData[struct {
		User models.User `json:"usuario"`
	}](t, env)
	assertDecimal(t, "114.50", deleted.User.Balance)

	status, env = api.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Gasto no encontrado", env.Message)

	events := api.publisher.recorded()
	require.Len(t, events, 2)
	assert.Equal(t, notify.ExpenseRecorded, events[0].Type)
	require.NotNil(t, events[0].ExpenseID)
	assert.Equal(t, created.Expense.ID, *events[0].ExpenseID)
	assertDecimal(t, "74.50", events[0].Balance)
	assert.Equal(t, notify.ExpenseDeleted, events[1].Type)
	assertDecimal(t, "114.50", events[1].Balance)
}

func TestPublishFailureDoesNotChangeResponse(t *testing.T) {
	api := newTestAPI(t)
	api.publisher.err = errors.New("broker down")
	user := api.user(t, "broker@example.com", "10")

	status, env := api.do(t, http.MethodPost, "/api/gastos", expenseBody(user.ID, 1, "2025-02-01", models.CategoryOther))
	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
}

func TestExpenseValidation(t *testing.T) {
	api := newTestAPI(t)
	user := api.user(t, "validation@example.com", "50")

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		status  int
		message string
	}{
		{"missing fields", http.MethodPost, "/api/gastos", map[string]any{"usuario_id": user.ID}, http.StatusBadRequest, "Todos los campos son obligatorios"},
		{"empty body", http.MethodPost, "/api/gastos", nil, http.StatusBadRequest, "Todos los campos son obligatorios"},
		{"zero amount", http.MethodPost, "/api/gastos", expenseBody(user.ID, 0, "2025-02-01", 1), http.StatusBadRequest, "El monto debe ser mayor a 0"},
		{"unknown user", http.MethodPost, "/api/gastos", expenseBody(9999, 5, "2025-02-01", 1), http.StatusNotFound, "Usuario o categoría no encontrados"},
		{"unknown category", http.MethodPost, "/api/gastos", expenseBody(user.ID, 5, "2025-02-01", 99), http.StatusNotFound, "Usuario o categoría no encontrados"},
		{"amount above maximum", http.MethodPost, "/api/gastos", expenseBody(user.ID, json.Number("10000000000"), "2025-02-01", 1), http.StatusBadRequest, "El monto no puede superar 9999999999.99"},
		{"amount beyond int64 cents", http.MethodPost, "/api/gastos", expenseBody(user.ID, json.Number("100000000000000000"), "2025-02-01", 1), http.StatusBadRequest, "El monto no puede superar 9999999999.99"},
		{"bad date", http.MethodPost, "/api/gastos", expenseBody(user.ID, 5, "ayer", 1), http.StatusBadRequest, msgInvalidJSON},
		{"update missing expense", http.MethodPut, "/api/gastos/9999", expenseBody(user.ID, 5, "2025-02-01", 1), http.StatusNotFound, "Gasto no encontrado"},
		{"malformed expense id", http.MethodDelete, "/api/gastos/abc", nil, http.StatusNotFound, "Gasto no encontrado"},
		{"malformed detail id", http.MethodGet, "/api/gastos/detalle/-1", nil, http.StatusNotFound, "Gasto no encontrado"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := api.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
		})
	}

	status, env := api.do(t, http.MethodGet, fmt.Sprintf("/api/usuarios/perfil/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assertDecimal(t, "50", decodeData[models.User](t, env).Balance)
	assert.Empty(t, api.publisher.recorded())
}

func TestListExpenses(t *testing.T) {
	api := newTestAPI(t)
	user := api.user(t, "list@example.com", "500")
	for i, day := range []string{"2025-01-05", "2025-01-20", "2025-02-03", "2025-02-15"} {
		category := models.CategoryFood
		if i%2 == 1 {
			category = models.CategoryHealth
		}
		status, _ := api.do(t, http.MethodPost, "/api/gastos", expenseBody(user.ID, 10+i, day, category))
		require.Equal(t, http.StatusCreated, status)
	}
	base := fmt.Sprintf("/api/gastos/usuario/%d", user.ID)

	status, env := api.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, status)
	all := decodeData[[]models.Expense](t, env)
	require.Len(t, all, 4)
	assert.Equal(t, "2025-02-15", all[0].Date.String())

	status, env = api.do(t, http.MethodGet, base+"?categoria=4&fechaInicio=2025-01-01&fechaFin=2025-01-31", nil)
	require.Equal(t, http.StatusOK, status)
	filtered := decodeData[[]models.Expense](t, env)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2025-01-20", filtered[0].Date.String())

	status, env = api.do(t, http.MethodGet, base+"?pagina=2&limite=3", nil)
	require.Equal(t, http.StatusOK, status)
	page := decodeData[[]models.Expense](t, env)
	require.Len(t, page, 1)
	assert.Equal(t, "2025-01-05", page[0].Date.String())

	status, env = api.do(t, http.MethodGet, "/api/gastos/usuario/999", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))

	status, env = api.do(t, http.MethodGet, base+"?limite=muchos", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, msgInvalidQuery, env.Message)

	status, env = api.do(t, http.MethodGet, "/api/gastos/usuario/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, msgInvalidUserID, env.Message)
}

func TestReportRoutes(t *testing.T) {
	api := newTestAPI(t)
	user := api.user(t, "reports@example.com", "1000")
	for _, e := range []struct {
		amount   string
		day      string
		category int64
	}{
		{"60", "2025-01-01", models.CategoryFood},
		{"10", "2025-01-06", models.CategoryTransport},
		{"30", "2025-02-10", models.CategoryFood},
	} {
		status, _ := api.do(t, http.MethodPost, "/api/gastos", expenseBody(user.ID, json.Number(e.amount), e.day, e.category))
		require.Equal(t, http.StatusCreated, status)
	}
	base := fmt.Sprintf("/api/gastos/usuario/%d", user.ID)

	t.Run("by category", func(t *testing.T) {
		status, env := api.do(t, http.MethodGet, base+"/estadisticas/categoria", nil)
		require.Equal(t, http.StatusOK, status)
		items := decodeData[[]models.CategoryTotal](t, env)
		require.Len(t, items, 2)
		assert.Equal(t, models.CategoryFood, items[0].CategoryID)
		assert.Equal(t, "90.00", items[0].Percentage)
		assert.Equal(t, "10.00", items[1].Percentage)
		assert.JSONEq(t, `{"total_categorias":2,"total_gastado":100}`, string(env.Summary))
	})

	t.Run("by category within dates", func(t *testing.T) {
		status, env := api.do(t, http.MethodGet, base+"/estadisticas/categoria?fechaInicio=2025-02-01", nil)
		require.Equal(t, http.StatusOK, status)
		items := decodeData[[]models.CategoryTotal](t, env)
		require.Len(t, items, 1)
		assert.Equal(t, "100.00", items[0].Percentage)
	})

	t.Run("by week", func(t *testing.T) {
		status, env := api.do(t, http.MethodGet, base+"/estadisticas/tiempo?periodo=semanal", nil)
		require.Equal(t, http.StatusOK, status)
		totals := decodeData[[]models.PeriodTotal](t, env)
		require.Len(t, totals, 3)
		assert.Equal(t, "2025-01", totals[0].Label)
		assert.Equal(t, "2025-02", totals[1].Label)
		assert.Equal(t, "2025-07", totals[2].Label)
	})

	t.Run("unknown period falls back to monthly", func(t *testing.T) {
		status, env := api.do(t, http.MethodGet, base+"/estadisticas/tiempo?periodo=trimestral", nil)
		require.Equal(t, http.StatusOK, status)
		totals := decodeData[[]models.PeriodTotal](t, env)
		require.Len(t, totals, 2)
		assert.Equal(t, "2025-01", totals[0].Label)
		assertDecimal(t, "70", totals[0].Total)
	})

	t.Run("summary", func(t *testing.T) {
		status, env := api.do(t, http.MethodGet, base+"/resumen", nil)
		require.Equal(t, http.StatusOK, status)
		summary := decodeData[models.Summary](t, env)
		assertDecimal(t, "100", summary.TotalSpent)
		assertDecimal(t, "33.33", summary.AverageExpense)
		require.NotNil(t, summary.HighestExpense)
		assertDecimal(t, "60", summary.HighestExpense.Amount)
		require.NotNil(t, summary.MostFrequentCategory)
		assert.Equal(t, models.CategoryFood, summary.MostFrequentCategory.ID)
		assertDecimal(t, "30", summary.CurrentMonthSpend)
		assert.Equal(t, "2025-02-28", summary.CurrentMonthEnd.String())
	})

	t.Run("malformed user id", func(t *testing.T) {
		for _, suffix := range []string{"/resumen", "/estadisticas/categoria", "/estadisticas/tiempo"} {
			status, env := api.do(t, http.MethodGet, "/api/gastos/usuario/abc"+suffix, nil)
			assert.Equal(t, http.StatusInternalServerError, status)
			assert.Equal(t, service.MsgInternal, env.Message)
		}
	})
}

func TestBalanceRoutes(t *testing.T) {
	api := newTestAPI(t)
	user := api.user(t, "saldo@example.com", "0")
	saldo := fmt.Sprintf("/api/usuarios/saldo/%d", user.ID)

	status, env := api.do(t, http.MethodPut, saldo, map[string]any{"saldo_actual": 1500.75})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Saldo actualizado correctamente", env.Message)
	assertDecimal(t, "1500.75", decodeData[models.User](t, env).Balance)

	events := api.publisher.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, notify.BalanceSet, events[0].Type)
	assert.Nil(t, events[0].ExpenseID)

	status, env = api.do(t, http.MethodPut, saldo, map[string]any{"saldo_actual": -1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "El saldo_actual no puede ser negativo", env.Message)

	status, env = api.do(t, http.MethodPut, saldo, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "El saldo_actual es obligatorio y debe ser un número", env.Message)

	status, _ = api.do(t, http.MethodPut, "/api/usuarios/saldo/9999", map[string]any{"saldo_actual": 1})
	assert.Equal(t, http.StatusNotFound, status)

	periods := fmt.Sprintf("/api/usuarios/saldos/%d/", user.ID)

	status, env = api.do(t, http.MethodGet, periods+"semanal", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Balance)
	assertDecimal(t, "0", *env.Balance)

	status, env = api.do(t, http.MethodPut, periods+"semanal", map[string]any{"saldo": 300})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, env = api.do(t, http.MethodGet, periods+"weekly", nil)
	require.Equal(t, http.StatusOK, status)
	assertDecimal(t, "300", *env.Balance)

	status, env = api.do(t, http.MethodGet, periods+"mensual", nil)
	require.Equal(t, http.StatusOK, status)
	assertDecimal(t, "0", *env.Balance)

	status, env = api.do(t, http.MethodPut, periods+"diario", map[string]any{"saldo": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Periodo inválido. Use semanal, mensual o anual", env.Message)

	status, env = api.do(t, http.MethodGet, periods+"diario", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assertDecimal(t, "0", *env.Balance)

	status, env = api.do(t, http.MethodPut, saldo, map[string]any{"saldo_actual": json.Number("92233720368547758.08")})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "El saldo_actual no puede superar 9999999999.99", env.Message)

	status, _ = api.do(t, http.MethodGet, "/api/usuarios/saldos/abc/semanal", nil)
	assert.Equal(t, http.StatusInternalServerError, status)

	// Period balances never touch the ledger balance.
	status, env = api.do(t, http.MethodGet, fmt.Sprintf("/api/usuarios/perfil/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assertDecimal(t, "1500.75", decodeData[models.User](t, env).Balance)
}

func TestProfileRoutes(t *testing.T) {
	api := newTestAPI(t)
	status, env := api.do(t, http.MethodPost, "/api/usuarios/registro",
		map[string]string{"nombre": "Pablo", "email": "pablo@example.com", "password": "clave123"})
	require.Equal(t, http.StatusCreated, status)
	id := decodeData[struct {
		User models.User `json:"usuario"`
	}](t, env).User.ID
	other := api.user(t, "otro@example.com", "0")

	profile := fmt.Sprintf("/api/usuarios/perfil/%d", id)
	status, env = api.do(t, http.MethodPut, profile, map[string]string{"nombre": "Pablo R.", "email": "pablo.r@example.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Pablo R.", decodeData[models.User](t, env).Name)

	status, env = api.do(t, http.MethodPut, profile, map[string]string{"nombre": "Pablo", "email": other.Email})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "El email ya está registrado por otro usuario", env.Message)

	password := fmt.Sprintf("/api/usuarios/contrasena/%d", id)
	status, env = api.do(t, http.MethodPut, password, map[string]string{"actual": "equivocada", "nueva": "nueva123"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "La contraseña actual es incorrecta", env.Message)

	status, _ = api.do(t, http.MethodPut, password, map[string]string{"actual": "clave123", "nueva": "nueva123"})
	require.Equal(t, http.StatusOK, status)

	status, _ = api.do(t, http.MethodPost, "/api/usuarios/login", map[string]string{"email": "pablo.r@example.com", "password": "nueva123"})
	assert.Equal(t, http.StatusOK, status)

	status, env = api.do(t, http.MethodGet, "/api/usuarios/perfil/9999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, msgUserNotFound, env.Message)
}

func TestCategories(t *testing.T) {
	api := newTestAPI(t)
	status, env := api.do(t, http.MethodGet, "/api/categorias", nil)
	require.Equal(t, http.StatusOK, status)
	categories := decodeData[[]models.CategoryWithStyle](t, env)
	require.Len(t, categories, 6)
	assert.Equal(t, "restaurant-outline", categories[0].Style.Icon)
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	status, env := api.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"status":"ok"`)

	mux := http.NewServeMux()
	NewHealthHandler(time.Now(), failingPinger{}).Register(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestCallerLogging(t *testing.T) {
	api := newTestAPI(t)
	owner := api.user(t, "owner@example.com", "10")
	other := api.user(t, "other@example.com", "10")

	serve := func(path string, caller int64) string {
		var buf bytes.Buffer
		reqLogger := zerolog.New(&buf)
		req := httptest.NewRequest(http.MethodGet, path, nil)
		ctx := auth.WithSession(reqLogger.WithContext(req.Context()), auth.Session{UserID: caller})
		rec := httptest.NewRecorder()
		api.mux.ServeHTTP(rec, req.WithContext(ctx))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return buf.String()
	}

	assert.Empty(t, serve(fmt.Sprintf("/api/usuarios/perfil/%d", owner.ID), owner.ID))

	out := serve(fmt.Sprintf("/api/gastos/usuario/%d/resumen", other.ID), owner.ID)
	assert.Contains(t, out, "caller acting on another user")
	assert.Contains(t, out, `"target":"`)
	assert.NotContains(t, out, fmt.Sprintf(`"target":"%d"`, other.ID))
}
