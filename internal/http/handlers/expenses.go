package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/hongminglow/moentix-be/internal/http/respond"
	"github.com/hongminglow/moentix-be/internal/models"
	"github.com/hongminglow/moentix-be/internal/models/dto"
	"github.com/hongminglow/moentix-be/internal/notify"
	"github.com/hongminglow/moentix-be/internal/service"
)

const msgExpenseNotFound = "Gasto no encontrado"

// ExpenseHandler serves the ledger mutations, listings and spend reports.
type ExpenseHandler struct {
	ledger    *service.Ledger
	reports   *service.Reports
	publisher notify.Publisher
}

// NewExpenseHandler constructs the handler.
func NewExpenseHandler(ledger *service.Ledger, reports *service.Reports, publisher notify.Publisher) *ExpenseHandler {
	return &ExpenseHandler{ledger: ledger, reports: reports, publisher: publisher}
}

// Register attaches expense routes to the mux.
func (h *ExpenseHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/gastos", h.handleCreate)
	mux.HandleFunc("GET /api/gastos/detalle/{id}", h.handleGet)
	mux.HandleFunc("PUT /api/gastos/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/gastos/{id}", h.handleDelete)
	mux.HandleFunc("GET /api/gastos/usuario/{usuarioId}", h.handleList)
	mux.HandleFunc("GET /api/gastos/usuario/{usuarioId}/estadisticas/categoria", h.handleByCategory)
	mux.HandleFunc("GET /api/gastos/usuario/{usuarioId}/estadisticas/tiempo", h.handleByPeriod)
	mux.HandleFunc("GET /api/gastos/usuario/{usuarioId}/resumen", h.handleSummary)
}

func (h *ExpenseHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logCaller(r, req.UserID)
	expense, user, err := h.ledger.RecordExpense(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "Gasto creado exitosamente", dto.ExpenseCreated{Expense: expense, User: user})
	publish(r, h.publisher, notify.NewBalanceEvent(notify.ExpenseRecorded, user, &expense.ID))
}

func (h *ExpenseHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, msgExpenseNotFound)
		return
	}
	expense, err := h.ledger.GetExpense(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", expense)
}

func (h *ExpenseHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, msgExpenseNotFound)
		return
	}
	var req dto.ExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	expense, err := h.ledger.UpdateExpense(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Gasto actualizado exitosamente", expense)
}

func (h *ExpenseHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, msgExpenseNotFound)
		return
	}
	user, err := h.ledger.DeleteExpense(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Gasto eliminado exitosamente", dto.ExpenseDeleted{User: user})
	publish(r, h.publisher, notify.NewBalanceEvent(notify.ExpenseDeleted, user, &id))
}

func (h *ExpenseHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "usuarioId")
	if !ok {
		respond.Error(w, http.StatusBadRequest, msgInvalidUserID)
		return
	}
	logCaller(r, userID)
	query, err := parseExpenseQuery(r.URL.Query())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, msgInvalidQuery)
		return
	}
	expenses, err := h.ledger.ListExpenses(r.Context(), userID, query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", expenses)
}

// Report routes treat a malformed user id as an internal failure, matching
// how the store rejects it.
func (h *ExpenseHandler) handleByCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "usuarioId")
	if !ok {
		respond.Error(w, http.StatusInternalServerError, service.MsgInternal)
		return
	}
	logCaller(r, userID)
	dates, err := parseDateRange(r.URL.Query())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, msgInvalidQuery)
		return
	}
	breakdown, err := h.reports.ExpensesByCategory(r.Context(), userID, dates)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.WithSummary(w, breakdown.Items, dto.CategorySummary{
		TotalCategories: breakdown.TotalCategories,
		TotalSpent:      breakdown.TotalSpent,
	})
}

func (h *ExpenseHandler) handleByPeriod(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "usuarioId")
	if !ok {
		respond.Error(w, http.StatusInternalServerError, service.MsgInternal)
		return
	}
	logCaller(r, userID)
	granularity := models.ParseGranularity(r.URL.Query().Get("periodo"))
	totals, err := h.reports.ExpensesByPeriod(r.Context(), userID, granularity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", totals)
}

func (h *ExpenseHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "usuarioId")
	if !ok {
		respond.Error(w, http.StatusInternalServerError, service.MsgInternal)
		return
	}
	logCaller(r, userID)
	summary, err := h.reports.Summary(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", summary)
}

func parseExpenseQuery(q url.Values) (service.ExpenseQuery, error) {
	dates, err := parseDateRange(q)
	if err != nil {
		return service.ExpenseQuery{}, err
	}
	out := service.ExpenseQuery{From: dates.From, To: dates.To}
	if raw := q.Get("categoria"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return service.ExpenseQuery{}, err
		}
		out.CategoryID = &id
	}
	if out.Page, err = optionalInt(q.Get("pagina")); err != nil {
		return service.ExpenseQuery{}, err
	}
	if out.Limit, err = optionalInt(q.Get("limite")); err != nil {
		return service.ExpenseQuery{}, err
	}
	return out, nil
}

func parseDateRange(q url.Values) (models.DateRange, error) {
	var dates models.DateRange
	for key, dst := range map[string]**models.Date{"fechaInicio": &dates.From, "fechaFin": &dates.To} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			return models.DateRange{}, err
		}
		*dst = &d
	}
	return dates, nil
}

func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
