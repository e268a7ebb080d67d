package handlers

import (
	"net/http"

	"github.com/hongminglow/moentix-be/internal/http/respond"
	"github.com/hongminglow/moentix-be/internal/models/dto"
	"github.com/hongminglow/moentix-be/internal/notify"
	"github.com/hongminglow/moentix-be/internal/service"
)

const msgUserNotFound = "Usuario no encontrado"

// UserHandler serves profile, password and balance endpoints.
type UserHandler struct {
	accounts  *service.Accounts
	ledger    *service.Ledger
	periods   *service.PeriodBalances
	publisher notify.Publisher
}

// NewUserHandler constructs the handler.
func NewUserHandler(accounts *service.Accounts, ledger *service.Ledger, periods *service.PeriodBalances, publisher notify.Publisher) *UserHandler {
	return &UserHandler{accounts: accounts, ledger: ledger, periods: periods, publisher: publisher}
}

// Register attaches user routes to the mux.
func (h *UserHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/usuarios/perfil/{id}", h.handleProfile)
	mux.HandleFunc("PUT /api/usuarios/perfil/{id}", h.handleUpdateProfile)
	mux.HandleFunc("PUT /api/usuarios/contrasena/{id}", h.handleChangePassword)
	mux.HandleFunc("PUT /api/usuarios/saldo/{id}", h.handleSetBalance)
	mux.HandleFunc("GET /api/usuarios/saldos/{usuarioId}/{periodo}", h.handleGetPeriodBalance)
	mux.HandleFunc("PUT /api/usuarios/saldos/{usuarioId}/{periodo}", h.handleSetPeriodBalance)
}

func (h *UserHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	logCaller(r, id)
	user, err := h.accounts.Profile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", user)
}

func (h *UserHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	logCaller(r, id)
	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.accounts.UpdateProfile(r.Context(), id, req.Name, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Perfil actualizado correctamente", user)
}

func (h *UserHandler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	logCaller(r, id)
	var req dto.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.accounts.ChangePassword(r.Context(), id, req.Current, req.Next); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Contraseña actualizada correctamente", nil)
}

func (h *UserHandler) handleSetBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	logCaller(r, id)
	var req dto.SetBalanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.ledger.SetBalance(r.Context(), id, req.Balance)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Saldo actualizado correctamente", user)
	publish(r, h.publisher, notify.NewBalanceEvent(notify.BalanceSet, user, nil))
}

// Period balance routes treat a malformed user id as an internal failure,
// matching how the store rejects it.
func (h *UserHandler) handleGetPeriodBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "usuarioId")
	if !ok {
		respond.Error(w, http.StatusInternalServerError, service.MsgInternal)
		return
	}
	logCaller(r, userID)
	balance, err := h.periods.Get(r.Context(), userID, r.PathValue("periodo"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.Balance(w, balance)
}

func (h *UserHandler) handleSetPeriodBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "usuarioId")
	if !ok {
		respond.Error(w, http.StatusInternalServerError, service.MsgInternal)
		return
	}
	logCaller(r, userID)
	var req dto.PeriodBalanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.periods.Set(r.Context(), userID, r.PathValue("periodo"), req.Balance); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Saldo del periodo actualizado correctamente", nil)
}
