package handlers

import (
	"net/http"

	"github.com/hongminglow/moentix-be/internal/http/respond"
	"github.com/hongminglow/moentix-be/internal/models/dto"
	"github.com/hongminglow/moentix-be/internal/service"
)

// AuthHandler owns the public register and login endpoints.
type AuthHandler struct {
	accounts *service.Accounts
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(accounts *service.Accounts) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/usuarios/registro", h.handleRegister)
	mux.HandleFunc("POST /api/usuarios/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, token, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "Usuario registrado exitosamente", dto.LoginResponse{User: user, Token: token})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, token, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Login exitoso", dto.LoginResponse{User: user, Token: token})
}
