package handlers

import (
	"net/http"

	"github.com/hongminglow/moentix-be/internal/http/respond"
	"github.com/hongminglow/moentix-be/internal/service"
)

// CategoryHandler lists the fixed expense categories.
type CategoryHandler struct {
	ledger *service.Ledger
}

// NewCategoryHandler constructs the handler.
func NewCategoryHandler(ledger *service.Ledger) *CategoryHandler {
	return &CategoryHandler{ledger: ledger}
}

// Register attaches category routes to the mux.
func (h *CategoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/categorias", h.handleList)
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.ledger.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", categories)
}
