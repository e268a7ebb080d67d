package respond

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	_ "github.com/hongminglow/moentix-be/internal/models"
)

func TestEnvelopes(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		body   string
	}{
		{
			name:   "data",
			write:  func(w http.ResponseWriter) { JSON(w, http.StatusCreated, "Gasto creado exitosamente", map[string]int{"id": 1}) },
			status: http.StatusCreated,
			body:   `{"success":true,"message":"Gasto creado exitosamente","data":{"id":1}}`,
		},
		{
			name:   "empty list is kept",
			write:  func(w http.ResponseWriter) { JSON(w, http.StatusOK, "", []int{}) },
			status: http.StatusOK,
			body:   `{"success":true,"data":[]}`,
		},
		{
			name:   "summary",
			write:  func(w http.ResponseWriter) { WithSummary(w, []int{1}, map[string]int{"total_categorias": 1}) },
			status: http.StatusOK,
			body:   `{"success":true,"data":[1],"resumen":{"total_categorias":1}}`,
		},
		{
			name:   "zero balance",
			write:  func(w http.ResponseWriter) { Balance(w, decimal.Zero) },
			status: http.StatusOK,
			body:   `{"success":true,"saldo":0}`,
		},
		{
			name:   "error",
			write:  func(w http.ResponseWriter) { Error(w, http.StatusNotFound, "Gasto no encontrado") },
			status: http.StatusNotFound,
			body:   `{"success":false,"message":"Gasto no encontrado"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			require.Equal(t, tt.status, rec.Code)
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			require.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
