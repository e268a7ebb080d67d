package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hongminglow/moentix-be/internal/auth"
	"github.com/hongminglow/moentix-be/internal/http/respond"
	"github.com/hongminglow/moentix-be/internal/logger"
	"github.com/hongminglow/moentix-be/internal/notify"
	"github.com/hongminglow/moentix-be/internal/service"
)

const maxBodyBytes = 1 << 20

const (
	msgInvalidJSON   = "El cuerpo de la solicitud no es un JSON válido"
	msgInvalidUserID = "ID de usuario inválido"
	msgInvalidQuery  = "Parámetros de consulta inválidos"
)

// writeError maps a service failure to its status and envelope. Internal
// causes are logged and never echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(service.KindOf(err))
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	respond.Error(w, status, service.MessageOf(err))
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a bounded JSON body into dst and reports a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("decode request body")
		respond.Error(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

// pathID parses a positive integer path value.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// publish sends a balance event after the response has been decided. The
// request's cancellation does not abort it and failures are only logged.
func publish(r *http.Request, publisher notify.Publisher, event notify.BalanceEvent) {
	ctx := context.WithoutCancel(r.Context())
	if err := publisher.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("event", string(event.Type)).
			Msg("publish balance event failed")
	}
}

// logCaller records when the authenticated caller touches another user's
// data. Requests without a session are left alone.
func logCaller(r *http.Request, userID int64) {
	session, ok := auth.FromContext(r.Context())
	if !ok || session.UserID == userID {
		return
	}
	zerolog.Ctx(r.Context()).Info().
		Str("caller", logger.HashUserID(session.UserID)).
		Str("target", logger.HashUserID(userID)).
		Str("path", r.URL.Path).
		Msg("caller acting on another user")
}
