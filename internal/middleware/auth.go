package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hongminglow/moentix-be/internal/auth"
	"github.com/hongminglow/moentix-be/internal/http/respond"
	"github.com/hongminglow/moentix-be/internal/logger"
)

const (
	msgMissingToken = "Acceso no autorizado. Token no proporcionado"
	msgInvalidToken = "Token inválido o expirado"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (auth.Session, error)
}

// RequireBearer rejects requests without a valid bearer token and stores the
// session in the request context.
func RequireBearer(tokens TokenParser, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			respond.Error(w, http.StatusUnauthorized, msgMissingToken)
			return
		}

		session, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("bearer token rejected")
			respond.Error(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		ctx := auth.WithSession(r.Context(), session)
		ctx = zerolog.Ctx(ctx).With().Str("user", logger.HashUserID(session.UserID)).Logger().WithContext(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
