package server

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hongminglow/moentix-be/internal/auth"
	"github.com/hongminglow/moentix-be/internal/config"
	"github.com/hongminglow/moentix-be/internal/http/handlers"
	"github.com/hongminglow/moentix-be/internal/middleware"
	"github.com/hongminglow/moentix-be/internal/notify"
	"github.com/hongminglow/moentix-be/internal/service"
	"github.com/hongminglow/moentix-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, publisher notify.Publisher) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, store, publisher),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewHandler builds the route tree. Registration, login and health are
// public; everything else under /api/ requires a bearer token.
func NewHandler(cfg config.Config, store storage.Store, publisher notify.Publisher) http.Handler {
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	accounts := service.NewAccounts(store, tokenManager)
	ledger := service.NewLedger(store)
	reports := service.NewReports(store)
	periods := service.NewPeriodBalances(store)

	public := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), store).Register(public)
	handlers.NewAuthHandler(accounts).Register(public)

	protected := http.NewServeMux()
	handlers.NewUserHandler(accounts, ledger, periods, publisher).Register(protected)
	handlers.NewExpenseHandler(ledger, reports, publisher).Register(protected)
	handlers.NewCategoryHandler(ledger).Register(protected)
	public.Handle("/api/", middleware.RequireBearer(tokenManager, protected))

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(public))
	return otelhttp.NewHandler(handler, "moentix-api")
}

// Handler exposes the root handler.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
