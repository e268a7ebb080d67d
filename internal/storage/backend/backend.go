// Package backend selects the storage implementation named by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/hongminglow/moentix-be/internal/config"
	"github.com/hongminglow/moentix-be/internal/logger"
	"github.com/hongminglow/moentix-be/internal/storage"
	"github.com/hongminglow/moentix-be/internal/storage/postgres"
	"github.com/hongminglow/moentix-be/internal/storage/sqlite"
)

// Open connects to the configured backend and applies its migrations.
func Open(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres store: %w", err)
		}
		logger.Log.Info().Str("backend", cfg.StorageBackend).Msg("storage initialized")
		return store, nil
	case config.BackendSQLite:
		store, err := sqlite.New(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Log.Info().
			Str("backend", cfg.StorageBackend).
			Str("path", cfg.SQLitePath).
			Msg("storage initialized")
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
