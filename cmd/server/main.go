package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/moentix-be/internal/config"
	"github.com/hongminglow/moentix-be/internal/logger"
	"github.com/hongminglow/moentix-be/internal/notify"
	"github.com/hongminglow/moentix-be/internal/server"
	"github.com/hongminglow/moentix-be/internal/storage/backend"
	"github.com/hongminglow/moentix-be/internal/telemetry"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("load config")
	}
	logger.SetFormat(cfg.LogFormat)
	logger.SetLevel(cfg.LogLevel)
	logger.InitHashSalt()

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("init telemetry")
	}

	store, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("init database")
	}
	defer store.Close()

	publisher := notify.Open(cfg.AMQPURL, cfg.AMQPExchange)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Log.Warn().Err(err).Msg("close event publisher")
		}
	}()

	srv := server.New(cfg, store, publisher)

	go func() {
		logger.Log.Info().Str("addr", cfg.HTTPAddress()).Msg("Moentix backend listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Log.Info().Str("signal", sig.String()).Msg("shutting down")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Log.Error().Err(err).Msg("graceful shutdown error")
	}
	if err := shutdownTelemetry(ctxShutdown); err != nil {
		logger.Log.Error().Err(err).Msg("telemetry shutdown error")
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Log.Info().Msg("no .env file found; relying on existing environment")
	}
}
