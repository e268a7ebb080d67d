package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Telemetry exporters accepted by OTEL_EXPORTER.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port           string
	StorageBackend string
	DatabaseURL    string
	SQLitePath     string
	JWTSecret      string
	JWTIssuer      string
	JWTTTL         time.Duration
	CORSOrigins    []string
	LogLevel       string
	LogFormat      string
	AMQPURL        string
	AMQPExchange   string
	OTelExporter   string
	OTelProtocol   string
	ServiceName    string
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		Port:           fallback(os.Getenv("PORT"), "8080"),
		StorageBackend: strings.ToLower(fallback(os.Getenv("STORAGE_BACKEND"), BackendPostgres)),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:     fallback(os.Getenv("SQLITE_PATH"), "moentix.db"),
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:      fallback(os.Getenv("JWT_ISSUER"), "moentix-backend"),
		CORSOrigins:    parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:       strings.ToLower(fallback(os.Getenv("LOG_LEVEL"), "info")),
		LogFormat:      strings.ToLower(fallback(os.Getenv("LOG_FORMAT"), "console")),
		AMQPURL:        strings.TrimSpace(os.Getenv("AMQP_URL")),
		AMQPExchange:   fallback(os.Getenv("AMQP_EXCHANGE"), "moentix.events"),
		OTelExporter:   strings.ToLower(fallback(os.Getenv("OTEL_EXPORTER"), ExporterNone)),
		OTelProtocol:   strings.ToLower(fallback(os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL"), "http")),
		ServiceName:    fallback(os.Getenv("OTEL_SERVICE_NAME"), "moentix-backend"),
	}

	// Mobile sessions last 30 days unless overridden.
	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "43200")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 30 * 24 * time.Hour
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	var errs []string

	switch c.StorageBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required for the postgres backend")
		}
	case BackendSQLite:
	default:
		errs = append(errs, fmt.Sprintf("STORAGE_BACKEND %q is not supported", c.StorageBackend))
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	switch c.OTelExporter {
	case ExporterNone, ExporterStdout, ExporterOTLP:
	default:
		errs = append(errs, fmt.Sprintf("OTEL_EXPORTER %q is not supported", c.OTelExporter))
	}

	if c.OTelProtocol != "http" && c.OTelProtocol != "grpc" {
		errs = append(errs, fmt.Sprintf("OTEL_EXPORTER_OTLP_PROTOCOL %q is not supported", c.OTelProtocol))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
