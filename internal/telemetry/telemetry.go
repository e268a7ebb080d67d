// Package telemetry installs the global OpenTelemetry trace and metric
// providers.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/hongminglow/moentix-be/internal/config"
)

// ShutdownFunc flushes and stops the providers.
type ShutdownFunc func(ctx context.Context) error

const metricInterval = 30 * time.Second

// Setup configures tracing and metrics per cfg.OTelExporter. With
// ExporterNone the global no-op providers stay in place.
func Setup(ctx context.Context, cfg config.Config) (ShutdownFunc, error) {
	return setup(ctx, cfg, os.Stdout)
}

func setup(ctx context.Context, cfg config.Config, stdout io.Writer) (ShutdownFunc, error) {
	if cfg.OTelExporter == config.ExporterNone || cfg.OTelExporter == "" {
		return func(context.Context) error { return nil }, nil
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
	)

	spanExporter, err := newSpanExporter(ctx, cfg, stdout)
	if err != nil {
		return nil, err
	}
	metricExporter, err := newMetricExporter(ctx, cfg, stdout)
	if err != nil {
		_ = spanExporter.Shutdown(ctx)
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(metricInterval))),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		return errors.Join(
			tracerProvider.Shutdown(ctx),
			meterProvider.Shutdown(ctx),
		)
	}, nil
}

func newSpanExporter(ctx context.Context, cfg config.Config, stdout io.Writer) (sdktrace.SpanExporter, error) {
	switch cfg.OTelExporter {
	case config.ExporterStdout:
		return stdouttrace.New(stdouttrace.WithWriter(stdout))
	case config.ExporterOTLP:
		if cfg.OTelProtocol == "grpc" {
			return otlptracegrpc.New(ctx)
		}
		return otlptracehttp.New(ctx)
	default:
		return nil, fmt.Errorf("unsupported trace exporter %q", cfg.OTelExporter)
	}
}

func newMetricExporter(ctx context.Context, cfg config.Config, stdout io.Writer) (sdkmetric.Exporter, error) {
	switch cfg.OTelExporter {
	case config.ExporterStdout:
		return stdoutmetric.New(stdoutmetric.WithWriter(stdout))
	case config.ExporterOTLP:
		if cfg.OTelProtocol == "grpc" {
			return otlpmetricgrpc.New(ctx)
		}
		return otlpmetrichttp.New(ctx)
	default:
		return nil, fmt.Errorf("unsupported metric exporter %q", cfg.OTelExporter)
	}
}
