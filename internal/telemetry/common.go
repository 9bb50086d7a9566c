package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Options selects how metrics leave the process
type Options struct {
	// Scraper serves /metrics for Prometheus; otherwise metrics are pushed over OTLP gRPC
	Scraper bool
	// Port of the scrape endpoint
	Port string
}

// Telemetry owns the meter provider and, in scraper mode, the metrics HTTP server
type Telemetry struct {
	Provider *metric.MeterProvider
	server   *http.Server
}

// InitMetrics installs a global meter provider backed by the selected exporter
func InitMetrics(ctx context.Context, opts Options) (*Telemetry, error) {
	if opts.Scraper {
		slog.Info("Starting metrics with scraper exporter")
		return initScrapeMetrics(opts.Port)
	}
	slog.Info("Starting metrics with grpc exporter")
	return initGRPCMetrics(ctx)
}

// OTEL_EXPORTER_OTLP_METRICS_ENDPOINT picks the collector, localhost:4317 when unset.
func initGRPCMetrics(ctx context.Context) (*Telemetry, error) {
	exporter, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating grpc exporter: %w", err)
	}

	provider := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(exporter)))
	otel.SetMeterProvider(provider)

	return &Telemetry{Provider: provider}, nil
}

// The prometheus exporter is both a Reader for the SDK and a Collector for promhttp.
func initScrapeMetrics(port string) (*Telemetry, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating scrape exporter: %w", err)
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	if port == "" {
		port = "9080"
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Telemetry{
		Provider: provider,
		server: &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		},
	}, nil
}

// Serve runs the scrape endpoint until Shutdown. It returns immediately in grpc mode.
func (t *Telemetry) Serve() error {
	if t.server == nil {
		return nil
	}

	slog.Info("Serving metrics", "address", t.server.Addr, "path", "/metrics")
	if err := t.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// Shutdown flushes pending metrics and stops the scrape endpoint
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.server != nil {
		if err := t.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
		slog.Info("Metrics server stopped")
	}

	if t.Provider != nil {
		if err := t.Provider.ForceFlush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics flush: %w", err))
		}
		if err := t.Provider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}
