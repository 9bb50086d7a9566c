package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-api/internal/assistant"
	"storefront-api/internal/catalog"
	"storefront-api/internal/config"
	"storefront-api/internal/handlers"
	"storefront-api/internal/storefront"
	"storefront-api/internal/telemetry"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server exited")
}

func run() error {
	// Load configuration from .env file and environment variables
	cfg := config.LoadConfig()

	slog.Info("Starting Storefront API", "version", "1.0.0")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry metrics
	otelTelemetry, err := telemetry.InitMetrics(ctx, telemetry.Options{
		Scraper: cfg.UseScraperMetrics(),
		Port:    cfg.MetricsPort,
	})
	if err != nil {
		return err
	}

	apiTelemetry := telemetry.NewStorefrontTelemetry()
	if err := apiTelemetry.InitializeTelemetry(ctx, otelTelemetry.Provider); err != nil {
		return err
	}

	// Initialize the conversational backend
	backend, err := assistant.NewGeminiBackend(ctx, assistant.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.ChatTimeoutDuration(),
	})
	if err != nil {
		return err
	}

	store := catalog.NewStore(catalog.SeedItems())
	manager := assistant.NewManager(assistant.ManagerConfig{
		Backend: backend,
		Catalog: store,
		Persona: assistant.Persona{
			StoreName:     cfg.StoreName,
			AssistantName: cfg.AssistantName,
		},
		Temperature: cfg.Temperature(),
	})

	session := storefront.NewSession(storefront.Config{
		Catalog:           store,
		Assistant:         manager,
		EmptyStateMessage: cfg.EmptyStateMessage,
	})

	router := handlers.NewRouter(handlers.RouterConfig{
		Session:             session,
		Telemetry:           apiTelemetry,
		AssistantConfigured: cfg.GeminiAPIKey != "",
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	slog.Info("Starting HTTP server",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"model", backend.Model())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server ready to accept connections", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(otelTelemetry.Serve)

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")

		// Give outstanding requests a deadline for completion
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
		if err := otelTelemetry.Shutdown(shutdownCtx); err != nil {
			slog.Error("Telemetry shutdown failed", "error", err)
		}
		slog.Info("Telemetry shutdown completed")
		return nil
	})

	return g.Wait()
}
