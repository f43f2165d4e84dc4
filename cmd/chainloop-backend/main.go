// Package main is the entry point for the chainloop-backend server.
// It receives Chainloop attestation webhooks for Backstage catalog
// entities, persists them, and serves paginated/searchable retrieval
// endpoints for the frontend plugin.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/shebashio/backstage-chainloop-plugin/internal/config"
	"github.com/shebashio/backstage-chainloop-plugin/internal/database"
	"github.com/shebashio/backstage-chainloop-plugin/internal/http/handlers"
	"github.com/shebashio/backstage-chainloop-plugin/internal/http/mw"
	"github.com/shebashio/backstage-chainloop-plugin/internal/logging"
	"github.com/shebashio/backstage-chainloop-plugin/internal/repository"
	"github.com/shebashio/backstage-chainloop-plugin/internal/version"
)

func main() {
	logger := logging.SetDefault()

	v := version.Get()
	logger.Info("starting chainloop-backend",
		"version", v.Version,
		"commit", v.Commit,
		"built", v.Date,
		"go_version", v.GoVersion,
	)

	// Load configuration; fails fast when the webhook token is missing.
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := database.MigrateWithLogger(db, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	repos := repository.NewRepositories(db)

	// Create router
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Webhook payloads can be large; the ingress handler enforces the
	// same ceiling per request.
	router.Use(middleware.RequestSize(cfg.MaxBodyBytes))

	// Per-IP rate limit for unauthenticated traffic
	router.Use(httprate.LimitByIP(100, time.Minute))

	// Health endpoint with OpenAPI docs
	humaConfig := huma.DefaultConfig("Chainloop Backend", v.Version)
	humaConfig.Info.Description = "Receives Chainloop attestation webhooks for Backstage catalog entities and serves stored payload records."
	humaConfig.Servers = []*huma.Server{
		{URL: cfg.BaseURL, Description: "API Server"},
	}
	api := humachi.New(router, humaConfig)
	huma.Get(api, "/health", handlers.HealthCheck)

	// Kubernetes probes (hidden from docs - internal use only)
	hiddenConfig := huma.DefaultConfig("Chainloop Backend", v.Version)
	hiddenConfig.DocsPath = ""
	hiddenConfig.OpenAPIPath = ""
	hiddenConfig.SchemasPath = ""
	hiddenAPI := humachi.New(router, hiddenConfig)
	huma.Get(hiddenAPI, "/healthz", handlers.Livez)
	huma.Get(hiddenAPI, "/readyz", handlers.NewReadyzHandler(db).Readyz)

	// Plugin routes. Only the webhook ingress requires the shared token;
	// echo, records and details stay open to the hosting router's policy.
	ingress := handlers.NewIngressHandler(repos.Payload, cfg.MaxBodyBytes, logger)
	records := handlers.NewRecordsHandler(repos.Payload, logger)

	router.Post("/echo", ingress.HandleEcho)
	router.With(mw.WebhookToken(cfg.WebhookToken, logger)).
		Post("/entity/{uid}/webhook", ingress.HandleWebhook)
	router.Get("/records", records.HandleRecords)
	router.Get("/details/{id}", records.HandleDetails)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		<-sigChan

		logger.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.Port, "base_url", cfg.BaseURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
