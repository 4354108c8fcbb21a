package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"estatedocs/internal/config"
	"estatedocs/internal/handler"
	"estatedocs/internal/middleware"
	"estatedocs/internal/repository/postgres"
	"estatedocs/internal/service"
	"estatedocs/internal/service/analysis"
	"estatedocs/internal/wizard"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.Debug {
		// Debug runs also tee logs to a timestamped file, keeping the 5 newest
		logFile, err := config.SetupLogFile("logs", 5)
		if err != nil {
			log.Printf("Failed to set up log file, logging to stdout only: %v", err)
		} else {
			defer logFile.Close()
			logOutput = io.MultiWriter(os.Stdout, logFile)
		}
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	draftRepo := postgres.NewDraftRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Load the step registry from embedded configuration
	stepRegistry, err := wizard.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load step registry: %v", err)
	}
	logger.Info("step registry loaded")

	// Setup analysis providers
	providerRegistry, defaultProvider := analysis.SetupProviders(cfg, logger)
	analysisService := analysis.NewService(providerRegistry, defaultProvider, cfg.DefaultModel, logger)

	// Create services
	autosaver := service.NewAutosaver(draftRepo, cfg.AutosaveDebounce, cfg.AutosaveMaxRetries, logger)
	sessionService := service.NewSessionService(stepRegistry, draftRepo, docRepo, txManager, autosaver, logger)
	docService := service.NewDocumentService(docRepo, logger)
	exportService := service.NewExportService(cfg.RenderServiceURL, logger)

	// Create handlers
	sessionHandler := handler.NewSessionHandler(sessionService, analysisService, logger)
	docHandler := handler.NewDocumentHandler(docService, exportService, analysisService, logger)
	stepsHandler := handler.NewStepsHandler(stepRegistry, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Step configuration
	mux.HandleFunc("GET /api/document-types/{type}/steps", stepsHandler.GetSteps)

	// Session routes
	mux.HandleFunc("POST /api/sessions", sessionHandler.CreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", sessionHandler.GetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", sessionHandler.AbandonSession)
	mux.HandleFunc("PATCH /api/sessions/{id}/fields", sessionHandler.UpdateField)
	mux.HandleFunc("POST /api/sessions/{id}/people", sessionHandler.AddPerson)
	mux.HandleFunc("DELETE /api/sessions/{id}/people/{list}/{index}", sessionHandler.RemovePerson)
	mux.HandleFunc("POST /api/sessions/{id}/next", sessionHandler.Next)
	mux.HandleFunc("POST /api/sessions/{id}/previous", sessionHandler.Previous)
	mux.HandleFunc("POST /api/sessions/{id}/jump", sessionHandler.JumpTo)
	mux.HandleFunc("GET /api/sessions/{id}/progress", sessionHandler.Progress)
	mux.HandleFunc("GET /api/sessions/{id}/preview", sessionHandler.Preview)
	mux.HandleFunc("POST /api/sessions/{id}/analyze", sessionHandler.Analyze)

	// Generated document routes
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)
	mux.HandleFunc("POST /api/documents/{id}/analyze", docHandler.Analyze)
	mux.HandleFunc("POST /api/documents/{id}/export", docHandler.Export)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Logging → Routes
	httpHandler = middleware.RequestLogger(logger)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
