package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"markitdown/internal/config"
	"markitdown/internal/converter"
	"markitdown/internal/handler"
	"markitdown/internal/middleware"
	"markitdown/internal/service"

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
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"tmp_dir", cfg.TmpDir,
	)

	// Conversion backends, in priority order. The markitdown CLI handles
	// everything it knows about; the native HTML backend covers HTML and
	// URLs when the CLI is not installed.
	var backends []converter.Converter

	cli, err := converter.NewCLI(cfg.MarkitdownBin, logger)
	if err != nil {
		logger.Warn("markitdown binary unavailable, HTML/URL conversion only", "error", err)
	} else {
		backends = append(backends, cli)
	}
	backends = append(backends, converter.NewHTML())

	registry := converter.NewRegistry(backends...)

	// Create services and handlers
	convService := service.NewConversion(registry, cfg.TmpDir, logger)
	convHandler := handler.NewConversion(convService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", convHandler.HealthCheck)
	mux.HandleFunc("POST /convert", convHandler.ConvertFile)
	mux.HandleFunc("POST /convert-url", convHandler.ConvertURL)

	// Everything else is a structured 404
	mux.HandleFunc("/", convHandler.NotFound)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Logging → RequestID → MaxBytes → Routes
	h = middleware.MaxBytes(cfg.MaxUploadBytes)(h)
	h = middleware.RequestID(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		// Conversions of large documents can be slow; leave room before
		// the write deadline closes the response.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
