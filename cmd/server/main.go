/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the availability engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load YAML configuration
  3. Initialize SQLite store
  4. Connect Redis cache (optional)
  5. Create API handler with dependencies
  6. Start cache warmer and HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Path to YAML config file (default: config.yaml)
  -port    HTTP server port override (takes precedence over config)
  -db      SQLite database path override
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the cache warmer
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file config
  ./server -config=./configs/config.yaml

  # Run with in-memory database
  ./server -db=":memory:"

  # Run on different port
  ./server -port=3000

ENVIRONMENT:
  ${...} placeholders in the config file are expanded from the
  environment, e.g. REDIS_PASSWORD.

SEE ALSO:
  - config/config.go: Configuration schema and defaults
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noyou75/GitlabsApp-Backend-sub001/api"
	"github.com/noyou75/GitlabsApp-Backend-sub001/cache"
	"github.com/noyou75/GitlabsApp-Backend-sub001/config"
	"github.com/noyou75/GitlabsApp-Backend-sub001/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	port := flag.Int("port", 0, "HTTP server port override")
	dbPath := flag.String("db", "", "SQLite database path override")
	flag.Parse()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	// Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
		logger.Warn().Str("path", *configPath).Msg("config file not found, using defaults")
		cfg = config.Default()
	}
	if *port != 0 {
		cfg.Server.Address = fmt.Sprintf(":%d", *port)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	// Initialize store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("failed to initialize database")
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store)

	// Optional Redis-backed response cache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Address).Msg("redis unreachable, cache disabled")
		} else {
			handler.Cache = cache.New(rdb, cfg.CacheTTL())
			logger.Info().Str("addr", cfg.Redis.Address).Dur("ttl", cfg.CacheTTL()).Msg("redis cache enabled")
		}
	}

	warmer := api.NewCacheWarmer(handler, logger)
	warmer.Start()
	defer warmer.Stop()

	// Create router
	router := api.NewRouter(handler, api.RouterOptions{
		Metrics: cfg.Monitoring.PrometheusEnabled,
	})

	// Create server
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	go func() {
		logger.Info().Str("addr", cfg.Server.Address).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
