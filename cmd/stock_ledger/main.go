package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/inventory_ledger/internal/audit"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/inventory_ledger/internal/core/services"
	"github.com/SscSPs/inventory_ledger/internal/handlers"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
	"github.com/SscSPs/inventory_ledger/internal/platform/config"
	"github.com/SscSPs/inventory_ledger/internal/platform/metrics"
	"github.com/SscSPs/inventory_ledger/internal/repositories/database/memory"
	"github.com/SscSPs/inventory_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/inventory_ledger/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Stock Ledger API
// @version 1.0
// @description Inventory stock ledger: products, dated stock movements and derived stock levels.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	var (
		repos  portsrepo.RepositoryProvider
		dbPool *pgxpool.Pool
	)
	if cfg.DatabaseURL != "" {
		dbPool, err = database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		if cfg.RunMigrations {
			if err := runMigrations(cfg, logger); err != nil {
				logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		repos = pgsql.NewRepositoryProvider(dbPool, cfg.LockTimeout)
	} else {
		logger.Warn(config.DatabaseURLKey+" not set, using the in-memory store; data is lost on restart")
		repos = memory.NewRepositoryProvider(memory.WithLockTimeout(cfg.LockTimeout))
	}

	sinks := []audit.Sink{audit.NewLogSink(logger)}
	posthogSink, err := audit.NewPosthogSink(cfg.PosthogAPIKey, cfg.PosthogEndpoint)
	if err != nil {
		logger.Error("Failed to initialize PostHog client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if posthogSink != nil {
		sinks = append(sinks, posthogSink)
	}
	if dbPool != nil {
		sinks = append(sinks, pgsql.NewPgxAuditLogRepository(dbPool))
	}
	emitter := audit.NewEmitter(sinks,
		audit.WithBufferSize(cfg.AuditBufferSize),
		audit.WithLogger(logger),
		audit.WithMetrics(m),
	)

	serviceContainer := services.NewServiceContainer(repos,
		services.WithClock(domain.SystemClock{}),
		services.WithLocation(cfg.Location),
		services.WithLockTimeout(cfg.LockTimeout),
		services.WithStrictThresholds(cfg.StrictThresholds),
		services.WithMetrics(m),
		services.WithAuditEmitter(emitter),
	)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	if m != nil {
		r.Use(m.GinMiddleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var apiMiddleware []gin.HandlerFunc
	if cfg.RateLimit != "" {
		rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
			os.Exit(1)
		}
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(rateLimiter))
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, apiMiddleware...)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}
	if err := emitter.Close(shutdownCtx); err != nil {
		logger.Error("Audit emitter did not drain", slog.String("error", err.Error()))
	}
	if posthogSink != nil {
		if err := posthogSink.Close(); err != nil {
			logger.Error("PostHog client close failed", slog.String("error", err.Error()))
		}
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = cfg.CORSAllowedOrigins
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-ID")
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	return c
}

// runMigrations applies all pending "up" migrations using a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
