// Command ff-server starts the Fiscal Fit REST API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fiscalfit/server/internal/config"
	"github.com/fiscalfit/server/internal/limiter"
	"github.com/fiscalfit/server/internal/migrate"
	"github.com/fiscalfit/server/internal/repository/postgres"
	httpserver "github.com/fiscalfit/server/internal/server/http"
	"github.com/fiscalfit/server/internal/service"
	"github.com/fiscalfit/server/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and serves the REST API until
// interrupted.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
		zap.String("env", cfg.Environment),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	db := &postgres.DB{Pool: pool}
	userRepo := postgres.NewUserRepo(db)
	lim := limiter.NewPG(pool, 15*time.Minute, 5, 15*time.Minute)
	tokens := token.NewManager(
		token.Config{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTExpiry},
		token.Config{Secret: []byte(cfg.RefreshSecret), TTL: cfg.RefreshExpiry},
	)

	authSvc := service.NewAuthService(userRepo, tokens, lim, logger)
	authHandler := &httpserver.AuthHandler{Auth: authSvc, Log: logger}

	router := httpserver.NewRouter(authHandler, tokens, logger, httpserver.HealthInfo{
		Name:        "Fiscal Fit API",
		Version:     version,
		Environment: cfg.Environment,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- server.ListenAndServe()
	}()

	// Wait for stop: finish in-flight requests, then release the pool.
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
