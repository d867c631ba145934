// Package server wires configuration, storage, services and the HTTP API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/httpapi"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// NewApp opens the database, applies migrations and builds the services and
// HTTP server. The caller owns the returned App and must call Run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	app, err := newApp(ctx, cfg, db, repomanager.NewPostgresRepositoryManager(), logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.Config, db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) (*App, error) {
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	hasher := cryptox.NewHasher(cfg.HashIterations)
	signer := auth.NewSigner([]byte(cfg.SecretKey), cfg.Issuer, cfg.Audience, cfg.AccessTokenValidityDuration)

	tokens := services.NewTokenService(db, rm, hasher, signer, cfg.RefreshTokenValidityDuration, logger)
	users := services.NewUserService(db, rm, hasher, tokens, logger)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: httpapi.NewServer(cfg.HTTPAddr, users, signer, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled, a termination signal arrives or the
// server fails, then shuts down within the configured timeout and closes the
// database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}

	app.logger.Info(shutdownCtx, "app stopped")
	return runErr
}
