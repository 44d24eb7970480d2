// Package server wires configuration, storage, services and the HTTP
// surface together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/cloudstack/internal/cryptox"
	"github.com/dmitrijs2005/cloudstack/internal/dbx"
	"github.com/dmitrijs2005/cloudstack/internal/logging"
	"github.com/dmitrijs2005/cloudstack/internal/server/auth"
	"github.com/dmitrijs2005/cloudstack/internal/server/config"
	"github.com/dmitrijs2005/cloudstack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cloudstack/internal/server/rest"
	"github.com/dmitrijs2005/cloudstack/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const driverName = "pgx"

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	itemService *services.ItemService
	httpServer  *rest.Server
}

// NewLogger builds the process logger from the configured format and level.
func NewLogger(w io.Writer, cfg *config.Config) logging.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return logging.New(w, cfg.LogFormat, level)
}

// NewApp connects to the database (retrying per the configured policy),
// bootstraps both tables and builds the HTTP server. Any failure here is
// fatal for the process.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	policy := dbx.RetryPolicy{Attempts: c.DBConnectAttempts, Delay: c.DBConnectDelay}
	db, err := dbx.Connect(ctx, driverName, c.DSN(), policy, logger.With("module", "db"))
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	rm := repomanager.NewPostgresRepositoryManager()

	tokens := auth.NewTokenService(auth.TokenConfig{
		SecretKey: []byte(c.SecretKey),
		TTL:       c.AccessTokenTTL,
		Leeway:    c.TokenLeeway,
	})

	us, err := services.NewUserService(db, rm, tokens,
		services.SeedAccount{Email: c.SeedEmail, Password: c.SeedPassword}, cryptox.DefaultParams)
	if err != nil {
		return nil, err
	}
	is := services.NewItemService(db, rm)

	if err := us.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("users bootstrap error: %w", err)
	}
	if err := is.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("items bootstrap error: %w", err)
	}
	logger.Info(ctx, "Schema ready", "seed_email", c.SeedEmail)

	hs := rest.NewServer(rest.Options{
		Address:        c.HTTPAddr,
		RootPath:       c.RootPath,
		RequestTimeout: c.RequestTimeout,
		CORSOrigins:    c.CORSOrigins,
		Production:     c.IsProduction(),
	}, logger, us, is, auth.NewResolver(tokens))

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: us,
		itemService: is,
		httpServer:  hs,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run serves HTTP until SIGINT/SIGTERM/SIGQUIT or ctx cancellation, then
// closes the pool.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := app.initSignalHandler(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting app...")

	err := app.httpServer.Run(ctx)

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")

	return err
}
