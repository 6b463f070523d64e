// Package app opens the configured storage backend and loads the ledger and trash
// from it. Both binaries start from here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
	"github.com/MrJamesThe3rd/pocketbook/internal/config"
	"github.com/MrJamesThe3rd/pocketbook/internal/database"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction/store"
)

type App struct {
	Ledger *transaction.Ledger
	Trash  *transaction.Trash
	Clock  clock.Clock

	db *sql.DB
}

// Open connects to the backend, loads both collections and purges expired trash.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, notifier transaction.Notifier) (*App, error) {
	a := &App{Clock: clock.System{}}

	repo, err := a.repository(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := []transaction.Option{transaction.WithLogger(logger)}
	if notifier != nil {
		opts = append(opts, transaction.WithNotifier(notifier))
	}

	a.Ledger = transaction.NewLedger(repo, a.Clock, opts...)
	a.Trash = transaction.NewTrash(a.Ledger, repo, a.Clock, opts...)

	if err := a.Ledger.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	if err := a.Trash.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("load trash: %w", err)
	}

	if _, err := a.Trash.SweepExpired(ctx); err != nil {
		logger.Warn("startup sweep failed", "error", err)
	}

	return a, nil
}

func (a *App) repository(cfg *config.Config, logger *slog.Logger) (transaction.Repository, error) {
	driver, dsn, ok := cfg.Database()
	if !ok {
		logger.Warn("using in-memory storage, data will not survive a restart")
		return store.NewMemory(), nil
	}

	db, err := database.New(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := database.RunMigrations(db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	a.db = db
	logger.Info("storage ready", "backend", cfg.Data.Backend)

	return store.New(db), nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	return a.db.Close()
}
