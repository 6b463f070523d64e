package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/config"
	"github.com/MrJamesThe3rd/pocketbook/internal/export"
	pocketbookHttp "github.com/MrJamesThe3rd/pocketbook/internal/http"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/events"
	exportHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/importcsv"
	statsHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/stats"
	txHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/transaction"
	trashHandler "github.com/MrJamesThe3rd/pocketbook/internal/http/trash"
	"github.com/MrJamesThe3rd/pocketbook/internal/importer"
	"github.com/MrJamesThe3rd/pocketbook/internal/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := events.NewHub(log, func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(cfg.Server.CORSOrigins, origin)
	})
	defer hub.Close()

	a, err := app.Open(ctx, cfg, log, hub)
	if err != nil {
		return err
	}
	defer a.Close()

	router := pocketbookHttp.New(
		cfg.Server.CORSOrigins,
		txHandler.NewHandler(a.Ledger, a.Trash, a.Clock),
		trashHandler.NewHandler(a.Trash),
		statsHandler.NewHandler(a.Ledger, a.Clock),
		importHandler.NewHandler(importer.NewService(a.Ledger, log)),
		exportHandler.NewHandler(export.NewService(a.Ledger), a.Clock),
		hub,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", "addr", srv.Addr, "records", a.Ledger.Len(), "trashed", a.Trash.Len())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.Server.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if _, err := a.Trash.SweepExpired(gctx); err != nil {
					log.Error("trash sweep failed", "error", err)
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "websocket_clients", hub.Len())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
