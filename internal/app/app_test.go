package app_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/config"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_SQLitePersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.Data.Backend = config.BackendSQLite
	cfg.Data.SQLitePath = filepath.Join(t.TempDir(), "pocketbook.db")

	first, err := app.Open(ctx, cfg, discard(), nil)
	require.NoError(t, err)

	kept, err := first.Ledger.Add(ctx, transaction.CreateParams{Amount: decimal.RequireFromString("9.99"), Note: "kept"})
	require.NoError(t, err)

	binned, err := first.Ledger.Add(ctx, transaction.CreateParams{Amount: decimal.RequireFromString("1")})
	require.NoError(t, err)

	_, err = first.Trash.MoveToTrash(ctx, binned.ID)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := app.Open(ctx, cfg, discard(), nil)
	require.NoError(t, err)
	defer second.Close()

	require.Equal(t, 1, second.Ledger.Len())
	assert.Equal(t, kept.ID, second.Ledger.List()[0].ID)
	require.Equal(t, 1, second.Trash.Len())
	assert.Equal(t, binned.ID, second.Trash.List()[0].ID)
}

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Data.Backend = config.BackendMemory

	a, err := app.Open(context.Background(), cfg, discard(), nil)
	require.NoError(t, err)

	assert.Zero(t, a.Ledger.Len())
	assert.NoError(t, a.Close())
}
