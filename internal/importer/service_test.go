package importer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
	"github.com/MrJamesThe3rd/pocketbook/internal/export"
	"github.com/MrJamesThe3rd/pocketbook/internal/importer"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction/store"
)

func newLedger(t *testing.T) *transaction.Ledger {
	t.Helper()

	ledger := transaction.NewLedger(store.NewMemory(), clock.NewFixed(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, ledger.Load(context.Background()))

	return ledger
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("AppendsAcceptedRows", func(t *testing.T) {
		ledger := newLedger(t)
		existing, err := ledger.Add(ctx, transaction.CreateParams{Amount: decimal.RequireFromString("1")})
		require.NoError(t, err)

		svc := importer.NewService(ledger, nil)
		got, err := svc.Import(ctx, strings.NewReader(
			"Date,Category,Amount,Note\n2024-02-01,Bills,75.50,\"Electric bill\"\nmalformed-line\n"))
		require.NoError(t, err)
		require.Len(t, got, 1)

		assert.Equal(t, "Bills", got[0].Category)
		assert.Equal(t, "75.5", got[0].Amount.String())
		assert.Equal(t, "Electric bill", got[0].Note)

		list := ledger.List()
		require.Len(t, list, 2)
		assert.Equal(t, existing.ID, list[0].ID)
		assert.Equal(t, got[0].ID, list[1].ID)
	})

	t.Run("NoValidRows", func(t *testing.T) {
		ledger := newLedger(t)
		svc := importer.NewService(ledger, nil)

		got, err := svc.Import(ctx, strings.NewReader("Date,Category,Amount,Note\nnope\n"))

		assert.ErrorIs(t, err, importer.ErrNoValidTransactions)
		assert.Nil(t, got)
		assert.Zero(t, ledger.Len())
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := newLedger(t)

	inputs := []transaction.CreateParams{
		{Amount: decimal.RequireFromString("150.00"), Category: "Food", Note: "weekly shop", Date: "2024-01-10"},
		{Amount: decimal.RequireFromString("50.25"), Category: "Transport", Note: `taxi, "late"`, Date: "2024-01-15"},
		{Amount: decimal.RequireFromString("0.99"), Category: "Entertainment", Note: "", Date: "2024-01-16"},
		{Amount: decimal.RequireFromString("12"), Category: "Gifts", Note: "card\nfor mum", Date: "2024-01-17"},
	}

	for _, p := range inputs {
		_, err := source.Add(ctx, p)
		require.NoError(t, err)
	}

	var buf bytes.Buffer

	_, err := export.NewService(source).Export(ctx, &buf)
	require.NoError(t, err)

	target := newLedger(t)
	imported, err := importer.NewService(target, nil).Import(ctx, &buf)
	require.NoError(t, err)

	original := source.List()
	require.Len(t, imported, len(original))

	for i := range original {
		assert.Equal(t, original[i].Date, imported[i].Date)
		assert.Equal(t, original[i].Category, imported[i].Category)
		assert.True(t, original[i].Amount.Equal(imported[i].Amount))
		assert.Equal(t, original[i].Note, imported[i].Note)
		assert.NotEqual(t, original[i].ID, imported[i].ID)
	}
}
