package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
	"github.com/MrJamesThe3rd/pocketbook/internal/export"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction/store"
)

func TestWriteCSV(t *testing.T) {
	tests := []struct {
		name    string
		records []*transaction.Transaction
		want    string
	}{
		{
			name: "HeaderOnly",
			want: "Date,Category,Amount,Note",
		},
		{
			name: "NoteAlwaysQuoted",
			records: []*transaction.Transaction{
				{Date: "2024-02-01", Category: "Bills", Amount: decimal.RequireFromString("75.50"), Note: "Electric bill"},
				{Date: "2024-02-02", Category: "Food", Amount: decimal.RequireFromString("3"), Note: ""},
			},
			want: "Date,Category,Amount,Note\n" +
				"2024-02-01,Bills,75.5,\"Electric bill\"\n" +
				"2024-02-02,Food,3,\"\"",
		},
		{
			name: "QuotesAndCommasInNote",
			records: []*transaction.Transaction{
				{Date: "2024-02-01", Category: "Food", Amount: decimal.RequireFromString("12.25"), Note: `pizza, "large"`},
			},
			want: "Date,Category,Amount,Note\n2024-02-01,Food,12.25,\"pizza, \"\"large\"\"\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, export.WriteCSV(&buf, tt.records))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "expenses_2024-03-05.csv", export.Filename(now))
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	ledger := transaction.NewLedger(store.NewMemory(), clock.NewFixed(time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)))
	svc := export.NewService(ledger)

	var buf bytes.Buffer

	n, err := svc.Export(ctx, &buf)
	assert.ErrorIs(t, err, export.ErrNothingToExport)
	assert.Zero(t, n)
	assert.Empty(t, buf.String())

	_, err = ledger.Add(ctx, transaction.CreateParams{Amount: decimal.RequireFromString("9.99"), Category: "Health", Note: "vitamins"})
	require.NoError(t, err)

	n, err = svc.Export(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Date,Category,Amount,Note\n2024-03-05,Health,9.99,\"vitamins\"", buf.String())
}
