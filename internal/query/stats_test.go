package query_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/query"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

func TestScenario_FoodAndTransport(t *testing.T) {
	records := []*transaction.Transaction{
		tx("food", "150.00", "Food", "", "2024-01-10"),
		tx("transport", "50.00", "Transport", "", "2024-01-15"),
	}

	assert.Equal(t, []string{"food"}, ids(query.Filter(records, query.Query{Category: "Food"})))

	totals := query.CategoryTotals(records)
	require.Len(t, totals, 2)
	assert.Equal(t, "Food", totals[0].Category)
	assert.Equal(t, "150", totals[0].Total.String())
	assert.Equal(t, "#f59e0b", totals[0].Color)
	assert.Equal(t, "Transport", totals[1].Category)
	assert.Equal(t, "50", totals[1].Total.String())
}

func TestComputeStats(t *testing.T) {
	today := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	records := fixtures()

	s := query.ComputeStats(records, today)

	assert.Equal(t, "62", s.TodayTotal.String())
	assert.Equal(t, "221.99", s.MonthTotal.String())

	require.Len(t, s.Last7, 7)
	assert.Equal(t, "2024-01-09", s.Last7[0].Date)
	assert.Equal(t, "2024-01-15", s.Last7[6].Date)
	assert.Equal(t, "159.99", s.Last7[1].Total.String())
	assert.True(t, s.Last7[0].Total.IsZero())

	require.Len(t, s.Last30, 30)
	assert.Equal(t, "2023-12-17", s.Last30[0].Date)
	assert.Equal(t, "2024-01-15", s.Last30[29].Date)
}

func TestCategoryTotals_SumMatchesLedger(t *testing.T) {
	records := fixtures()

	var want, got decimal.Decimal
	for _, r := range records {
		want = want.Add(r.Amount)
	}

	for _, c := range query.CategoryTotals(records) {
		got = got.Add(c.Total)
	}

	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func TestCategoryTotals_OrderAndTies(t *testing.T) {
	records := []*transaction.Transaction{
		tx("1", "10", "Transport", "", "2024-01-01"),
		tx("2", "10", "Bills", "", "2024-01-01"),
		tx("3", "25", "Gifts", "", "2024-01-01"),
	}

	totals := query.CategoryTotals(records)

	got := make([]string, len(totals))
	for i, c := range totals {
		got[i] = c.Category
	}

	assert.Equal(t, []string{"Gifts", "Bills", "Transport"}, got)
	assert.Equal(t, transaction.FallbackColor, totals[0].Color)
	assert.Empty(t, query.CategoryTotals(nil))
}
