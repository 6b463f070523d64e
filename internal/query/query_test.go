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

func tx(id, amount, category, note, date string) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       id,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Note:     note,
		Date:     date,
	}
}

func ids(txs []*transaction.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}

	return out
}

func fixtures() []*transaction.Transaction {
	return []*transaction.Transaction{
		tx("1", "150.00", "Food", "Groceries at market", "2024-01-10"),
		tx("2", "50.00", "Transport", "Train ticket", "2024-01-15"),
		tx("3", "12.00", "Food", "coffee", "2024-01-15"),
		tx("4", "80.00", "Bills", "Phone", "2024-02-01"),
		tx("5", "9.99", "Entertainment", "food festival", "2024-01-10"),
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query query.Query
		want  []string
	}{
		{
			name:  "NoCriteria",
			query: query.Query{},
			want:  []string{"4", "2", "3", "1", "5"},
		},
		{
			name:  "CategoryAllIsNoOp",
			query: query.Query{Category: query.CategoryAll},
			want:  []string{"4", "2", "3", "1", "5"},
		},
		{
			name:  "Category",
			query: query.Query{Category: "Food"},
			want:  []string{"3", "1"},
		},
		{
			name:  "SearchMatchesNoteOrCategoryIgnoringCase",
			query: query.Query{Search: "FOOD"},
			want:  []string{"3", "1", "5"},
		},
		{
			name:  "InclusiveDateRange",
			query: query.Query{DateFrom: "2024-01-10", DateTo: "2024-01-15"},
			want:  []string{"2", "3", "1", "5"},
		},
		{
			name:  "Conjunctive",
			query: query.Query{Search: "food", Category: "Food", DateFrom: "2024-01-11"},
			want:  []string{"3"},
		},
		{
			name:  "WhitespaceSearchIsASubstring",
			query: query.Query{Search: " "},
			want:  []string{"2", "1", "5"},
		},
		{
			name:  "DoubleSpaceMatchesNothing",
			query: query.Query{Search: "  "},
			want:  []string{},
		},
		{
			name:  "NoMatch",
			query: query.Query{Search: "rent"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(query.Filter(fixtures(), tt.query)))
		})
	}
}

func TestFilter_OrderIndependent(t *testing.T) {
	records := fixtures()
	all := query.Query{Search: "o", Category: "Food", DateFrom: "2024-01-01", DateTo: "2024-01-31"}

	stepwise := query.Filter(records, query.Query{DateFrom: all.DateFrom, DateTo: all.DateTo})
	stepwise = query.Filter(stepwise, query.Query{Category: all.Category})
	stepwise = query.Filter(stepwise, query.Query{Search: all.Search})

	assert.Equal(t, ids(query.Filter(records, all)), ids(stepwise))
}

func TestFilter_StableAndDoesNotMutate(t *testing.T) {
	records := fixtures()
	before := ids(records)

	got := query.Filter(records, query.Query{})

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Date, got[i].Date)
	}

	assert.Equal(t, before, ids(records))
}

func TestQuery_IsZero(t *testing.T) {
	assert.True(t, query.Query{Category: query.CategoryAll}.IsZero())
	assert.False(t, query.Query{Search: "  "}.IsZero())
	assert.False(t, query.Query{DateTo: "2024-01-01"}.IsZero())
}

func TestApplyPreset(t *testing.T) {
	today := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	base := query.Query{Search: "x", Category: "Food", DateFrom: "2020-01-01", DateTo: "2020-12-31"}

	tests := []struct {
		preset   query.Preset
		wantFrom string
		wantTo   string
	}{
		{preset: query.PresetToday, wantFrom: "2024-03-15", wantTo: "2024-03-15"},
		{preset: query.PresetWeek, wantFrom: "2024-03-08", wantTo: "2024-03-15"},
		{preset: query.PresetMonth, wantFrom: "2024-03-01", wantTo: "2024-03-15"},
		{preset: query.PresetClear, wantFrom: "", wantTo: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			got := query.ApplyPreset(base, tt.preset, today)

			assert.Equal(t, tt.wantFrom, got.DateFrom)
			assert.Equal(t, tt.wantTo, got.DateTo)
			assert.Equal(t, base.Search, got.Search)
			assert.Equal(t, base.Category, got.Category)
		})
	}
}

func TestParsePreset(t *testing.T) {
	p, err := query.ParsePreset(" Week ")
	require.NoError(t, err)
	assert.Equal(t, query.PresetWeek, p)

	_, err = query.ParsePreset("year")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "today, week, month, clear")
}
