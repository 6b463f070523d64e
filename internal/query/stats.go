package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type DailyTotal struct {
	Date  string
	Total decimal.Decimal
}

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Color    string
}

// Stats summarizes the whole active set, regardless of any list filter.
type Stats struct {
	TodayTotal decimal.Decimal
	MonthTotal decimal.Decimal
	Last7      []DailyTotal
	Last30     []DailyTotal
	ByCategory []CategoryTotal
}

func ComputeStats(records []*transaction.Transaction, today time.Time) Stats {
	day := today.Format(time.DateOnly)
	month := day[:len("2006-01")]

	var s Stats

	for _, tx := range records {
		if tx.Date == day {
			s.TodayTotal = s.TodayTotal.Add(tx.Amount)
		}

		if strings.HasPrefix(tx.Date, month) {
			s.MonthTotal = s.MonthTotal.Add(tx.Amount)
		}
	}

	s.Last7 = TrailingDailyTotals(records, today, 7)
	s.Last30 = TrailingDailyTotals(records, today, 30)
	s.ByCategory = CategoryTotals(records)

	return s
}

// TrailingDailyTotals returns one total per calendar day for the n days ending today,
// oldest first. Days without records total zero.
func TrailingDailyTotals(records []*transaction.Transaction, today time.Time, n int) []DailyTotal {
	byDate := make(map[string]decimal.Decimal, len(records))
	for _, tx := range records {
		byDate[tx.Date] = byDate[tx.Date].Add(tx.Amount)
	}

	out := make([]DailyTotal, n)

	for i := range n {
		date := today.AddDate(0, 0, i-n+1).Format(time.DateOnly)
		out[i] = DailyTotal{Date: date, Total: byDate[date]}
	}

	return out
}

// CategoryTotals sums amounts per category, largest first with ties by name.
// Categories without records do not appear.
func CategoryTotals(records []*transaction.Transaction) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range records {
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}

	out := make([]CategoryTotal, 0, len(sums))
	for category, total := range sums {
		out = append(out, CategoryTotal{
			Category: category,
			Total:    total,
			Color:    transaction.CategoryColor(category),
		})
	}

	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return out
}
