// Package query derives filtered views and summaries from the active set. Nothing here
// mutates its input.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

// CategoryAll disables the category predicate, as does an empty Category.
const CategoryAll = "All"

// Query holds the list view's criteria. Empty fields match everything.
type Query struct {
	Search   string
	Category string
	DateFrom string // inclusive, YYYY-MM-DD
	DateTo   string // inclusive, YYYY-MM-DD
}

// IsZero reports whether q has no active criteria.
func (q Query) IsZero() bool {
	return q.Search == "" &&
		(q.Category == "" || q.Category == CategoryAll) &&
		q.DateFrom == "" && q.DateTo == ""
}

// Filter returns the records matching every criterion in q, newest date first.
// Records sharing a date keep their stored order.
func Filter(records []*transaction.Transaction, q Query) []*transaction.Transaction {
	search := strings.ToLower(q.Search)

	out := make([]*transaction.Transaction, 0, len(records))

	for _, tx := range records {
		if search != "" &&
			!strings.Contains(strings.ToLower(tx.Note), search) &&
			!strings.Contains(strings.ToLower(tx.Category), search) {
			continue
		}

		if q.Category != "" && q.Category != CategoryAll && tx.Category != q.Category {
			continue
		}

		// ISO dates compare correctly as strings.
		if q.DateFrom != "" && tx.Date < q.DateFrom {
			continue
		}

		if q.DateTo != "" && tx.Date > q.DateTo {
			continue
		}

		out = append(out, tx)
	}

	slices.SortStableFunc(out, func(a, b *transaction.Transaction) int {
		return cmp.Compare(b.Date, a.Date)
	})

	return out
}
