package transaction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an active expense entry.
type Transaction struct {
	ID        string
	Amount    decimal.Decimal
	Category  string
	Note      string
	Date      string // YYYY-MM-DD
	CreatedAt time.Time
}

// Trashed is a soft-deleted transaction waiting for restore or purge.
type Trashed struct {
	Transaction
	DeletedAt time.Time
}

// CreateParams carries the user-editable fields of a new transaction.
type CreateParams struct {
	Amount   decimal.Decimal
	Category string
	Note     string
	Date     string
}

// Patch holds the fields of an edit. Nil fields are left untouched.
type Patch struct {
	Amount   *decimal.Decimal
	Category *string
	Note     *string
	Date     *string
}

func (t *Transaction) clone() *Transaction {
	c := *t
	return &c
}

func (t *Trashed) clone() *Trashed {
	c := *t
	return &c
}

func (t *Transaction) apply(p Patch) {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}

	if p.Category != nil {
		t.Category = *p.Category
		if strings.TrimSpace(t.Category) == "" {
			t.Category = CategoryGeneral
		}
	}

	if p.Note != nil {
		t.Note = *p.Note
	}

	if p.Date != nil {
		t.Date = *p.Date
	}
}
