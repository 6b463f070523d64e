package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

// record is the stored JSON shape of one entry. Active entries leave DeletedAt nil.
type record struct {
	ID        string      `json:"id"`
	Amount    json.Number `json:"amount"`
	Category  string      `json:"category"`
	Note      string      `json:"note"`
	Date      string      `json:"date"`
	CreatedAt time.Time   `json:"createdAt"`
	DeletedAt *time.Time  `json:"deletedAt,omitempty"`
}

func toRecord(tx *transaction.Transaction) record {
	return record{
		ID:        tx.ID,
		Amount:    json.Number(tx.Amount.String()),
		Category:  tx.Category,
		Note:      tx.Note,
		Date:      tx.Date,
		CreatedAt: tx.CreatedAt,
	}
}

func (r record) transaction() (*transaction.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("record %s: amount %q: %w", r.ID, r.Amount, err)
	}

	return &transaction.Transaction{
		ID:        r.ID,
		Amount:    amount,
		Category:  r.Category,
		Note:      r.Note,
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
	}, nil
}

func encodeActive(txs []*transaction.Transaction) ([]byte, error) {
	recs := make([]record, len(txs))
	for i, tx := range txs {
		recs[i] = toRecord(tx)
	}

	return json.Marshal(recs)
}

func encodeTrash(items []*transaction.Trashed) ([]byte, error) {
	recs := make([]record, len(items))
	for i, item := range items {
		recs[i] = toRecord(&item.Transaction)
		recs[i].DeletedAt = &item.DeletedAt
	}

	return json.Marshal(recs)
}

// decodeActive and decodeTrash report any unreadable payload as ErrCorruptState.
func decodeActive(payload []byte) ([]*transaction.Transaction, error) {
	var recs []record
	if err := json.Unmarshal(payload, &recs); err != nil {
		return nil, fmt.Errorf("%w: %w", transaction.ErrCorruptState, err)
	}

	txs := make([]*transaction.Transaction, len(recs))

	for i, r := range recs {
		tx, err := r.transaction()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", transaction.ErrCorruptState, err)
		}

		txs[i] = tx
	}

	return txs, nil
}

func decodeTrash(payload []byte) ([]*transaction.Trashed, error) {
	var recs []record
	if err := json.Unmarshal(payload, &recs); err != nil {
		return nil, fmt.Errorf("%w: %w", transaction.ErrCorruptState, err)
	}

	items := make([]*transaction.Trashed, len(recs))

	for i, r := range recs {
		tx, err := r.transaction()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", transaction.ErrCorruptState, err)
		}

		if r.DeletedAt == nil {
			return nil, fmt.Errorf("%w: record %s has no deletion time", transaction.ErrCorruptState, r.ID)
		}

		items[i] = &transaction.Trashed{Transaction: *tx, DeletedAt: *r.DeletedAt}
	}

	return items, nil
}
