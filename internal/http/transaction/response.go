package transaction

import (
	"encoding/json"
	"time"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type transactionResponse struct {
	ID        string      `json:"id"`
	Amount    json.Number `json:"amount"`
	Category  string      `json:"category"`
	Color     string      `json:"color"`
	Note      string      `json:"note"`
	Date      string      `json:"date"`
	CreatedAt time.Time   `json:"createdAt"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:        tx.ID,
		Amount:    json.Number(tx.Amount.StringFixed(2)),
		Category:  tx.Category,
		Color:     transaction.CategoryColor(tx.Category),
		Note:      tx.Note,
		Date:      tx.Date,
		CreatedAt: tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
