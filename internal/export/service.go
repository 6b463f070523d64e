package export

import (
	"context"
	"errors"
	"io"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

// ErrNothingToExport is returned when the ledger has no records.
var ErrNothingToExport = errors.New("no transactions to export")

// Service writes the active set as CSV.
type Service struct {
	ledger *transaction.Ledger
}

func NewService(ledger *transaction.Ledger) *Service {
	return &Service{ledger: ledger}
}

// Export writes every active record in stored order and reports how many were written.
func (s *Service) Export(_ context.Context, w io.Writer) (int, error) {
	records := s.ledger.List()
	if len(records) == 0 {
		return 0, ErrNothingToExport
	}

	if err := WriteCSV(w, records); err != nil {
		return 0, err
	}

	return len(records), nil
}
