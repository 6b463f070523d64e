package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

// ErrNoValidTransactions is returned when a file yields no importable rows.
var ErrNoValidTransactions = errors.New("no valid transactions found in CSV")

type Service struct {
	parser *Parser
	ledger *transaction.Ledger
	logger *slog.Logger
}

func NewService(ledger *transaction.Ledger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		parser: NewParser(),
		ledger: ledger,
		logger: logger,
	}
}

// Import parses r and appends every accepted row to the ledger in file order.
// Skipped rows are not an error as long as at least one row was accepted.
func (s *Service) Import(ctx context.Context, r io.Reader) ([]*transaction.Transaction, error) {
	res, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	if len(res.Rows) == 0 {
		return nil, ErrNoValidTransactions
	}

	imported, err := s.ledger.Import(ctx, res.Rows)
	if err != nil {
		return nil, fmt.Errorf("importing transactions: %w", err)
	}

	s.logger.InfoContext(ctx, "imported transactions",
		"count", len(imported), "skipped", res.Skipped, "charset", res.Charset)

	return imported, nil
}
