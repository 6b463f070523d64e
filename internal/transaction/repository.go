package transaction

import (
	"context"
)

// Repository persists the two independent collections as whole documents.
//
//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=transaction
type Repository interface {
	LoadActive(ctx context.Context) ([]*Transaction, error)
	SaveActive(ctx context.Context, txs []*Transaction) error
	LoadTrash(ctx context.Context) ([]*Trashed, error)
	SaveTrash(ctx context.Context, items []*Trashed) error
}
