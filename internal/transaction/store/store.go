package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

// Collection names, also the keys of the collections table.
const (
	CollectionActive = "transactions"
	CollectionTrash  = "trash"
)

// Store keeps each collection as one JSON document in the collections table.
// It works against both SQLite and PostgreSQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) LoadActive(ctx context.Context) ([]*transaction.Transaction, error) {
	payload, err := s.load(ctx, CollectionActive)
	if err != nil || payload == nil {
		return nil, err
	}

	txs, err := decodeActive(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", CollectionActive, err)
	}

	return txs, nil
}

func (s *Store) SaveActive(ctx context.Context, txs []*transaction.Transaction) error {
	payload, err := encodeActive(txs)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", CollectionActive, err)
	}

	return s.save(ctx, CollectionActive, payload)
}

func (s *Store) LoadTrash(ctx context.Context) ([]*transaction.Trashed, error) {
	payload, err := s.load(ctx, CollectionTrash)
	if err != nil || payload == nil {
		return nil, err
	}

	items, err := decodeTrash(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", CollectionTrash, err)
	}

	return items, nil
}

func (s *Store) SaveTrash(ctx context.Context, items []*transaction.Trashed) error {
	payload, err := encodeTrash(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", CollectionTrash, err)
	}

	return s.save(ctx, CollectionTrash, payload)
}

// load returns nil without error when the collection was never written.
func (s *Store) load(ctx context.Context, name string) ([]byte, error) {
	var payload string

	err := s.db.QueryRowContext(ctx, `SELECT payload FROM collections WHERE name = $1`, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	return []byte(payload), nil
}

func (s *Store) save(ctx context.Context, name string, payload []byte) error {
	query := `
		INSERT INTO collections (name, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, name, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}

	return nil
}
