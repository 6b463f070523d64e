package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
)

// Ledger owns the active set. Records are kept newest-added first.
type Ledger struct {
	mu       sync.Mutex
	repo     Repository
	clock    clock.Clock
	logger   *slog.Logger
	notifier Notifier

	active []*Transaction
}

func NewLedger(repo Repository, clk clock.Clock, opts ...Option) *Ledger {
	o := buildOptions(opts)

	return &Ledger{
		repo:     repo,
		clock:    clk,
		logger:   o.logger,
		notifier: o.notifier,
	}
}

// Load replaces the in-memory set with the persisted one. An unreadable collection
// starts the ledger empty instead of failing.
func (l *Ledger) Load(ctx context.Context) error {
	txs, err := l.repo.LoadActive(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorruptState) {
			return fmt.Errorf("load transactions: %w", err)
		}

		l.logger.WarnContext(ctx, "stored transactions unreadable, starting empty", "error", err)
		txs = nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.active = txs

	return nil
}

// List returns copies of the active records in stored order.
func (l *Ledger) List() []*Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*Transaction, len(l.active))
	for i, tx := range l.active {
		out[i] = tx.clone()
	}

	return out
}

// Get returns a copy of the record with the given id, or nil.
func (l *Ledger) Get(id string) *Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.index(id); i >= 0 {
		return l.active[i].clone()
	}

	return nil
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.active)
}

func (l *Ledger) Add(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := validateAmount(params.Amount); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx := l.newTransaction(params)

	next := make([]*Transaction, 0, len(l.active)+1)
	next = append(next, tx)
	next = append(next, l.active...)

	if err := l.persist(ctx, next); err != nil {
		return nil, err
	}

	return tx.clone(), nil
}

// Update edits amount, category, note and date. An unknown id is a no-op and returns nil.
func (l *Ledger) Update(ctx context.Context, id string, p Patch) (*Transaction, error) {
	if p.Amount != nil {
		if err := validateAmount(*p.Amount); err != nil {
			return nil, err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return nil, nil
	}

	updated := l.active[i].clone()
	updated.apply(p)

	next := slices.Clone(l.active)
	next[i] = updated

	if err := l.persist(ctx, next); err != nil {
		return nil, err
	}

	return updated.clone(), nil
}

// Remove extracts a record from the active set. An unknown id is a no-op and returns nil.
func (l *Ledger) Remove(ctx context.Context, id string) (*Transaction, error) {
	tx, _, err := l.extract(ctx, id)
	return tx, err
}

// Import appends records in the given order, each with a fresh id.
func (l *Ledger) Import(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	for _, p := range params {
		if err := validateAmount(p.Amount); err != nil {
			return nil, err
		}
	}

	if len(params) == 0 {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	added := make([]*Transaction, len(params))
	for i, p := range params {
		added[i] = l.newTransaction(p)
	}

	next := make([]*Transaction, 0, len(l.active)+len(added))
	next = append(next, l.active...)
	next = append(next, added...)

	if err := l.persist(ctx, next); err != nil {
		return nil, err
	}

	out := make([]*Transaction, len(added))
	for i, tx := range added {
		out[i] = tx.clone()
	}

	return out, nil
}

// Clear drops every active record.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.persist(ctx, []*Transaction{})
}

func (l *Ledger) extract(ctx context.Context, id string) (*Transaction, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return nil, -1, nil
	}

	tx := l.active[i]
	next := slices.Delete(slices.Clone(l.active), i, i+1)

	if err := l.persist(ctx, next); err != nil {
		return nil, -1, err
	}

	return tx.clone(), i, nil
}

// prepend re-inserts records at the front, one after the other, so the last one
// given ends up first.
func (l *Ledger) prepend(ctx context.Context, txs ...*Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]*Transaction, 0, len(l.active)+len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		next = append(next, txs[i].clone())
	}

	next = append(next, l.active...)

	return l.persist(ctx, next)
}

func (l *Ledger) insertAt(ctx context.Context, tx *Transaction, i int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i = min(max(i, 0), len(l.active))

	return l.persist(ctx, slices.Insert(slices.Clone(l.active), i, tx.clone()))
}

func (l *Ledger) newTransaction(p CreateParams) *Transaction {
	date := p.Date
	if date == "" {
		date = clock.Today(l.clock)
	}

	category := p.Category
	if strings.TrimSpace(category) == "" {
		category = CategoryGeneral
	}

	return &Transaction{
		ID:        uuid.NewString(),
		Amount:    p.Amount,
		Category:  category,
		Note:      p.Note,
		Date:      date,
		CreatedAt: l.clock.Now(),
	}
}

// persist writes next and only then makes it the current set. Callers hold l.mu.
func (l *Ledger) persist(ctx context.Context, next []*Transaction) error {
	if err := l.repo.SaveActive(ctx, next); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}

	l.active = next
	l.notifier.Notify(EventLedgerChanged)

	return nil
}

func (l *Ledger) index(id string) int {
	return slices.IndexFunc(l.active, func(tx *Transaction) bool { return tx.ID == id })
}
