package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
)

// RetentionWindow is how long a trashed record stays restorable.
const RetentionWindow = 7 * 24 * time.Hour

const day = 24 * time.Hour

// Trash owns soft-deleted records. It takes records out of the Ledger on delete and
// hands them back on restore.
//
// Lock order is Trash then Ledger; the Ledger never calls back into the Trash.
type Trash struct {
	mu       sync.Mutex
	ledger   *Ledger
	repo     Repository
	clock    clock.Clock
	logger   *slog.Logger
	notifier Notifier

	items []*Trashed
}

func NewTrash(ledger *Ledger, repo Repository, clk clock.Clock, opts ...Option) *Trash {
	o := buildOptions(opts)

	return &Trash{
		ledger:   ledger,
		repo:     repo,
		clock:    clk,
		logger:   o.logger,
		notifier: o.notifier,
	}
}

func (t *Trash) Load(ctx context.Context) error {
	items, err := t.repo.LoadTrash(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorruptState) {
			return fmt.Errorf("load trash: %w", err)
		}

		t.logger.WarnContext(ctx, "stored trash unreadable, starting empty", "error", err)
		items = nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = items

	return nil
}

// List returns copies of the trashed records in the order they were deleted.
func (t *Trash) List() []*Trashed {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*Trashed, len(t.items))
	for i, item := range t.items {
		out[i] = item.clone()
	}

	return out
}

func (t *Trash) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.items)
}

// MoveToTrash soft-deletes an active record. An unknown id is a no-op and returns nil.
func (t *Trash) MoveToTrash(ctx context.Context, id string) (*Trashed, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tx, pos, err := t.ledger.extract(ctx, id)
	if err != nil || tx == nil {
		return nil, err
	}

	item := &Trashed{Transaction: *tx, DeletedAt: t.clock.Now()}
	next := append(slices.Clone(t.items), item)

	if err := t.persist(ctx, next); err != nil {
		if rbErr := t.ledger.insertAt(ctx, tx, pos); rbErr != nil {
			return nil, errors.Join(err, fmt.Errorf("roll back delete: %w", rbErr))
		}

		return nil, err
	}

	return item.clone(), nil
}

// Restore puts a trashed record back at the front of the active set.
// An unknown id is a no-op and returns nil.
func (t *Trash) Restore(ctx context.Context, id string) (*Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.index(id)
	if i < 0 {
		return nil, nil
	}

	tx := t.items[i].Transaction.clone()

	if err := t.moveToLedger(ctx, []*Transaction{tx}, slices.Delete(slices.Clone(t.items), i, i+1)); err != nil {
		return nil, err
	}

	return tx.clone(), nil
}

// PermanentlyDelete purges one trashed record. It reports whether the id was present.
func (t *Trash) PermanentlyDelete(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.index(id)
	if i < 0 {
		return false, nil
	}

	if err := t.persist(ctx, slices.Delete(slices.Clone(t.items), i, i+1)); err != nil {
		return false, err
	}

	return true, nil
}

// RestoreSelected restores every listed id that is in the trash when the call starts.
func (t *Trash) RestoreSelected(ctx context.Context, ids []string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	picked, rest := partition(t.items, ids)
	if len(picked) == 0 {
		return 0, nil
	}

	txs := make([]*Transaction, len(picked))
	for i, item := range picked {
		txs[i] = item.Transaction.clone()
	}

	if err := t.moveToLedger(ctx, txs, rest); err != nil {
		return 0, err
	}

	return len(picked), nil
}

// DeleteSelected purges every listed id that is in the trash when the call starts.
func (t *Trash) DeleteSelected(ctx context.Context, ids []string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	picked, rest := partition(t.items, ids)
	if len(picked) == 0 {
		return 0, nil
	}

	if err := t.persist(ctx, rest); err != nil {
		return 0, err
	}

	return len(picked), nil
}

// Empty purges the whole trash. Asking the user first is the caller's job.
func (t *Trash) Empty(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.items)
	if n == 0 {
		return 0, nil
	}

	if err := t.persist(ctx, []*Trashed{}); err != nil {
		return 0, err
	}

	return n, nil
}

// SweepExpired purges records whose retention window has elapsed. The trash is only
// written when something was purged.
func (t *Trash) SweepExpired(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()

	kept := make([]*Trashed, 0, len(t.items))
	for _, item := range t.items {
		if now.Sub(item.DeletedAt) < RetentionWindow {
			kept = append(kept, item)
		}
	}

	purged := len(t.items) - len(kept)
	if purged == 0 {
		return 0, nil
	}

	if err := t.persist(ctx, kept); err != nil {
		return 0, err
	}

	t.logger.InfoContext(ctx, "purged expired trash", "count", purged)

	return purged, nil
}

// DeleteAll wipes both the active set and the trash.
func (t *Trash) DeleteAll(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ledger.Clear(ctx); err != nil {
		return err
	}

	return t.persist(ctx, []*Trashed{})
}

// ExpiryDescription tells how long a record deleted at deletedAt stays restorable.
// Remaining days are rounded up, so 23 hours left reads as one day.
func (t *Trash) ExpiryDescription(deletedAt time.Time) string {
	remaining := RetentionWindow - t.clock.Now().Sub(deletedAt)
	days := int(math.Ceil(float64(remaining) / float64(day)))

	switch {
	case days <= 0:
		return "Expiring soon"
	case days == 1:
		return "Expires in 1 day"
	default:
		return fmt.Sprintf("Expires in %d days", days)
	}
}

// moveToLedger prepends txs to the active set and then stores rest as the trash.
// The active write is undone if the trash write fails.
func (t *Trash) moveToLedger(ctx context.Context, txs []*Transaction, rest []*Trashed) error {
	if err := t.ledger.prepend(ctx, txs...); err != nil {
		return err
	}

	if err := t.persist(ctx, rest); err != nil {
		for _, tx := range txs {
			if _, _, rbErr := t.ledger.extract(ctx, tx.ID); rbErr != nil {
				return errors.Join(err, fmt.Errorf("roll back restore: %w", rbErr))
			}
		}

		return err
	}

	return nil
}

// persist writes next and only then makes it the current trash. Callers hold t.mu.
func (t *Trash) persist(ctx context.Context, next []*Trashed) error {
	if err := t.repo.SaveTrash(ctx, next); err != nil {
		return fmt.Errorf("save trash: %w", err)
	}

	t.items = next
	t.notifier.Notify(EventTrashChanged)

	return nil
}

func (t *Trash) index(id string) int {
	return slices.IndexFunc(t.items, func(item *Trashed) bool { return item.ID == id })
}

// partition resolves ids against a snapshot of items. Picked records follow the order
// of ids; each id is used at most once.
func partition(items []*Trashed, ids []string) (picked, rest []*Trashed) {
	byID := make(map[string]*Trashed, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	chosen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			continue
		}

		if _, dup := chosen[id]; dup {
			continue
		}

		chosen[id] = struct{}{}
		picked = append(picked, item)
	}

	rest = make([]*Trashed, 0, len(items)-len(picked))

	for _, item := range items {
		if _, ok := chosen[item.ID]; !ok {
			rest = append(rest, item)
		}
	}

	return picked, rest
}
