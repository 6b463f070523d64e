package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocketbook/internal/clock"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction/store"
)

type fixture struct {
	ledger *transaction.Ledger
	trash  *transaction.Trash
	mem    *store.Memory
	clock  *clock.Fixed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	mem := store.NewMemory()
	clk := clock.NewFixed(baseTime)

	ledger := transaction.NewLedger(mem, clk)
	require.NoError(t, ledger.Load(ctx))

	trash := transaction.NewTrash(ledger, mem, clk)
	require.NoError(t, trash.Load(ctx))

	return &fixture{ledger: ledger, trash: trash, mem: mem, clock: clk}
}

func (f *fixture) add(t *testing.T, n int) []*transaction.Transaction {
	t.Helper()

	out := make([]*transaction.Transaction, n)

	for i := range n {
		tx, err := f.ledger.Add(context.Background(), transaction.CreateParams{
			Amount:   amount("10"),
			Category: transaction.CategoryFood,
			Date:     "2024-03-10",
		})
		require.NoError(t, err)

		out[i] = tx
	}

	return out
}

func (f *fixture) trashIDs() []string {
	items := f.trash.List()

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	return ids
}

func (f *fixture) activeIDs() []string {
	txs := f.ledger.List()

	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}

	return ids
}

func TestTrash_SoftDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	added, err := f.ledger.Add(ctx, transaction.CreateParams{
		Amount: amount("12.50"), Category: "Food", Note: "lunch", Date: "2024-03-14",
	})
	require.NoError(t, err)

	f.clock.Add(time.Hour)

	trashed, err := f.trash.MoveToTrash(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, trashed)

	assert.Equal(t, baseTime.Add(time.Hour), trashed.DeletedAt)
	assert.Zero(t, f.ledger.Len())
	assert.Equal(t, 1, f.trash.Len())

	restored, err := f.trash.Restore(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)

	assert.Equal(t, *added, *restored)
	assert.Zero(t, f.trash.Len())
	assert.Equal(t, []string{added.ID}, f.activeIDs())
}

func TestTrash_RestoreGoesToFront(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	txs := f.add(t, 3)

	_, err := f.trash.MoveToTrash(ctx, txs[0].ID)
	require.NoError(t, err)

	_, err = f.trash.Restore(ctx, txs[0].ID)
	require.NoError(t, err)

	assert.Equal(t, txs[0].ID, f.activeIDs()[0])
}

func TestTrash_UnknownIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, 1)

	activeSaves := f.mem.Saves(store.CollectionActive)

	trashed, err := f.trash.MoveToTrash(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, trashed)

	restored, err := f.trash.Restore(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, restored)

	deleted, err := f.trash.PermanentlyDelete(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, deleted)

	n, err := f.trash.Empty(ctx)
	assert.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, activeSaves, f.mem.Saves(store.CollectionActive))
	assert.Zero(t, f.mem.Saves(store.CollectionTrash))
}

func TestTrash_MoveToTrashRollsBackOnTrashWriteFailure(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := []*transaction.Transaction{
		{ID: "a", Amount: amount("1"), Date: "2024-03-01"},
		{ID: "b", Amount: amount("2"), Date: "2024-03-02"},
		{ID: "c", Amount: amount("3"), Date: "2024-03-03"},
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().LoadActive(gomock.Any()).Return(existing, nil)
	repo.EXPECT().LoadTrash(gomock.Any()).Return(nil, nil)

	gomock.InOrder(
		repo.EXPECT().SaveActive(gomock.Any(), gomock.Len(2)).Return(nil),
		repo.EXPECT().SaveTrash(gomock.Any(), gomock.Len(1)).Return(errors.New("disk full")),
		repo.EXPECT().SaveActive(gomock.Any(), gomock.Len(3)).Return(nil),
	)

	clk := clock.NewFixed(baseTime)
	ledger := transaction.NewLedger(repo, clk)
	require.NoError(t, ledger.Load(ctx))

	trash := transaction.NewTrash(ledger, repo, clk)
	require.NoError(t, trash.Load(ctx))

	got, err := trash.MoveToTrash(ctx, "b")

	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Zero(t, trash.Len())

	ids := make([]string, 0, 3)
	for _, tx := range ledger.List() {
		ids = append(ids, tx.ID)
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestTrash_SweepExpired(t *testing.T) {
	tests := []struct {
		name       string
		elapsed    time.Duration
		wantPurged int
	}{
		{name: "JustBeforeWindow", elapsed: transaction.RetentionWindow - time.Millisecond, wantPurged: 0},
		{name: "ExactlyAtWindow", elapsed: transaction.RetentionWindow, wantPurged: 1},
		{name: "PastWindow", elapsed: transaction.RetentionWindow + time.Millisecond, wantPurged: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			txs := f.add(t, 1)

			_, err := f.trash.MoveToTrash(ctx, txs[0].ID)
			require.NoError(t, err)

			trashSaves := f.mem.Saves(store.CollectionTrash)

			f.clock.Add(tt.elapsed)

			purged, err := f.trash.SweepExpired(ctx)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPurged, purged)
			assert.Equal(t, 1-tt.wantPurged, f.trash.Len())

			if tt.wantPurged == 0 {
				assert.Equal(t, trashSaves, f.mem.Saves(store.CollectionTrash), "nothing purged, nothing written")
			}
		})
	}
}

func TestTrash_RestoreAfterSweepIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	txs := f.add(t, 1)

	_, err := f.trash.MoveToTrash(ctx, txs[0].ID)
	require.NoError(t, err)

	f.clock.Add(transaction.RetentionWindow)

	purged, err := f.trash.SweepExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, purged)

	restored, err := f.trash.Restore(ctx, txs[0].ID)
	assert.NoError(t, err)
	assert.Nil(t, restored)
	assert.Zero(t, f.ledger.Len())
}

func TestTrash_RestoreSelected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	txs := f.add(t, 3)

	for _, tx := range txs {
		_, err := f.trash.MoveToTrash(ctx, tx.ID)
		require.NoError(t, err)
	}

	activeSaves := f.mem.Saves(store.CollectionActive)
	trashSaves := f.mem.Saves(store.CollectionTrash)

	n, err := f.trash.RestoreSelected(ctx, []string{txs[0].ID, txs[0].ID, "missing", txs[2].ID})
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{txs[1].ID}, f.trashIDs())
	assert.ElementsMatch(t, []string{txs[0].ID, txs[2].ID}, f.activeIDs())
	assert.Equal(t, activeSaves+1, f.mem.Saves(store.CollectionActive), "one active write")
	assert.Equal(t, trashSaves+1, f.mem.Saves(store.CollectionTrash), "one trash write")
}

func TestTrash_DeleteSelected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	txs := f.add(t, 3)

	for _, tx := range txs {
		_, err := f.trash.MoveToTrash(ctx, tx.ID)
		require.NoError(t, err)
	}

	activeSaves := f.mem.Saves(store.CollectionActive)

	n, err := f.trash.DeleteSelected(ctx, []string{txs[1].ID, txs[1].ID, txs[2].ID})
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{txs[0].ID}, f.trashIDs())
	assert.Zero(t, f.ledger.Len())
	assert.Equal(t, activeSaves, f.mem.Saves(store.CollectionActive))

	n, err = f.trash.DeleteSelected(ctx, []string{"missing"})
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestTrash_PermanentlyDeleteAndEmpty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	txs := f.add(t, 3)

	for _, tx := range txs {
		_, err := f.trash.MoveToTrash(ctx, tx.ID)
		require.NoError(t, err)
	}

	deleted, err := f.trash.PermanentlyDelete(ctx, txs[1].ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{txs[0].ID, txs[2].ID}, f.trashIDs())

	n, err := f.trash.Empty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, f.trash.Len())
}

func TestTrash_DeleteAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	txs := f.add(t, 2)

	_, err := f.trash.MoveToTrash(ctx, txs[0].ID)
	require.NoError(t, err)

	require.NoError(t, f.trash.DeleteAll(ctx))

	assert.Zero(t, f.ledger.Len())
	assert.Zero(t, f.trash.Len())
}

func TestTrash_ExpiryDescription(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{name: "JustDeleted", elapsed: 0, want: "Expires in 7 days"},
		{name: "FiveDaysAndAnHourLeft", elapsed: 2*24*time.Hour - time.Hour, want: "Expires in 6 days"},
		{name: "TwoDaysLeft", elapsed: 5 * 24 * time.Hour, want: "Expires in 2 days"},
		{name: "TwentyThreeHoursLeft", elapsed: 6*24*time.Hour + time.Hour, want: "Expires in 1 day"},
		{name: "AtWindow", elapsed: transaction.RetentionWindow, want: "Expiring soon"},
		{name: "PastWindow", elapsed: 8 * 24 * time.Hour, want: "Expiring soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.clock.Add(tt.elapsed)

			assert.Equal(t, tt.want, f.trash.ExpiryDescription(baseTime))
		})
	}
}

func TestTrash_LoadCorruptStartsEmpty(t *testing.T) {
	mem := store.NewMemory()
	mem.Put(store.CollectionTrash, []byte(`[{"id":"x","amount":"oops"}]`))

	clk := clock.NewFixed(baseTime)
	trash := transaction.NewTrash(transaction.NewLedger(mem, clk), mem, clk)

	require.NoError(t, trash.Load(context.Background()))
	assert.Zero(t, trash.Len())
}

type recordingNotifier struct {
	events []transaction.Event
}

func (r *recordingNotifier) Notify(e transaction.Event) {
	r.events = append(r.events, e)
}

func TestTrash_NotifiesOnChange(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	clk := clock.NewFixed(baseTime)
	n := &recordingNotifier{}

	ledger := transaction.NewLedger(mem, clk, transaction.WithNotifier(n))
	trash := transaction.NewTrash(ledger, mem, clk, transaction.WithNotifier(n))

	tx, err := ledger.Add(ctx, transaction.CreateParams{Amount: amount("1")})
	require.NoError(t, err)

	_, err = trash.MoveToTrash(ctx, tx.ID)
	require.NoError(t, err)

	assert.Equal(t, []transaction.Event{
		transaction.EventLedgerChanged,
		transaction.EventLedgerChanged,
		transaction.EventTrashChanged,
	}, n.events)
}
