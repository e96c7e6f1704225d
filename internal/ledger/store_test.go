package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcurci/bethunter/internal/common"
	"github.com/jcurci/bethunter/internal/kv"
	"github.com/jcurci/bethunter/internal/model"
)

// faultStore wraps a kv.Store and injects failures.
type faultStore struct {
	kv.Store
	getErr error
	setErr error
}

func (f *faultStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func (f *faultStore) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

// independentTotals recomputes aggregates without going through the store,
// to cross-check published totals.
func independentTotals(txns []model.Transaction) model.Totals {
	var income, expense float64
	for _, txn := range txns {
		if txn.Kind == model.KindIncome {
			income += txn.Amount
		}
		if txn.Kind == model.KindExpense {
			expense += txn.Amount
		}
	}
	return model.Totals{TotalIncome: income, TotalExpense: expense, Balance: income - expense}
}

func newLoadedStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	s := NewStore(mem)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Load(context.Background()))
	return s, mem
}

func mustAdd(t *testing.T, s *Store, in AddInput) model.Transaction {
	t.Helper()
	txn, err := s.Add(in)
	require.NoError(t, err)
	return txn
}

func income(amount float64) AddInput {
	return AddInput{
		Date:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Category: "Salary",
		Kind:     model.KindIncome,
		Amount:   amount,
	}
}

func expense(amount float64) AddInput {
	return AddInput{
		Date:     time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		Category: "Food",
		Kind:     model.KindExpense,
		Amount:   amount,
	}
}

func TestLoad_SeedsWhenEmpty(t *testing.T) {
	s, _ := newLoadedStore(t)

	want := SeedTransactions()
	assert.Equal(t, want, s.Transactions())
	assert.Equal(t, independentTotals(want), s.Totals())
	assert.True(t, s.Loaded())
}

func TestLoad_SeedIsIdempotent(t *testing.T) {
	mem := kv.NewMemoryStore()

	first := NewStore(mem)
	require.NoError(t, first.Load(context.Background()))
	seeded := first.Transactions()
	require.NoError(t, first.Close())

	// The seed load persisted a snapshot, so a fresh store sees the same list.
	second := NewStore(mem)
	defer func() { _ = second.Close() }()
	require.NoError(t, second.Load(context.Background()))

	assert.Equal(t, seeded, second.Transactions())
	assert.Equal(t, first.Totals(), second.Totals())
}

func TestAdd_SingleIncome(t *testing.T) {
	s, _ := newLoadedStore(t)
	// Start from a known-empty ledger.
	for _, txn := range s.Transactions() {
		_, err := s.Delete(txn.ID)
		require.NoError(t, err)
	}

	txn := mustAdd(t, s, AddInput{
		Date:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Category:     "Salary",
		CategoryIcon: "cash",
		Description:  "Paycheck",
		Kind:         model.KindIncome,
		Amount:       100,
	})

	assert.NotEmpty(t, txn.ID)
	assert.Len(t, s.Transactions(), 1)
	assert.Equal(t, model.Totals{TotalIncome: 100, TotalExpense: 0, Balance: 100}, s.Totals())
}

func TestTotals_TrackEveryMutation(t *testing.T) {
	s, _ := newLoadedStore(t)

	// Interleave adds and deletes and cross-check totals after each step.
	steps := []AddInput{
		income(100), expense(40), expense(10), income(0.10), expense(0.05),
	}
	var added []model.Transaction
	for _, in := range steps {
		added = append(added, mustAdd(t, s, in))
		assert.Equal(t, independentTotals(s.Transactions()), s.Totals())
	}

	for _, txn := range added {
		removed, err := s.Delete(txn.ID)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, independentTotals(s.Transactions()), s.Totals())
	}
}

func TestDelete_ExpenseRestoresBalance(t *testing.T) {
	s, _ := newLoadedStore(t)
	for _, txn := range s.Transactions() {
		_, err := s.Delete(txn.ID)
		require.NoError(t, err)
	}

	mustAdd(t, s, income(100))
	exp := mustAdd(t, s, expense(40))
	require.Equal(t, model.Totals{TotalIncome: 100, TotalExpense: 40, Balance: 60}, s.Totals())

	removed, err := s.Delete(exp.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, model.Totals{TotalIncome: 100, TotalExpense: 0, Balance: 100}, s.Totals())
}

func TestBalance_MixedKinds(t *testing.T) {
	s, _ := newLoadedStore(t)
	for _, txn := range s.Transactions() {
		_, err := s.Delete(txn.ID)
		require.NoError(t, err)
	}

	mustAdd(t, s, income(100))
	mustAdd(t, s, expense(40))
	mustAdd(t, s, expense(10))

	assert.Equal(t, 50.0, s.Totals().Balance)
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	s, _ := newLoadedStore(t)

	before := s.Snapshot()
	removed, err := s.Delete("no-such-id")
	require.NoError(t, err)

	assert.False(t, removed)
	assert.Equal(t, before.Transactions, s.Transactions())
	assert.Equal(t, before.Totals, s.Totals())
}

func TestAdd_AssignsUniqueIDs(t *testing.T) {
	s, _ := newLoadedStore(t)

	seen := make(map[string]bool)
	for _, txn := range s.Transactions() {
		seen[txn.ID] = true
	}
	for i := 0; i < 100; i++ {
		txn := mustAdd(t, s, income(1))
		assert.False(t, seen[txn.ID], "duplicate id %s", txn.ID)
		seen[txn.ID] = true
	}
}

func TestAdd_Validation(t *testing.T) {
	s, _ := newLoadedStore(t)

	valid := AddInput{
		Date:     time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		Category: "Food",
		Kind:     model.KindExpense,
		Amount:   12.50,
	}

	tests := []struct {
		name    string
		mutate  func(*AddInput)
		wantErr error
	}{
		{name: "zero amount", mutate: func(in *AddInput) { in.Amount = 0 }, wantErr: common.ErrInvalidAmount},
		{name: "negative amount", mutate: func(in *AddInput) { in.Amount = -5 }, wantErr: common.ErrInvalidAmount},
		{name: "unknown kind", mutate: func(in *AddInput) { in.Kind = "transfer" }, wantErr: common.ErrInvalidKind},
		{name: "empty kind", mutate: func(in *AddInput) { in.Kind = "" }, wantErr: common.ErrInvalidKind},
		{name: "zero date", mutate: func(in *AddInput) { in.Date = time.Time{} }, wantErr: common.ErrInvalidDate},
		{name: "empty category", mutate: func(in *AddInput) { in.Category = "" }, wantErr: common.ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			before := s.Snapshot()
			_, err := s.Add(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, before.Totals, s.Totals())
		})
	}
}

func TestPersist_RoundTripsThroughFreshStore(t *testing.T) {
	mem := kv.NewMemoryStore()

	s := NewStore(mem)
	require.NoError(t, s.Load(context.Background()))
	for _, txn := range s.Transactions() {
		_, err := s.Delete(txn.ID)
		require.NoError(t, err)
	}

	want := mustAdd(t, s, AddInput{
		Date:         time.Date(2024, time.February, 14, 12, 30, 45, 0, time.UTC),
		Category:     "Education",
		CategoryIcon: "book",
		Description:  "Budgeting workshop",
		Kind:         model.KindExpense,
		Amount:       75.25,
	})
	require.NoError(t, s.Close()) // flushes the pending write

	reloaded := NewStore(mem)
	defer func() { _ = reloaded.Close() }()
	require.NoError(t, reloaded.Load(context.Background()))

	got := reloaded.Transactions()
	require.Len(t, got, 1)
	assert.Equal(t, want.ID, got[0].ID)
	assert.Equal(t, want.Amount, got[0].Amount)
	assert.Equal(t, want.Kind, got[0].Kind)
	assert.Equal(t, want.Category, got[0].Category)
	assert.Equal(t, want.CategoryIcon, got[0].CategoryIcon)
	assert.Equal(t, want.Description, got[0].Description)
	assert.True(t, want.Date.Equal(got[0].Date))
}

func TestPersist_CoalescesButKeepsLatest(t *testing.T) {
	mem := kv.NewMemoryStore()

	s := NewStore(mem)
	require.NoError(t, s.Load(context.Background()))

	// Rapid mutations; intermediate writes may coalesce, but after Close the
	// persisted snapshot must match the final in-memory list.
	for i := 0; i < 50; i++ {
		mustAdd(t, s, income(1))
	}
	want := s.Transactions()
	require.NoError(t, s.Close())

	reloaded := NewStore(mem)
	defer func() { _ = reloaded.Close() }()
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Equal(t, want, reloaded.Transactions())
}

func TestLoad_CorruptSnapshotLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	require.NoError(t, mem.Set(ctx, StorageKey, []byte("{not json")))

	s := NewStore(mem)
	defer func() { _ = s.Close() }()

	err := s.Load(ctx)
	require.Error(t, err)
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Transactions())

	// The corrupt snapshot is not overwritten with seed data.
	raw, getErr := mem.Get(ctx, StorageKey)
	require.NoError(t, getErr)
	assert.Equal(t, []byte("{not json"), raw)
}

func TestLoad_ReadFailureLeavesStateUnchanged(t *testing.T) {
	boom := errors.New("storage unavailable")
	s := NewStore(&faultStore{Store: kv.NewMemoryStore(), getErr: boom})
	defer func() { _ = s.Close() }()

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.False(t, s.Loaded())

	// A later Load may retry; the store is not stuck in an error state.
	fs := s.kv.(*faultStore)
	fs.getErr = nil
	require.NoError(t, s.Load(context.Background()))
	assert.True(t, s.Loaded())
}

func TestPersistFailure_MemoryStaysAuthoritative(t *testing.T) {
	fs := &faultStore{Store: kv.NewMemoryStore()}
	s := NewStore(fs)
	defer func() { _ = s.Close() }()
	require.NoError(t, s.Load(context.Background()))

	fs.setErr = errors.New("disk full")
	mustAdd(t, s, income(100))
	mustAdd(t, s, expense(25))

	totals := s.Totals()
	assert.Equal(t, independentTotals(s.Transactions()), totals)
	assert.Len(t, s.Transactions(), len(SeedTransactions())+2)
}

func TestMutationsBeforeLoadAreRejected(t *testing.T) {
	s := NewStore(kv.NewMemoryStore())
	defer func() { _ = s.Close() }()

	_, err := s.Add(income(10))
	assert.True(t, errors.Is(err, common.ErrNotLoaded))

	_, err = s.Delete("any")
	assert.True(t, errors.Is(err, common.ErrNotLoaded))
}

func TestMutationsAfterCloseAreRejected(t *testing.T) {
	s, _ := newLoadedStore(t)
	require.NoError(t, s.Close())

	_, err := s.Add(income(10))
	assert.True(t, errors.Is(err, common.ErrStoreClosed))

	_, err = s.Delete("any")
	assert.True(t, errors.Is(err, common.ErrStoreClosed))
}

func TestSubscribe_ReceivesFullSnapshots(t *testing.T) {
	s, _ := newLoadedStore(t)

	ch, cancel := s.Subscribe()
	defer cancel()

	txn := mustAdd(t, s, income(500))

	select {
	case snap := <-ch:
		assert.Equal(t, s.Totals(), snap.Totals)
		found := false
		for _, got := range snap.Transactions {
			if got.ID == txn.ID {
				found = true
			}
		}
		assert.True(t, found, "published snapshot should contain the new transaction")
	case <-time.After(time.Second):
		t.Fatal("no snapshot published after Add")
	}
}

func TestSubscribe_SlowConsumerGetsLatest(t *testing.T) {
	s, _ := newLoadedStore(t)

	ch, cancel := s.Subscribe()
	defer cancel()

	// Mutate several times without draining; the buffered snapshot must be
	// the most recent one.
	for i := 0; i < 5; i++ {
		mustAdd(t, s, income(1))
	}

	select {
	case snap := <-ch:
		assert.Equal(t, s.Totals(), snap.Totals)
		assert.Len(t, snap.Transactions, len(s.Transactions()))
	case <-time.After(time.Second):
		t.Fatal("no snapshot available")
	}
}

func TestSubscribe_CancelStopsDelivery(t *testing.T) {
	s, _ := newLoadedStore(t)

	ch, cancel := s.Subscribe()
	cancel()

	// Channel is closed by cancel; mutations must not panic.
	mustAdd(t, s, income(1))

	_, open := <-ch
	assert.False(t, open)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s, _ := newLoadedStore(t)

	snap := s.Snapshot()
	require.NotEmpty(t, snap.Transactions)
	snap.Transactions[0].Amount = 999999

	assert.NotEqual(t, 999999.0, s.Transactions()[0].Amount)
}
