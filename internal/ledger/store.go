// Package ledger implements the transaction ledger store: the authoritative
// in-memory transaction history, its derived totals, and the durable
// key-value snapshot kept in sync behind it.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcurci/bethunter/internal/common"
	"github.com/jcurci/bethunter/internal/kv"
	"github.com/jcurci/bethunter/internal/model"
)

// StorageKey is the fixed key the serialized transaction list lives under.
const StorageKey = "bethunter:transactions"

// persistTimeout bounds each background snapshot write.
const persistTimeout = 10 * time.Second

// Snapshot is the complete published state of the ledger: the full
// transaction list plus its derived totals. Consumers always receive whole
// snapshots, never diffs.
type Snapshot struct {
	Transactions []model.Transaction
	Totals       model.Totals
}

// AddInput carries the caller-supplied fields for a new transaction.
// The ID is always assigned by the store.
type AddInput struct {
	Date         time.Time
	Category     string
	CategoryIcon string
	Description  string
	Kind         model.Kind
	Amount       float64
}

func (in AddInput) validate() error {
	if in.Amount <= 0 {
		return common.ErrInvalidAmount
	}
	if !in.Kind.Valid() {
		return common.ErrInvalidKind
	}
	if in.Date.IsZero() {
		return common.ErrInvalidDate
	}
	if in.Category == "" {
		return common.ErrInvalidCategory
	}
	return nil
}

// Store owns the in-memory transaction list and its derived totals, and
// keeps a serialized copy under StorageKey in the backing kv.Store.
//
// Mutations apply to in-memory state synchronously; persistence happens on a
// single background writer, so at most one snapshot write is in flight and a
// stale write can never clobber a newer one.
type Store struct {
	kv  kv.Store
	key string

	mu      sync.RWMutex
	txns    []model.Transaction
	totals  model.Totals
	loaded  bool
	closed  bool
	subs    map[int]chan Snapshot
	nextSub int

	pending chan []model.Transaction
	done    chan struct{}
}

// NewStore creates a ledger store backed by the given key-value store and
// starts its background snapshot writer. Call Close to flush and stop it.
func NewStore(store kv.Store) *Store {
	s := &Store{
		kv:      store,
		key:     StorageKey,
		subs:    make(map[int]chan Snapshot),
		pending: make(chan []model.Transaction, 1),
		done:    make(chan struct{}),
	}
	go s.persistLoop()
	return s
}

// Load reads the persisted snapshot and atomically replaces in-memory state.
// If no snapshot exists yet, the built-in seed list is installed and
// persisted immediately so the next Load is stable.
//
// A read or decode failure leaves state unchanged: corrupt data is never
// silently replaced with seed data.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.kv.Get(ctx, s.key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return s.seed(ctx)
	case err != nil:
		common.LogError(err, "failed to read ledger snapshot", common.Fields{"key": s.key})
		return fmt.Errorf("read ledger snapshot: %w", err)
	}

	var txns []model.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		common.LogError(err, "failed to decode ledger snapshot", common.Fields{"key": s.key})
		return fmt.Errorf("decode ledger snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrStoreClosed
	}
	s.txns = txns
	s.totals = model.ComputeTotals(s.txns)
	s.loaded = true
	s.publishLocked()
	return nil
}

func (s *Store) seed(ctx context.Context) error {
	txns := SeedTransactions()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return common.ErrStoreClosed
	}
	s.txns = txns
	s.totals = model.ComputeTotals(s.txns)
	s.loaded = true
	s.publishLocked()
	snapshot := append([]model.Transaction(nil), s.txns...)
	s.mu.Unlock()

	// Persist right away so a second Load observes the same list. The store
	// is already usable, so a write failure is logged rather than fatal.
	if err := s.write(ctx, snapshot); err != nil {
		common.LogError(err, "failed to persist seed snapshot", common.Fields{"key": s.key})
	}
	return nil
}

// Add assigns a fresh id, appends the transaction, recomputes totals from
// the full list, publishes the new snapshot, and schedules a persist. The
// created transaction is returned.
func (s *Store) Add(in AddInput) (model.Transaction, error) {
	if err := in.validate(); err != nil {
		return model.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("assign transaction id: %w", err)
	}

	txn := model.Transaction{
		ID:           id.String(),
		Date:         in.Date,
		Category:     in.Category,
		CategoryIcon: in.CategoryIcon,
		Description:  in.Description,
		Kind:         in.Kind,
		Amount:       in.Amount,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.Transaction{}, common.ErrStoreClosed
	}
	if !s.loaded {
		return model.Transaction{}, common.ErrNotLoaded
	}

	s.txns = append(s.txns, txn)
	s.totals = model.ComputeTotals(s.txns)
	s.publishLocked()
	s.schedulePersistLocked()
	return txn, nil
}

// Delete removes the transaction with the given id and reports whether one
// was removed. An unknown id is a no-op, not an error.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, common.ErrStoreClosed
	}
	if !s.loaded {
		return false, common.ErrNotLoaded
	}

	idx := -1
	for i, txn := range s.txns {
		if txn.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	s.txns = append(s.txns[:idx], s.txns[idx+1:]...)
	s.totals = model.ComputeTotals(s.txns)
	s.publishLocked()
	s.schedulePersistLocked()
	return true, nil
}

// Snapshot returns a complete copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Transactions returns a copy of the transaction list in insertion order.
func (s *Store) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Transaction(nil), s.txns...)
}

// Totals returns the current derived aggregates.
func (s *Store) Totals() model.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals
}

// Loaded reports whether a Load has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Subscribe registers a consumer for state changes. Every mutation delivers
// the complete new snapshot; a consumer that falls behind only ever misses
// intermediate snapshots, never the latest. The returned cancel func must be
// called when the consumer is done.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Close flushes any queued snapshot write and stops the background writer.
// The store rejects mutations afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.pending)
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = make(map[int]chan Snapshot)
	s.mu.Unlock()

	<-s.done
	return nil
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Transactions: append([]model.Transaction(nil), s.txns...),
		Totals:       s.totals,
	}
}

func (s *Store) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Subscriber still holds an older snapshot; swap in the latest.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// schedulePersistLocked queues the current list for the background writer.
// The queue holds one snapshot; when full, the stale snapshot is dropped so
// the latest always wins.
func (s *Store) schedulePersistLocked() {
	snapshot := append([]model.Transaction(nil), s.txns...)
	for {
		select {
		case s.pending <- snapshot:
			return
		default:
		}
		select {
		case <-s.pending:
		default:
		}
	}
}

func (s *Store) persistLoop() {
	defer close(s.done)
	for txns := range s.pending {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := s.write(ctx, txns); err != nil {
			// In-memory state stays authoritative even when durability fails.
			common.LogError(err, "failed to persist ledger snapshot", common.Fields{
				"key":          s.key,
				"transactions": len(txns),
			})
		}
		cancel()
	}
}

func (s *Store) write(ctx context.Context, txns []model.Transaction) error {
	data, err := json.Marshal(txns)
	if err != nil {
		return fmt.Errorf("encode ledger snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write ledger snapshot: %w", err)
	}
	return nil
}
