// Package memory keeps every repository in process memory. It backs
// STORAGE=memory and the use case scenario tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/iho/caisse/internal/usecase"
)

// ErrTxDone is returned when a finished transaction is used again.
var ErrTxDone = errors.New("memory: transaction already finished")

// Store holds all tables. Transactions are serialized: only one may be
// open at a time, and rolling back replays its undo log.
type Store struct {
	mu  sync.RWMutex
	sem chan struct{}

	sessions *table[sessionRow]
	entries  *table[entryRow]
	payments *table[paymentRow]
	orders   *table[orderRow]
	clients  *table[clientRow]
	products *table[productRow]
	services *table[serviceRow]
	users    *table[userRow]
	outbox   *table[outboxRow]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sem:      make(chan struct{}, 1),
		sessions: newTable[sessionRow](),
		entries:  newTable[entryRow](),
		payments: newTable[paymentRow](),
		orders:   newTable[orderRow](),
		clients:  newTable[clientRow](),
		products: newTable[productRow](),
		services: newTable[serviceRow](),
		users:    newTable[userRow](),
		outbox:   newTable[outboxRow](),
	}
}

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin waits for any running transaction to finish.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	select {
	case m.store.sem <- struct{}{}:
		return &Tx{store: m.store}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Tx is a serialized in-memory transaction.
type Tx struct {
	store *Store
	undo  []func()
	done  bool
}

// Commit keeps the changes made through the transaction.
func (t *Tx) Commit(context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.undo = nil
	<-t.store.sem
	return nil
}

// Rollback reverts the changes made through the transaction. Calling it
// after Commit is a no-op.
func (t *Tx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.store.mu.Unlock()

	t.undo = nil
	<-t.store.sem
	return nil
}

// write applies change under the store lock. When tx is a memory
// transaction, revert is recorded so Rollback can undo the change.
func (s *Store) write(tx usecase.Transaction, change func() (revert func(), err error)) error {
	var memTx *Tx
	if tx != nil {
		t, ok := tx.(*Tx)
		if !ok || t.store != s {
			return errors.New("memory: foreign transaction")
		}
		if t.done {
			return ErrTxDone
		}
		memTx = t
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	revert, err := change()
	if err != nil {
		return err
	}
	if memTx != nil && revert != nil {
		memTx.undo = append(memTx.undo, revert)
	}
	return nil
}

type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

// put inserts or replaces a row and returns a func restoring the previous state.
func (t *table[T]) put(id string, v T) func() {
	prev, existed := t.rows[id]
	t.rows[id] = v
	if !existed {
		t.order = append(t.order, id)
		return func() { t.drop(id) }
	}
	return func() { t.rows[id] = prev }
}

// remove deletes a row and returns a func restoring it at its position.
func (t *table[T]) remove(id string) func() {
	prev, existed := t.rows[id]
	if !existed {
		return func() {}
	}
	pos := t.drop(id)
	return func() {
		t.rows[id] = prev
		t.order = append(t.order, "")
		copy(t.order[pos+1:], t.order[pos:])
		t.order[pos] = id
	}
}

func (t *table[T]) drop(id string) int {
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return i
		}
	}
	return len(t.order)
}

// scan returns rows in insertion order.
func (t *table[T]) scan(keep func(T) bool) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		v := t.rows[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}

func reversed[T any](rows []T) []T {
	out := make([]T, len(rows))
	for i, v := range rows {
		out[len(rows)-1-i] = v
	}
	return out
}

func sortByName[T any](rows []T, name func(T) string) {
	sort.SliceStable(rows, func(i, j int) bool { return name(rows[i]) < name(rows[j]) })
}
