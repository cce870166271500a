// Package txn implements the debounced mutation queue (§4.10): add,
// remove, updateCell, and updateRow calls are buffered and applied to the
// store as a single batch once debounceMs elapses without further
// activity.
//
// Grounded on the teacher's optimizer/performance.BatchExecutor
// (mutex-protected slice plus a resettable time.Timer), adapted from a
// size-or-interval flush into a pure quiet-period debounce: the timer is
// reset on every enqueue instead of firing on a fixed interval, and there
// is no size-triggered early flush.
package txn

import (
	"sync"
	"time"

	"github.com/kasuganosora/vtgrid/pkg/bus"
	"github.com/kasuganosora/vtgrid/pkg/store"
)

// DefaultDebounceMs is used when a non-positive debounce is supplied.
const DefaultDebounceMs = 50

type opKind int

const (
	opAdd opKind = iota
	opRemove
	opUpdateCell
	opUpdateRow
)

type operation struct {
	kind    opKind
	rows    []map[string]any
	ids     []any
	id      any
	field   string
	value   any
	partial map[string]any
}

// Summary aggregates the effect of one drained batch.
type Summary struct {
	Added   int
	Removed int
	Updated int
}

// Manager queues mutations and drains them as one batch after a quiet
// period. Not goroutine-reentrant from within a subscriber callback.
type Manager struct {
	mu          sync.Mutex
	store       *store.Store
	bus         *bus.Bus
	debounceMs  int
	pending     []operation
	timer       *time.Timer
	subscribers []func(Summary)
}

// New creates a transaction manager writing through to s and emitting
// TRANSACTION_PROCESSED on b after each drain. debounceMs <= 0 uses
// DefaultDebounceMs.
func New(s *store.Store, b *bus.Bus, debounceMs int) *Manager {
	if debounceMs <= 0 {
		debounceMs = DefaultDebounceMs
	}
	return &Manager{store: s, bus: b, debounceMs: debounceMs}
}

// Subscribe registers a callback invoked once per drained batch with the
// aggregate counts.
func (m *Manager) Subscribe(fn func(Summary)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) enqueue(op operation) {
	m.mu.Lock()
	m.pending = append(m.pending, op)
	d := time.Duration(m.debounceMs) * time.Millisecond
	if m.timer == nil {
		m.timer = time.AfterFunc(d, m.drain)
	} else {
		m.timer.Reset(d)
	}
	m.mu.Unlock()
}

// AddRows queues an insert of the given row field maps.
func (m *Manager) AddRows(rows []map[string]any) {
	m.enqueue(operation{kind: opAdd, rows: rows})
}

// RemoveRows queues a removal of the given row ids.
func (m *Manager) RemoveRows(ids []any) {
	m.enqueue(operation{kind: opRemove, ids: ids})
}

// UpdateCell queues a single dot-path field write on row id.
func (m *Manager) UpdateCell(id any, field string, value any) {
	m.enqueue(operation{kind: opUpdateCell, id: id, field: field, value: value})
}

// UpdateRow queues a partial-field merge on row id.
func (m *Manager) UpdateRow(id any, partial map[string]any) {
	m.enqueue(operation{kind: opUpdateRow, id: id, partial: partial})
}

// HasPending reports whether operations are queued but not yet drained.
func (m *Manager) HasPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending) > 0
}

// Flush forces an immediate synchronous drain, bypassing the debounce
// window. Callers needing to read a consistent store before a fetch
// should call Flush first when HasPending reports true.
func (m *Manager) Flush() {
	m.drain()
}

func (m *Manager) drain() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	ops := m.pending
	m.pending = nil
	m.mu.Unlock()

	if len(ops) == 0 {
		return
	}

	var summary Summary
	for _, op := range ops {
		switch op.kind {
		case opAdd:
			inserted := m.store.Insert(op.rows, nil)
			summary.Added += len(inserted)
		case opRemove:
			summary.Removed += m.store.Remove(op.ids)
		case opUpdateCell:
			if m.store.UpdateCell(op.id, op.field, op.value) {
				summary.Updated++
			}
		case opUpdateRow:
			if m.store.UpdateRow(op.id, op.partial) {
				summary.Updated++
			}
		}
	}

	if m.bus != nil {
		m.bus.Emit(bus.Instruction{
			Kind:    bus.TransactionProcessed,
			Added:   summary.Added,
			Removed: summary.Removed,
			Updated: summary.Updated,
		})
	}

	m.mu.Lock()
	subs := make([]func(Summary), len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(summary)
	}
}
