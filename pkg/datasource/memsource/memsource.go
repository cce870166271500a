// Package memsource is the default in-process MutableDataSource: an
// indexed store plus the sort/filter pipeline and debounced transaction
// manager, wired together exactly the way grid.Facade expects any
// collaborator to behave.
package memsource

import (
	"context"
	"sync"

	"github.com/kasuganosora/vtgrid/pkg/bus"
	"github.com/kasuganosora/vtgrid/pkg/datasource"
	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/kasuganosora/vtgrid/pkg/sortfilter"
	"github.com/kasuganosora/vtgrid/pkg/store"
	"github.com/kasuganosora/vtgrid/pkg/txn"
)

// Source is the in-memory reference MutableDataSource.
type Source struct {
	store *store.Store
	txn   *txn.Manager
	bus   *bus.Bus

	mu          sync.Mutex
	subscribers map[int]func(datasource.MutationEvent)
	nextSubID   int
}

// New creates a memsource backed by a fresh store. getRowID may be nil
// (rows then receive generated uuids on Insert). b may be nil; when
// non-nil, the transaction manager emits TRANSACTION_PROCESSED on it.
func New(getRowID store.GetRowId, b *bus.Bus, debounceMs int) *Source {
	s := store.New(getRowID)
	tm := txn.New(s, b, debounceMs)
	src := &Source{store: s, txn: tm, bus: b, subscribers: make(map[int]func(datasource.MutationEvent))}
	tm.Subscribe(func(sm txn.Summary) {
		src.notify(datasource.MutationEvent{Added: sm.Added, Removed: sm.Removed, Updated: sm.Updated})
	})
	return src
}

func (s *Source) notify(ev datasource.MutationEvent) {
	s.mu.Lock()
	subs := make([]func(datasource.MutationEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// Fetch applies the request's filter then sort over the full store
// contents and returns the whole result (§9's client-side pipeline:
// memsource never paginates server-side).
func (s *Source) Fetch(ctx context.Context, req model.FetchRequest) (model.FetchResponse, error) {
	s.txn.Flush()
	rows := s.store.GetAllRows()
	filtered := sortfilter.ApplyFilters(rows, req.Filter, sortfilter.DefaultAccessor)
	sorted := sortfilter.ApplySort(filtered, req.Sort, sortfilter.DefaultAccessor)
	return model.FetchResponse{Rows: sorted, TotalRows: len(sorted)}, nil
}

// Destroy releases no resources; memsource holds nothing external.
func (s *Source) Destroy() error { return nil }

func (s *Source) AddRows(ctx context.Context, rows []map[string]any) ([]model.Row, error) {
	s.txn.AddRows(rows)
	return nil, nil
}

func (s *Source) RemoveRows(ctx context.Context, ids []any) (int, error) {
	s.txn.RemoveRows(ids)
	return 0, nil
}

func (s *Source) UpdateCell(ctx context.Context, id any, field string, value any) (bool, error) {
	s.txn.UpdateCell(id, field, value)
	return true, nil
}

func (s *Source) UpdateRow(ctx context.Context, id any, partial map[string]any) (bool, error) {
	s.txn.UpdateRow(id, partial)
	return true, nil
}

func (s *Source) FlushTransactions(ctx context.Context) error {
	s.txn.Flush()
	return nil
}

func (s *Source) HasPendingTransactions() bool {
	return s.txn.HasPending()
}

func (s *Source) GetDistinctValues(ctx context.Context, field string, maxValues int) ([]any, error) {
	return s.store.GetDistinctValues(field, maxValues), nil
}

func (s *Source) GetRowByID(ctx context.Context, id any) (model.Row, bool, error) {
	row, ok := s.store.GetRowById(id)
	return row, ok, nil
}

func (s *Source) GetTotalRowCount(ctx context.Context) (int, error) {
	return s.store.GetTotalRowCount(), nil
}

func (s *Source) Subscribe(listener func(datasource.MutationEvent)) datasource.Unsubscribe {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = listener
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Source) Clear(ctx context.Context) error {
	s.store.Clear()
	return nil
}
