// Package kvstore is a reference MutableDataSource backed by an embedded
// ordered key-value store. Unlike sqlstore, it implements mutation
// directly (no debounced transaction manager in front) — it exists to
// demonstrate a collaborator that honors addRows/updateCell/subscribe on
// its own terms (§6).
//
// Grounded on the teacher's pkg/resource/badger.BadgerDataSource: badger
// options setup, row-key encoding, and the connected/mu-guarded shape are
// carried over; the table/index/transaction-manager machinery around it
// is dropped since a grid row store needs none of that.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/kasuganosora/vtgrid/pkg/datasource"
	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/kasuganosora/vtgrid/pkg/sortfilter"
)

const keyPrefix = "row:"

// Source is a badger-backed MutableDataSource.
type Source struct {
	db *badger.DB

	mu          sync.Mutex
	order       []string
	subscribers map[int]func(datasource.MutationEvent)
	nextSubID   int
}

// Open starts badger at dir, or as an in-memory instance when dir is
// empty, and replays existing keys into the insertion-order index.
func Open(dir string) (*Source, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("kvstore: open: %w", err)
	}
	src := &Source{db: db, subscribers: make(map[int]func(datasource.MutationEvent))}
	if err := src.loadOrder(); err != nil {
		db.Close()
		return nil, err
	}
	return src, nil
}

func (s *Source) loadOrder() error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().KeyCopy(nil))
			s.order = append(s.order, key[len(keyPrefix):])
		}
		return nil
	})
}

func rowKey(id string) []byte {
	return []byte(keyPrefix + id)
}

func (s *Source) getFields(id string) (map[string]any, bool, error) {
	var fields map[string]any
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rowKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &fields)
		})
	})
	return fields, found, err
}

func (s *Source) putFields(id string, fields map[string]any) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(rowKey(id), payload)
	})
}

// Fetch loads every row, decodes it, then applies req's filter/sort.
func (s *Source) Fetch(ctx context.Context, req model.FetchRequest) (model.FetchResponse, error) {
	s.mu.Lock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	s.mu.Unlock()

	rows := make([]model.Row, 0, len(ids))
	for _, id := range ids {
		fields, ok, err := s.getFields(id)
		if err != nil {
			return model.FetchResponse{}, fmt.Errorf("kvstore: fetch %s: %w", id, err)
		}
		if !ok {
			continue
		}
		rows = append(rows, model.NewRow(id, fields))
	}

	filtered := sortfilter.ApplyFilters(rows, req.Filter, sortfilter.DefaultAccessor)
	sorted := sortfilter.ApplySort(filtered, req.Sort, sortfilter.DefaultAccessor)
	return model.FetchResponse{Rows: sorted, TotalRows: len(sorted)}, nil
}

// Destroy closes the badger instance.
func (s *Source) Destroy() error {
	return s.db.Close()
}

// AddRows writes each row immediately (no debounce) and notifies
// subscribers once for the whole call.
func (s *Source) AddRows(ctx context.Context, rows []map[string]any) ([]model.Row, error) {
	out := make([]model.Row, 0, len(rows))
	s.mu.Lock()
	for _, fields := range rows {
		id := uuid.New().String()
		if err := s.putFields(id, fields); err != nil {
			s.mu.Unlock()
			return nil, err
		}
		s.order = append(s.order, id)
		out = append(out, model.NewRow(id, fields))
	}
	s.mu.Unlock()
	s.notify(datasource.MutationEvent{Added: len(out)})
	return out, nil
}

// RemoveRows deletes rows by id immediately.
func (s *Source) RemoveRows(ctx context.Context, ids []any) (int, error) {
	removed := 0
	s.mu.Lock()
	toRemove := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		sid := fmt.Sprint(id)
		toRemove[sid] = struct{}{}
	}
	next := s.order[:0:0]
	for _, id := range s.order {
		if _, gone := toRemove[id]; gone {
			if err := s.db.Update(func(txn *badger.Txn) error { return txn.Delete(rowKey(id)) }); err != nil {
				s.mu.Unlock()
				return removed, err
			}
			removed++
			continue
		}
		next = append(next, id)
	}
	s.order = next
	s.mu.Unlock()
	if removed > 0 {
		s.notify(datasource.MutationEvent{Removed: removed})
	}
	return removed, nil
}

// UpdateCell writes a single dot-path field on row id.
func (s *Source) UpdateCell(ctx context.Context, id any, field string, value any) (bool, error) {
	sid := fmt.Sprint(id)
	fields, ok, err := s.getFields(sid)
	if err != nil || !ok {
		return false, err
	}
	row := model.NewRow(sid, fields)
	row.Set(field, value)
	if err := s.putFields(sid, row.Fields); err != nil {
		return false, err
	}
	s.notify(datasource.MutationEvent{Updated: 1})
	return true, nil
}

// UpdateRow merges partial's keys into row id.
func (s *Source) UpdateRow(ctx context.Context, id any, partial map[string]any) (bool, error) {
	sid := fmt.Sprint(id)
	fields, ok, err := s.getFields(sid)
	if err != nil || !ok {
		return false, err
	}
	for k, v := range partial {
		fields[k] = v
	}
	if err := s.putFields(sid, fields); err != nil {
		return false, err
	}
	s.notify(datasource.MutationEvent{Updated: 1})
	return true, nil
}

// FlushTransactions is a no-op: kvstore writes through immediately.
func (s *Source) FlushTransactions(ctx context.Context) error { return nil }

// HasPendingTransactions always reports false: kvstore has no queue.
func (s *Source) HasPendingTransactions() bool { return false }

// GetDistinctValues dedups a field's values by their fmt.Sprint text.
func (s *Source) GetDistinctValues(ctx context.Context, field string, maxValues int) ([]any, error) {
	resp, err := s.Fetch(ctx, model.FetchRequest{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []any
	for _, row := range resp.Rows {
		if maxValues > 0 && len(out) >= maxValues {
			break
		}
		v := row.Get(field)
		key := fmt.Sprint(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// GetRowByID returns the row with the given id, if present.
func (s *Source) GetRowByID(ctx context.Context, id any) (model.Row, bool, error) {
	sid := fmt.Sprint(id)
	fields, ok, err := s.getFields(sid)
	if err != nil || !ok {
		return model.Row{}, false, err
	}
	return model.NewRow(sid, fields), true, nil
}

// GetTotalRowCount reports the number of rows currently stored.
func (s *Source) GetTotalRowCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order), nil
}

// Subscribe registers a listener invoked after AddRows, UpdateCell and
// UpdateRow, and after RemoveRows when it removed at least one row. Clear
// does not notify listeners.
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

// Clear deletes every row.
func (s *Source) Clear(ctx context.Context) error {
	s.mu.Lock()
	ids := s.order
	s.order = nil
	s.mu.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			if err := txn.Delete(rowKey(id)); err != nil {
				return err
			}
		}
		return nil
	})
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
