// Package store implements the mutable indexed data store (§4.2): an
// id-indexed, insertion-ordered row collection with dot-path field access,
// distinct-value indexing, and a default uuid-based row-id generator.
//
// Grounded on the teacher's dataaccess.Manager for the mutex-protected map
// discipline and on pkg/resource/util/compare.go for value comparison,
// here delegated to cellvalue.Compare.
package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/kasuganosora/vtgrid/pkg/cellvalue"
	"github.com/kasuganosora/vtgrid/pkg/model"
)

// GetRowId extracts a stable id from a row's fields. When nil, Store
// assigns a uuid-based id to every inserted row (§3: "equal to insertion
// index when no mutations are enabled" describes the caller-facing
// default when GetRowId is also nil and mutation never occurs; once
// Insert/Remove are used, a stable id is required so a generated uuid is
// substituted instead of the index, which would otherwise drift).
type GetRowId func(fields map[string]any) any

// Store is the indexed, insertion-ordered row collection.
type Store struct {
	mu       sync.RWMutex
	getRowId GetRowId
	order    []any
	byId     map[any]model.Row
}

// New creates an empty Store. getRowId may be nil, in which case inserted
// rows without a pre-set ID receive a generated uuid.
func New(getRowId GetRowId) *Store {
	return &Store{
		getRowId: getRowId,
		byId:     make(map[any]model.Row),
	}
}

// GetAllRows returns all rows in insertion order. The returned slice is a
// fresh copy of the order, but individual Row values alias the store's
// internal state's Fields maps.
func (s *Store) GetAllRows() []model.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Row, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byId[id])
	}
	return out
}

// GetRowById returns the row with the given id, if present.
func (s *Store) GetRowById(id any) (model.Row, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byId[id]
	return r, ok
}

// GetTotalRowCount returns the number of rows currently held.
func (s *Store) GetTotalRowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear removes all rows.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.byId = make(map[any]model.Row)
}

// Insert adds rows at atIndex (appended at the end when atIndex is nil or
// out of [0,len] bounds), assigning each a row id via getRowId, falling
// back to a generated uuid when getRowId is nil or returns nil. Returns
// the rows with their resolved ids.
func (s *Store) Insert(rows []map[string]any, atIndex *int) []model.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := make([]model.Row, 0, len(rows))
	for _, fields := range rows {
		id := s.resolveId(fields)
		row := model.NewRow(id, fields)
		s.byId[id] = row
		inserted = append(inserted, row)
	}

	ids := make([]any, len(inserted))
	for i, r := range inserted {
		ids[i] = r.ID
	}

	idx := len(s.order)
	if atIndex != nil && *atIndex >= 0 && *atIndex <= len(s.order) {
		idx = *atIndex
	}
	s.order = append(s.order[:idx], append(append([]any{}, ids...), s.order[idx:]...)...)

	return inserted
}

func (s *Store) resolveId(fields map[string]any) any {
	if s.getRowId != nil {
		if id := s.getRowId(fields); id != nil {
			return id
		}
	}
	return uuid.New().String()
}

// Remove deletes rows by id, returning the count actually removed.
func (s *Store) Remove(ids []any) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	toRemove := make(map[any]struct{}, len(ids))
	removed := 0
	for _, id := range ids {
		if _, ok := s.byId[id]; ok {
			toRemove[id] = struct{}{}
			delete(s.byId, id)
			removed++
		}
	}
	if removed == 0 {
		return 0
	}
	next := make([]any, 0, len(s.order)-removed)
	for _, id := range s.order {
		if _, gone := toRemove[id]; !gone {
			next = append(next, id)
		}
	}
	s.order = next
	return removed
}

// UpdateCell writes a single dot-path field on the row with the given id.
// Reports whether the row existed.
func (s *Store) UpdateCell(id any, field string, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.byId[id]
	if !ok {
		return false
	}
	row = row.Clone()
	row.Set(field, value)
	s.byId[id] = row
	return true
}

// UpdateRow merges partial into the row with the given id, overwriting any
// matching top-level keys. Reports whether the row existed.
func (s *Store) UpdateRow(id any, partial map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.byId[id]
	if !ok {
		return false
	}
	row = row.Clone()
	for k, v := range partial {
		row.Fields[k] = v
	}
	s.byId[id] = row
	return true
}

// GetDistinctValues returns up to maxValues distinct values observed for
// field, in first-seen order. Arrays are canonicalized by sorting their
// elements with numeric-aware locale collation before hashing (§4.2),
// implemented via cellvalue.SortedJoinedText as the dedup key. Iteration
// aborts early once the cap is reached.
func (s *Store) GetDistinctValues(field string, maxValues int) []any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]any, 0, maxValues)
	for _, id := range s.order {
		if maxValues > 0 && len(out) >= maxValues {
			break
		}
		row := s.byId[id]
		v := row.Get(field)
		key := cellvalue.SortedJoinedText(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
