// Package highlight implements the highlight manager (§4.9): three
// memoization caches keyed by row, column, and (row,col), invalidated on
// hover and selection changes, producing a context record for
// caller-supplied class-list callbacks.
//
// Grounded on the teacher's monitor.QueryCache (mutex-protected map with
// hit/miss counters); highlight contexts have no TTL, so eviction here is
// "clear everything on invalidation" rather than LRU.
package highlight

import (
	"fmt"
	"sync"

	"github.com/kasuganosora/vtgrid/pkg/model"
)

// Context is the record built for each cache kind; not every field is
// meaningful for every Kind (RowIndex/ColIndex/Column/RowData are unset
// for the kinds that don't apply).
type Context struct {
	Kind          Kind
	RowIndex      int
	ColIndex      int
	Column        *model.ColumnDef
	RowData       *model.Row
	HoverPosition model.CellRef
	HasHover      bool
	ActiveCell    model.CellRef
	HasActive     bool
	SelectionRange model.SelectionRange
	HasSelection  bool
	IsHovered     bool
	IsActive      bool
	IsSelected    bool
}

// Kind selects which of the three caches/contexts is being built.
type Kind string

const (
	KindRow  Kind = "row"
	KindCol  Kind = "col"
	KindCell Kind = "cell"
)

type cache struct {
	mu      sync.RWMutex
	entries map[string]Context
	hits    int64
	misses  int64
}

func newCache() *cache {
	return &cache{entries: make(map[string]Context)}
}

func (c *cache) get(key string) (Context, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ctx, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return ctx, ok
}

func (c *cache) set(key string, ctx Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ctx
}

func (c *cache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Context)
}

// Manager owns the row, column, and cell caches plus the current
// hover/active/selection state used to build fresh contexts on a miss.
type Manager struct {
	rowCache  *cache
	colCache  *cache
	cellCache *cache

	hover      model.CellRef
	hasHover   bool
	activeCell model.CellRef
	hasActive  bool
	selRange   model.SelectionRange
	hasSel     bool
}

// New creates an empty highlight manager.
func New() *Manager {
	return &Manager{rowCache: newCache(), colCache: newCache(), cellCache: newCache()}
}

// SetHoverPosition updates the hovered cell, invalidating all three
// caches (§4.9). Callers emit SET_HOVER_POSITION on the bus themselves;
// this method only maintains cache state.
func (m *Manager) SetHoverPosition(row, col int, has bool) {
	m.hover = model.CellRef{Row: row, Col: col}
	m.hasHover = has
	m.rowCache.clear()
	m.colCache.clear()
	m.cellCache.clear()
}

// SetSelection updates active cell and selection range, invalidating all
// three caches (§4.9).
func (m *Manager) SetSelection(active model.CellRef, hasActive bool, rng model.SelectionRange, hasSel bool) {
	m.activeCell = active
	m.hasActive = hasActive
	m.selRange = rng
	m.hasSel = hasSel
	m.rowCache.clear()
	m.colCache.clear()
	m.cellCache.clear()
}

// RowContext returns the memoized context for rowIndex, building and
// caching it on a miss. isHovered is true when the pointer is on any
// cell in that row (§4.9).
func (m *Manager) RowContext(rowIndex int, rowData *model.Row) Context {
	key := fmt.Sprintf("%d", rowIndex)
	if ctx, ok := m.rowCache.get(key); ok {
		return ctx
	}
	ctx := Context{
		Kind:           KindRow,
		RowIndex:       rowIndex,
		RowData:        rowData,
		HoverPosition:  m.hover,
		HasHover:       m.hasHover,
		ActiveCell:     m.activeCell,
		HasActive:      m.hasActive,
		SelectionRange: m.selRange,
		HasSelection:   m.hasSel,
		IsHovered:      m.hasHover && m.hover.Row == rowIndex,
		IsActive:       m.hasActive && m.activeCell.Row == rowIndex,
		IsSelected:     m.hasSel && rowInRange(rowIndex, m.selRange),
	}
	m.rowCache.set(key, ctx)
	return ctx
}

// ColContext returns the memoized context for colIndex. isHovered is true
// when the pointer is on any cell in that column.
func (m *Manager) ColContext(colIndex int, column *model.ColumnDef) Context {
	key := fmt.Sprintf("%d", colIndex)
	if ctx, ok := m.colCache.get(key); ok {
		return ctx
	}
	ctx := Context{
		Kind:           KindCol,
		ColIndex:       colIndex,
		Column:         column,
		HoverPosition:  m.hover,
		HasHover:       m.hasHover,
		ActiveCell:     m.activeCell,
		HasActive:      m.hasActive,
		SelectionRange: m.selRange,
		HasSelection:   m.hasSel,
		IsHovered:      m.hasHover && m.hover.Col == colIndex,
		IsActive:       m.hasActive && m.activeCell.Col == colIndex,
		IsSelected:     m.hasSel && colInRange(colIndex, m.selRange),
	}
	m.colCache.set(key, ctx)
	return ctx
}

// CellContext returns the memoized context for (rowIndex,colIndex).
// isHovered is true only for the exact cell.
func (m *Manager) CellContext(rowIndex, colIndex int, column *model.ColumnDef, rowData *model.Row) Context {
	key := fmt.Sprintf("%d:%d", rowIndex, colIndex)
	if ctx, ok := m.cellCache.get(key); ok {
		return ctx
	}
	ctx := Context{
		Kind:           KindCell,
		RowIndex:       rowIndex,
		ColIndex:       colIndex,
		Column:         column,
		RowData:        rowData,
		HoverPosition:  m.hover,
		HasHover:       m.hasHover,
		ActiveCell:     m.activeCell,
		HasActive:      m.hasActive,
		SelectionRange: m.selRange,
		HasSelection:   m.hasSel,
		IsHovered:      m.hasHover && m.hover.Row == rowIndex && m.hover.Col == colIndex,
		IsActive:       m.hasActive && m.activeCell.Row == rowIndex && m.activeCell.Col == colIndex,
		IsSelected:     m.hasSel && m.selRange.Contains(rowIndex, colIndex),
	}
	m.cellCache.set(key, ctx)
	return ctx
}

func rowInRange(row int, r model.SelectionRange) bool {
	n := r.Normalized()
	return row >= n.StartRow && row <= n.EndRow
}

func colInRange(col int, r model.SelectionRange) bool {
	n := r.Normalized()
	return col >= n.StartCol && col <= n.EndCol
}

// ClassCallback produces a class-list string for a context; a per-column
// callback overrides the grid-level one (§4.9).
type ClassCallback func(ctx Context) string

// ResolveClassCallback picks the per-column callback when present,
// falling back to the grid-level one.
func ResolveClassCallback(columnCallback, gridCallback ClassCallback) ClassCallback {
	if columnCallback != nil {
		return columnCallback
	}
	return gridCallback
}
