// Package model defines the data-model types shared across the grid core:
// rows, column definitions, sort and filter models, and the small state
// records (selection, edit, fill, viewport, content geometry) that the
// façade and its managers read and write.
//
// These are plain structs rather than DDD-style rich aggregates, grounded
// on the teacher's resource/domain table/column descriptors but trimmed to
// data-grid concerns: no persistence, no SQL dialects.
package model

import "strings"

// Row is a mapping from field name (possibly a dot-separated path denoting
// nested access) to cell value, plus a stable row identifier.
type Row struct {
	ID     any
	Fields map[string]any
}

// NewRow constructs a Row from an id and a shallow field map. The map is
// used directly, not copied.
func NewRow(id any, fields map[string]any) Row {
	if fields == nil {
		fields = make(map[string]any)
	}
	return Row{ID: id, Fields: fields}
}

// Get resolves a dot-path field access, returning nil for any missing
// intermediate segment.
func (r Row) Get(path string) any {
	return getPath(r.Fields, path)
}

// Set writes a dot-path field, creating intermediate map segments as
// needed.
func (r Row) Set(path string, value any) {
	setPath(r.Fields, path, value)
}

func getPath(m map[string]any, path string) any {
	if m == nil {
		return nil
	}
	segs := strings.Split(path, ".")
	var cur any = m
	for _, seg := range segs {
		asMap, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, present := asMap[seg]
		if !present {
			return nil
		}
		cur = v
	}
	return cur
}

func setPath(m map[string]any, path string, value any) {
	segs := strings.Split(path, ".")
	cur := m
	for i, seg := range segs {
		if i == len(segs)-1 {
			cur[seg] = value
			return
		}
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[seg] = next
		}
		cur = next
	}
}

// Clone produces a shallow copy of the row with a new top-level Fields map
// (nested maps/sequences are shared, not deep-copied), used when the store
// patches a row in place but must not mutate a slot's existing reference.
func (r Row) Clone() Row {
	fields := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return Row{ID: r.ID, Fields: fields}
}
