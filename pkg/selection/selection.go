// Package selection implements active-cell/range selection, keyboard
// focus movement, select-all, and clipboard serialization (§4.8).
package selection

import (
	"strings"

	"github.com/kasuganosora/vtgrid/pkg/cellvalue"
	"github.com/kasuganosora/vtgrid/pkg/model"
)

// Direction is a focus-movement direction for moveFocus.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Manager owns the grid-wide SelectionState. Bounds checks require
// totalRows/columnCount from the caller since the manager itself holds no
// reference back to the façade (§9's design note on avoiding cycles).
type Manager struct {
	state model.SelectionState
}

// New creates an empty selection manager.
func New() *Manager {
	return &Manager{}
}

// State returns a copy of the current selection state.
func (m *Manager) State() model.SelectionState {
	return m.state
}

// SetActiveCell clamps (row,col) to bounds and sets it as the active
// cell, clearing any existing range (§4.8, §8.10).
func (m *Manager) SetActiveCell(row, col, totalRows, columnCount int) model.CellRef {
	clamped := model.CellRef{Row: clamp(row, 0, totalRows-1), Col: clamp(col, 0, columnCount-1)}
	m.state.ActiveCell = clamped
	m.state.ActiveSet = true
	m.state.RangeSet = false
	return clamped
}

// SetSelectionRange sets the selection range directly (not normalized;
// callers needing containment should call Normalized themselves).
func (m *Manager) SetSelectionRange(r model.SelectionRange) {
	m.state.Range = r
	m.state.RangeSet = true
}

// Clear resets both active cell and range.
func (m *Manager) Clear() {
	m.state = model.SelectionState{}
}

// MoveFocus moves the active cell one step in direction, clamped to
// bounds. When extend is true and no range exists yet, a range is seeded
// from the current active cell before moving; the active cell's new
// position becomes the range's moving endpoint.
func (m *Manager) MoveFocus(dir Direction, extend bool, totalRows, columnCount int) model.CellRef {
	if !m.state.ActiveSet {
		m.state.ActiveCell = model.CellRef{}
		m.state.ActiveSet = true
	}
	cur := m.state.ActiveCell
	next := cur
	switch dir {
	case DirUp:
		next.Row--
	case DirDown:
		next.Row++
	case DirLeft:
		next.Col--
	case DirRight:
		next.Col++
	}
	next.Row = clamp(next.Row, 0, totalRows-1)
	next.Col = clamp(next.Col, 0, columnCount-1)

	if extend {
		if !m.state.RangeSet {
			m.state.Range = model.SelectionRange{StartRow: cur.Row, StartCol: cur.Col, EndRow: cur.Row, EndCol: cur.Col}
			m.state.RangeSet = true
		}
		m.state.Range.EndRow = next.Row
		m.state.Range.EndCol = next.Col
	} else {
		m.state.RangeSet = false
	}

	m.state.ActiveCell = next
	return next
}

// SelectAll spans the entire grid.
func (m *Manager) SelectAll(totalRows, columnCount int) {
	if totalRows <= 0 || columnCount <= 0 {
		return
	}
	m.state.Range = model.SelectionRange{StartRow: 0, StartCol: 0, EndRow: totalRows - 1, EndCol: columnCount - 1}
	m.state.RangeSet = true
}

// CopyToClipboard serializes the selected range row-major, tab-separated
// columns, newline-separated rows, using cell string coercion (§4.8).
// cols is the full visible column list in display order; get resolves a
// cell by (row, colId).
func CopyToClipboard(rng model.SelectionRange, cols []model.ColumnDef, get func(row int, colId string) any) string {
	n := rng.Normalized()
	var lines []string
	for r := n.StartRow; r <= n.EndRow; r++ {
		var cells []string
		for c := n.StartCol; c <= n.EndCol && c < len(cols); c++ {
			cells = append(cells, cellvalue.ToText(get(r, cols[c].ColId)))
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
