package selection

import "github.com/kasuganosora/vtgrid/pkg/model"

// FillManager tracks an in-progress fill-handle drag (§4.8).
type FillManager struct {
	state model.FillState
	active bool
}

// NewFill creates an empty fill manager.
func NewFill() *FillManager {
	return &FillManager{}
}

// StartFill begins a fill drag from source.
func (f *FillManager) StartFill(source model.SelectionRange) {
	f.state = model.FillState{Source: source}
	f.active = true
}

// UpdateFillTarget updates the drag target, clamped to bounds.
func (f *FillManager) UpdateFillTarget(row, col, totalRows, columnCount int) {
	if !f.active {
		return
	}
	f.state.Target = model.CellRef{Row: clamp(row, 0, totalRows-1), Col: clamp(col, 0, columnCount-1)}
}

// Active reports whether a fill drag is in progress.
func (f *FillManager) Active() bool {
	return f.active
}

// State returns the current fill state.
func (f *FillManager) State() model.FillState {
	return f.state
}

// CancelFill discards the in-progress target.
func (f *FillManager) CancelFill() {
	f.state = model.FillState{}
	f.active = false
}

// FillHull computes the rectangular hull between source and target.
func FillHull(source model.SelectionRange, target model.CellRef) model.SelectionRange {
	n := source.Normalized()
	hull := n
	if target.Row < hull.StartRow {
		hull.StartRow = target.Row
	}
	if target.Row > hull.EndRow {
		hull.EndRow = target.Row
	}
	if target.Col < hull.StartCol {
		hull.StartCol = target.Col
	}
	if target.Col > hull.EndCol {
		hull.EndCol = target.Col
	}
	return hull
}

// IsFillEligible reports whether every column in the source's column
// range is editable (§4.8: fill is permitted only under this condition).
func IsFillEligible(source model.SelectionRange, cols []model.ColumnDef) bool {
	n := source.Normalized()
	for c := n.StartCol; c <= n.EndCol && c < len(cols); c++ {
		if !cols[c].Editable {
			return false
		}
	}
	return true
}

// CommitFill computes, for every cell in the hull between source and
// target not part of source, the value to write from the corresponding
// source-column value. getSourceValue(col) returns the
// source-range value to replicate for column col (the caller typically
// uses the top row of the source range). Returns nil (no writes) if the
// source is not fill-eligible.
func CommitFill(source model.SelectionRange, target model.CellRef, cols []model.ColumnDef, getSourceValue func(col int) any) []FillWrite {
	if !IsFillEligible(source, cols) {
		return nil
	}
	n := source.Normalized()
	hull := FillHull(source, target)

	var writes []FillWrite
	for r := hull.StartRow; r <= hull.EndRow; r++ {
		for c := hull.StartCol; c <= hull.EndCol; c++ {
			if n.Contains(r, c) {
				continue
			}
			writes = append(writes, FillWrite{Row: r, Col: c, Value: getSourceValue(c)})
		}
	}
	return writes
}

// FillWrite is one cell to patch as a result of committing a fill.
type FillWrite struct {
	Row   int
	Col   int
	Value any
}
