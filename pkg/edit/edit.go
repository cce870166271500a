// Package edit implements the single grid-wide cell edit state machine
// (§4.8): startEdit/updateEditValue/commitEdit/cancelEdit.
package edit

import (
	"github.com/kasuganosora/vtgrid/pkg/bus"
	"github.com/kasuganosora/vtgrid/pkg/model"
)

// SetCellValue writes the committed value back to the data store;
// implemented by the façade/store and injected so this package has no
// back-reference (§9).
type SetCellValue func(row, col int, value any)

// RequestSlotRefresh asks the slot pool to re-emit the slot for a row
// after its data changed in place.
type RequestSlotRefresh func(row int)

// Manager owns the at-most-one active EditState.
type Manager struct {
	state  model.EditState
	active bool
}

// New creates an empty edit manager.
func New() *Manager {
	return &Manager{}
}

// Active reports whether an edit is currently in progress.
func (m *Manager) Active() bool {
	return m.active
}

// State returns the current edit state.
func (m *Manager) State() model.EditState {
	return m.state
}

// StartEdit is a no-op unless the column is editable. Reads currentValue
// as the initial value and emits START_EDIT.
func (m *Manager) StartEdit(row, col int, editable bool, currentValue any, b *bus.Bus) {
	if !editable {
		return
	}
	m.state = model.EditState{Row: row, Col: col, InitialValue: currentValue, CurrentValue: currentValue}
	m.active = true
	b.Emit(bus.Instruction{Kind: bus.StartEdit, Row: row, Col: col, InitialValue: currentValue, CurrentValue: currentValue})
}

// UpdateEditValue mutates CurrentValue in state without emission.
func (m *Manager) UpdateEditValue(value any) {
	if !m.active {
		return
	}
	m.state.CurrentValue = value
}

// CommitEdit writes through setCellValue, emits COMMIT_EDIT then
// STOP_EDIT, and requests a slot refresh for the edited row.
func (m *Manager) CommitEdit(setCellValue SetCellValue, refreshSlot RequestSlotRefresh, b *bus.Bus) {
	if !m.active {
		return
	}
	row, col, value := m.state.Row, m.state.Col, m.state.CurrentValue
	setCellValue(row, col, value)
	b.Emit(bus.Instruction{Kind: bus.CommitEdit, Row: row, Col: col, CurrentValue: value})
	b.Emit(bus.Instruction{Kind: bus.StopEdit, Row: row, Col: col})
	refreshSlot(row)
	m.active = false
	m.state = model.EditState{}
}

// CancelEdit emits STOP_EDIT without writing.
func (m *Manager) CancelEdit(b *bus.Bus) {
	if !m.active {
		return
	}
	row, col := m.state.Row, m.state.Col
	b.Emit(bus.Instruction{Kind: bus.StopEdit, Row: row, Col: col})
	m.active = false
	m.state = model.EditState{}
}
