// Package bus implements the instruction bus (§4.1): a tagged-union
// Instruction type and synchronous single/batch listener delivery.
package bus

import "github.com/kasuganosora/vtgrid/pkg/model"

// Kind tags an Instruction's variant.
type Kind string

const (
	// Slot lifecycle.
	CreateSlot  Kind = "CREATE_SLOT"
	DestroySlot Kind = "DESTROY_SLOT"
	AssignSlot  Kind = "ASSIGN_SLOT"
	MoveSlot    Kind = "MOVE_SLOT"

	// Selection.
	SetActiveCell     Kind = "SET_ACTIVE_CELL"
	SetSelectionRange Kind = "SET_SELECTION_RANGE"
	SetHoverPosition  Kind = "SET_HOVER_POSITION"
	UpdateVisibleRange Kind = "UPDATE_VISIBLE_RANGE"

	// Edit.
	StartEdit  Kind = "START_EDIT"
	StopEdit   Kind = "STOP_EDIT"
	CommitEdit Kind = "COMMIT_EDIT"

	// Layout.
	SetContentSize  Kind = "SET_CONTENT_SIZE"
	UpdateHeader    Kind = "UPDATE_HEADER"
	ColumnsChanged  Kind = "COLUMNS_CHANGED"
	ColumnResized   Kind = "COLUMN_RESIZED"
	ColumnMoved     Kind = "COLUMN_MOVED"

	// Filter popup.
	OpenFilterPopup  Kind = "OPEN_FILTER_POPUP"
	CloseFilterPopup Kind = "CLOSE_FILTER_POPUP"

	// Fill.
	StartFill  Kind = "START_FILL"
	UpdateFill Kind = "UPDATE_FILL"
	CommitFill Kind = "COMMIT_FILL"
	CancelFill Kind = "CANCEL_FILL"

	// Data loading.
	DataLoading Kind = "DATA_LOADING"
	DataLoaded  Kind = "DATA_LOADED"
	DataError   Kind = "DATA_ERROR"

	// Mutation.
	RowsAdded           Kind = "ROWS_ADDED"
	RowsRemoved         Kind = "ROWS_REMOVED"
	RowsUpdated         Kind = "ROWS_UPDATED"
	TransactionProcessed Kind = "TRANSACTION_PROCESSED"

	// Row drag.
	RowDragged Kind = "ROW_DRAGGED"
)

// Instruction is the single wire type emitted on the bus. Not every field
// is populated for every Kind; callers switch on Kind and read the fields
// documented for that variant.
type Instruction struct {
	Kind Kind

	// Slot lifecycle / refresh.
	SlotId     int
	RowIndex   int
	TranslateY float64

	// Selection.
	ActiveCell model.CellRef
	Range      model.SelectionRange
	Hover      model.CellRef
	HoverSet   bool

	// Edit.
	Row          int
	Col          int
	InitialValue any
	CurrentValue any

	// Layout.
	ContentHeight float64
	RowsWrapperOffset float64
	Columns       []model.ColumnDef

	// Filter popup.
	ColId string

	// Fill.
	FillSource model.SelectionRange
	FillTarget model.CellRef

	// Data loading / error.
	Message string

	// Mutation counts.
	Added   int
	Removed int
	Updated int

	// Visible range.
	VisibleStart int
	VisibleEnd   int
}
