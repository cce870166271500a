package model

import "fmt"

// CellDataType classifies how a column's values should be parsed, compared,
// and edited.
type CellDataType string

const (
	CellDataTypeText           CellDataType = "text"
	CellDataTypeNumber         CellDataType = "number"
	CellDataTypeBoolean        CellDataType = "boolean"
	CellDataTypeDate           CellDataType = "date"
	CellDataTypeDateString     CellDataType = "dateString"
	CellDataTypeDateTime       CellDataType = "dateTime"
	CellDataTypeDateTimeString CellDataType = "dateTimeString"
	CellDataTypeObject         CellDataType = "object"
)

// ColumnDef describes one column in the grid. ColId defaults to Field when
// empty (see Normalize). Sortable and Filterable default to true; all other
// bool fields default to false.
type ColumnDef struct {
	Field        string
	ColId        string
	CellDataType CellDataType
	Width        int
	HeaderName   string
	Editable     bool
	Sortable     *bool
	Filterable   *bool
	Hidden       bool
	Resizable    bool
	Movable      bool
	MinWidth     int
	MaxWidth     int
	RowDrag      bool
}

// Normalize fills in defaulted fields, returning a new ColumnDef. Call once
// per column when columns are set on the grid.
func (c ColumnDef) Normalize() ColumnDef {
	if c.ColId == "" {
		c.ColId = c.Field
	}
	if c.HeaderName == "" {
		c.HeaderName = c.ColId
	}
	if c.Sortable == nil {
		t := true
		c.Sortable = &t
	}
	if c.Filterable == nil {
		t := true
		c.Filterable = &t
	}
	return c
}

// IsSortable reports the effective sortable flag (default true).
func (c ColumnDef) IsSortable() bool {
	return c.Sortable == nil || *c.Sortable
}

// IsFilterable reports the effective filterable flag (default true).
func (c ColumnDef) IsFilterable() bool {
	return c.Filterable == nil || *c.Filterable
}

// ValidateColumns enforces the column-identifier-uniqueness invariant
// (§3): column identifiers must be unique within a grid.
func ValidateColumns(cols []ColumnDef) error {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		id := c.ColId
		if id == "" {
			id = c.Field
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("model: duplicate column id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// VisibleColumns returns cols filtered to those not hidden, preserving
// order. Hidden columns remain part of the definition but are absent from
// position computation, per §3.
func VisibleColumns(cols []ColumnDef) []ColumnDef {
	out := make([]ColumnDef, 0, len(cols))
	for _, c := range cols {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

// ColumnByID finds a column definition by its ColId.
func ColumnByID(cols []ColumnDef, colID string) (ColumnDef, bool) {
	for _, c := range cols {
		if c.ColId == colID {
			return c, true
		}
	}
	return ColumnDef{}, false
}
