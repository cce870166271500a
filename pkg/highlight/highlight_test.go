package highlight

import (
	"testing"

	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowContextMemoizes(t *testing.T) {
	m := New()
	ctx1 := m.RowContext(3, nil)
	ctx2 := m.RowContext(3, nil)
	assert.Equal(t, ctx1, ctx2)
}

func TestHoverChangeInvalidatesAllCaches(t *testing.T) {
	m := New()
	row := &model.Row{}
	col := &model.ColumnDef{}

	r1 := m.RowContext(3, row)
	c1 := m.ColContext(2, col)
	cell1 := m.CellContext(3, 2, col, row)
	assert.False(t, r1.IsHovered)
	assert.False(t, c1.IsHovered)
	assert.False(t, cell1.IsHovered)

	m.SetHoverPosition(3, 2, true)

	r2 := m.RowContext(3, row)
	c2 := m.ColContext(2, col)
	cell2 := m.CellContext(3, 2, col, row)
	assert.True(t, r2.IsHovered)
	assert.True(t, c2.IsHovered)
	assert.True(t, cell2.IsHovered)
}

func TestRowIsHoveredForAnyCellInRow(t *testing.T) {
	m := New()
	m.SetHoverPosition(5, 9, true)
	rowCtx := m.RowContext(5, nil)
	assert.True(t, rowCtx.IsHovered)
}

func TestColumnIsHoveredForAnyCellInColumn(t *testing.T) {
	m := New()
	m.SetHoverPosition(9, 4, true)
	colCtx := m.ColContext(4, nil)
	assert.True(t, colCtx.IsHovered)
}

func TestCellIsHoveredOnlyForExactCell(t *testing.T) {
	m := New()
	m.SetHoverPosition(5, 4, true)
	same := m.CellContext(5, 4, nil, nil)
	other := m.CellContext(5, 5, nil, nil)
	assert.True(t, same.IsHovered)
	assert.False(t, other.IsHovered)
}

func TestSelectionChangeInvalidatesAllCaches(t *testing.T) {
	m := New()
	_ = m.RowContext(1, nil)
	_ = m.ColContext(1, nil)
	_ = m.CellContext(1, 1, nil, nil)

	rng := model.SelectionRange{StartRow: 0, StartCol: 0, EndRow: 2, EndCol: 2}
	m.SetSelection(model.CellRef{Row: 1, Col: 1}, true, rng, true)

	rowCtx := m.RowContext(1, nil)
	colCtx := m.ColContext(1, nil)
	cellCtx := m.CellContext(1, 1, nil, nil)

	require.True(t, rowCtx.IsSelected)
	require.True(t, colCtx.IsSelected)
	require.True(t, cellCtx.IsSelected)
	assert.True(t, cellCtx.IsActive)
}

func TestResolveClassCallbackPrefersColumnOverride(t *testing.T) {
	grid := func(ctx Context) string { return "grid" }
	col := func(ctx Context) string { return "col" }
	assert.Equal(t, "col", ResolveClassCallback(col, grid)(Context{}))
	assert.Equal(t, "grid", ResolveClassCallback(nil, grid)(Context{}))
}
