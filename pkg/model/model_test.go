package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowGetSetDotPath(t *testing.T) {
	r := NewRow(1, map[string]any{})
	r.Set("address.city", "Metropolis")
	assert.Equal(t, "Metropolis", r.Get("address.city"))
	assert.Nil(t, r.Get("address.zip"))
	assert.Nil(t, r.Get("missing.deep.path"))
}

func TestRowClone(t *testing.T) {
	r := NewRow(1, map[string]any{"a": 1})
	c := r.Clone()
	c.Fields["a"] = 2
	assert.Equal(t, 1, r.Fields["a"])
	assert.Equal(t, 2, c.Fields["a"])
}

func TestColumnDefNormalizeDefaults(t *testing.T) {
	c := ColumnDef{Field: "name"}.Normalize()
	assert.Equal(t, "name", c.ColId)
	assert.Equal(t, "name", c.HeaderName)
	assert.True(t, c.IsSortable())
	assert.True(t, c.IsFilterable())
}

func TestValidateColumnsRejectsDuplicateIds(t *testing.T) {
	cols := []ColumnDef{
		{Field: "a", ColId: "x"},
		{Field: "b", ColId: "x"},
	}
	require.Error(t, ValidateColumns(cols))
}

func TestVisibleColumnsExcludesHidden(t *testing.T) {
	cols := []ColumnDef{{ColId: "a"}, {ColId: "b", Hidden: true}, {ColId: "c"}}
	vis := VisibleColumns(cols)
	require.Len(t, vis, 2)
	assert.Equal(t, "a", vis[0].ColId)
	assert.Equal(t, "c", vis[1].ColId)
}

func TestSortModelSetSortKeyReplacesAndAppends(t *testing.T) {
	var m SortModel
	m = m.SetSortKey("a", SortAsc)
	m = m.SetSortKey("b", SortDesc)
	require.Len(t, m, 2)
	m = m.SetSortKey("a", SortDesc)
	require.Len(t, m, 2)
	assert.Equal(t, SortDesc, m[0].Direction)
}

func TestSortModelSetSortKeyRemovesOnEmptyDirection(t *testing.T) {
	var m SortModel
	m = m.SetSortKey("a", SortAsc)
	m = m.SetSortKey("a", "")
	assert.Len(t, m, 0)
}

func TestSelectionRangeNormalizedAndContains(t *testing.T) {
	r := SelectionRange{StartRow: 5, StartCol: 5, EndRow: 1, EndCol: 1}
	n := r.Normalized()
	assert.Equal(t, 1, n.StartRow)
	assert.True(t, r.Contains(3, 3))
	assert.False(t, r.Contains(0, 0))
}

func TestContentGeometryWithinBound(t *testing.T) {
	g := NewContentGeometry(100, 32)
	assert.Equal(t, float64(3200), g.NaturalHeight)
	assert.Equal(t, float64(3200), g.VirtualHeight)
	assert.Equal(t, float64(1), g.ScrollRatio)
}

func TestContentGeometryExceedsMax(t *testing.T) {
	g := NewContentGeometry(1_500_000, 32)
	assert.Equal(t, float64(48_000_000), g.NaturalHeight)
	assert.Equal(t, float64(MaxScrollHeight), g.VirtualHeight)
	assert.InDelta(t, 0.2083, g.ScrollRatio, 0.001)
}

func TestViewportEffectiveScrollTop(t *testing.T) {
	v := Viewport{ScrollTop: 100}
	assert.Equal(t, float64(100), v.EffectiveScrollTop(1))
	assert.InDelta(t, 200, v.EffectiveScrollTop(0.5), 0.001)
}
