package selection

import (
	"testing"

	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetActiveCellClamps(t *testing.T) {
	m := New()
	c := m.SetActiveCell(100, -5, 10, 3)
	assert.Equal(t, model.CellRef{Row: 9, Col: 0}, c)
}

func TestMoveFocusSeedsRangeOnExtend(t *testing.T) {
	m := New()
	m.SetActiveCell(2, 2, 10, 10)
	m.MoveFocus(DirRight, true, 10, 10)
	st := m.State()
	require.True(t, st.RangeSet)
	assert.Equal(t, 2, st.Range.StartRow)
	assert.Equal(t, 3, st.Range.EndCol)
}

func TestMoveFocusWithoutExtendClearsRange(t *testing.T) {
	m := New()
	m.SetActiveCell(2, 2, 10, 10)
	m.MoveFocus(DirRight, true, 10, 10)
	m.MoveFocus(DirDown, false, 10, 10)
	assert.False(t, m.State().RangeSet)
}

func TestSelectAllSpansGrid(t *testing.T) {
	m := New()
	m.SelectAll(100, 5)
	st := m.State()
	assert.Equal(t, model.SelectionRange{StartRow: 0, StartCol: 0, EndRow: 99, EndCol: 4}, st.Range)
}

func TestCopyToClipboardSerializesTabAndNewline(t *testing.T) {
	cols := []model.ColumnDef{{ColId: "a"}, {ColId: "b"}}
	data := map[int]map[string]any{
		0: {"a": "x1", "b": "y1"},
		1: {"a": "x2", "b": "y2"},
	}
	rng := model.SelectionRange{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 1}
	out := CopyToClipboard(rng, cols, func(row int, colId string) any { return data[row][colId] })
	assert.Equal(t, "x1\ty1\nx2\ty2", out)
}

func TestFillHullAndEligibility(t *testing.T) {
	source := model.SelectionRange{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 1}
	hull := FillHull(source, model.CellRef{Row: 3, Col: 1})
	assert.Equal(t, model.SelectionRange{StartRow: 0, StartCol: 0, EndRow: 3, EndCol: 1}, hull)

	cols := []model.ColumnDef{{Editable: true}, {Editable: true}}
	assert.True(t, IsFillEligible(source, cols))
	cols[1].Editable = false
	assert.False(t, IsFillEligible(source, cols))
}

func TestCommitFillWritesHullExcludingSource(t *testing.T) {
	source := model.SelectionRange{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 0}
	target := model.CellRef{Row: 2, Col: 0}
	cols := []model.ColumnDef{{Editable: true}}
	writes := CommitFill(source, target, cols, func(col int) any { return "v" })
	require.Len(t, writes, 2)
	assert.Equal(t, 1, writes[0].Row)
	assert.Equal(t, 2, writes[1].Row)
}

func TestCommitFillReturnsNilWhenNotEligible(t *testing.T) {
	source := model.SelectionRange{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 0}
	cols := []model.ColumnDef{{Editable: false}}
	writes := CommitFill(source, model.CellRef{Row: 1}, cols, func(col int) any { return "v" })
	assert.Nil(t, writes)
}
