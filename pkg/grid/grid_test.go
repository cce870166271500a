package grid

import (
	"context"
	"testing"

	"github.com/kasuganosora/vtgrid/pkg/bus"
	"github.com/kasuganosora/vtgrid/pkg/datasource/memsource"
	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColumns() []model.ColumnDef {
	return []model.ColumnDef{
		{Field: "name", CellDataType: model.CellDataTypeText, Editable: true},
		{Field: "age", CellDataType: model.CellDataTypeNumber, Editable: true},
	}
}

func seededFacade(t *testing.T, rows []map[string]any) (*Facade, *memsource.Source) {
	t.Helper()
	src := memsource.New(func(f map[string]any) any { return f["id"] }, nil, 10)
	ctx := context.Background()
	if len(rows) > 0 {
		_, err := src.AddRows(ctx, rows)
		require.NoError(t, err)
	}
	f, err := New(Config{
		Columns:    testColumns(),
		DataSource: src,
		RowHeight:  32,
	})
	require.NoError(t, err)
	require.NoError(t, f.Initialize(ctx))
	return f, src
}

func TestNewRejectsInconsistentConfig(t *testing.T) {
	src := memsource.New(nil, nil, 10)

	_, err := New(Config{Columns: testColumns(), DataSource: nil, RowHeight: 32})
	assert.Error(t, err)

	_, err = New(Config{Columns: testColumns(), DataSource: src, RowHeight: 0})
	assert.Error(t, err)

	_, err = New(Config{Columns: []model.ColumnDef{{Field: "a", ColId: "x"}, {Field: "b", ColId: "x"}}, DataSource: src, RowHeight: 32})
	assert.Error(t, err)
}

// Scenario 1 (viewport alignment, §8): rowHeight=32, header height left at
// its default (rowHeight), viewport=800x600, overscan=3, totalRows=10000,
// scrollTop=0 produces 21 CREATE_SLOT instructions (rows 0-17 visible,
// plus 3 overscan rows below).
func TestScenarioViewportAlignment(t *testing.T) {
	rows := make([]map[string]any, 10_000)
	for i := range rows {
		rows[i] = map[string]any{"id": i, "name": "r", "age": i}
	}
	f, _ := seededFacade(t, rows)
	defer f.Destroy()

	var batch []bus.Instruction
	f.Bus().SubscribeBatch(func(i []bus.Instruction) { batch = append(batch, i...) })

	f.SetViewport(model.Viewport{ScrollTop: 0, Width: 800, Height: 600})

	created := 0
	for _, instr := range batch {
		if instr.Kind == bus.CreateSlot {
			created++
		}
	}
	assert.Equal(t, 21, created)
}

// Scenario 3 (multi-key sort stability, §8).
func TestScenarioMultiKeySortStability(t *testing.T) {
	rows := []map[string]any{
		{"id": "1", "name": "Bob", "age": 30},
		{"id": "2", "name": "Alice", "age": 30},
		{"id": "3", "name": "Alice", "age": 25},
	}
	f, _ := seededFacade(t, rows)
	defer f.Destroy()

	ctx := context.Background()
	f.SetSort(ctx, "age", model.SortAsc)
	f.SetSort(ctx, "name", model.SortDesc)

	names := make([]string, 0, 3)
	ages := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r, ok := f.RowAt(i)
		require.True(t, ok)
		names = append(names, r.Fields["name"].(string))
		ages = append(ages, r.Fields["age"].(int))
	}
	assert.Equal(t, []string{"Alice", "Bob", "Alice"}, names)
	assert.Equal(t, []int{25, 30, 30}, ages)
}

func TestSetSortDroppedForUnknownColumn(t *testing.T) {
	f, _ := seededFacade(t, []map[string]any{{"id": "1", "name": "a", "age": 1}})
	defer f.Destroy()

	ctx := context.Background()
	f.SetSort(ctx, "missing-col", model.SortAsc)
	assert.Empty(t, f.sortModelSnapshot())
}

func TestRoundTripSortRestoresOrder(t *testing.T) {
	rows := []map[string]any{
		{"id": "1", "name": "Bob", "age": 30},
		{"id": "2", "name": "Alice", "age": 20},
	}
	f, _ := seededFacade(t, rows)
	defer f.Destroy()
	ctx := context.Background()

	before := make([]any, 2)
	for i := range before {
		r, _ := f.RowAt(i)
		before[i] = r.ID
	}

	f.SetSort(ctx, "age", model.SortAsc)
	f.SetSort(ctx, "age", "") // clearing the sort key should restore source order

	after := make([]any, 2)
	for i := range after {
		r, _ := f.RowAt(i)
		after[i] = r.ID
	}
	assert.Equal(t, before, after)
}

func TestCommitEditWritesThroughAndRefreshesSlot(t *testing.T) {
	f, src := seededFacade(t, []map[string]any{{"id": "1", "name": "Alice", "age": 30}})
	defer f.Destroy()
	ctx := context.Background()

	f.StartEdit(0, 0)
	f.UpdateEditValue("Alicia")
	require.NoError(t, f.CommitEdit(ctx))

	r, ok := f.RowAt(0)
	require.True(t, ok)
	assert.Equal(t, "Alicia", r.Fields["name"])

	resp, err := src.Fetch(ctx, model.FetchRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", resp.Rows[0].Fields["name"])
}

func TestCommitFillReplicatesSourceColumnAcrossHull(t *testing.T) {
	rows := []map[string]any{
		{"id": "1", "name": "seed", "age": 1},
		{"id": "2", "name": "x", "age": 2},
		{"id": "3", "name": "x", "age": 3},
	}
	f, _ := seededFacade(t, rows)
	defer f.Destroy()
	ctx := context.Background()

	f.StartFill(model.SelectionRange{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 0})
	f.UpdateFillTarget(2, 0)
	require.NoError(t, f.CommitFill(ctx))

	for i := 0; i < 3; i++ {
		r, ok := f.RowAt(i)
		require.True(t, ok)
		assert.Equal(t, "seed", r.Fields["name"])
	}
}

func TestCopyToClipboardSerializesSelection(t *testing.T) {
	rows := []map[string]any{
		{"id": "1", "name": "Alice", "age": 30},
		{"id": "2", "name": "Bob", "age": 25},
	}
	f, _ := seededFacade(t, rows)
	defer f.Destroy()

	f.SetSelectionRange(model.SelectionRange{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 1})
	out := f.CopyToClipboard()
	assert.Equal(t, "Alice\t30\nBob\t25", out)
}

func TestDestroyIsIdempotent(t *testing.T) {
	f, _ := seededFacade(t, nil)
	f.Destroy()
	f.Destroy()
}
