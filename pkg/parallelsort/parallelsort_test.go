package parallelsort

import (
	"testing"

	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanChunksRespectsMinChunkSize(t *testing.T) {
	plan := PlanChunks(120_000, 8)
	assert.LessOrEqual(t, plan.ChunkCount(), 8)
	for i := 0; i < plan.ChunkCount(); i++ {
		start, end := plan.Bounds(i)
		if i < plan.ChunkCount()-1 {
			assert.GreaterOrEqual(t, end-start, MinChunkSize)
		}
	}
}

func TestKWayMergeNumericProducesSortedOrder(t *testing.T) {
	runs := []NumericRun{
		{Indices: []int{0, 2, 4}, Values: []float64{1, 3, 5}, Offset: 0},
		{Indices: []int{1, 3, 5}, Values: []float64{2, 4, 6}, Offset: 0},
	}
	order := KWayMergeNumeric(runs)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
}

func TestSortNumericParallelSmallInput(t *testing.T) {
	pool := NewPool(2)
	defer pool.Terminate()
	values := []float64{5, 1, 3, 2, 4}
	order := SortNumericParallel(values, 1, pool)
	sorted := make([]float64, len(order))
	for i, idx := range order {
		sorted[i] = values[idx]
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, sorted)
}

func TestSortNumericParallelDescending(t *testing.T) {
	pool := NewPool(2)
	defer pool.Terminate()
	values := []float64{5, 1, 3, 2, 4}
	order := SortNumericParallel(values, -1, pool)
	sorted := make([]float64, len(order))
	for i, idx := range order {
		sorted[i] = values[idx]
	}
	assert.Equal(t, []float64{5, 4, 3, 2, 1}, sorted)
}

func TestFindCollisionRunsDetectsContiguousEqualHashes(t *testing.T) {
	hashes := [][HashChunkCount]uint64{
		{1, 1, 1},
		{2, 2, 2},
		{2, 2, 2},
		{2, 2, 2},
		{3, 3, 3},
	}
	runs := findCollisionRuns(hashes)
	require.Len(t, runs, 1)
	assert.Equal(t, CollisionRun{Start: 1, End: 4}, runs[0])
}

func TestSortStringParallelResolvesCollision(t *testing.T) {
	// Scenario 4: two strings whose first 30 characters are identical
	// collide under the truncating hash (their tails differ beyond chunk
	// coverage); the resolver falls back to full-text locale collation.
	pool := NewPool(2)
	defer pool.Terminate()
	prefix := ""
	for len(prefix) < 30 {
		prefix += "a"
	}
	nameX := prefix + "X"
	nameY := prefix + "Y"
	texts := []string{nameY, nameX, "zzz"}
	order, collisions := SortStringParallel(texts, 1, pool)
	assert.NotEmpty(t, collisions)

	sortedTexts := make([]string, len(order))
	for i, idx := range order {
		sortedTexts[i] = texts[idx]
	}
	xPos, yPos := -1, -1
	for i, s := range sortedTexts {
		if s == nameX {
			xPos = i
		}
		if s == nameY {
			yPos = i
		}
	}
	assert.Less(t, xPos, yPos)
}

func TestSortMultiKeyParallelStability(t *testing.T) {
	pool := NewPool(2)
	defer pool.Terminate()
	keys := [][]float64{
		{30, 2}, // Bob/30
		{30, 1}, // Alice/30
		{25, 1}, // Alice/25
	}
	directions := []Direction{Ascending, Descending}
	order := SortMultiKeyParallel(keys, directions, pool)
	assert.Equal(t, []int{2, 0, 1}, order)
}

func TestSortFallsBackToCopyWithEmptySortModel(t *testing.T) {
	rows := []model.Row{model.NewRow(1, map[string]any{"a": 1})}
	out := Sort(rows, nil, func(r model.Row, c string) any { return r.Get(c) }, nil)
	require.Len(t, out, 1)
}

func TestSortSingleKeyNumericEndToEnd(t *testing.T) {
	pool := NewPool(2)
	defer pool.Terminate()
	rows := []model.Row{
		model.NewRow(1, map[string]any{"v": 3}),
		model.NewRow(2, map[string]any{"v": 1}),
		model.NewRow(3, map[string]any{"v": 2}),
	}
	sorted := Sort(rows, model.SortModel{{ColId: "v", Direction: model.SortAsc}},
		func(r model.Row, c string) any { return r.Get(c) }, pool)
	require.Len(t, sorted, 3)
	assert.Equal(t, 1, sorted[0].Fields["v"])
	assert.Equal(t, 2, sorted[1].Fields["v"])
	assert.Equal(t, 3, sorted[2].Fields["v"])
}
