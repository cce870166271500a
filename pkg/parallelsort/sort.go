package parallelsort

import (
	"github.com/kasuganosora/vtgrid/pkg/cellvalue"
	"github.com/kasuganosora/vtgrid/pkg/model"
)

// FieldAccessor resolves a column id to the cell value within a row,
// mirroring sortfilter.FieldAccessor so callers can share one function.
type FieldAccessor func(row model.Row, colId string) any

// ShouldParallelize reports whether rowCount meets PARALLEL_THRESHOLD and
// a pool is available, the activation condition from §4.5.
func ShouldParallelize(rowCount int, pool *Pool) bool {
	return pool != nil && rowCount >= ParallelThreshold
}

// Sort applies sortModel to rows using the parallel engine. Callers are
// expected to have already checked ShouldParallelize; Sort itself always
// dispatches through the pool.
func Sort(rows []model.Row, sortModel model.SortModel, accessor FieldAccessor, pool *Pool) []model.Row {
	if len(sortModel) == 0 || len(rows) == 0 {
		out := make([]model.Row, len(rows))
		copy(out, rows)
		return out
	}

	if len(sortModel) == 1 {
		key := sortModel[0]
		if columnLooksTextual(rows, key.ColId, accessor) {
			return sortSingleKeyString(rows, key, accessor, pool)
		}
		return sortSingleKeyNumeric(rows, key, accessor, pool)
	}
	return sortMultiKey(rows, sortModel, accessor, pool)
}

// columnLooksTextual samples up to 32 rows to decide whether a column's
// values should route through the string hash-chunk path rather than the
// generic numeric-conversion path. Sequences, numbers and instants have a
// lossless single-number conversion (cellvalue.ToSortNumber); plain text
// is the one shape that benefits from the full 3-chunk hash plus
// collation-fallback collision resolution.
func columnLooksTextual(rows []model.Row, colId string, accessor FieldAccessor) bool {
	sampled := 0
	textual := 0
	for _, row := range rows {
		if sampled >= 32 {
			break
		}
		v := accessor(row, colId)
		if cellvalue.IsEmpty(v) {
			continue
		}
		sampled++
		if _, ok := v.(string); ok {
			textual++
		}
	}
	return sampled > 0 && textual == sampled
}

func sortSingleKeyNumeric(rows []model.Row, key model.SortKey, accessor FieldAccessor, pool *Pool) []model.Row {
	values := make([]float64, len(rows))
	for i, row := range rows {
		values[i] = cellvalue.ToSortNumber(accessor(row, key.ColId))
	}
	dir := 1
	if key.Direction == model.SortDesc {
		dir = -1
	}
	order := SortNumericParallel(values, dir, pool)
	return reorder(rows, order)
}

func sortSingleKeyString(rows []model.Row, key model.SortKey, accessor FieldAccessor, pool *Pool) []model.Row {
	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = cellvalue.ToText(accessor(row, key.ColId))
	}
	dir := 1
	if key.Direction == model.SortDesc {
		dir = -1
	}
	order, _ := SortStringParallel(texts, dir, pool)
	return reorder(rows, order)
}

func sortMultiKey(rows []model.Row, sortModel model.SortModel, accessor FieldAccessor, pool *Pool) []model.Row {
	keys := make([][]float64, len(rows))
	directions := make([]Direction, len(sortModel))
	for k, key := range sortModel {
		if key.Direction == model.SortDesc {
			directions[k] = Descending
		} else {
			directions[k] = Ascending
		}
	}
	for i, row := range rows {
		keys[i] = make([]float64, len(sortModel))
		for k, key := range sortModel {
			keys[i][k] = cellvalue.ToSortNumber(accessor(row, key.ColId))
		}
	}
	order := SortMultiKeyParallel(keys, directions, pool)
	return reorder(rows, order)
}

func reorder(rows []model.Row, order []int) []model.Row {
	out := make([]model.Row, len(order))
	for i, idx := range order {
		out[i] = rows[idx]
	}
	return out
}
