package sortfilter

import (
	"sort"

	"github.com/kasuganosora/vtgrid/pkg/cellvalue"
	"github.com/kasuganosora/vtgrid/pkg/model"
)

// ApplySort stably sorts rows by walking sortModel in order: the first key
// is primary, later keys break ties (§4.4). With an empty sortModel the
// input order is preserved (a copy is still returned).
func ApplySort(rows []model.Row, sortModel model.SortModel, accessor FieldAccessor) []model.Row {
	out := make([]model.Row, len(rows))
	copy(out, rows)
	if len(sortModel) == 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, key := range sortModel {
			vi := accessor(out[i], key.ColId)
			vj := accessor(out[j], key.ColId)
			cmp := cellvalue.Compare(vi, vj)
			if cmp == 0 {
				continue
			}
			if key.Direction == model.SortDesc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return out
}
