package model

// SortDirection is the direction of a single sort key.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortKey pairs a column id with a direction. A SortModel is an ordered
// sequence of SortKeys; insertion order defines tie-break priority (the
// first key is primary). A column may appear at most once (§3) — enforced
// by SetSortKey, not by this type itself.
type SortKey struct {
	ColId     string
	Direction SortDirection
}

// SortModel is the ordered sequence of sort keys currently applied to the
// grid.
type SortModel []SortKey

// SetSortKey returns a new SortModel with colId's key set to direction,
// preserving the position of an existing key for that column or appending
// a new one. Passing an empty direction removes the column from the model.
func (m SortModel) SetSortKey(colId string, direction SortDirection) SortModel {
	out := make(SortModel, 0, len(m)+1)
	found := false
	for _, k := range m {
		if k.ColId == colId {
			found = true
			if direction == "" {
				continue
			}
			out = append(out, SortKey{ColId: colId, Direction: direction})
			continue
		}
		out = append(out, k)
	}
	if !found && direction != "" {
		out = append(out, SortKey{ColId: colId, Direction: direction})
	}
	return out
}

// Clear returns an empty SortModel.
func (m SortModel) Clear() SortModel {
	return nil
}
