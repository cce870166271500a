// Package sortfilter implements the sequential sort/filter pipeline
// (§4.4): applyFilters and applySort over a field accessor, the single-
// threaded fallback the parallel sort engine defers to below
// PARALLEL_THRESHOLD.
//
// Grounded on the teacher's pkg/resource/util/{filter,order}.go
// (ApplyFilters/MatchFilter/ApplyOrder), adapted from domain.Row/Filter to
// model.Row/model.FilterModel and from the teacher's CompareValues to
// cellvalue.Compare.
package sortfilter

import (
	"strings"
	"time"

	"github.com/kasuganosora/vtgrid/pkg/cellvalue"
	"github.com/kasuganosora/vtgrid/pkg/model"
)

// FieldAccessor resolves a column id to the cell value within a row.
type FieldAccessor func(row model.Row, colId string) any

// DefaultAccessor reads colId as a dot path into the row's fields.
func DefaultAccessor(row model.Row, colId string) any {
	return row.Get(colId)
}

// ApplyFilters filters rows against filterModel. Entries with empty
// conditions are skipped. All column filters are AND-combined across
// columns; within a column, Combination determines AND vs OR (§4.4).
func ApplyFilters(rows []model.Row, filterModel model.FilterModel, accessor FieldAccessor) []model.Row {
	if len(filterModel) == 0 {
		return rows
	}
	out := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		if rowMatches(row, filterModel, accessor) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row model.Row, filterModel model.FilterModel, accessor FieldAccessor) bool {
	for colId, cf := range filterModel {
		if cf.IsEmpty() {
			continue
		}
		if !columnMatches(row, colId, cf, accessor) {
			return false
		}
	}
	return true
}

func columnMatches(row model.Row, colId string, cf model.ColumnFilterModel, accessor FieldAccessor) bool {
	value := accessor(row, colId)
	if cf.Combination == model.CombinationOr {
		for _, cond := range cf.Conditions {
			if matchCondition(value, cond) {
				return true
			}
		}
		return false
	}
	for _, cond := range cf.Conditions {
		if !matchCondition(value, cond) {
			return false
		}
	}
	return true
}

func matchCondition(value any, cond model.FilterCondition) bool {
	switch cond.Kind {
	case model.FilterKindText:
		return matchText(value, cond)
	case model.FilterKindNumber:
		return matchNumber(value, cond)
	case model.FilterKindDate:
		return matchDate(value, cond)
	default:
		return true
	}
}

func matchText(value any, cond model.FilterCondition) bool {
	canonical := cellvalue.SortedJoinedText(value)
	blank := cellvalue.IsEmpty(value)

	if len(cond.SelectedValues) > 0 {
		if blank {
			return cond.IncludeBlank
		}
		lower := strings.ToLower(canonical)
		for _, sv := range cond.SelectedValues {
			if strings.ToLower(sv) == lower {
				return true
			}
		}
		return false
	}

	switch cond.TextOperator {
	case model.TextBlank:
		return blank
	case model.TextNotBlank:
		return !blank
	}

	text := strings.ToLower(cellvalue.ToText(value))
	target := strings.ToLower(cellvalue.ToText(cond.Value))

	switch cond.TextOperator {
	case model.TextContains:
		return strings.Contains(text, target)
	case model.TextNotContains:
		return !strings.Contains(text, target)
	case model.TextEquals:
		return text == target
	case model.TextNotEquals:
		return text != target
	case model.TextStartsWith:
		return strings.HasPrefix(text, target)
	case model.TextEndsWith:
		return strings.HasSuffix(text, target)
	default:
		return true
	}
}

func matchNumber(value any, cond model.FilterCondition) bool {
	num, ok := cellvalue.ParseNumber(value)
	blank := cellvalue.IsEmpty(value)

	switch cond.NumberOp {
	case model.NumberBlank:
		return blank
	case model.NumberNotBlank:
		return !blank
	}

	if !ok {
		// NaN/unparseable never matches anything except blank (§4.4).
		return false
	}

	target, _ := cellvalue.ParseNumber(cond.Value)
	switch cond.NumberOp {
	case model.NumberEqual:
		return num == target
	case model.NumberNotEqual:
		return num != target
	case model.NumberLessThan:
		return num < target
	case model.NumberGreaterThan:
		return num > target
	case model.NumberLessEqual:
		return num <= target
	case model.NumberGreaterEqual:
		return num >= target
	case model.NumberBetween:
		to, _ := cellvalue.ParseNumber(cond.ValueTo)
		lo, hi := target, to
		if lo > hi {
			lo, hi = hi, lo
		}
		return num >= lo && num <= hi
	default:
		return true
	}
}

func matchDate(value any, cond model.FilterCondition) bool {
	inst, ok := cellvalue.ParseInstant(value)
	blank := cellvalue.IsEmpty(value)

	switch cond.DateOp {
	case model.DateBlank:
		return blank
	case model.DateNotBlank:
		return !blank
	}

	if !ok {
		return false
	}

	target, _ := cellvalue.ParseInstant(cond.Value)

	switch cond.DateOp {
	case model.DateEqual:
		return sameCalendarDay(inst, target)
	case model.DateNotEqual:
		return !sameCalendarDay(inst, target)
	case model.DateLessThan:
		return inst.Unix() < target.Unix()
	case model.DateGreaterThan:
		return inst.Unix() > target.Unix()
	case model.DateBetween:
		to, _ := cellvalue.ParseInstant(cond.ValueTo)
		lo, hi := target.Unix(), to.Unix()
		if lo > hi {
			lo, hi = hi, lo
		}
		return inst.Unix() >= lo && inst.Unix() <= hi
	default:
		return true
	}
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}
