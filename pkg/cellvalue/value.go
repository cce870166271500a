// Package cellvalue implements the comparison, emptiness, and hashing
// primitives that every other grid subsystem builds its ordering on.
//
// A cell value is not a hand-rolled tagged union: it is a plain `any`,
// dispatched on with a type switch, the same way the data-access layer
// this package is grounded on represents a row as map[string]interface{}
// and compares two interface{} values directly. The possible shapes are
// nil, bool, any Go numeric type, time.Time, string, []any (a sequence of
// cell values), or an opaque object that falls through to %v formatting.
package cellvalue

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// IsEmpty reports whether v is the "empty" value for ordering purposes:
// nil, an empty string, or a zero-length sequence. Two empties compare
// equal; an empty always sorts after a non-empty value in ascending order.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	}
	return false
}

// ParseNumber attempts to interpret v as a finite float64.
func ParseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ParseInstant attempts to interpret v as a point in time.
func ParseInstant(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02", "2006-01-02 15:04:05"} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// ToText canonicalizes v to its string form. Sequences are rendered as
// their elements joined by ", ", matching the comma-space-joined form
// §4.3 specifies for comparing and hashing sequence values.
func ToText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = ToText(e)
		}
		return strings.Join(parts, ", ")
	case time.Time:
		return t.Format(time.RFC3339)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// SortedJoinedText canonicalizes a sequence by sorting its element text
// forms with numeric-aware locale collation before hashing or comparing,
// per §4.2's distinct-value canonicalization rule for arrays.
func SortedJoinedText(v any) string {
	seq, ok := v.([]any)
	if !ok {
		return ToText(v)
	}
	parts := make([]string, len(seq))
	for i, e := range seq {
		parts[i] = ToText(e)
	}
	sort.Slice(parts, func(i, j int) bool {
		return CollationCompare(parts[i], parts[j]) < 0
	})
	return strings.Join(parts, ", ")
}

// Compare orders two cell values per §4.3:
//  1. empties compare equal and sort after non-empties
//  2. sequences compare by their sorted-joined text under locale collation
//  3. two numbers compare numerically
//  4. two instants compare by epoch
//  5. otherwise, compare as text under locale collation
func Compare(a, b any) int {
	aEmpty, bEmpty := IsEmpty(a), IsEmpty(b)
	if aEmpty && bEmpty {
		return 0
	}
	if aEmpty {
		return 1
	}
	if bEmpty {
		return -1
	}

	_, aSeq := a.([]any)
	_, bSeq := b.([]any)
	if aSeq || bSeq {
		return CollationCompare(SortedJoinedText(a), SortedJoinedText(b))
	}

	aNum, aOkNum := ParseNumber(a)
	bNum, bOkNum := ParseNumber(b)
	if aOkNum && bOkNum {
		switch {
		case aNum < bNum:
			return -1
		case aNum > bNum:
			return 1
		default:
			return 0
		}
	}

	aInst, aOkInst := ParseInstant(a)
	bInst, bOkInst := ParseInstant(b)
	if aOkInst && bOkInst {
		switch {
		case aInst.Before(bInst):
			return -1
		case aInst.After(bInst):
			return 1
		default:
			return 0
		}
	}

	return CollationCompare(ToText(a), ToText(b))
}

// ToSortNumber converts an arbitrary cell value to a single sortable
// float64, per §4.3's numeric conversion table. Used by the single-key
// numeric dispatch path of the parallel sort engine.
func ToSortNumber(v any) float64 {
	if IsEmpty(v) {
		return math.Inf(1)
	}
	if _, ok := v.([]any); ok {
		return float64(hashChunk(strings.ToLower(SortedJoinedText(v)), 0))
	}
	if inst, ok := ParseInstant(v); ok {
		return float64(inst.UnixNano())
	}
	if num, ok := ParseNumber(v); ok {
		return num
	}
	if s, ok := v.(string); ok {
		return float64(hashChunk(strings.ToLower(s), 0))
	}
	if num, ok := ParseNumber(ToText(v)); ok {
		return num
	}
	return 0
}
