package cellvalue

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CollationCompare compares two strings with a case-insensitive,
// numeric-aware locale collation, the comparison §4.3 and §4.5 require
// wherever text must be ordered "under locale collation" rather than by
// raw byte value.
//
// Grounded on the teacher's CollationEngine (pkg/utils/collation.go),
// which resolves a golang.org/x/text/collate.Collator per MySQL collation
// name and warns that collators are not goroutine-safe. This package has
// exactly one collation to resolve, so it keeps the same "build once,
// never share across goroutines" discipline via a sync.Pool instead of a
// name registry.
var collatorPool = sync.Pool{
	New: func() any {
		return collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	},
}

// CollationCompare returns -1, 0, or 1 comparing a and b case-insensitively
// with numeric-aware ordering (so "item9" sorts before "item10").
func CollationCompare(a, b string) int {
	c := collatorPool.Get().(*collate.Collator)
	defer collatorPool.Put(c)
	return c.CompareString(a, b)
}

// CollationKey returns a comparable sort key for s, for callers that need
// to sort many strings against the same collation without repeatedly
// paying comparator overhead (e.g. the fallback resolver in parallelsort).
func CollationKey(s string) []byte {
	c := collatorPool.Get().(*collate.Collator)
	defer collatorPool.Put(c)
	buf := &collate.Buffer{}
	key := c.Key(buf, []byte(s))
	out := make([]byte, len(key))
	copy(out, key)
	return out
}
