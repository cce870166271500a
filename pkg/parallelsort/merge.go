package parallelsort

import "container/heap"

// mergeItem is one candidate in the k-way merge heap: the value at the
// current read position of some run, plus enough bookkeeping to advance
// that run and break ties by original index so the merge stays stable.
type mergeItem struct {
	value    float64
	index    int // original row index this value belongs to
	run      int // which run this item came from
	pos      int // position within that run's slice
}

type mergeHeap []mergeItem

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	if h[i].value != h[j].value {
		return h[i].value < h[j].value
	}
	// Stability: ties broken by original index ascending.
	return h[i].index < h[j].index
}
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x any)         { *h = append(*h, x.(mergeItem)) }
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NumericRun is one worker's sorted output: original-index vector,
// sorted-value vector, and the chunk's offset into the full input (§4.5).
type NumericRun struct {
	Indices []int
	Values  []float64
	Offset  int
}

// KWayMergeNumeric merges runs (already individually sorted ascending,
// ordered by Offset) into one globally sorted index vector via a
// heap-based k-way merge, O(N log K).
func KWayMergeNumeric(runs []NumericRun) []int {
	total := 0
	for _, r := range runs {
		total += len(r.Values)
	}
	out := make([]int, 0, total)

	h := make(mergeHeap, 0, len(runs))
	for runIdx, r := range runs {
		if len(r.Values) == 0 {
			continue
		}
		h = append(h, mergeItem{value: r.Values[0], index: r.Indices[0], run: runIdx, pos: 0})
	}
	heap.Init(&h)

	for h.Len() > 0 {
		item := heap.Pop(&h).(mergeItem)
		out = append(out, item.index)
		run := runs[item.run]
		next := item.pos + 1
		if next < len(run.Values) {
			heap.Push(&h, mergeItem{value: run.Values[next], index: run.Indices[next], run: item.run, pos: next})
		}
	}
	return out
}
