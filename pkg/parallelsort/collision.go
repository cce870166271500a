package parallelsort

import (
	"container/heap"
	"sort"

	"github.com/kasuganosora/vtgrid/pkg/cellvalue"
)

// CollisionRun is a contiguous region [Start,End) of the merged output
// where the truncating hash collapses distinct strings to the same key,
// requiring a fallback comparator (glossary: "collision run").
type CollisionRun struct {
	Start int
	End   int
}

type stringMergeItem struct {
	hash  [HashChunkCount]uint64
	text  string
	index int
	run   int
	pos   int
}

type stringMergeHeap []stringMergeItem

func (h stringMergeHeap) Len() int { return len(h) }
func (h stringMergeHeap) Less(i, j int) bool {
	c := cellvalue.CompareHashChunks(h[i].hash, h[j].hash)
	if c != 0 {
		return c < 0
	}
	return h[i].index < h[j].index
}
func (h stringMergeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *stringMergeHeap) Push(x any)   { *h = append(*h, x.(stringMergeItem)) }
func (h *stringMergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// kWayMergeString merges per-chunk StringRuns (each sorted ascending by
// hash triple) into one globally hash-ordered index + hash vector.
func kWayMergeString(runs []StringRun) ([]int, [][HashChunkCount]uint64) {
	total := 0
	for _, r := range runs {
		total += len(r.Indices)
	}
	idx := make([]int, 0, total)
	hashes := make([][HashChunkCount]uint64, 0, total)

	h := make(stringMergeHeap, 0, len(runs))
	for runIdx, r := range runs {
		if len(r.Indices) == 0 {
			continue
		}
		h = append(h, stringMergeItem{hash: r.Hashes[0], text: r.Texts[0], index: r.Indices[0], run: runIdx, pos: 0})
	}
	heap.Init(&h)

	for h.Len() > 0 {
		item := heap.Pop(&h).(stringMergeItem)
		idx = append(idx, item.index)
		hashes = append(hashes, item.hash)
		run := runs[item.run]
		next := item.pos + 1
		if next < len(run.Indices) {
			heap.Push(&h, stringMergeItem{hash: run.Hashes[next], text: run.Texts[next], index: run.Indices[next], run: item.run, pos: next})
		}
	}
	return idx, hashes
}

// findCollisionRuns scans a hash-sorted sequence for contiguous stretches
// of length >= 2 sharing the same hash triple (§4.5, §8.7).
func findCollisionRuns(hashes [][HashChunkCount]uint64) []CollisionRun {
	var runs []CollisionRun
	i := 0
	for i < len(hashes) {
		j := i + 1
		for j < len(hashes) && hashes[j] == hashes[i] {
			j++
		}
		if j-i >= 2 {
			runs = append(runs, CollisionRun{Start: i, End: j})
		}
		i = j
	}
	return runs
}

// resolveCollisions re-sorts each collision run in mergedIdx using
// full-text locale collation, with a fast path that skips the sort when
// every string in the run is byte-identical (§4.5).
func resolveCollisions(mergedIdx []int, runs []CollisionRun, texts []string) {
	for _, run := range runs {
		slice := mergedIdx[run.Start:run.End]
		if allIdentical(slice, texts) {
			continue
		}
		sort.SliceStable(slice, func(i, j int) bool {
			return cellvalue.CollationCompare(texts[slice[i]], texts[slice[j]]) < 0
		})
	}
}

func allIdentical(indices []int, texts []string) bool {
	if len(indices) == 0 {
		return true
	}
	first := texts[indices[0]]
	for _, idx := range indices[1:] {
		if texts[idx] != first {
			return false
		}
	}
	return true
}
