package parallelsort

import (
	"sort"
	"sync"
)

// SortNumericParallel sorts values (one sortable number per row) and
// returns the permutation of original indices in ascending value order.
// direction -1 reverses it to descending. Implements the numeric
// single-key dispatch mode (§4.5): the value vector is split into at
// most pool's worker count chunks of >= MinChunkSize, each chunk sorted
// independently by a worker, and the per-chunk runs merged by offset via
// a k-way heap merge.
func SortNumericParallel(values []float64, direction int, pool *Pool) []int {
	plan := PlanChunks(len(values), pool.size)
	runs := make([]NumericRun, plan.ChunkCount())

	var wg sync.WaitGroup
	for i := 0; i < plan.ChunkCount(); i++ {
		i := i
		start, end := plan.Bounds(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := pool.submit(func() chunkResult {
				idx := make([]int, end-start)
				vals := make([]float64, end-start)
				for j := start; j < end; j++ {
					idx[j-start] = j
					vals[j-start] = values[j]
				}
				sort.Stable(&numericChunkSorter{idx: idx, vals: vals})
				return chunkResult{value: chunkOutput{payload: NumericRun{Indices: idx, Values: vals, Offset: start}}}
			})
			if res.err == nil {
				runs[i] = res.value.payload.(NumericRun)
			} else {
				// Worker error falls back to a synchronous sort of this
				// chunk on the orchestrator thread (§7: "single-key
				// numeric path logs and falls back").
				idx := make([]int, end-start)
				vals := make([]float64, end-start)
				for j := start; j < end; j++ {
					idx[j-start] = j
					vals[j-start] = values[j]
				}
				sort.Stable(&numericChunkSorter{idx: idx, vals: vals})
				runs[i] = NumericRun{Indices: idx, Values: vals, Offset: start}
			}
		}()
	}
	wg.Wait()

	merged := KWayMergeNumeric(runs)
	if direction < 0 {
		reverse(merged)
	}
	return merged
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

type numericChunkSorter struct {
	idx  []int
	vals []float64
}

func (s *numericChunkSorter) Len() int { return len(s.vals) }
func (s *numericChunkSorter) Less(i, j int) bool {
	return s.vals[i] < s.vals[j]
}
func (s *numericChunkSorter) Swap(i, j int) {
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
	s.idx[i], s.idx[j] = s.idx[j], s.idx[i]
}
