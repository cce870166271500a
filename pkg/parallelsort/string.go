package parallelsort

import (
	"sort"
	"sync"

	"github.com/kasuganosora/vtgrid/pkg/cellvalue"
)

// HashChunkCount mirrors cellvalue.HashChunkCount for readability within
// this package.
const HashChunkCount = cellvalue.HashChunkCount

// StringRun is one worker's chunk sorted by its three truncating hash
// chunks, plus the original string text needed later for collision
// resolution.
type StringRun struct {
	Indices []int
	Hashes  [][HashChunkCount]uint64
	Texts   []string
	Offset  int
}

// SortStringParallel sorts strings (already lowercase-folded callers may
// pre-hash) by their HASH_CHUNK_COUNT truncating hash chunks and returns
// the merged permutation plus any collision runs requiring full-text
// resolution (§4.5's string single-key dispatch mode).
//
// Each worker sorts its own chunk by (hash1,hash2,hash3) lexicographically.
// The k-way merge orders ties by original index, which keeps every group
// of equal-hash entries contiguous in the merged output regardless of
// which chunk contributed them — so a single post-merge scan finds every
// collision run, both the ones a worker could see locally and the ones
// straddling a chunk boundary, without needing to remap per-chunk
// positions into the merged address space separately (§9's open question
// about interpreting boundary-collision positions is sidestepped this
// way: there is only ever one position space, the merged one).
func SortStringParallel(texts []string, direction int, pool *Pool) ([]int, []CollisionRun) {
	hashes := make([][HashChunkCount]uint64, len(texts))
	for i, s := range texts {
		hashes[i] = cellvalue.HashChunks(s)
	}

	plan := PlanChunks(len(texts), pool.size)
	runs := make([]StringRun, plan.ChunkCount())

	var wg sync.WaitGroup
	for i := 0; i < plan.ChunkCount(); i++ {
		i := i
		start, end := plan.Bounds(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := pool.submit(func() chunkResult {
				return chunkResult{value: chunkOutput{payload: sortStringChunk(texts, hashes, start, end)}}
			})
			if res.err == nil {
				runs[i] = res.value.payload.(StringRun)
			} else {
				runs[i] = sortStringChunk(texts, hashes, start, end)
			}
		}()
	}
	wg.Wait()

	mergedIdx, mergedHashes := kWayMergeString(runs)
	collisions := findCollisionRuns(mergedHashes)
	resolveCollisions(mergedIdx, collisions, texts)

	if direction < 0 {
		reverse(mergedIdx)
	}
	return mergedIdx, collisions
}

func sortStringChunk(texts []string, hashes [][HashChunkCount]uint64, start, end int) StringRun {
	idx := make([]int, end-start)
	hs := make([][HashChunkCount]uint64, end-start)
	txt := make([]string, end-start)
	for j := start; j < end; j++ {
		idx[j-start] = j
		hs[j-start] = hashes[j]
		txt[j-start] = texts[j]
	}
	sort.Stable(&stringChunkSorter{idx: idx, hashes: hs, texts: txt})
	return StringRun{Indices: idx, Hashes: hs, Texts: txt, Offset: start}
}

type stringChunkSorter struct {
	idx    []int
	hashes [][HashChunkCount]uint64
	texts  []string
}

func (s *stringChunkSorter) Len() int { return len(s.idx) }
func (s *stringChunkSorter) Less(i, j int) bool {
	return cellvalue.CompareHashChunks(s.hashes[i], s.hashes[j]) < 0
}
func (s *stringChunkSorter) Swap(i, j int) {
	s.idx[i], s.idx[j] = s.idx[j], s.idx[i]
	s.hashes[i], s.hashes[j] = s.hashes[j], s.hashes[i]
	s.texts[i], s.texts[j] = s.texts[j], s.texts[i]
}
