package parallelsort

// ChunkPlan describes how a vector of n elements is split into workers
// for parallel sort: at most len(Offsets) chunks, each of size
// Offsets[i+1]-Offsets[i], none smaller than MinChunkSize except possibly
// the last.
type ChunkPlan struct {
	Offsets []int // length = chunk count + 1; Offsets[0]=0, Offsets[last]=n
}

// PlanChunks splits n elements into at most maxWorkers chunks, each at
// least MinChunkSize (the final chunk may be smaller only if n itself is
// smaller than MinChunkSize). Used by all three dispatch modes in §4.5.
func PlanChunks(n, maxWorkers int) ChunkPlan {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if n <= 0 {
		return ChunkPlan{Offsets: []int{0}}
	}

	chunkCount := maxWorkers
	if n/chunkCount < MinChunkSize {
		chunkCount = n / MinChunkSize
		if chunkCount < 1 {
			chunkCount = 1
		}
	}

	base := n / chunkCount
	rem := n % chunkCount
	offsets := make([]int, 0, chunkCount+1)
	offsets = append(offsets, 0)
	pos := 0
	for i := 0; i < chunkCount; i++ {
		size := base
		if i < rem {
			size++
		}
		pos += size
		offsets = append(offsets, pos)
	}
	return ChunkPlan{Offsets: offsets}
}

// ChunkCount reports how many chunks the plan describes.
func (p ChunkPlan) ChunkCount() int {
	if len(p.Offsets) == 0 {
		return 0
	}
	return len(p.Offsets) - 1
}

// Bounds returns the [start,end) range of chunk i.
func (p ChunkPlan) Bounds(i int) (int, int) {
	return p.Offsets[i], p.Offsets[i+1]
}
