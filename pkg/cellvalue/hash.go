package cellvalue

import "strings"

// HashChunkCount is the number of 10-character hash chunks computed per
// string (§4.3), covering the first 30 characters.
const HashChunkCount = 3

const chunkSize = 10

// hashChunk maps the chunk-th 10-character slice of the lowercased string s
// to a base-36 positional-weighted integer key. Characters map a-z -> 0..25,
// 0-9 -> 26..35, anything else -> 0.
func hashChunk(lower string, chunk int) uint64 {
	start := chunk * chunkSize
	if start >= len(lower) {
		return 0
	}
	end := start + chunkSize
	if end > len(lower) {
		end = len(lower)
	}

	var key uint64
	for i := start; i < end; i++ {
		key = key*36 + uint64(charRank(lower[i]))
	}
	// Pad for chunks shorter than chunkSize so two strings that differ only
	// in length after the common prefix still compare in the right order.
	for i := end - start; i < chunkSize; i++ {
		key *= 36
	}
	return key
}

func charRank(c byte) int {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= '0' && c <= '9':
		return int(c-'0') + 26
	default:
		return 0
	}
}

// HashChunks produces the HashChunkCount chunk-keys covering the first
// 30 characters of s, used as the truncating sort key in the parallel
// sort engine's string dispatch path (§4.5).
func HashChunks(s string) [HashChunkCount]uint64 {
	lower := strings.ToLower(s)
	var out [HashChunkCount]uint64
	for i := 0; i < HashChunkCount; i++ {
		out[i] = hashChunk(lower, i)
	}
	return out
}

// HashChunksEqual reports whether two hash-chunk triples are identical,
// i.e. whether a and b collide under the truncating hash.
func HashChunksEqual(a, b [HashChunkCount]uint64) bool {
	return a == b
}

// CompareHashChunks lexicographically compares two hash-chunk triples.
func CompareHashChunks(a, b [HashChunkCount]uint64) int {
	for i := 0; i < HashChunkCount; i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}
