// ABOUTME: RetrievalResult is the ranked, deduplicated output of the retriever
// ABOUTME: Scores monotonically non-increasing, no duplicate chunk ids
package models

// ScoredChunk pairs a context chunk with its similarity score.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// RetrievalResult is an ordered sequence of scored chunks, highest
// similarity first. An empty result is valid and means no document met the
// score threshold; callers must handle the no-context case explicitly.
type RetrievalResult []ScoredChunk

// ChunkIDs returns the chunk ids in retrieval order.
func (r RetrievalResult) ChunkIDs() []string {
	ids := make([]string, len(r))
	for i, sc := range r {
		ids[i] = sc.Chunk.ChunkID
	}
	return ids
}
