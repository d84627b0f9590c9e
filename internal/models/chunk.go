// ABOUTME: Chunk is a bounded text segment derived from a document
// ABOUTME: The unit of embedding and retrieval, with rune offsets into its parent
package models

import "fmt"

// Chunk is an overlapping text segment of a parent document. Start and End
// are rune offsets into the document text; consecutive chunks of the same
// document share the configured overlap region. ChunkID is deterministic
// given document and chunking config so index rebuilds are reproducible.
type Chunk struct {
	ChunkID     string `json:"chunk_id"`
	DocID       string `json:"doc_id"`
	Ordinal     int    `json:"ordinal"`
	Text        string `json:"text"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	PrevChunkID string `json:"prev_chunk_id,omitempty"`
	NextChunkID string `json:"next_chunk_id,omitempty"`
}

// ChunkIDFor builds the deterministic chunk identifier for a document
// ordinal position.
func ChunkIDFor(docID string, ordinal int) string {
	return fmt.Sprintf("%s:%04d", docID, ordinal)
}

// Adjacent reports whether two chunks occupy neighboring ordinal positions
// of the same document.
func (c Chunk) Adjacent(other Chunk) bool {
	if c.DocID != other.DocID {
		return false
	}
	d := c.Ordinal - other.Ordinal
	return d == 1 || d == -1
}

// SpanOverlapFraction returns the shared character span between two chunks
// as a fraction of the smaller chunk's span. Non-overlapping or
// cross-document chunks yield 0.
func (c Chunk) SpanOverlapFraction(other Chunk) float64 {
	if c.DocID != other.DocID {
		return 0
	}
	lo := c.Start
	if other.Start > lo {
		lo = other.Start
	}
	hi := c.End
	if other.End < hi {
		hi = other.End
	}
	if hi <= lo {
		return 0
	}
	minSpan := c.End - c.Start
	if s := other.End - other.Start; s < minSpan {
		minSpan = s
	}
	if minSpan <= 0 {
		return 0
	}
	return float64(hi-lo) / float64(minSpan)
}
