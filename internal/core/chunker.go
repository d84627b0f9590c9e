// ABOUTME: Chunker splits career documents into overlapping segments for embedding
// ABOUTME: Prefers paragraph and sentence boundaries before hard character cuts
package core

import (
	"fmt"
	"unicode"

	"github.com/jacob/career-chatbot/internal/models"
)

// Default chunking parameters, in characters (runes).
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunker splits raw documents into overlapping text segments. Chunking is
// deterministic: identical document and config always yield the identical
// chunk sequence, so index rebuilds are reproducible.
type Chunker struct {
	maxLen  int
	overlap int
}

// NewChunker creates a Chunker. The overlap must be smaller than the chunk
// size; both are rune counts.
func NewChunker(maxLen, overlap int) (*Chunker, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", models.ErrInvalidConfig, maxLen)
	}
	if overlap < 0 || overlap >= maxLen {
		return nil, fmt.Errorf("%w: overlap must be in [0, chunk size), got %d", models.ErrInvalidConfig, overlap)
	}
	return &Chunker{maxLen: maxLen, overlap: overlap}, nil
}

// Chunk splits a document into ordered chunks. Consecutive chunks share
// exactly the configured overlap in runes: each chunk after the first
// starts at the previous chunk's end minus the overlap, so concatenating
// the first chunk with every later chunk's text minus its leading overlap
// reconstructs the document. An empty document yields zero chunks.
func (c *Chunker) Chunk(doc models.Document) []models.Chunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []models.Chunk
	start := 0
	for start < len(runes) {
		end := start + c.maxLen
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = c.cutPoint(runes, start, end)
		}

		ordinal := len(chunks)
		chunks = append(chunks, models.Chunk{
			ChunkID: models.ChunkIDFor(doc.DocID, ordinal),
			DocID:   doc.DocID,
			Ordinal: ordinal,
			Text:    string(runes[start:end]),
			Start:   start,
			End:     end,
		})

		if end == len(runes) {
			break
		}
		start = end - c.overlap
	}

	for i := range chunks {
		if i > 0 {
			chunks[i].PrevChunkID = chunks[i-1].ChunkID
		}
		if i < len(chunks)-1 {
			chunks[i].NextChunkID = chunks[i+1].ChunkID
		}
	}
	return chunks
}

// cutPoint picks the end of the chunk starting at start, given the hard
// limit hardEnd (exclusive, < len(runes)). It prefers, in order, the last
// paragraph break, sentence end, or whitespace inside the window, falling
// back to a hard cut. The cut always lands after start+overlap so the next
// chunk makes progress.
func (c *Chunker) cutPoint(runes []rune, start, hardEnd int) int {
	minEnd := start + c.overlap + 1
	if minEnd > hardEnd {
		return hardEnd
	}

	paragraph, sentence, space := -1, -1, -1
	for i := hardEnd - 1; i >= minEnd; i-- {
		if paragraph == -1 && runes[i-1] == '\n' && i-2 >= start && runes[i-2] == '\n' {
			paragraph = i
			break // best possible boundary, stop scanning
		}
		if sentence == -1 && i-2 >= start && isSentenceEnd(runes[i-2]) && unicode.IsSpace(runes[i-1]) {
			sentence = i
		}
		if space == -1 && unicode.IsSpace(runes[i-1]) {
			space = i
		}
	}

	switch {
	case paragraph != -1:
		return paragraph
	case sentence != -1:
		return sentence
	case space != -1:
		return space
	default:
		return hardEnd
	}
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
