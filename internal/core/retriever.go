// ABOUTME: Retriever turns a question into ranked, deduplicated context chunks
// ABOUTME: Embeds the query, searches the index, filters weak and redundant hits
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacob/career-chatbot/internal/index"
	"github.com/jacob/career-chatbot/internal/models"
	"github.com/jacob/career-chatbot/internal/storage"
)

// Embedder produces a query vector for retrieval.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float64, error)
}

// DefaultAdjacentOverlap is the span-overlap fraction above which two
// adjacent chunks are considered redundant.
const DefaultAdjacentOverlap = 0.5

// RetrieverConfig tunes retrieval behavior.
type RetrieverConfig struct {
	TopK            int
	MinScore        float64
	AdjacentOverlap float64
}

// Retriever fetches the chunks most similar to a question.
type Retriever struct {
	embedder Embedder
	idx      *index.EmbeddingIndex
	chunks   storage.ChunkSource
	cfg      RetrieverConfig
}

// NewRetriever wires an embedder, index and chunk source together.
func NewRetriever(embedder Embedder, idx *index.EmbeddingIndex, chunks storage.ChunkSource, cfg RetrieverConfig) (*Retriever, error) {
	if cfg.TopK <= 0 {
		return nil, fmt.Errorf("%w: top-k must be positive, got %d", models.ErrInvalidConfig, cfg.TopK)
	}
	if cfg.MinScore < 0 {
		return nil, fmt.Errorf("%w: min score must be >= 0, got %v", models.ErrInvalidConfig, cfg.MinScore)
	}
	if cfg.AdjacentOverlap <= 0 {
		cfg.AdjacentOverlap = DefaultAdjacentOverlap
	}
	return &Retriever{embedder: embedder, idx: idx, chunks: chunks, cfg: cfg}, nil
}

// Retrieve returns up to TopK scored chunks for the question, best first.
// Weak matches below MinScore are dropped, as are adjacent chunks whose
// spans mostly repeat a higher-scoring neighbor. An empty result is not an
// error: the assembler renders the no-context marker for it.
func (r *Retriever) Retrieve(ctx context.Context, question string) (models.RetrievalResult, error) {
	queryVector, err := r.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %w", models.ErrRetrieval, err)
	}

	// Over-fetch so dedupe and the score floor still leave TopK candidates.
	hits, err := r.idx.Search(queryVector, r.cfg.TopK*3)
	if err != nil {
		if errors.Is(err, models.ErrDimensionMismatch) {
			return nil, fmt.Errorf("%w: %w", models.ErrEmbeddingMismatch, err)
		}
		return nil, fmt.Errorf("%w: searching index: %w", models.ErrRetrieval, err)
	}

	var result models.RetrievalResult
	for _, hit := range hits {
		if hit.Score < r.cfg.MinScore {
			continue
		}
		chunk, err := r.chunks.GetChunk(hit.ChunkID)
		if err != nil {
			return nil, fmt.Errorf("%w: loading chunk %s: %w", models.ErrRetrieval, hit.ChunkID, err)
		}
		if chunk == nil {
			// Index entry without a stored chunk; skip rather than fail.
			continue
		}
		if redundant(*chunk, result, r.cfg.AdjacentOverlap) {
			continue
		}
		result = append(result, models.ScoredChunk{Chunk: *chunk, Score: hit.Score})
		if len(result) == r.cfg.TopK {
			break
		}
	}
	return result, nil
}

// redundant reports whether the chunk mostly repeats an already-kept
// adjacent chunk. Kept chunks score at least as high, so the earlier one wins.
func redundant(chunk models.Chunk, kept models.RetrievalResult, threshold float64) bool {
	for _, sc := range kept {
		if chunk.Adjacent(sc.Chunk) && chunk.SpanOverlapFraction(sc.Chunk) >= threshold {
			return true
		}
	}
	return false
}
