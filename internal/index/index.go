// ABOUTME: EmbeddingIndex answers cosine-similarity nearest-neighbor queries
// ABOUTME: Thin contract over a pluggable vector storage backend
package index

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/jacob/career-chatbot/internal/models"
)

// Backend is the external vector store the index delegates persistence to.
// All() must return embeddings in insertion order; Save of an existing
// chunk id replaces the vector in place, preserving its original position.
type Backend interface {
	Save(emb models.Embedding) error
	Delete(chunkID string) error
	All() ([]models.Embedding, error)
}

// EmbeddingIndex maps chunk ids to fixed-length vectors and performs
// cosine-similarity search over them. The dimensionality is established by
// the first vector and enforced for every later insert and query:
// re-embedding with a different model invalidates the whole index.
//
// Concurrent searches are safe; Upsert and Remove are serialized by a
// single-writer mutex (ingestion is batch, not concurrent with queries).
type EmbeddingIndex struct {
	backend Backend
	mu      sync.Mutex // serializes writers and dim establishment
	dim     int
}

// New creates an index over the given backend. If the backend already holds
// vectors, the dimensionality is adopted from them; mixed dimensions in the
// backend are a fatal configuration error.
func New(backend Backend) (*EmbeddingIndex, error) {
	idx := &EmbeddingIndex{backend: backend}

	existing, err := backend.All()
	if err != nil {
		return nil, fmt.Errorf("loading vector backend: %w", err)
	}
	for _, emb := range existing {
		if idx.dim == 0 {
			idx.dim = len(emb.Vector)
			continue
		}
		if len(emb.Vector) != idx.dim {
			return nil, fmt.Errorf("%w: backend holds %d-dim and %d-dim vectors", models.ErrDimensionMismatch, idx.dim, len(emb.Vector))
		}
	}
	return idx, nil
}

// Dimension returns the established vector dimensionality, 0 if the index
// is empty.
func (idx *EmbeddingIndex) Dimension() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.dim
}

// Upsert stores a vector for a chunk id, replacing any existing one.
// The first insert establishes the index dimensionality.
func (idx *EmbeddingIndex) Upsert(chunkID string, vector []float64) error {
	if len(vector) == 0 {
		return fmt.Errorf("%w: empty vector for chunk %s", models.ErrDimensionMismatch, chunkID)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.dim == 0 {
		idx.dim = len(vector)
	} else if len(vector) != idx.dim {
		return fmt.Errorf("%w: index is %d-dim, got %d-dim vector for chunk %s", models.ErrDimensionMismatch, idx.dim, len(vector), chunkID)
	}

	return idx.backend.Save(models.Embedding{
		ChunkID:   chunkID,
		Vector:    vector,
		CreatedAt: time.Now().UTC(),
	})
}

// Remove deletes a vector; searches after removal never return it.
// Removing an unknown id is a no-op.
func (idx *EmbeddingIndex) Remove(chunkID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.backend.Delete(chunkID)
}

// Search returns up to k nearest chunks by cosine similarity, scores
// non-increasing. Ties are broken by insertion order, earlier-inserted
// first, so results are deterministic.
func (idx *EmbeddingIndex) Search(queryVector []float64, k int) ([]models.VectorSearchResult, error) {
	if k <= 0 {
		return nil, nil
	}
	if dim := idx.Dimension(); dim != 0 && len(queryVector) != dim {
		return nil, fmt.Errorf("%w: index is %d-dim, query is %d-dim", models.ErrDimensionMismatch, dim, len(queryVector))
	}

	all, err := idx.backend.All()
	if err != nil {
		return nil, fmt.Errorf("listing vectors: %w", err)
	}

	results := make([]models.VectorSearchResult, 0, len(all))
	for _, emb := range all {
		results = append(results, models.VectorSearchResult{
			ChunkID: emb.ChunkID,
			Score:   CosineSimilarity(queryVector, emb.Vector),
		})
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Mismatched lengths or zero vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
