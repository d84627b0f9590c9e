// ABOUTME: Embedding models for vector storage and semantic search
// ABOUTME: Defines Embedding and VectorSearchResult structures
package models

import "time"

// Embedding is a stored embedding vector, associated 1:1 with a chunk id.
type Embedding struct {
	ChunkID   string    `json:"chunk_id"`
	Vector    []float64 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}

// VectorSearchResult is one nearest-neighbor hit with its cosine similarity.
type VectorSearchResult struct {
	ChunkID string  `json:"chunk_id"`
	Score   float64 `json:"score"`
}
