// ABOUTME: Store contract for the ingested corpus: documents, chunks, vectors
// ABOUTME: Implemented by the sqlite, charm KV, and in-memory backends
package storage

import (
	"github.com/jacob/career-chatbot/internal/index"
	"github.com/jacob/career-chatbot/internal/models"
)

// Store persists the ingested corpus. Documents and chunks are written once
// at ingestion time and read-only afterwards; the embedded vector backend
// feeds the EmbeddingIndex. Ingestion is batch (single writer), searches
// are read-mostly.
type Store interface {
	SaveDocument(doc models.Document) error
	GetDocument(docID string) (*models.Document, error)
	ListDocuments() ([]models.Document, error)
	DeleteDocument(docID string) error

	SaveChunks(chunks []models.Chunk) error
	GetChunk(chunkID string) (*models.Chunk, error)
	ListChunks(docID string) ([]models.Chunk, error)

	// Vector backend for the embedding index.
	index.Backend

	Close() error
}

// ChunkSource is the narrow read interface the retriever needs.
type ChunkSource interface {
	GetChunk(chunkID string) (*models.Chunk, error)
}
