// ABOUTME: Charm KV backed corpus store for cloud-synced deployments
// ABOUTME: Keeps ingestion and embedding insertion order in meta keys
package charmkv

import (
	"fmt"
	"sync"
	"time"

	"github.com/jacob/career-chatbot/internal/charm"
	"github.com/jacob/career-chatbot/internal/models"
)

// Store persists the corpus in Charm KV. Embedding insertion order is
// tracked in a meta key so ranked ties stay deterministic across syncs.
type Store struct {
	client *charm.Client
	mu     sync.Mutex
}

// NewStore wraps an existing charm client.
func NewStore(client *charm.Client) *Store {
	return &Store{client: client}
}

// Open connects to the configured charm server and returns a Store.
func Open(cfg *charm.Config) (*Store, error) {
	client, err := charm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm storage: %w", err)
	}
	return NewStore(client), nil
}

func (s *Store) SaveDocument(doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.IngestedAt.IsZero() {
		doc.IngestedAt = time.Now().UTC()
	}
	if err := s.client.SetJSON(charm.DocumentKey(doc.DocID), doc); err != nil {
		return err
	}
	return s.appendOrder(charm.DocumentOrderKey(), doc.DocID)
}

func (s *Store) GetDocument(docID string) (*models.Document, error) {
	var doc models.Document
	data, err := s.client.Get(charm.DocumentKey(docID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	if err := s.client.GetJSON(charm.DocumentKey(docID), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) ListDocuments() ([]models.Document, error) {
	s.mu.Lock()
	order, err := s.readOrder(charm.DocumentOrderKey())
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var docs []models.Document
	for _, docID := range order {
		doc, err := s.GetDocument(docID)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (s *Store) DeleteDocument(docID string) error {
	chunks, err := s.ListChunks(docID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range chunks {
		if err := s.client.Delete(charm.EmbeddingKey(ch.ChunkID)); err != nil {
			return err
		}
		if err := s.removeOrder(charm.EmbeddingOrderKey(), ch.ChunkID); err != nil {
			return err
		}
		if err := s.client.Delete(charm.ChunkKey(ch.ChunkID)); err != nil {
			return err
		}
	}
	if err := s.client.Delete(charm.DocumentKey(docID)); err != nil {
		return err
	}
	return s.removeOrder(charm.DocumentOrderKey(), docID)
}

func (s *Store) SaveChunks(chunks []models.Chunk) error {
	for _, ch := range chunks {
		if err := s.client.SetJSON(charm.ChunkKey(ch.ChunkID), ch); err != nil {
			return fmt.Errorf("failed to save chunk %s: %w", ch.ChunkID, err)
		}
	}
	return nil
}

func (s *Store) GetChunk(chunkID string) (*models.Chunk, error) {
	data, err := s.client.Get(charm.ChunkKey(chunkID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var ch models.Chunk
	if err := s.client.GetJSON(charm.ChunkKey(chunkID), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s *Store) ListChunks(docID string) ([]models.Chunk, error) {
	prefix := charm.ChunkKey(docID + ":")
	keys, err := s.client.ListKeys(prefix)
	if err != nil {
		return nil, err
	}

	var chunks []models.Chunk
	for _, key := range keys {
		var ch models.Chunk
		if err := s.client.GetJSON(key, &ch); err != nil {
			return nil, err
		}
		chunks = append(chunks, ch)
	}
	// Chunk IDs embed a zero-padded ordinal, so key order is ordinal order.
	return chunks, nil
}

// Save stores an embedding and records its insertion position. Re-saving
// an existing chunk keeps the original position.
func (s *Store) Save(emb models.Embedding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if emb.CreatedAt.IsZero() {
		emb.CreatedAt = time.Now().UTC()
	}
	if err := s.client.SetJSON(charm.EmbeddingKey(emb.ChunkID), emb); err != nil {
		return err
	}
	return s.appendOrder(charm.EmbeddingOrderKey(), emb.ChunkID)
}

// Delete removes an embedding by chunk ID
func (s *Store) Delete(chunkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.Delete(charm.EmbeddingKey(chunkID)); err != nil {
		return err
	}
	return s.removeOrder(charm.EmbeddingOrderKey(), chunkID)
}

// All returns embeddings in insertion order.
func (s *Store) All() ([]models.Embedding, error) {
	s.mu.Lock()
	order, err := s.readOrder(charm.EmbeddingOrderKey())
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var embeddings []models.Embedding
	for _, chunkID := range order {
		var emb models.Embedding
		if err := s.client.GetJSON(charm.EmbeddingKey(chunkID), &emb); err != nil {
			continue
		}
		embeddings = append(embeddings, emb)
	}
	return embeddings, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// readOrder loads an ordered ID list from a meta key.
func (s *Store) readOrder(key string) ([]string, error) {
	data, err := s.client.Get(key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var order []string
	if err := s.client.GetJSON(key, &order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Store) appendOrder(key, id string) error {
	order, err := s.readOrder(key)
	if err != nil {
		return err
	}
	for _, existing := range order {
		if existing == id {
			return nil
		}
	}
	return s.client.SetJSON(key, append(order, id))
}

func (s *Store) removeOrder(key, id string) error {
	order, err := s.readOrder(key)
	if err != nil {
		return err
	}
	filtered := order[:0]
	for _, existing := range order {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	if len(filtered) == len(order) {
		return nil
	}
	return s.client.SetJSON(key, filtered)
}
