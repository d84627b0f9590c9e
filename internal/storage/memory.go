// ABOUTME: In-memory Store for tests and ephemeral chat sessions
// ABOUTME: Wraps the in-memory vector backend with document and chunk maps
package storage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jacob/career-chatbot/internal/index"
	"github.com/jacob/career-chatbot/internal/models"
)

// MemoryStore holds the whole corpus in memory. Nothing survives process
// exit; the sqlite and charm stores are the persistent options.
type MemoryStore struct {
	*index.MemoryBackend

	mu     sync.RWMutex
	docs   map[string]models.Document
	order  []string
	chunks map[string]models.Chunk
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		MemoryBackend: index.NewMemoryBackend(),
		docs:          make(map[string]models.Document),
		chunks:        make(map[string]models.Chunk),
	}
}

func (s *MemoryStore) SaveDocument(doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.DocID]; !exists {
		s.order = append(s.order, doc.DocID)
	}
	s.docs[doc.DocID] = doc
	return nil
}

func (s *MemoryStore) GetDocument(docID string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[docID]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (s *MemoryStore) ListDocuments() ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	return out, nil
}

func (s *MemoryStore) DeleteDocument(docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[docID]; !ok {
		return nil
	}
	delete(s.docs, docID)
	for i, id := range s.order {
		if id == docID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	for id, ch := range s.chunks {
		if ch.DocID == docID {
			delete(s.chunks, id)
		}
	}
	return nil
}

func (s *MemoryStore) SaveChunks(chunks []models.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range chunks {
		if ch.ChunkID == "" {
			return fmt.Errorf("chunk without id for document %s", ch.DocID)
		}
		s.chunks[ch.ChunkID] = ch
	}
	return nil
}

func (s *MemoryStore) GetChunk(chunkID string) (*models.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.chunks[chunkID]
	if !ok {
		return nil, nil
	}
	return &ch, nil
}

func (s *MemoryStore) ListChunks(docID string) ([]models.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Chunk
	for _, ch := range s.chunks {
		if ch.DocID == docID {
			out = append(out, ch)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
