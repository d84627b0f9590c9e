// ABOUTME: In-memory vector backend for tests and ephemeral runs
// ABOUTME: Preserves insertion order for deterministic tie-breaking
package index

import "github.com/jacob/career-chatbot/internal/models"

// MemoryBackend keeps embeddings in insertion order in memory. It is the
// backend used by tests and by the memory storage mode; persistent modes
// use the sqlite and charm backends.
type MemoryBackend struct {
	order []string
	byID  map[string]models.Embedding
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{byID: make(map[string]models.Embedding)}
}

// Save stores or replaces an embedding. Replacement keeps the chunk's
// original insertion position.
func (m *MemoryBackend) Save(emb models.Embedding) error {
	if _, exists := m.byID[emb.ChunkID]; !exists {
		m.order = append(m.order, emb.ChunkID)
	}
	m.byID[emb.ChunkID] = emb
	return nil
}

// Delete removes an embedding; unknown ids are a no-op.
func (m *MemoryBackend) Delete(chunkID string) error {
	if _, exists := m.byID[chunkID]; !exists {
		return nil
	}
	delete(m.byID, chunkID)
	for i, id := range m.order {
		if id == chunkID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns embeddings in insertion order.
func (m *MemoryBackend) All() ([]models.Embedding, error) {
	out := make([]models.Embedding, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}
