// ABOUTME: Ingestor loads documents into the corpus store and embedding index
// ABOUTME: Batch operation: chunk, persist, embed, upsert
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jacob/career-chatbot/internal/index"
	"github.com/jacob/career-chatbot/internal/models"
	"github.com/jacob/career-chatbot/internal/storage"
)

// Ingestor builds the searchable corpus from raw documents. Ingestion is
// a batch operation that runs offline, not during query traffic.
type Ingestor struct {
	chunker  *Chunker
	embedder Embedder
	store    storage.Store
	idx      *index.EmbeddingIndex
}

// NewIngestor wires the ingestion pipeline together.
func NewIngestor(chunker *Chunker, embedder Embedder, store storage.Store, idx *index.EmbeddingIndex) (*Ingestor, error) {
	if chunker == nil || embedder == nil || store == nil || idx == nil {
		return nil, fmt.Errorf("%w: ingestor requires chunker, embedder, store and index", models.ErrInvalidConfig)
	}
	return &Ingestor{chunker: chunker, embedder: embedder, store: store, idx: idx}, nil
}

// IngestDocument chunks, persists and embeds one document. Re-ingesting an
// existing document replaces its chunks and vectors.
func (ing *Ingestor) IngestDocument(ctx context.Context, doc models.Document) (int, error) {
	chunks := ing.chunker.Chunk(doc)

	// Re-ingestion is a full replace: stale chunks and vectors go first.
	old, err := ing.store.ListChunks(doc.DocID)
	if err != nil {
		return 0, fmt.Errorf("listing existing chunks for %s: %w", doc.DocID, err)
	}
	if len(old) > 0 {
		for _, ch := range old {
			if err := ing.idx.Remove(ch.ChunkID); err != nil {
				return 0, fmt.Errorf("removing stale vector %s: %w", ch.ChunkID, err)
			}
		}
		if err := ing.store.DeleteDocument(doc.DocID); err != nil {
			return 0, fmt.Errorf("replacing document %s: %w", doc.DocID, err)
		}
	}

	if err := ing.store.SaveDocument(doc); err != nil {
		return 0, fmt.Errorf("saving document %s: %w", doc.DocID, err)
	}
	if err := ing.store.SaveChunks(chunks); err != nil {
		return 0, fmt.Errorf("saving chunks for %s: %w", doc.DocID, err)
	}

	for _, ch := range chunks {
		vector, err := ing.embedder.EmbedText(ctx, ch.Text)
		if err != nil {
			return 0, fmt.Errorf("embedding chunk %s: %w", ch.ChunkID, err)
		}
		if err := ing.idx.Upsert(ch.ChunkID, vector); err != nil {
			return 0, fmt.Errorf("indexing chunk %s: %w", ch.ChunkID, err)
		}
	}
	return len(chunks), nil
}

// IngestDocuments ingests a batch, returning the total chunk count.
func (ing *Ingestor) IngestDocuments(ctx context.Context, docs []models.Document) (int, error) {
	total := 0
	for _, doc := range docs {
		n, err := ing.IngestDocument(ctx, doc)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// IngestDir loads every .md and .txt file under dir (non-recursive) and
// ingests them. File names become document labels.
func (ing *Ingestor) IngestDir(ctx context.Context, dir string) (int, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("reading document directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".md" || ext == ".txt" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var docs []models.Document
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return 0, 0, fmt.Errorf("reading %s: %w", name, err)
		}
		doc, err := models.NewDocument(name, "", string(data))
		if err != nil {
			return 0, 0, fmt.Errorf("loading %s: %w", name, err)
		}
		docs = append(docs, *doc)
	}

	chunks, err := ing.IngestDocuments(ctx, docs)
	return len(docs), chunks, err
}
