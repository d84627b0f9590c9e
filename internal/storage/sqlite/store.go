// ABOUTME: SQLite-backed corpus store: documents, chunks, embedding vectors
// ABOUTME: Implements storage.Store including the index vector backend
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/jacob/career-chatbot/internal/models"
)

// Store is the persistent corpus store over a SQLite database.
type Store struct {
	db *DB
}

// NewStore creates a Store over an opened database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// OpenStore opens the database at path and wraps it in a Store.
func OpenStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

func (s *Store) SaveDocument(doc models.Document) error {
	ingestedAt := doc.IngestedAt
	if ingestedAt.IsZero() {
		ingestedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO documents (doc_id, label, section, text, ingested_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			label = excluded.label,
			section = excluded.section,
			text = excluded.text,
			ingested_at = excluded.ingested_at
	`, doc.DocID, doc.Label, nullString(doc.Section), doc.Text, ingestedAt)
	return err
}

func (s *Store) GetDocument(docID string) (*models.Document, error) {
	var (
		doc     models.Document
		section sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT doc_id, label, section, text, ingested_at
		FROM documents WHERE doc_id = ?
	`, docID).Scan(&doc.DocID, &doc.Label, &section, &doc.Text, &doc.IngestedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if section.Valid {
		doc.Section = section.String
	}
	return &doc, nil
}

func (s *Store) ListDocuments() ([]models.Document, error) {
	rows, err := s.db.Query(`
		SELECT doc_id, label, section, text, ingested_at
		FROM documents ORDER BY ingested_at ASC, doc_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var docs []models.Document
	for rows.Next() {
		var (
			doc     models.Document
			section sql.NullString
		)
		if err := rows.Scan(&doc.DocID, &doc.Label, &section, &doc.Text, &doc.IngestedAt); err != nil {
			return nil, err
		}
		if section.Valid {
			doc.Section = section.String
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *Store) DeleteDocument(docID string) error {
	// Chunks cascade; embeddings are keyed by chunk id and cleaned here.
	_, err := s.db.Exec(`
		DELETE FROM embeddings WHERE chunk_id IN
			(SELECT chunk_id FROM chunks WHERE doc_id = ?)
	`, docID)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("DELETE FROM documents WHERE doc_id = ?", docID)
	return err
}

func (s *Store) SaveChunks(chunks []models.Chunk) error {
	for _, ch := range chunks {
		if ch.ChunkID == "" {
			return fmt.Errorf("chunk without id for document %s", ch.DocID)
		}
		_, err := s.db.Exec(`
			INSERT INTO chunks (chunk_id, doc_id, ordinal, text, start_offset, end_offset, prev_chunk_id, next_chunk_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(chunk_id) DO UPDATE SET
				text = excluded.text,
				start_offset = excluded.start_offset,
				end_offset = excluded.end_offset,
				prev_chunk_id = excluded.prev_chunk_id,
				next_chunk_id = excluded.next_chunk_id
		`, ch.ChunkID, ch.DocID, ch.Ordinal, ch.Text, ch.Start, ch.End,
			nullString(ch.PrevChunkID), nullString(ch.NextChunkID))
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetChunk(chunkID string) (*models.Chunk, error) {
	var (
		ch         models.Chunk
		prev, next sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT chunk_id, doc_id, ordinal, text, start_offset, end_offset, prev_chunk_id, next_chunk_id
		FROM chunks WHERE chunk_id = ?
	`, chunkID).Scan(&ch.ChunkID, &ch.DocID, &ch.Ordinal, &ch.Text, &ch.Start, &ch.End, &prev, &next)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if prev.Valid {
		ch.PrevChunkID = prev.String
	}
	if next.Valid {
		ch.NextChunkID = next.String
	}
	return &ch, nil
}

func (s *Store) ListChunks(docID string) ([]models.Chunk, error) {
	rows, err := s.db.Query(`
		SELECT chunk_id, doc_id, ordinal, text, start_offset, end_offset, prev_chunk_id, next_chunk_id
		FROM chunks WHERE doc_id = ? ORDER BY ordinal ASC
	`, docID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var chunks []models.Chunk
	for rows.Next() {
		var (
			ch         models.Chunk
			prev, next sql.NullString
		)
		if err := rows.Scan(&ch.ChunkID, &ch.DocID, &ch.Ordinal, &ch.Text, &ch.Start, &ch.End, &prev, &next); err != nil {
			return nil, err
		}
		if prev.Valid {
			ch.PrevChunkID = prev.String
		}
		if next.Valid {
			ch.NextChunkID = next.String
		}
		chunks = append(chunks, ch)
	}
	return chunks, rows.Err()
}

// Save stores an embedding vector. Upserting an existing chunk id keeps
// its original seq so insertion-order tie-breaking stays stable.
func (s *Store) Save(emb models.Embedding) error {
	createdAt := emb.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO embeddings (chunk_id, vector, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
			vector = excluded.vector
	`, emb.ChunkID, vectorToBlob(emb.Vector), createdAt)
	return err
}

// Delete removes an embedding by chunk ID
func (s *Store) Delete(chunkID string) error {
	_, err := s.db.Exec("DELETE FROM embeddings WHERE chunk_id = ?", chunkID)
	return err
}

// All returns embeddings in insertion order.
func (s *Store) All() ([]models.Embedding, error) {
	rows, err := s.db.Query(`
		SELECT chunk_id, vector, created_at FROM embeddings ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var embeddings []models.Embedding
	for rows.Next() {
		var (
			emb  models.Embedding
			blob []byte
		)
		if err := rows.Scan(&emb.ChunkID, &blob, &emb.CreatedAt); err != nil {
			return nil, err
		}
		emb.Vector = blobToVector(blob)
		embeddings = append(embeddings, emb)
	}
	return embeddings, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vector
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
