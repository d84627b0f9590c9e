// ABOUTME: SQLite schema for the ingested career corpus
// ABOUTME: Documents, chunks, and embedding vectors with insertion ordering
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Source career documents, immutable after ingestion
CREATE TABLE IF NOT EXISTS documents (
    doc_id TEXT PRIMARY KEY,
    label TEXT NOT NULL,
    section TEXT,
    text TEXT NOT NULL,
    ingested_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Overlapping chunks derived from documents
CREATE TABLE IF NOT EXISTS chunks (
    chunk_id TEXT PRIMARY KEY,
    doc_id TEXT NOT NULL REFERENCES documents(doc_id) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL,
    text TEXT NOT NULL,
    start_offset INTEGER NOT NULL,
    end_offset INTEGER NOT NULL,
    prev_chunk_id TEXT,
    next_chunk_id TEXT
);

CREATE INDEX IF NOT EXISTS idx_chunks_doc ON chunks(doc_id, ordinal);

-- Embedding vectors as little-endian float64 blobs.
-- seq preserves insertion order for deterministic tie-breaking;
-- upserts keep the original seq.
CREATE TABLE IF NOT EXISTS embeddings (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    chunk_id TEXT NOT NULL UNIQUE,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
