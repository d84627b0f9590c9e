// ABOUTME: Document represents a biographical/career source document
// ABOUTME: Immutable once ingested; chunks and embeddings are derived from it
package models

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// Document is a single career document supplied by an external loader.
// Documents are created once at ingestion time and read-only thereafter.
type Document struct {
	DocID      string    `json:"doc_id"`
	Label      string    `json:"label"`
	Section    string    `json:"section,omitempty"`
	Text       string    `json:"text"`
	IngestedAt time.Time `json:"ingested_at"`
}

// NewDocument creates a Document from a (label, raw_text) pair.
// The DocID is derived from the label so repeated ingestion of the same
// source is stable across rebuilds.
func NewDocument(label, section, text string) (*Document, error) {
	if strings.TrimSpace(label) == "" {
		return nil, errors.New("document label cannot be empty")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("document text cannot be empty")
	}
	return &Document{
		DocID:      DocIDFromLabel(label),
		Label:      label,
		Section:    section,
		Text:       text,
		IngestedAt: time.Now().UTC(),
	}, nil
}

// DocIDFromLabel derives a stable document identifier from a source label.
// File extensions are stripped and path separators and spaces normalized.
func DocIDFromLabel(label string) string {
	base := strings.TrimSuffix(label, filepath.Ext(label))
	base = strings.ToLower(base)
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_")
	return "doc_" + replacer.Replace(base)
}
