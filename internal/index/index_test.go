// ABOUTME: Tests for the embedding index contract over the memory backend
// ABOUTME: Covers upsert/remove semantics, top-k limits, ties, and dimension checks
package index

import (
	"errors"
	"testing"

	"github.com/jacob/career-chatbot/internal/models"
)

func newTestIndex(t *testing.T) *EmbeddingIndex {
	t.Helper()
	idx, err := New(NewMemoryBackend())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return idx
}

func TestUpsertAndSearch(t *testing.T) {
	idx := newTestIndex(t)

	mustUpsert(t, idx, "chunk1", []float64{1, 0, 0})
	mustUpsert(t, idx, "chunk2", []float64{0, 1, 0})
	mustUpsert(t, idx, "chunk3", []float64{0.9, 0.1, 0})

	results, err := idx.Search([]float64{0.95, 0.05, 0}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].ChunkID != "chunk3" {
		t.Errorf("top result = %s, want chunk3", results[0].ChunkID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not non-increasing at %d", i)
		}
	}
}

func TestSearch_TopKLimit(t *testing.T) {
	idx := newTestIndex(t)
	for i, v := range [][]float64{{1, 0}, {0.9, 0.1}, {0.8, 0.2}, {0.7, 0.3}} {
		mustUpsert(t, idx, models.ChunkIDFor("doc", i), v)
	}

	results, err := idx.Search([]float64{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}

	if results, _ = idx.Search([]float64{1, 0}, 0); results != nil {
		t.Error("k=0 should return no results")
	}
}

func TestSearch_TieBreakByInsertionOrder(t *testing.T) {
	idx := newTestIndex(t)

	// Identical vectors produce identical scores; the earlier insert wins.
	mustUpsert(t, idx, "first", []float64{1, 1})
	mustUpsert(t, idx, "second", []float64{1, 1})
	mustUpsert(t, idx, "third", []float64{2, 2}) // same direction, same cosine

	results, err := idx.Search([]float64{1, 1}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if results[i].ChunkID != w {
			t.Errorf("result %d = %s, want %s", i, results[i].ChunkID, w)
		}
	}
}

func TestUpsert_IdempotentReplace(t *testing.T) {
	idx := newTestIndex(t)

	mustUpsert(t, idx, "a", []float64{1, 0})
	mustUpsert(t, idx, "b", []float64{0, 1})
	// Replace "a"; it keeps its insertion position for tie-breaking.
	mustUpsert(t, idx, "a", []float64{0, 1})

	results, err := idx.Search([]float64{0, 1}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if results[0].ChunkID != "a" {
		t.Errorf("top result = %s, want a (earlier-inserted wins ties)", results[0].ChunkID)
	}
}

func TestRemove(t *testing.T) {
	idx := newTestIndex(t)

	mustUpsert(t, idx, "gone", []float64{1, 0})
	mustUpsert(t, idx, "kept", []float64{0.9, 0.1})

	if err := idx.Remove("gone"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	results, err := idx.Search([]float64{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, r := range results {
		if r.ChunkID == "gone" {
			t.Error("search returned a removed chunk")
		}
	}

	// Removing an unknown id is a no-op
	if err := idx.Remove("never-existed"); err != nil {
		t.Errorf("Remove(unknown) error = %v", err)
	}
}

func TestDimensionMismatch(t *testing.T) {
	idx := newTestIndex(t)
	mustUpsert(t, idx, "a", []float64{1, 0, 0})

	err := idx.Upsert("b", []float64{1, 0})
	if !errors.Is(err, models.ErrDimensionMismatch) {
		t.Errorf("Upsert error = %v, want ErrDimensionMismatch", err)
	}

	_, err = idx.Search([]float64{1, 0}, 3)
	if !errors.Is(err, models.ErrDimensionMismatch) {
		t.Errorf("Search error = %v, want ErrDimensionMismatch", err)
	}

	if idx.Dimension() != 3 {
		t.Errorf("Dimension() = %d, want 3", idx.Dimension())
	}
}

func TestNew_AdoptsBackendDimension(t *testing.T) {
	backend := NewMemoryBackend()
	_ = backend.Save(models.Embedding{ChunkID: "a", Vector: []float64{1, 0, 0, 0}})

	idx, err := New(backend)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if idx.Dimension() != 4 {
		t.Errorf("Dimension() = %d, want 4", idx.Dimension())
	}
}

func TestNew_MixedDimensionsFatal(t *testing.T) {
	backend := NewMemoryBackend()
	_ = backend.Save(models.Embedding{ChunkID: "a", Vector: []float64{1, 0}})
	_ = backend.Save(models.Embedding{ChunkID: "b", Vector: []float64{1, 0, 0}})

	_, err := New(backend)
	if !errors.Is(err, models.ErrDimensionMismatch) {
		t.Errorf("New() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0},
		{"length mismatch", []float64{1}, []float64{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func mustUpsert(t *testing.T, idx *EmbeddingIndex, id string, v []float64) {
	t.Helper()
	if err := idx.Upsert(id, v); err != nil {
		t.Fatalf("Upsert(%s) error = %v", id, err)
	}
}
