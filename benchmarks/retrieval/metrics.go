// ABOUTME: Retrieval quality metrics: hit rate and mean reciprocal rank
// ABOUTME: Deterministic evaluation against expected source documents

package retrieval

import (
	"github.com/jacob/career-chatbot/internal/models"
)

// MetricsCalculator scores retrieval results against ground truth.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a metrics calculator.
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// HitRank returns the 1-based rank of the first chunk whose document
// matches the expected doc id, or 0 when it is absent.
func (m *MetricsCalculator) HitRank(result models.RetrievalResult, expectedDocID string) int {
	for i, sc := range result {
		if sc.Chunk.DocID == expectedDocID {
			return i + 1
		}
	}
	return 0
}

// Evaluate aggregates hit rate and MRR over per-query ranks.
// Hit rate = fraction of queries whose expected document appeared at all;
// MRR = mean of 1/rank, counting misses as 0.
func (m *MetricsCalculator) Evaluate(ranks []int) (hitRate, mrr float64) {
	if len(ranks) == 0 {
		return 0, 0
	}
	hits := 0
	sum := 0.0
	for _, rank := range ranks {
		if rank > 0 {
			hits++
			sum += 1.0 / float64(rank)
		}
	}
	return float64(hits) / float64(len(ranks)), sum / float64(len(ranks))
}
