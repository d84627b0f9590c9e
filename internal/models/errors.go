// ABOUTME: Sentinel errors for the career chatbot core pipeline
// ABOUTME: Distinguishes startup-fatal configuration errors from per-turn recoverable ones
package models

import "errors"

var (
	// ErrInvalidConfig indicates bad chunking, budget, or retry parameters.
	// Detected at construction time and fatal at startup, never per-turn.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDimensionMismatch indicates a vector whose length differs from the
	// index's established dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingMismatch indicates the query embedding function disagrees
	// with the one used at ingestion time. Surfaced to the operator as a
	// configuration error, never as silently degraded results.
	ErrEmbeddingMismatch = errors.New("embedding function mismatch")

	// ErrRetrieval indicates an internal retrieval failure (for example the
	// embedding call failed). Recovered by the orchestrator with a fallback.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrGenerationUnavailable indicates the model endpoint stayed
	// unavailable after all retries were exhausted.
	ErrGenerationUnavailable = errors.New("generation unavailable")

	// ErrGenerationClient indicates a non-retryable request error
	// (authentication, malformed request). Fails immediately without retry.
	ErrGenerationClient = errors.New("generation client error")
)
