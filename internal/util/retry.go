// ABOUTME: Backoff utilities for calls to the embedding and generation endpoints
// ABOUTME: Bounded exponential backoff with jitter, shared by the LLM client
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps a single wait so a misbehaving upstream cannot stall a
// session for more than this long between attempts.
const maxBackoff = 30 * time.Second

// CalculateBackoff returns exponential backoff with jitter.
// Base delay is doubled each attempt, with random jitter up to 25%.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	if backoff < 2 {
		return backoff
	}
	// Jitter: -25% to +25% using auto-seeded math/rand/v2
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
