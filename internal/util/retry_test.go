// ABOUTME: Tests for backoff calculation bounds and jitter behavior
// ABOUTME: Validates exponential growth and the 30 second cap
package util

import (
	"testing"
	"time"
)

func TestCalculateBackoff_ZeroAttempt(t *testing.T) {
	if got := CalculateBackoff(time.Second, 0); got != 0 {
		t.Errorf("expected 0 for attempt 0, got %v", got)
	}
	if got := CalculateBackoff(time.Second, -1); got != 0 {
		t.Errorf("expected 0 for negative attempt, got %v", got)
	}
}

func TestCalculateBackoff_ExponentialGrowth(t *testing.T) {
	baseDelay := 100 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expectedBase := baseDelay * time.Duration(1<<uint(attempt))
		minExpected := expectedBase * 3 / 4
		maxExpected := expectedBase * 5 / 4

		result := CalculateBackoff(baseDelay, attempt)
		if result < minExpected || result > maxExpected {
			t.Errorf("attempt %d: backoff %v outside [%v, %v]", attempt, result, minExpected, maxExpected)
		}
	}
}

func TestCalculateBackoff_Cap(t *testing.T) {
	// Large attempt numbers must stay within the 30s cap plus jitter
	result := CalculateBackoff(2*time.Second, 20)
	limit := 30*time.Second + 30*time.Second/4
	if result > limit {
		t.Errorf("backoff %v exceeds cap with jitter %v", result, limit)
	}
}

func TestCalculateBackoff_OverflowSafety(t *testing.T) {
	// Attempts beyond the shift guard must not panic or go negative
	result := CalculateBackoff(time.Second, 1000)
	if result < 0 {
		t.Errorf("backoff went negative: %v", result)
	}
}
