// ABOUTME: Tests for response scrubbing behavior
// ABOUTME: Duplicate removal, line cap and the too-short guard
package core

import (
	"strings"
	"testing"
)

func TestScrubTrimsAndKeepsContent(t *testing.T) {
	s := NewResponseScrubber()
	got := s.Scrub("  I led the ADAS platform team at Bosch.  \n")
	if got != "I led the ADAS platform team at Bosch." {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestScrubRemovesRepeatedLines(t *testing.T) {
	s := NewResponseScrubber()
	got := s.Scrub("I worked at Harman.\nI worked at Harman.\nI automated tests with Jenkins.")
	want := "I worked at Harman.\nI automated tests with Jenkins."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestScrubCapsLineCount(t *testing.T) {
	s := NewResponseScrubber()
	var lines []string
	for i := 0; i < 8; i++ {
		lines = append(lines, strings.Repeat("x", 20)+string(rune('a'+i)))
	}
	got := s.Scrub(strings.Join(lines, "\n"))
	if n := len(strings.Split(got, "\n")); n != 5 {
		t.Errorf("expected 5 lines, got %d", n)
	}
}

func TestScrubSubstitutesForJunk(t *testing.T) {
	s := NewResponseScrubber()
	for _, input := range []string{"", "   ", "ok", "\n\n\n"} {
		if got := s.Scrub(input); got != TooShortResponse {
			t.Errorf("input %q: expected guard message, got %q", input, got)
		}
	}
}
