// ABOUTME: ResponseScrubber normalizes raw model completions before display
// ABOUTME: Strips repeated lines, caps length, guards against junk output
package core

import "strings"

// TooShortResponse replaces completions that collapse to nothing useful
// after cleaning.
const TooShortResponse = "I'd be happy to help with your recruiting question. Could you provide more specific details?"

// maxResponseLines caps the cleaned response length. Some models repeat
// themselves line by line; anything past this is noise.
const maxResponseLines = 5

// minResponseLength is the floor below which a cleaned response is
// considered junk.
const minResponseLength = 10

// ResponseScrubber cleans model output for user display.
type ResponseScrubber struct{}

// NewResponseScrubber creates a scrubber.
func NewResponseScrubber() *ResponseScrubber {
	return &ResponseScrubber{}
}

// Scrub trims the completion, drops duplicate lines, caps the line count
// and substitutes a polite ask-for-details message for degenerate output.
func (s *ResponseScrubber) Scrub(response string) string {
	response = strings.TrimSpace(response)

	var unique []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		unique = append(unique, line)
		if len(unique) == maxResponseLines {
			break
		}
	}

	cleaned := strings.Join(unique, "\n")
	if len(cleaned) < minResponseLength {
		return TooShortResponse
	}
	return cleaned
}
