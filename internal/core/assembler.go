// ABOUTME: PromptAssembler merges persona, retrieved context, history and query
// ABOUTME: Enforces a character budget by shedding weak context before history
package core

import (
	"fmt"
	"strings"

	"github.com/jacob/career-chatbot/internal/models"
)

// NoContextMarker is rendered when retrieval finds nothing relevant, so
// the model admits uncertainty instead of fabricating specifics.
const NoContextMarker = "(no specific matching experience found for this question)"

// Section headers of the assembled prompt.
const (
	contextHeader  = "Relevant background:"
	historyHeader  = "Conversation so far:"
	questionHeader = "Current question:"
)

// PromptAssembler builds the model input for one turn. Ordering is fixed:
// persona instructions, retrieved chunks in retrieval order, history in
// chronological order, then the current question last and verbatim.
type PromptAssembler struct {
	budgetChars int
}

// NewPromptAssembler creates an assembler with a total character budget.
func NewPromptAssembler(budgetChars int) (*PromptAssembler, error) {
	if budgetChars <= 0 {
		return nil, fmt.Errorf("%w: context budget must be positive, got %d", models.ErrInvalidConfig, budgetChars)
	}
	return &PromptAssembler{budgetChars: budgetChars}, nil
}

// Assemble renders the prompt text. When the budget is exceeded it drops
// the lowest-scoring chunks first, then the oldest history turns. The
// persona block and the question are never dropped or truncated.
func (a *PromptAssembler) Assemble(persona models.Persona, results models.RetrievalResult, history []models.Turn, query string) string {
	chunks := results
	turns := history

	prompt := a.render(persona, chunks, turns, query)
	for runeLen(prompt) > a.budgetChars && len(chunks) > 0 {
		// Retrieval order is best-first, so the weakest chunk is last.
		chunks = chunks[:len(chunks)-1]
		prompt = a.render(persona, chunks, turns, query)
	}
	for runeLen(prompt) > a.budgetChars && len(turns) > 0 {
		turns = turns[1:]
		prompt = a.render(persona, chunks, turns, query)
	}
	return prompt
}

func (a *PromptAssembler) render(persona models.Persona, chunks models.RetrievalResult, turns []models.Turn, query string) string {
	var b strings.Builder

	b.WriteString(persona.Instructions)
	b.WriteString("\n\n")

	b.WriteString(contextHeader)
	b.WriteString("\n")
	if len(chunks) == 0 {
		b.WriteString(NoContextMarker)
		b.WriteString("\n")
	} else {
		for _, sc := range chunks {
			b.WriteString("- ")
			b.WriteString(sc.Chunk.Text)
			b.WriteString("\n")
		}
	}

	if len(turns) > 0 {
		b.WriteString("\n")
		b.WriteString(historyHeader)
		b.WriteString("\n")
		for _, turn := range turns {
			b.WriteString(roleLabel(turn.Role))
			b.WriteString(": ")
			b.WriteString(turn.Text)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(questionHeader)
	b.WriteString("\n")
	b.WriteString(query)

	return b.String()
}

func roleLabel(role models.Role) string {
	if role == models.RoleAssistant {
		return "Assistant"
	}
	return "User"
}

func runeLen(s string) int {
	return len([]rune(s))
}
