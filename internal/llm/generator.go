// ABOUTME: PromptGenerator binds a Client and fixed generation options
// ABOUTME: Adapts the message-based API to the single-prompt pipeline shape
package llm

import "context"

// PromptGenerator sends an assembled prompt as a single user message with
// preconfigured generation options.
type PromptGenerator struct {
	Client  *Client
	Options GenerationOptions
}

// Generate runs one completion over the prompt text.
func (g PromptGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.Client.Generate(ctx, []Message{{Role: RoleUser, Content: prompt}}, g.Options)
}
