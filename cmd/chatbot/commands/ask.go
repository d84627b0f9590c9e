// ABOUTME: CLI command to ask the chatbot a single question
// ABOUTME: One retrieve/assemble/generate turn without a persistent session
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var askSessionID string

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question",
		Long: `Ask the candidate chatbot a single question.

The question is answered from the ingested career documents. Use the
chat command for a multi-turn conversation instead.

Examples:
  chatbot ask "Tell me about your Jenkins experience"
  chatbot ask --session recruiter-1 "What did you do at Bosch?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askSessionID, "session", "cli", "Session id for follow-up questions")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	answer, err := a.orchestrator.PostTurn(cmd.Context(), askSessionID, args[0])
	if err != nil {
		return fmt.Errorf("processing question: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
