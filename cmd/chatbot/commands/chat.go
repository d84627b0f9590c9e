// ABOUTME: CLI command for an interactive multi-turn chat session
// ABOUTME: Reads questions from stdin until EOF or an exit keyword
package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat session",
		Long: `Start an interactive chat session with the candidate chatbot.

Each question is answered from the ingested career documents, with the
running conversation as additional context. Type "exit", "quit" or
press Ctrl-D to leave; "reset" clears the conversation history.`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}
	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sessionID := fmt.Sprintf("chat_%s", uuid.New().String()[:8])
	out := cmd.OutOrStdout()

	if !quiet {
		fmt.Fprintln(out, "Career chatbot ready. Ask about the candidate's experience.")
		fmt.Fprintln(out, "Type 'exit' to quit, 'reset' to clear the conversation.")
		fmt.Fprintln(out)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		case line == "reset":
			a.orchestrator.ResetSession(sessionID)
			if !quiet {
				fmt.Fprintln(out, "Conversation cleared.")
			}
			continue
		}

		answer, err := a.orchestrator.PostTurn(cmd.Context(), sessionID, line)
		if err != nil {
			return fmt.Errorf("processing question: %w", err)
		}
		fmt.Fprintf(out, "\n%s\n\n", answer)
	}
	return scanner.Err()
}
