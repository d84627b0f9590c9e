// ABOUTME: CLI command to search the career corpus directly
// ABOUTME: Shows retrieval hits with scores, for debugging the index
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search ingested documents",
		Long: `Search the career corpus by semantic similarity.

Shows the matching chunks with their similarity scores without
generating an answer. Useful for checking what context a question
would retrieve.

Examples:
  chatbot search "test automation"
  chatbot search --format json "embedded C++"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.retriever.Retrieve(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("searching corpus: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No matching chunks for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tCHUNK\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t-----\t-------\n")
	for _, sc := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n",
			sc.Score,
			truncate(sc.Chunk.ChunkID, 25),
			truncate(sc.Chunk.Text, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d chunk(s)\n", len(results))
	}
	return nil
}
