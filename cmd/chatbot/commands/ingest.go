// ABOUTME: CLI command to ingest career documents into the corpus
// ABOUTME: Chunks, embeds and indexes every .md and .txt file in a directory
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <dir>",
		Short: "Ingest career documents",
		Long: `Ingest career documents from a directory.

Every .md and .txt file is chunked, embedded and added to the
searchable corpus. Re-ingesting a file replaces its previous chunks.

Examples:
  chatbot ingest ./docs
  chatbot ingest ~/career/documents`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	docs, chunks, err := a.ingestor.IngestDir(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingesting documents: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d document(s), %d chunk(s)\n", docs, chunks)
	}
	return nil
}
