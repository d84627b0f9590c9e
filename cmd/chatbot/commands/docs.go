// ABOUTME: CLI command to list ingested documents
// ABOUTME: Table or JSON view of the corpus contents
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewDocsCmd creates the docs command
func NewDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "List ingested documents",
		Long: `List the ingested career documents.

Examples:
  chatbot docs
  chatbot docs --format json`,
		Args: cobra.NoArgs,
		RunE: runDocs,
	}
	return cmd
}

func runDocs(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	docs, err := a.store.ListDocuments()
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if len(docs) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents ingested yet. Run: chatbot ingest <dir>")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DOC ID\tLABEL\tSIZE\tINGESTED\n")
	fmt.Fprintf(w, "------\t-----\t----\t--------\n")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			doc.DocID,
			truncate(doc.Label, 30),
			len([]rune(doc.Text)),
			formatTime(doc.IngestedAt))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d document(s)\n", len(docs))
	}
	return nil
}
