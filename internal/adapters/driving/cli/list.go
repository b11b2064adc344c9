package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lore-labs/lore-cli/internal/core/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output the list as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	docs, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if listJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputDocumentTable(cmd, docs)
}

func outputDocumentTable(cmd *cobra.Command, docs []domain.Document) error {
	if len(docs) == 0 {
		cmd.Println("No documents indexed. Add some with 'lore add'.")
		return nil
	}

	cmd.Printf("%-40s %10s %8s %s\n", "FILENAME", "SIZE", "CHUNKS", "UPDATED")
	for _, doc := range docs {
		cmd.Printf("%-40s %10d %8d %s\n",
			doc.Filename,
			doc.SizeBytes,
			doc.ChunkCount,
			doc.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	cmd.Printf("\n%d documents\n", len(docs))

	return nil
}
