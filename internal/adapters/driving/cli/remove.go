package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lore-labs/lore-cli/internal/core/domain"
)

var removeCmd = &cobra.Command{
	Use:     "remove [filename]",
	Aliases: []string{"rm"},
	Short:   "Remove a document from the index",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Remove(cmd.Context(), filename); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document %q is not indexed", filename)
		}
		return fmt.Errorf("remove failed: %w", err)
	}

	cmd.Printf("Removed %s\n", filename)
	return nil
}
