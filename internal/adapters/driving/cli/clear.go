package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all documents from the index",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "skip the confirmation check")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if !clearForce {
		return errors.New("this removes every indexed document; re-run with --force to confirm")
	}

	removed, err := libraryService.Clear(cmd.Context())
	if err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	cmd.Printf("Removed %d documents\n", removed)
	return nil
}
