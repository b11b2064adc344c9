// Package cli provides the command-line interface adapter.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
	"github.com/lore-labs/lore-cli/internal/logger"
)

// Service instances injected via Execute.
var (
	askService     driving.AskService
	libraryService driving.LibraryService
	healthService  driving.HealthService

	// documentsDir is the default directory for 'lore watch'.
	documentsDir string
)

// verbose enables debug logging to stderr.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lore",
	Short: "Ask questions about your documents",
	Long: `Lore indexes local documents and answers questions about them.

Documents are split into overlapping passages, embedded and stored in a
local index. Questions retrieve the most relevant passages and a language
model produces an answer grounded in them, with source citations.

All data stays on your machine; only the configured AI provider is called.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Dependencies holds the services the CLI commands call.
type Dependencies struct {
	Ask     driving.AskService
	Library driving.LibraryService
	Health  driving.HealthService

	// DocumentsDir is the default directory for 'lore watch'.
	DocumentsDir string
}

// Execute injects services and runs the root command.
func Execute(deps Dependencies) error {
	askService = deps.Ask
	libraryService = deps.Library
	healthService = deps.Health
	documentsDir = deps.DocumentsDir

	return rootCmd.Execute()
}
