package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show provider reachability and index size",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if healthService == nil {
		return errors.New("health service not configured")
	}

	report := healthService.Check(cmd.Context())

	cmd.Printf("Embedding model: %s (%s)\n", report.EmbeddingModel, reachability(report.EmbedderReachable))
	cmd.Printf("Language model:  %s (%s)\n", report.LLMModel, reachability(report.ModelReachable))
	cmd.Printf("Documents:       %d\n", report.Documents)
	cmd.Printf("Chunks:          %d\n", report.Chunks)

	if !report.Healthy() {
		return errors.New("one or more providers are unreachable")
	}
	return nil
}

func reachability(ok bool) string {
	if ok {
		return "reachable"
	}
	return "unreachable"
}
