package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary [document-id]",
	Short: "Summarise a lease in plain language",
	Long: `Produces a short plain-language summary of the lease aimed at someone
deciding whether to sign it: the financial obligations, the lease period,
and any obligations a tenant might not expect.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	summary, err := analysisService.Summarise(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("summarise failed: %w", err)
	}

	if summaryJSON {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Println(summary.Text)
	if summary.Truncated {
		cmd.Println()
		cmd.Println("Note: the lease text was truncated to fit the model context.")
	}
	return nil
}
