package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

var termsJSON bool

var termsCmd = &cobra.Command{
	Use:   "terms [document-id]",
	Short: "Extract the key terms of a lease",
	Long: `Extracts a fixed set of lease terms: rent, payment dates, lease period,
deposit, fees, utilities, pets, and notice period. Terms the lease does
not state are reported as "unknown" rather than guessed.`,
	Args: cobra.ExactArgs(1),
	RunE: runTerms,
}

func init() {
	termsCmd.Flags().BoolVar(&termsJSON, "json", false, "output the terms as JSON")
	rootCmd.AddCommand(termsCmd)
}

func runTerms(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	result, err := analysisService.ExtractTerms(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("term extraction failed: %w", err)
	}

	if termsJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal terms: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	if result.Err != "" {
		cmd.Printf("Warning: %s\n", result.Err)
		if result.Raw != "" {
			cmd.Println()
			cmd.Println("Model output:")
			cmd.Println(result.Raw)
		}
		return nil
	}

	cmd.Println("Lease terms:")
	for _, field := range domain.TermFields {
		cmd.Printf("  %-20s %s\n", field+":", result.Terms[field])
	}
	if result.Truncated {
		cmd.Println()
		cmd.Println("Note: the lease text was truncated to fit the model context.")
	}
	return nil
}
