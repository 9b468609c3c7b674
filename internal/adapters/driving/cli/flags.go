package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

var flagsJSON bool

// severityStyles colour the severity badge per level.
var severityStyles = map[domain.Severity]lipgloss.Style{
	domain.SeverityHigh:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	domain.SeverityMedium:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
	domain.SeverityLow:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	domain.SeverityUnknown: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
}

var flagsCmd = &cobra.Command{
	Use:   "flags [document-id]",
	Short: "Scan a lease for tenant-unfriendly clauses",
	Long: `Scans the whole lease for clauses that commonly disadvantage tenants,
such as unusual fees, broad landlord entry rights, or automatic renewal
traps. Each finding cites the clause text and explains the concern.`,
	Args: cobra.ExactArgs(1),
	RunE: runFlags,
}

func init() {
	flagsCmd.Flags().BoolVar(&flagsJSON, "json", false, "output the findings as JSON")
	rootCmd.AddCommand(flagsCmd)
}

func runFlags(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	result, err := analysisService.ScanRedFlags(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("red flag scan failed: %w", err)
	}

	if flagsJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal findings: %w", err)
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

	if len(result.Flags) == 0 {
		cmd.Println("No red flags found.")
		return nil
	}

	cmd.Printf("Found %d red flag(s):\n\n", len(result.Flags))
	for i, flag := range result.Flags {
		badge := severityBadge(flag.Severity)
		cmd.Printf("  [%d] %s %s\n", i+1, badge, flag.Title)
		if flag.ClauseText != "" {
			cmd.Printf("      Clause: %s\n", clip(flag.ClauseText, 160))
		}
		if flag.Explanation != "" {
			cmd.Printf("      %s\n", flag.Explanation)
		}
		cmd.Println()
	}
	if result.Truncated {
		cmd.Println("Note: the lease text was truncated to fit the model context.")
	}
	return nil
}

// severityBadge renders the severity label for terminal output.
func severityBadge(severity domain.Severity) string {
	style, ok := severityStyles[severity]
	if !ok {
		style = severityStyles[domain.SeverityUnknown]
	}
	return style.Render(fmt.Sprintf("[%s]", severity))
}
