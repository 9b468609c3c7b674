package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JamesKang003/leasewise/internal/adapters/driving/tui"
	"github.com/JamesKang003/leasewise/internal/chunker"
	"github.com/JamesKang003/leasewise/internal/core/domain"
)

var (
	askJSON        bool
	askInteractive bool
)

var askCmd = &cobra.Command{
	Use:   "ask [document-id] [question]",
	Short: "Ask a question about an uploaded lease",
	Long: `Answers a free-form question using only the most relevant passages of the
lease. The model is instructed not to guess: when the retrieved text does
not cover the question, it says so instead of inventing an answer.

With --interactive, opens a chat session against the lease instead of
answering a single question.`,
	Args: func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		if interactive {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVarP(&askInteractive, "interactive", "i", false, "open an interactive chat session")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	documentID := args[0]
	ctx := context.Background()

	if askInteractive {
		return runAskInteractive(ctx, documentID)
	}

	result, err := analysisService.Ask(ctx, documentID, args[1])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Println(result.Answer)
	if len(result.ContextSnippets) > 0 {
		cmd.Println()
		cmd.Println("Grounded in:")
		for i, snippet := range result.ContextSnippets {
			cmd.Printf("  [%d] %s\n", i+1, clip(snippet, 160))
		}
	}
	return nil
}

// runAskInteractive opens the chat TUI against one document.
func runAskInteractive(ctx context.Context, documentID string) error {
	doc, err := findDocument(ctx, documentID)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(analysisService, doc)
	if err != nil {
		return err
	}
	return app.WithContext(ctx).Run()
}

// findDocument resolves a document ID against the stored leases.
func findDocument(ctx context.Context, documentID string) (domain.Document, error) {
	docs, err := analysisService.ListDocuments(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	for i := range docs {
		if docs[i].ID == documentID {
			return docs[i], nil
		}
	}
	return domain.Document{}, fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
}

// clip shortens a snippet for terminal display.
func clip(s string, max int) string {
	clipped, truncated := chunker.Clip(s, max)
	if !truncated {
		return s
	}
	return clipped + "..."
}
