package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	uploadTitle string
	uploadJSON  bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a lease document for analysis",
	Long: `Extracts the text of a lease document (PDF, TXT or Markdown), splits it
into chunks, embeds each chunk, and builds the in-memory index the other
commands query. Prints the document ID to use with ask, terms, flags and
summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadTitle, "title", "t", "", "document title (default: file name)")
	uploadCmd.Flags().BoolVar(&uploadJSON, "json", false, "output the receipt as JSON")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}
	if textExtractor == nil {
		return errors.New("text extractor not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	ctx := context.Background()
	text, err := textExtractor.ExtractText(ctx, filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	title := uploadTitle
	if title == "" {
		title = filepath.Base(path)
	}

	receipt, err := analysisService.Ingest(ctx, title, text)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	if uploadJSON {
		out, err := json.MarshalIndent(receipt, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal receipt: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Uploaded %s\n", title)
	cmd.Printf("  Document ID: %s\n", receipt.DocumentID)
	cmd.Printf("  Chunks:      %d\n", receipt.ChunkCount)
	cmd.Printf("  Preview:     %s\n", receipt.Preview)
	return nil
}
