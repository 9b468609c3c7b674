package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentListJSON bool

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded leases",
	Long:  `List or remove uploaded lease documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded leases",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove an uploaded lease",
	Long:  `Removes a lease, its chunks, and its index. The document ID becomes invalid.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRemove,
}

func init() {
	documentListCmd.Flags().BoolVar(&documentListJSON, "json", false, "output the list as JSON")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	docs, err := analysisService.ListDocuments(context.Background())
	if err != nil {
		return fmt.Errorf("listing documents failed: %w", err)
	}

	if documentListJSON {
		out, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No leases uploaded.")
		return nil
	}

	cmd.Println("Uploaded leases:")
	for i := range docs {
		cmd.Printf("  %s  %s (%d chunks, %s)\n",
			docs[i].ID, docs[i].Title, docs[i].ChunkCount,
			docs[i].CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	documentID := args[0]
	if err := analysisService.RemoveDocument(context.Background(), documentID); err != nil {
		return fmt.Errorf("removing document failed: %w", err)
	}

	cmd.Printf("Removed %s\n", documentID)
	return nil
}
