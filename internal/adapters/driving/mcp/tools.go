package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

// UploadLeaseInput is the input schema for the upload_lease tool. Either
// text or (filename, data) must be provided; text wins when both are set.
type UploadLeaseInput struct {
	Title    string `json:"title" jsonschema:"a short name for the lease document"`
	Text     string `json:"text,omitempty" jsonschema:"the full plain text of the lease; omit when uploading a file"`
	Filename string `json:"filename,omitempty" jsonschema:"the name of the uploaded file, used to pick a format handler (PDF, plain text)"`
	Data     string `json:"data,omitempty" jsonschema:"base64-encoded file content, used when text is empty"`
}

// UploadLeaseOutput is the output schema for the upload_lease tool.
type UploadLeaseOutput struct {
	DocumentID string `json:"document_id"`
	Preview    string `json:"preview"`
	NumChunks  int    `json:"num_chunks"`
}

// AskLeaseInput is the input schema for the ask_lease tool.
type AskLeaseInput struct {
	DocumentID string `json:"document_id" jsonschema:"the id returned by upload_lease"`
	Question   string `json:"question" jsonschema:"the question to answer from the lease text"`
}

// AskLeaseOutput is the output schema for the ask_lease tool.
type AskLeaseOutput struct {
	Answer          string   `json:"answer"`
	ContextSnippets []string `json:"context_snippets"`
}

// DocumentInput identifies a previously uploaded lease.
type DocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the id returned by upload_lease"`
}

// TermsOutput is the output schema for the extract_lease_terms tool.
type TermsOutput struct {
	Terms      map[string]string `json:"terms"`
	ParseError string            `json:"parse_error,omitempty"`
	Raw        string            `json:"raw,omitempty"`
	Truncated  bool              `json:"truncated,omitempty"`
}

// RedFlagOutput represents a single red flag.
type RedFlagOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Severity    string `json:"severity"`
	ClauseText  string `json:"clause_text"`
	Explanation string `json:"explanation"`
}

// RedFlagsOutput is the output schema for the scan_red_flags tool.
type RedFlagsOutput struct {
	Flags      []RedFlagOutput `json:"flags"`
	ParseError string          `json:"parse_error,omitempty"`
	Raw        string          `json:"raw,omitempty"`
	Truncated  bool            `json:"truncated,omitempty"`
}

// SummaryOutput is the output schema for the summarise_lease tool.
type SummaryOutput struct {
	Summary   string `json:"summary"`
	Truncated bool   `json:"truncated,omitempty"`
}

// LeaseOutput represents a single stored lease.
type LeaseOutput struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	NumChunks  int    `json:"num_chunks"`
	CreatedAt  string `json:"created_at"`
}

// ListLeasesOutput is the output schema for the list_leases tool.
type ListLeasesOutput struct {
	Leases []LeaseOutput `json:"leases"`
	Count  int           `json:"count"`
}

// RemoveLeaseOutput is the output schema for the remove_lease tool.
type RemoveLeaseOutput struct {
	Removed bool `json:"removed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_lease",
		Description: "Upload a residential lease for analysis, as plain text or a base64-encoded file",
	}, s.handleUploadLease)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_lease",
		Description: "Ask a question about an uploaded lease, answered only from its text",
	}, s.handleAskLease)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_lease_terms",
		Description: "Extract the key terms (rent, dates, deposit, notice period and more) from an uploaded lease",
	}, s.handleExtractTerms)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_red_flags",
		Description: "Scan an uploaded lease for tenant-unfriendly clauses",
	}, s.handleScanRedFlags)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarise_lease",
		Description: "Produce a plain-language summary of an uploaded lease",
	}, s.handleSummarise)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_leases",
		Description: "List all uploaded leases",
	}, s.handleListLeases)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_lease",
		Description: "Remove an uploaded lease and its index",
	}, s.handleRemoveLease)
}

// handleUploadLease handles the upload_lease tool invocation.
func (s *Server) handleUploadLease(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadLeaseInput,
) (*mcp.CallToolResult, UploadLeaseOutput, error) {
	text := input.Text
	title := input.Title
	if text == "" && input.Data != "" {
		if s.ports.Extractor == nil {
			return nil, UploadLeaseOutput{}, fmt.Errorf("%w: file uploads need a text extractor; send plain text instead", domain.ErrInvalidInput)
		}
		data, err := base64.StdEncoding.DecodeString(input.Data)
		if err != nil {
			return nil, UploadLeaseOutput{}, fmt.Errorf("%w: data is not valid base64", domain.ErrInvalidInput)
		}
		text, err = s.ports.Extractor.ExtractText(ctx, input.Filename, data)
		if err != nil {
			return nil, UploadLeaseOutput{}, err
		}
		if title == "" {
			title = input.Filename
		}
	}

	receipt, err := s.ports.Analysis.Ingest(ctx, title, text)
	if err != nil {
		return nil, UploadLeaseOutput{}, err
	}

	return nil, UploadLeaseOutput{
		DocumentID: receipt.DocumentID,
		Preview:    receipt.Preview,
		NumChunks:  receipt.ChunkCount,
	}, nil
}

// handleAskLease handles the ask_lease tool invocation.
func (s *Server) handleAskLease(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskLeaseInput,
) (*mcp.CallToolResult, AskLeaseOutput, error) {
	result, err := s.ports.Analysis.Ask(ctx, input.DocumentID, input.Question)
	if err != nil {
		return nil, AskLeaseOutput{}, err
	}

	return nil, AskLeaseOutput{
		Answer:          result.Answer,
		ContextSnippets: result.ContextSnippets,
	}, nil
}

// handleExtractTerms handles the extract_lease_terms tool invocation.
func (s *Server) handleExtractTerms(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, TermsOutput, error) {
	result, err := s.ports.Analysis.ExtractTerms(ctx, input.DocumentID)
	if err != nil {
		return nil, TermsOutput{}, err
	}

	output := TermsOutput{
		Terms:      result.Terms,
		ParseError: result.Err,
		Truncated:  result.Truncated,
	}
	if result.Err != "" {
		output.Raw = result.Raw
	}
	return nil, output, nil
}

// handleScanRedFlags handles the scan_red_flags tool invocation.
func (s *Server) handleScanRedFlags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, RedFlagsOutput, error) {
	result, err := s.ports.Analysis.ScanRedFlags(ctx, input.DocumentID)
	if err != nil {
		return nil, RedFlagsOutput{}, err
	}

	output := RedFlagsOutput{
		Flags:      make([]RedFlagOutput, len(result.Flags)),
		ParseError: result.Err,
		Truncated:  result.Truncated,
	}
	for i := range result.Flags {
		output.Flags[i] = RedFlagOutput{
			ID:          result.Flags[i].ID,
			Title:       result.Flags[i].Title,
			Severity:    string(result.Flags[i].Severity),
			ClauseText:  result.Flags[i].ClauseText,
			Explanation: result.Flags[i].Explanation,
		}
	}
	if result.Err != "" {
		output.Raw = result.Raw
	}
	return nil, output, nil
}

// handleSummarise handles the summarise_lease tool invocation.
func (s *Server) handleSummarise(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	summary, err := s.ports.Analysis.Summarise(ctx, input.DocumentID)
	if err != nil {
		return nil, SummaryOutput{}, err
	}

	return nil, SummaryOutput{
		Summary:   summary.Text,
		Truncated: summary.Truncated,
	}, nil
}

// handleListLeases handles the list_leases tool invocation.
func (s *Server) handleListLeases(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListLeasesOutput, error) {
	docs, err := s.ports.Analysis.ListDocuments(ctx)
	if err != nil {
		return nil, ListLeasesOutput{}, err
	}

	output := ListLeasesOutput{
		Leases: make([]LeaseOutput, len(docs)),
		Count:  len(docs),
	}
	for i := range docs {
		output.Leases[i] = LeaseOutput{
			DocumentID: docs[i].ID,
			Title:      docs[i].Title,
			NumChunks:  docs[i].ChunkCount,
			CreatedAt:  docs[i].CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return nil, output, nil
}

// handleRemoveLease handles the remove_lease tool invocation.
func (s *Server) handleRemoveLease(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, RemoveLeaseOutput, error) {
	if err := s.ports.Analysis.RemoveDocument(ctx, input.DocumentID); err != nil {
		return nil, RemoveLeaseOutput{}, err
	}
	return nil, RemoveLeaseOutput{Removed: true}, nil
}
