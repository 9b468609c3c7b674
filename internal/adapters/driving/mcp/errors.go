// Package mcp provides an MCP (Model Context Protocol) server adapter for
// LeaseWise. It lets AI assistants upload leases and run the analysis
// operations over the local pipeline.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")
