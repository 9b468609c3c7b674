package mcp

import (
	"github.com/JamesKang003/leasewise/internal/core/ports/driven"
	"github.com/JamesKang003/leasewise/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis provides the lease analysis operations.
	Analysis driving.AnalysisService

	// Extractor converts base64 file uploads into plain text. Optional;
	// when nil the upload tool only accepts raw text.
	Extractor driven.TextExtractor
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
