package driving

import (
	"context"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

// AnalysisService is the transport-agnostic contract of the lease
// analysis pipeline. All query operations fail with domain.ErrNotFound
// when the document ID is unknown; generation and parsing failures on a
// query never invalidate the underlying document or its index.
type AnalysisService interface {
	// Ingest chunks, embeds, and indexes raw lease text. Any failure
	// aborts the whole ingest; no partial document state is stored.
	Ingest(ctx context.Context, title, rawText string) (*domain.IngestReceipt, error)

	// Ask answers a free-form question grounded only in retrieved passages.
	Ask(ctx context.Context, documentID, question string) (*domain.QAResult, error)

	// ExtractTerms extracts the fixed lease term schema. A model output
	// that cannot be parsed degrades to raw-text passthrough in the result.
	ExtractTerms(ctx context.Context, documentID string) (*domain.TermsResult, error)

	// ScanRedFlags detects risky clauses. Flag order follows model output.
	ScanRedFlags(ctx context.Context, documentID string) (*domain.RedFlagsResult, error)

	// Summarise produces a plain-language narrative of the lease.
	Summarise(ctx context.Context, documentID string) (*domain.Summary, error)

	// ListDocuments returns all ingested documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// RemoveDocument evicts a document, its chunks, and its index.
	RemoveDocument(ctx context.Context, documentID string) error
}
