package driven

import (
	"context"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

// DocumentStore is the process-wide registry of ingested leases.
// Documents and chunks are immutable once saved; lifecycle is tied to
// explicit removal or process teardown (nothing persists across restarts).
type DocumentStore interface {
	// SaveDocument stores a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores the embedded chunks for a document.
	SaveChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound for unknown IDs.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document in position order.
	// Returns domain.ErrNotFound for unknown IDs.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all stored documents, newest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
