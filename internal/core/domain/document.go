package domain

import "time"

// Document represents one ingested lease.
// It is the canonical representation after text extraction and normalisation.
type Document struct {
	// ID is the opaque identifier generated at ingest.
	ID string

	// Title is a human-readable label, usually the uploaded filename.
	Title string

	// Content is the full normalised lease text before chunking.
	Content string

	// ChunkCount is the number of chunks produced at ingest.
	ChunkCount int

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk is the unit of retrieval: a bounded contiguous span of lease text.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Start and End are the character span into the normalised document text.
	Start int
	End   int

	// Embedding is the vector representation for semantic retrieval.
	// Nil until the chunk has been embedded.
	Embedding []float32
}

// RetrievedChunk pairs a chunk with its similarity score for one query.
type RetrievedChunk struct {
	Chunk Chunk

	// Score is the cosine similarity against the query vector.
	Score float64
}

// IngestReceipt is returned to the caller after a successful ingest.
type IngestReceipt struct {
	DocumentID string `json:"document_id"`
	Preview    string `json:"preview"`
	ChunkCount int    `json:"num_chunks"`
}

// QAResult is the outcome of a grounded question-answer request.
type QAResult struct {
	// Answer is the model's reply, verbatim apart from whitespace trimming.
	Answer string `json:"answer"`

	// ContextSnippets are the retrieved passages the answer was grounded
	// in, in descending score order.
	ContextSnippets []string `json:"context_snippets"`
}

// Summary is the outcome of a summarise request.
type Summary struct {
	Text string `json:"summary"`

	// Truncated reports that the document exceeded the context budget and
	// the model saw a clipped prefix.
	Truncated bool `json:"truncated"`
}
