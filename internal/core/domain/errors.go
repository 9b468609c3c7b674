package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed caller input, like an empty
	// question.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfiguration indicates bad pipeline parameters, such as a
	// chunk overlap that is not smaller than the chunk size. Fatal at startup.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnreadableDocument indicates upstream text extraction failed or
	// yielded no usable text. Surfaced to the caller, never retried.
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrEmbeddingUnavailable indicates the embedding model cannot be
	// reached. Fatal for the ingest in progress; no partial index is kept.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrModelUnavailable indicates the local LLM runtime is not reachable.
	ErrModelUnavailable = errors.New("LLM service unavailable")

	// ErrGenerationTimeout indicates a generation call exceeded its bounded
	// timeout. Not retried: a stalled local model is not self-healing.
	ErrGenerationTimeout = errors.New("generation timed out")

	// ErrParseFailure indicates model output was not in the expected
	// structured format. Never fatal to a request; the caller receives the
	// raw text alongside the annotation.
	ErrParseFailure = errors.New("could not parse model output")
)
