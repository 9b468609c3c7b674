package driven

import "context"

// EmbeddingService generates vector embeddings from text. Chunk and query
// embeddings must come from the same model so they live in the same vector
// space, and embedding is deterministic: identical input yields the same
// vector.
//
// Note: this is separate from the vector index, which stores and searches
// vectors. EmbeddingService generates vectors; the index ranks them.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. Used once per
	// document at ingest to embed every chunk.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384, 768).
	// This is determined by the model and is identical for every chunk
	// and query within a run.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
