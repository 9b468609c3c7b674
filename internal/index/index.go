// Package index provides an in-memory vector index over one document's
// embedded chunks. Retrieval is an exhaustive cosine-similarity scan:
// at document scale (tens to low hundreds of chunks) a linear pass beats
// the bookkeeping cost of an approximate index.
package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

// Index holds the embedded chunks of a single document. It is immutable
// after construction, so concurrent Query calls need no locking.
type Index struct {
	chunks []domain.Chunk
	dim    int
}

// New builds an index from embedded chunks. Every chunk must carry an
// embedding and all embeddings must share one dimension.
func New(chunks []domain.Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("index: no chunks to index")
	}

	dim := len(chunks[0].Embedding)
	if dim == 0 {
		return nil, fmt.Errorf("index: chunk %d has no embedding", chunks[0].Position)
	}
	for _, c := range chunks {
		if len(c.Embedding) != dim {
			return nil, fmt.Errorf("index: chunk %d embedding dimension %d, want %d",
				c.Position, len(c.Embedding), dim)
		}
	}

	idx := &Index{
		chunks: make([]domain.Chunk, len(chunks)),
		dim:    dim,
	}
	copy(idx.chunks, chunks)
	return idx, nil
}

// Query returns the k chunks most similar to the query vector, sorted by
// descending cosine similarity with ties broken by ascending chunk
// position. k is clamped to the number of indexed chunks.
func (idx *Index) Query(query []float32, k int) []domain.RetrievedChunk {
	if k <= 0 {
		return nil
	}
	if k > len(idx.chunks) {
		k = len(idx.chunks)
	}

	scored := make([]domain.RetrievedChunk, len(idx.chunks))
	for i, c := range idx.chunks {
		scored[i] = domain.RetrievedChunk{
			Chunk: c,
			Score: Cosine(query, c.Embedding),
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].Score != scored[b].Score {
			return scored[a].Score > scored[b].Score
		}
		return scored[a].Chunk.Position < scored[b].Chunk.Position
	})

	return scored[:k]
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	return len(idx.chunks)
}

// Dimensions returns the embedding dimension of the indexed chunks.
func (idx *Index) Dimensions() int {
	return idx.dim
}

// Cosine computes the cosine similarity of two vectors: the dot product
// divided by the product of magnitudes. A zero-magnitude vector has
// similarity 0 with everything; the guard avoids dividing by zero.
// Mismatched lengths compare over the shorter prefix.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
