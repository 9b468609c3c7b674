// Package chunker normalises lease text and splits it into overlapping
// fixed-size chunks for retrieval.
package chunker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1200

// DefaultOverlap is the default number of overlapping characters between
// consecutive chunks, so no clause is fully lost at a boundary.
const DefaultOverlap = 200

// Chunker splits normalised document content into fixed-size chunks.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a chunker. The overlap must be smaller than the chunk size
// and neither may be negative; violations fail with
// domain.ErrInvalidConfiguration since they are config errors, not data
// errors.
func New(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidConfiguration, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d must not be negative", domain.ErrInvalidConfiguration, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidConfiguration, overlap, chunkSize)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Normalise collapses all whitespace runs (including newlines left over
// from page-broken PDF text) into single spaces and trims the ends.
// Normalising already-normalised text is a no-op.
func Normalise(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Chunk splits normalised content into chunks on a stride of
// chunkSize - overlap. Start offsets are strictly increasing, the final
// chunk may be shorter than chunkSize, and empty content produces no
// chunks. Sizes and the Start/End spans count runes, not bytes, so a
// chunk boundary never lands inside a multi-byte character. The input is
// assumed to be normalised already.
func (c *Chunker) Chunk(documentID, content string) []domain.Chunk {
	if content == "" {
		return nil
	}

	stride := c.chunkSize - c.overlap
	runes := []rune(content)
	total := len(runes)
	chunks := make([]domain.Chunk, 0, total/stride+1)

	position := 0
	for start := 0; start < total; start += stride {
		end := start + c.chunkSize
		if end > total {
			end = total
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Content:    string(runes[start:end]),
			Position:   position,
			Start:      start,
			End:        end,
		})
		position++
	}

	return chunks
}

// Clip returns at most limit characters of text and reports whether
// anything was removed. The cut counts runes, so leases full of curly
// quotes, section signs and accented names never lose bytes mid-character.
func Clip(text string, limit int) (string, bool) {
	if limit <= 0 {
		return "", text != ""
	}
	seen := 0
	for i := range text {
		if seen == limit {
			return text[:i], true
		}
		seen++
	}
	return text, false
}

// ChunkSize returns the configured chunk size in characters.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap in characters.
func (c *Chunker) Overlap() int {
	return c.overlap
}
