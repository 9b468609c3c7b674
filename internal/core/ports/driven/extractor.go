package driven

import "context"

// TextExtractor turns an uploaded file into raw text. The pipeline treats
// the result as opaque upstream input; malformed files fail with
// domain.ErrUnreadableDocument and are never retried.
type TextExtractor interface {
	// ExtractText extracts the full text of the file. The filename is used
	// to pick a format handler (PDF, plain text).
	ExtractText(ctx context.Context, filename string, data []byte) (string, error)
}
