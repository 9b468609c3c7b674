// Package extract turns uploaded lease files into raw text. PDF handling
// uses github.com/ledongthuc/pdf; plain text formats pass through.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/JamesKang003/leasewise/internal/core/domain"
	"github.com/JamesKang003/leasewise/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor extracts text from uploaded files by extension.
type Extractor struct{}

// New creates a new extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractText extracts the full text of the file. Malformed or
// unsupported input fails with domain.ErrUnreadableDocument and is never
// retried.
func (e *Extractor) ExtractText(_ context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s is empty", domain.ErrUnreadableDocument, filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(filename, data)
	case ".txt", ".md", ".text", "":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s is not valid text", domain.ErrUnreadableDocument, filename)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: unsupported file type %q", domain.ErrUnreadableDocument, filepath.Ext(filename))
	}
}

func extractPDF(filename string, data []byte) (text string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %s: %v", domain.ErrUnreadableDocument, filename, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUnreadableDocument, filename, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUnreadableDocument, filename, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUnreadableDocument, filename, err)
	}

	return buf.String(), nil
}
