package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

func TestExtractText_PlainText(t *testing.T) {
	e := New()

	text, err := e.ExtractText(context.Background(), "lease.txt", []byte("Rent is $1500/month."))
	require.NoError(t, err)
	assert.Equal(t, "Rent is $1500/month.", text)
}

func TestExtractText_Markdown(t *testing.T) {
	e := New()

	text, err := e.ExtractText(context.Background(), "lease.md", []byte("# Lease\nRent: $1500"))
	require.NoError(t, err)
	assert.Contains(t, text, "Rent: $1500")
}

func TestExtractText_Empty(t *testing.T) {
	e := New()

	_, err := e.ExtractText(context.Background(), "lease.pdf", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreadableDocument)
}

func TestExtractText_UnsupportedType(t *testing.T) {
	e := New()

	_, err := e.ExtractText(context.Background(), "lease.docx", []byte("data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreadableDocument)
}

func TestExtractText_InvalidUTF8(t *testing.T) {
	e := New()

	_, err := e.ExtractText(context.Background(), "lease.txt", []byte{0xff, 0xfe, 0xfd})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreadableDocument)
}

func TestExtractText_MalformedPDF(t *testing.T) {
	e := New()

	_, err := e.ExtractText(context.Background(), "lease.pdf", []byte("not a real pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreadableDocument)
}
