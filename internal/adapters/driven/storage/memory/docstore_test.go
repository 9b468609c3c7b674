package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
	assert.NotNil(t, store.chunks)
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{
		ID:         "doc-1",
		Title:      "apartment-lease.pdf",
		Content:    "The tenant agrees to pay $1500 per month.",
		ChunkCount: 1,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.SaveDocument(ctx, doc))

	saved, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", saved.ID)
	assert.Equal(t, "apartment-lease.pdf", saved.Title)
	assert.Equal(t, doc.Content, saved.Content)
}

func TestDocumentStore_GetDocument_NotFound(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.GetDocument(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Chunks(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	chunks := []domain.Chunk{
		{ID: "c-0", DocumentID: "doc-1", Content: "first", Position: 0, Embedding: []float32{1, 0}},
		{ID: "c-1", DocumentID: "doc-1", Content: "second", Position: 1, Embedding: []float32{0, 1}},
	}
	require.NoError(t, store.SaveChunks(ctx, "doc-1", chunks))

	got, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, []float32{0, 1}, got[1].Embedding)

	// The stored copy is insulated from caller mutation.
	got[0].Content = "mutated"
	again, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "first", again[0].Content)
}

func TestDocumentStore_GetChunks_NotFound(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.GetChunks(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_DeleteDocument(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1"}))
	require.NoError(t, store.SaveChunks(ctx, "doc-1", []domain.Chunk{{ID: "c-0"}}))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetChunks(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.DeleteDocument(ctx, "doc-1"))
}

func TestDocumentStore_ListDocuments_NewestFirst(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "old", CreatedAt: base.Add(-time.Hour)}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "new", CreatedAt: base}))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "old", docs[1].ID)
}

func TestDocumentStore_ConcurrentReads(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1"}))
	require.NoError(t, store.SaveChunks(ctx, "doc-1", []domain.Chunk{{ID: "c-0", Position: 0}}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.GetDocument(ctx, "doc-1")
			assert.NoError(t, err)
			_, err = store.GetChunks(ctx, "doc-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
