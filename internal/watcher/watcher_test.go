package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JamesKang003/leasewise/internal/adapters/driven/extract"
	"github.com/JamesKang003/leasewise/internal/core/domain"
)

// recordingService records ingested documents for assertions.
type recordingService struct {
	mu     sync.Mutex
	titles []string
	texts  []string
}

func (r *recordingService) Ingest(_ context.Context, title, rawText string) (*domain.IngestReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, title)
	r.texts = append(r.texts, rawText)
	return &domain.IngestReceipt{DocumentID: "doc-1", ChunkCount: 1}, nil
}

func (r *recordingService) Ask(_ context.Context, _, _ string) (*domain.QAResult, error) {
	return &domain.QAResult{}, nil
}

func (r *recordingService) ExtractTerms(_ context.Context, _ string) (*domain.TermsResult, error) {
	return &domain.TermsResult{}, nil
}

func (r *recordingService) ScanRedFlags(_ context.Context, _ string) (*domain.RedFlagsResult, error) {
	return &domain.RedFlagsResult{}, nil
}

func (r *recordingService) Summarise(_ context.Context, _ string) (*domain.Summary, error) {
	return &domain.Summary{}, nil
}

func (r *recordingService) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return nil, nil
}

func (r *recordingService) RemoveDocument(_ context.Context, _ string) error {
	return nil
}

func (r *recordingService) ingestedTitles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

func TestWatcher_shouldIngest(t *testing.T) {
	dir := t.TempDir()
	leasePath := filepath.Join(dir, "lease.txt")
	require.NoError(t, os.WriteFile(leasePath, []byte("lease text"), 0644))

	subDir := filepath.Join(dir, "archive.txt")
	require.NoError(t, os.Mkdir(subDir, 0755))

	w := New(&recordingService{}, extract.New())

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{
			name:     "created text file",
			event:    fsnotify.Event{Name: leasePath, Op: fsnotify.Create},
			expected: true,
		},
		{
			name:     "written text file",
			event:    fsnotify.Event{Name: leasePath, Op: fsnotify.Write},
			expected: true,
		},
		{
			name:     "chmod is ignored",
			event:    fsnotify.Event{Name: leasePath, Op: fsnotify.Chmod},
			expected: false,
		},
		{
			name:     "remove is ignored",
			event:    fsnotify.Event{Name: leasePath, Op: fsnotify.Remove},
			expected: false,
		},
		{
			name:     "hidden file is skipped",
			event:    fsnotify.Event{Name: filepath.Join(dir, ".lease.txt"), Op: fsnotify.Create},
			expected: false,
		},
		{
			name:     "unsupported extension is skipped",
			event:    fsnotify.Event{Name: filepath.Join(dir, "lease.docx"), Op: fsnotify.Create},
			expected: false,
		},
		{
			name:     "directory is skipped",
			event:    fsnotify.Event{Name: subDir, Op: fsnotify.Create},
			expected: false,
		},
		{
			name:     "missing file is skipped",
			event:    fsnotify.Event{Name: filepath.Join(dir, "gone.txt"), Op: fsnotify.Create},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.shouldIngest(tt.event))
		})
	}
}

func TestWatcher_ingestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lease.txt")
	require.NoError(t, os.WriteFile(path, []byte("Tenant shall pay $1,500 per month."), 0644))

	service := &recordingService{}
	w := New(service, extract.New())

	receipt, err := w.ingestFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", receipt.DocumentID)

	titles := service.ingestedTitles()
	require.Len(t, titles, 1)
	assert.Equal(t, "lease.txt", titles[0])
	assert.Contains(t, service.texts[0], "$1,500")
}

func TestWatcher_Run(t *testing.T) {
	t.Run("rejects missing directory", func(t *testing.T) {
		w := New(&recordingService{}, extract.New())
		err := w.Run(context.Background(), filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("ingests dropped file", func(t *testing.T) {
		dir := t.TempDir()
		service := &recordingService{}
		w := New(service, extract.New())
		w.settle = 10 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- w.Run(ctx, dir) }()

		// Give the watcher a moment to start before dropping the file.
		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "lease.txt"), []byte("rent is due"), 0644))

		require.Eventually(t, func() bool {
			return len(service.ingestedTitles()) >= 1
		}, 5*time.Second, 25*time.Millisecond)

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}
