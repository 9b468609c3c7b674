// Package watcher monitors a drop directory and ingests lease documents as
// they appear. Dropping a PDF or text file into the watched directory has the
// same effect as running the upload command on it.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/JamesKang003/leasewise/internal/core/domain"
	"github.com/JamesKang003/leasewise/internal/core/ports/driven"
	"github.com/JamesKang003/leasewise/internal/core/ports/driving"
	"github.com/JamesKang003/leasewise/internal/logger"
)

// DefaultSettleDelay is how long to wait after a file event before reading
// the file, so that slow writers finish before ingestion starts.
const DefaultSettleDelay = 250 * time.Millisecond

// Watcher ingests lease files dropped into a directory.
type Watcher struct {
	analysis  driving.AnalysisService
	extractor driven.TextExtractor
	settle    time.Duration

	mu       sync.Mutex
	ingested map[string]time.Time // path -> mod time at last ingest
}

// New creates a watcher backed by the given analysis service and extractor.
func New(analysis driving.AnalysisService, extractor driven.TextExtractor) *Watcher {
	return &Watcher{
		analysis:  analysis,
		extractor: extractor,
		settle:    DefaultSettleDelay,
		ingested:  make(map[string]time.Time),
	}
}

// Run watches dir until the context is cancelled. Files created or modified
// in the directory are extracted and ingested. Subdirectories are not watched.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("Watching %s for lease documents", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.shouldIngest(event) {
				continue
			}
			w.handleFile(ctx, event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watch error: %v", err)
		}
	}
}

// shouldIngest reports whether a filesystem event refers to a readable lease
// file. Hidden files, directories and unsupported extensions are skipped.
func (w *Watcher) shouldIngest(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".pdf", ".txt", ".md", ".text":
	default:
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

// handleFile ingests a single file, deduplicating repeated events for the
// same unchanged file.
func (w *Watcher) handleFile(ctx context.Context, path string) {
	if w.settle > 0 {
		time.Sleep(w.settle)
	}

	info, err := os.Stat(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	last, seen := w.ingested[path]
	if seen && !info.ModTime().After(last) {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	receipt, err := w.ingestFile(ctx, path)
	if err != nil {
		logger.Error("Failed to ingest %s: %v", filepath.Base(path), err)
		return
	}

	w.mu.Lock()
	w.ingested[path] = info.ModTime()
	w.mu.Unlock()

	logger.Info("Ingested %s as %s (%d chunks)", filepath.Base(path), receipt.DocumentID, receipt.ChunkCount)
}

// ingestFile reads, extracts and ingests one file. The document title is the
// file's base name.
func (w *Watcher) ingestFile(ctx context.Context, path string) (*domain.IngestReceipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := w.extractor.ExtractText(ctx, filepath.Base(path), data)
	if err != nil {
		return nil, err
	}

	return w.analysis.Ingest(ctx, filepath.Base(path), text)
}
