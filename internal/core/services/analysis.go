package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JamesKang003/leasewise/internal/chunker"
	"github.com/JamesKang003/leasewise/internal/core/domain"
	"github.com/JamesKang003/leasewise/internal/core/ports/driven"
	"github.com/JamesKang003/leasewise/internal/core/ports/driving"
	"github.com/JamesKang003/leasewise/internal/index"
	"github.com/JamesKang003/leasewise/internal/logger"
	"github.com/JamesKang003/leasewise/internal/parser"
	"github.com/JamesKang003/leasewise/internal/prompt"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// PreviewLength is how many characters of the document the ingest
// receipt carries back to the caller.
const PreviewLength = 500

// DefaultTopK is how many chunks ground a question answer when not
// configured otherwise.
const DefaultTopK = 5

// AnalysisService runs the retrieval-and-generation pipeline. Documents
// and their indexes are immutable after ingest, so the query operations
// are reentrant; the only mutable state is the index cache.
type AnalysisService struct {
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
	llm      driven.LLMService
	splitter *chunker.Chunker
	prompts  *prompt.Builder
	topK     int

	mu      sync.RWMutex
	indexes map[string]*index.Index
}

// NewAnalysisService creates the analysis service.
func NewAnalysisService(
	docStore driven.DocumentStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	splitter *chunker.Chunker,
	prompts *prompt.Builder,
	topK int,
) *AnalysisService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnalysisService{
		docStore: docStore,
		embedder: embedder,
		llm:      llm,
		splitter: splitter,
		prompts:  prompts,
		topK:     topK,
		indexes:  make(map[string]*index.Index),
	}
}

// Ingest normalises, chunks, embeds, and indexes raw lease text. The
// pipeline is strictly sequential and all-or-nothing: an embedding or
// indexing failure leaves no trace of the document behind.
func (s *AnalysisService) Ingest(ctx context.Context, title, rawText string) (*domain.IngestReceipt, error) {
	logger.Section("Ingest")

	content := chunker.Normalise(rawText)
	if content == "" {
		return nil, fmt.Errorf("%w: no extractable text", domain.ErrUnreadableDocument)
	}

	docID := uuid.New().String()
	chunks := s.splitter.Chunk(docID, content)
	logger.Debug("Document %s: %d chars, %d chunks", docID, len(content), len(chunks))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed document: %w", err)
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	idx, err := index.New(chunks)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	doc := &domain.Document{
		ID:         docID,
		Title:      title,
		Content:    content,
		ChunkCount: len(chunks),
		CreatedAt:  time.Now(),
	}
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if err := s.docStore.SaveChunks(ctx, docID, chunks); err != nil {
		// Roll back so no half-saved document is queryable.
		_ = s.docStore.DeleteDocument(ctx, docID)
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	s.mu.Lock()
	s.indexes[docID] = idx
	s.mu.Unlock()

	logger.Info("Ingested %q as %s (%d chunks)", title, docID, len(chunks))
	return &domain.IngestReceipt{
		DocumentID: docID,
		Preview:    preview(content),
		ChunkCount: len(chunks),
	}, nil
}

// Ask answers a question grounded only in the top-K retrieved passages.
func (s *AnalysisService) Ask(ctx context.Context, documentID, question string) (*domain.QAResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question must not be empty", domain.ErrInvalidInput)
	}

	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	idx, err := s.indexFor(ctx, documentID)
	if err != nil {
		return nil, err
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	retrieved := idx.Query(queryVec, s.topK)
	snippets := make([]string, len(retrieved))
	for i, r := range retrieved {
		snippets[i] = r.Chunk.Content
		logger.Debug("Retrieved chunk %d (score %.4f)", r.Chunk.Position, r.Score)
	}

	p := s.prompts.QA(snippets, question)
	raw, err := s.llm.Chat(ctx, messages(p), driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("ask: %w", err)
	}

	return &domain.QAResult{
		Answer:          parser.ParseText(raw),
		ContextSnippets: snippets,
	}, nil
}

// ExtractTerms extracts the fixed lease term schema over the full
// document text. Unparseable model output degrades to raw passthrough
// with an error annotation; it never fails the request.
func (s *AnalysisService) ExtractTerms(ctx context.Context, documentID string) (*domain.TermsResult, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	p := s.prompts.ExtractTerms(doc.Content)
	raw, err := s.llm.Chat(ctx, messages(p), driven.GenerateOptions{JSONMode: true})
	if err != nil {
		return nil, fmt.Errorf("extract terms: %w", err)
	}

	result := &domain.TermsResult{Raw: raw, Truncated: p.Truncated}
	terms, parseErr := parser.ParseTerms(raw)
	if parseErr != nil {
		logger.Warn("Term extraction output unparseable: %v", parseErr)
		result.Err = "could not parse model output as JSON"
		return result, nil
	}
	result.Terms = terms
	return result, nil
}

// ScanRedFlags detects risky clauses over the full document text. Flag
// ordering follows the model output; it is not re-sorted.
func (s *AnalysisService) ScanRedFlags(ctx context.Context, documentID string) (*domain.RedFlagsResult, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	p := s.prompts.RedFlags(doc.Content)
	raw, err := s.llm.Chat(ctx, messages(p), driven.GenerateOptions{JSONMode: true})
	if err != nil {
		return nil, fmt.Errorf("scan red flags: %w", err)
	}

	result := &domain.RedFlagsResult{Raw: raw, Truncated: p.Truncated}
	flags, parseErr := parser.ParseRedFlags(raw)
	if parseErr != nil {
		logger.Warn("Red-flag output unparseable: %v", parseErr)
		result.Err = "could not parse model output as JSON"
		return result, nil
	}
	result.Flags = flags
	return result, nil
}

// Summarise produces a plain-language narrative of the lease.
func (s *AnalysisService) Summarise(ctx context.Context, documentID string) (*domain.Summary, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	p := s.prompts.Summarise(doc.Content)
	raw, err := s.llm.Chat(ctx, messages(p), driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("summarise: %w", err)
	}

	return &domain.Summary{
		Text:      parser.ParseText(raw),
		Truncated: p.Truncated,
	}, nil
}

// ListDocuments returns all ingested documents.
func (s *AnalysisService) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// RemoveDocument evicts a document, its chunks, and its cached index.
func (s *AnalysisService) RemoveDocument(ctx context.Context, documentID string) error {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return err
	}
	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("remove document: %w", err)
	}

	s.mu.Lock()
	delete(s.indexes, documentID)
	s.mu.Unlock()

	logger.Info("Removed document %s", documentID)
	return nil
}

// indexFor returns the cached index for a document, rebuilding it from
// the stored chunk embeddings on a cache miss. Rebuilding never
// re-embeds.
func (s *AnalysisService) indexFor(ctx context.Context, documentID string) (*index.Index, error) {
	s.mu.RLock()
	idx, ok := s.indexes[documentID]
	s.mu.RUnlock()
	if ok {
		return idx, nil
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return nil, err
	}
	idx, err = index.New(chunks)
	if err != nil {
		return nil, fmt.Errorf("rebuild index: %w", err)
	}

	s.mu.Lock()
	s.indexes[documentID] = idx
	s.mu.Unlock()
	return idx, nil
}

// messages converts a built prompt to the chat wire shape.
func messages(p prompt.Prompt) []driven.ChatMessage {
	return []driven.ChatMessage{
		{Role: "system", Content: p.System},
		{Role: "user", Content: p.User},
	}
}

// preview returns the leading slice of the document shown in the ingest
// receipt. The length counts characters so the cut never splits a
// multi-byte rune.
func preview(content string) string {
	p, clipped := chunker.Clip(content, PreviewLength)
	if clipped {
		return p + "..."
	}
	return p
}
