package mcp

import (
	"context"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

// mockAnalysisService is a configurable test double for the analysis port.
type mockAnalysisService struct {
	receipt domain.IngestReceipt
	qa      domain.QAResult
	terms   domain.TermsResult
	flags   domain.RedFlagsResult
	summary domain.Summary
	docs    []domain.Document
	err     error

	removedID     string
	ingestedTitle string
	ingestedText  string
}

func (m *mockAnalysisService) Ingest(_ context.Context, title, text string) (*domain.IngestReceipt, error) {
	m.ingestedTitle = title
	m.ingestedText = text
	if m.err != nil {
		return nil, m.err
	}
	return &m.receipt, nil
}

func (m *mockAnalysisService) Ask(_ context.Context, _, _ string) (*domain.QAResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.qa, nil
}

func (m *mockAnalysisService) ExtractTerms(_ context.Context, _ string) (*domain.TermsResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.terms, nil
}

func (m *mockAnalysisService) ScanRedFlags(_ context.Context, _ string) (*domain.RedFlagsResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.flags, nil
}

func (m *mockAnalysisService) Summarise(_ context.Context, _ string) (*domain.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.summary, nil
}

func (m *mockAnalysisService) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockAnalysisService) RemoveDocument(_ context.Context, id string) error {
	m.removedID = id
	return m.err
}
