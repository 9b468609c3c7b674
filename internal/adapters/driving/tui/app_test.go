package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

// stubAnalysis answers every question with a fixed result.
type stubAnalysis struct {
	result domain.QAResult
	err    error
}

func (s *stubAnalysis) Ingest(_ context.Context, _, _ string) (*domain.IngestReceipt, error) {
	return &domain.IngestReceipt{}, nil
}

func (s *stubAnalysis) Ask(_ context.Context, _, _ string) (*domain.QAResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.result, nil
}

func (s *stubAnalysis) ExtractTerms(_ context.Context, _ string) (*domain.TermsResult, error) {
	return &domain.TermsResult{}, nil
}

func (s *stubAnalysis) ScanRedFlags(_ context.Context, _ string) (*domain.RedFlagsResult, error) {
	return &domain.RedFlagsResult{}, nil
}

func (s *stubAnalysis) Summarise(_ context.Context, _ string) (*domain.Summary, error) {
	return &domain.Summary{}, nil
}

func (s *stubAnalysis) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return nil, nil
}

func (s *stubAnalysis) RemoveDocument(_ context.Context, _ string) error {
	return nil
}

func testDoc() domain.Document {
	return domain.Document{ID: "doc-1", Title: "apartment lease"}
}

func TestNewApp(t *testing.T) {
	t.Run("requires analysis service", func(t *testing.T) {
		_, err := NewApp(nil, testDoc())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingAnalysisService)
	})

	t.Run("creates app", func(t *testing.T) {
		app, err := NewApp(&stubAnalysis{}, testDoc())
		require.NoError(t, err)
		assert.NotNil(t, app)
		assert.False(t, app.Busy())
	})
}

func TestApp_Update(t *testing.T) {
	t.Run("ctrl+c quits", func(t *testing.T) {
		app, err := NewApp(&stubAnalysis{}, testDoc())
		require.NoError(t, err)

		_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})

	t.Run("enter with empty input does nothing", func(t *testing.T) {
		app, err := NewApp(&stubAnalysis{}, testDoc())
		require.NoError(t, err)

		_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.False(t, app.Busy())
		assert.Empty(t, app.Transcript())
	})

	t.Run("enter submits question and marks busy", func(t *testing.T) {
		stub := &stubAnalysis{result: domain.QAResult{Answer: "Rent is $1,500 per month."}}
		app, err := NewApp(stub, testDoc())
		require.NoError(t, err)

		app.input.SetValue("how much is rent?")
		_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		assert.True(t, app.Busy())
		assert.Equal(t, []string{"how much is rent?"}, app.Transcript())
	})

	t.Run("answer fills the last exchange", func(t *testing.T) {
		stub := &stubAnalysis{}
		app, err := NewApp(stub, testDoc())
		require.NoError(t, err)

		app.input.SetValue("how much is rent?")
		app.Update(tea.KeyMsg{Type: tea.KeyEnter})

		app.Update(answerReceived{result: domain.QAResult{
			Answer:          "Rent is $1,500 per month.",
			ContextSnippets: []string{"Tenant shall pay $1,500"},
		}})

		assert.False(t, app.Busy())
		view := app.View()
		assert.Contains(t, view, "how much is rent?")
		assert.Contains(t, view, "Rent is $1,500 per month.")
		assert.Contains(t, view, "Tenant shall pay $1,500")
	})

	t.Run("ask failure is shown in the transcript", func(t *testing.T) {
		app, err := NewApp(&stubAnalysis{}, testDoc())
		require.NoError(t, err)

		app.input.SetValue("anything")
		app.Update(tea.KeyMsg{Type: tea.KeyEnter})
		app.Update(answerReceived{err: errors.New("model is not reachable")})

		assert.False(t, app.Busy())
		assert.Contains(t, app.View(), "model is not reachable")
	})
}

func TestApp_ask_callsService(t *testing.T) {
	stub := &stubAnalysis{result: domain.QAResult{Answer: "yes"}}
	app, err := NewApp(stub, testDoc())
	require.NoError(t, err)

	cmd := app.ask("are pets allowed?")
	require.NotNil(t, cmd)

	msg := cmd()
	answer, ok := msg.(answerReceived)
	require.True(t, ok)
	assert.Equal(t, "yes", answer.result.Answer)
	assert.NoError(t, answer.err)
}
