// Package tui provides an interactive chat view for questioning a lease.
// It follows the Elm architecture and implements tea.Model for Bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JamesKang003/leasewise/internal/chunker"
	"github.com/JamesKang003/leasewise/internal/core/domain"
	"github.com/JamesKang003/leasewise/internal/core/ports/driving"
)

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("tui: analysis service is required")

// exchange is one question and its outcome in the transcript.
type exchange struct {
	question string
	answer   string
	snippets []string
	err      error
}

// answerReceived carries the result of an Ask call back into the update loop.
type answerReceived struct {
	result domain.QAResult
	err    error
}

// App is the interactive lease Q&A application.
type App struct {
	analysis driving.AnalysisService
	ctx      context.Context
	styles   *Styles
	doc      domain.Document

	input   textinput.Model
	spinner spinner.Model

	transcript []exchange
	busy       bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a chat app for the given document.
func NewApp(analysis driving.AnalysisService, doc domain.Document) (*App, error) {
	if analysis == nil {
		return nil, ErrMissingAnalysisService
	}

	s := DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask about this lease..."
	input.CharLimit = 500
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Muted

	return &App{
		analysis: analysis,
		ctx:      context.Background(),
		styles:   s,
		doc:      doc,
		input:    input,
		spinner:  sp,
	}, nil
}

// WithContext sets the context used for Ask calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("leasewise - "+a.doc.Title),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "enter":
			if a.busy {
				return a, nil
			}
			question := strings.TrimSpace(a.input.Value())
			if question == "" {
				return a, nil
			}
			a.busy = true
			a.input.Reset()
			return a, tea.Batch(a.ask(question), a.spinner.Tick)
		}

		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case answerReceived:
		a.busy = false
		last := len(a.transcript) - 1
		if last >= 0 {
			a.transcript[last].answer = msg.result.Answer
			a.transcript[last].snippets = msg.result.ContextSnippets
			a.transcript[last].err = msg.err
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// ask records the question in the transcript and returns a command that runs
// the Ask operation.
func (a *App) ask(question string) tea.Cmd {
	a.transcript = append(a.transcript, exchange{question: question})
	return func() tea.Msg {
		result, err := a.analysis.Ask(a.ctx, a.doc.ID, question)
		if err != nil {
			return answerReceived{err: err}
		}
		return answerReceived{result: *result}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render(fmt.Sprintf("%s (%s)", a.doc.Title, a.doc.ID)))
	b.WriteString("\n\n")

	for _, e := range a.transcript {
		b.WriteString(a.styles.Question.Render("> " + e.question))
		b.WriteString("\n")
		switch {
		case e.err != nil:
			b.WriteString(a.styles.Error.Render("error: " + e.err.Error()))
			b.WriteString("\n")
		case e.answer != "":
			b.WriteString(a.styles.Answer.Render(e.answer))
			b.WriteString("\n")
			for _, s := range e.snippets {
				b.WriteString(a.styles.Snippet.Render(truncateSnippet(s)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if a.busy {
		b.WriteString(a.spinner.View())
		b.WriteString(a.styles.Muted.Render(" thinking..."))
	} else {
		b.WriteString(a.input.View())
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("[enter] ask  [esc] quit"))

	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Busy reports whether a question is in flight.
func (a *App) Busy() bool {
	return a.busy
}

// Transcript returns the questions asked so far.
func (a *App) Transcript() []string {
	questions := make([]string, len(a.transcript))
	for i := range a.transcript {
		questions[i] = a.transcript[i].question
	}
	return questions
}

// truncateSnippet clips long lease excerpts for display.
func truncateSnippet(s string) string {
	const max = 160
	clipped, truncated := chunker.Clip(s, max)
	if !truncated {
		return s
	}
	return clipped + "..."
}
