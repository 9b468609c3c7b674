package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

func TestDocumentListCmd(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		cleanup := setupTestServices(&mockAnalysisService{})
		defer cleanup()

		buf := new(bytes.Buffer)
		rootCmd.SetOut(buf)
		rootCmd.SetArgs([]string{"document", "list"})
		defer func() {
			rootCmd.SetArgs(nil)
		}()

		err := rootCmd.Execute()

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "No leases uploaded.")
	})

	t.Run("lists leases", func(t *testing.T) {
		mock := &mockAnalysisService{docs: []domain.Document{
			{ID: "doc-1", Title: "apartment lease", ChunkCount: 4, CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		}}
		cleanup := setupTestServices(mock)
		defer cleanup()

		buf := new(bytes.Buffer)
		rootCmd.SetOut(buf)
		rootCmd.SetArgs([]string{"document", "list"})
		defer func() {
			rootCmd.SetArgs(nil)
		}()

		err := rootCmd.Execute()

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "apartment lease")
		assert.Contains(t, buf.String(), "doc-1")
	})
}

func TestDocumentRemoveCmd(t *testing.T) {
	t.Run("removes lease", func(t *testing.T) {
		cleanup := setupTestServices(&mockAnalysisService{})
		defer cleanup()

		buf := new(bytes.Buffer)
		rootCmd.SetOut(buf)
		rootCmd.SetArgs([]string{"document", "remove", "doc-1"})
		defer func() {
			rootCmd.SetArgs(nil)
		}()

		err := rootCmd.Execute()

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Removed doc-1")
	})

	t.Run("unknown id fails", func(t *testing.T) {
		cleanup := setupTestServices(&mockAnalysisService{err: domain.ErrNotFound})
		defer cleanup()

		buf := new(bytes.Buffer)
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
		rootCmd.SetArgs([]string{"document", "remove", "missing"})
		defer func() {
			rootCmd.SetArgs(nil)
		}()

		err := rootCmd.Execute()

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAskCmd_PrintsAnswerAndSnippets(t *testing.T) {
	mock := &mockAnalysisService{qa: domain.QAResult{
		Answer:          "Rent is $1,500 per month.",
		ContextSnippets: []string{"Tenant shall pay $1,500"},
	}}
	cleanup := setupTestServices(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "doc-1", "how much is rent?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Rent is $1,500 per month.")
	assert.Contains(t, buf.String(), "Grounded in:")
}
