package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

func TestUploadCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices(&mockAnalysisService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestUploadCmd_IngestsTextFile(t *testing.T) {
	mock := &mockAnalysisService{
		receipt: domain.IngestReceipt{
			DocumentID: "doc-1",
			Preview:    "THIS LEASE AGREEMENT...",
			ChunkCount: 3,
		},
	}
	cleanup := setupTestServices(mock)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "lease.txt")
	require.NoError(t, os.WriteFile(path, []byte("THIS LEASE AGREEMENT is made..."), 0644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"upload", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "doc-1")
	assert.Contains(t, buf.String(), "Chunks:      3")
}

func TestUploadCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices(&mockAnalysisService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", filepath.Join(t.TempDir(), "missing.txt")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
