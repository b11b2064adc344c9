package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
)

func TestAddCmd_Use(t *testing.T) {
	assert.Equal(t, "add [file...]", addCmd.Use)
}

func TestAddCmd_RequiresArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"add"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestAddCmd_IndexesFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some notes"), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"add", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "notes.txt: 2 chunks indexed")
}

func TestAddCmd_MissingFileFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"add", filepath.Join(t.TempDir(), "absent.txt")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
}

func TestListCmd_EmptyCollection(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No documents indexed")
}

func TestListCmd_ShowsDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	library := newFakeLibrary()
	_, err := library.Add(context.Background(), "report.pdf", []byte("pdf bytes"))
	require.NoError(t, err)
	libraryService = library

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "report.pdf")
	assert.Contains(t, output, "1 documents")
}

func TestRemoveCmd_RemovesDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	library := newFakeLibrary()
	_, err := library.Add(context.Background(), "doomed.txt", []byte("bytes"))
	require.NoError(t, err)
	libraryService = library

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"remove", "doomed.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Removed doomed.txt")
	assert.Empty(t, library.docs)
}

func TestRemoveCmd_AbsentDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"remove", "never-added.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not indexed")
}

func TestStatusCmd_ShowsReport(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "nomic-embed-text")
	assert.Contains(t, output, "llama3.1:8b")
	assert.Contains(t, output, "Documents:       1")
	assert.Contains(t, output, "Chunks:          4")
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "lore version")
}

func TestStatusCmd_UnhealthyFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	healthService = &fakeHealthService{
		report: &driving.HealthReport{
			EmbedderReachable: false,
			ModelReachable:    true,
			EmbeddingModel:    "nomic-embed-text",
			LLMModel:          "llama3.1:8b",
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
	assert.Contains(t, buf.String(), "nomic-embed-text (unreachable)")
}

func TestWatchCmd_NoDirectoryConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	prev := documentsDir
	documentsDir = ""
	defer func() {
		documentsDir = prev
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "documents_dir")
}

func TestClearCmd_RequiresForce(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}

func TestClearCmd_RemovesEverything(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	library := newFakeLibrary()
	_, err := library.Add(context.Background(), "a.txt", []byte("a"))
	require.NoError(t, err)
	_, err = library.Add(context.Background(), "b.txt", []byte("b"))
	require.NoError(t, err)
	libraryService = library

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"clear", "--force"})
	defer func() {
		rootCmd.SetArgs(nil)
		clearForce = false
	}()

	err = rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Removed 2 documents")
	assert.Empty(t, library.docs)
}
