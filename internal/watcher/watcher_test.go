package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
)

// recordingLibrary records Add and Remove calls.
type recordingLibrary struct {
	mu      sync.Mutex
	added   []string
	removed []string
}

func (r *recordingLibrary) Add(_ context.Context, filename string, data []byte) (*driving.AddResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, filename)
	return &driving.AddResult{
		Document:      domain.Document{Filename: filename, SizeBytes: int64(len(data)), ChunkCount: 1},
		ChunksCreated: 1,
	}, nil
}

func (r *recordingLibrary) List(context.Context) ([]domain.Document, error) {
	return nil, nil
}

func (r *recordingLibrary) Remove(_ context.Context, filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, filename)
	return nil
}

func (r *recordingLibrary) Clear(context.Context) (int, error) {
	return 0, nil
}

func (r *recordingLibrary) addedFiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.added))
	copy(out, r.added)
	return out
}

func (r *recordingLibrary) removedFiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.removed))
	copy(out, r.removed)
	return out
}

func TestNew_Validation(t *testing.T) {
	lib := &recordingLibrary{}

	t.Run("empty dir", func(t *testing.T) {
		_, err := New(lib, Config{})
		assert.Error(t, err)
	})

	t.Run("missing dir", func(t *testing.T) {
		_, err := New(lib, Config{Dir: filepath.Join(t.TempDir(), "nope")})
		assert.Error(t, err)
	})

	t.Run("file not dir", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
		_, err := New(lib, Config{Dir: path})
		assert.Error(t, err)
	})

	t.Run("valid dir", func(t *testing.T) {
		dir := t.TempDir()
		w, err := New(lib, Config{Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, w.Dir())
	})
}

func TestWatcher_IngestsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("content"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("skip"), 0600))

	lib := &recordingLibrary{}
	w, err := New(lib, Config{Dir: dir, Debounce: 10 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	_ = w.Run(ctx)

	assert.Equal(t, []string{"existing.txt"}, lib.addedFiles())
}

func TestWatcher_IngestsNewFileAfterQuietPeriod(t *testing.T) {
	dir := t.TempDir()
	lib := &recordingLibrary{}
	w, err := New(lib, Config{Dir: dir, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	// Give the watcher time to register.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("hello"), 0600))

	assert.Eventually(t, func() bool {
		for _, f := range lib.addedFiles() {
			if f == "new.txt" {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	<-done
}

func TestWatcher_RemovesDeletedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doomed.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0600))

	lib := &recordingLibrary{}
	w, err := New(lib, Config{Dir: dir, Debounce: 10 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.Remove(path))

	assert.Eventually(t, func() bool {
		for _, f := range lib.removedFiles() {
			if f == "doomed.txt" {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	<-done
}

func TestIgnored(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"notes.txt", false},
		{"report.pdf", false},
		{".hidden", true},
		{".DS_Store", true},
		{"draft.txt~", true},
		{"download.tmp", true},
		{".notes.txt.swp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ignored(tt.name))
		})
	}
}
