// Package watcher keeps the index in sync with a documents directory.
// Files created or modified in the watched directory are ingested;
// deleted files are removed from the index.
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

	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
	"github.com/lore-labs/lore-cli/internal/logger"
)

// DefaultDebounce is how long a file must be quiet before ingest.
// Editors and downloads write in bursts; reacting to every write would
// ingest half-written files.
const DefaultDebounce = 500 * time.Millisecond

// Watcher mirrors a directory into the document index.
type Watcher struct {
	library  driving.LibraryService
	dir      string
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// Config configures a Watcher.
type Config struct {
	// Dir is the directory to watch. Must exist.
	Dir string

	// Debounce overrides the quiet period before ingest.
	Debounce time.Duration
}

// New creates a watcher over cfg.Dir.
func New(library driving.LibraryService, cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch directory is required")
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path %s is not a directory", cfg.Dir)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	return &Watcher{
		library:  library,
		dir:      cfg.Dir,
		debounce: cfg.Debounce,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run watches the directory until the context is cancelled.
// Existing files are ingested on startup so the index catches up with
// changes made while the watcher was down.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	logger.Info("Watching %s", w.dir)
	w.ingestExisting(ctx)

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// ingestExisting indexes files already present in the directory.
func (w *Watcher) ingestExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		logger.Warn("Initial scan of %s failed: %v", w.dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || ignored(entry.Name()) {
			continue
		}
		w.ingest(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

// handleEvent routes one filesystem event.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if ignored(name) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		w.scheduleIngest(ctx, event.Name)

	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		w.cancelOne(event.Name)
		if err := w.library.Remove(ctx, name); err != nil {
			logger.Debug("Remove %s: %v", name, err)
		} else {
			logger.Info("Removed %s from index", name)
		}
	}
}

// scheduleIngest (re)starts the debounce timer for a path.
func (w *Watcher) scheduleIngest(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingest(ctx, path)
	})
}

// ingest reads and indexes one file. Failures are logged, not fatal;
// the watcher keeps running.
func (w *Watcher) ingest(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Read %s: %v", path, err)
		return
	}

	result, err := w.library.Add(ctx, filepath.Base(path), data)
	if err != nil {
		logger.Warn("Ingest %s: %v", path, err)
		return
	}
	logger.Info("Indexed %s: %d chunks", result.Document.Filename, result.ChunksCreated)
}

// cancelOne stops a pending ingest for a path.
func (w *Watcher) cancelOne(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[path]; ok {
		timer.Stop()
		delete(w.pending, path)
	}
}

// cancelPending stops all outstanding debounce timers.
func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

// ignored filters temp and hidden files editors leave behind.
func ignored(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".tmp") || strings.HasSuffix(name, ".swp") {
		return true
	}
	return false
}
