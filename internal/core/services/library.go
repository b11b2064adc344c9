package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lore-labs/lore-cli/internal/chunker"
	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driven"
	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
	"github.com/lore-labs/lore-cli/internal/extractors"
	"github.com/lore-labs/lore-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// lockStripes is the number of mutexes guarding concurrent ingest.
// Operations on different filenames proceed in parallel; operations on
// the same filename serialise on its stripe.
const lockStripes = 32

// LibraryService manages the document collection.
type LibraryService struct {
	registry *extractors.Registry
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	docs     driven.DocumentStore
	chunking domain.ChunkingSettings
	library  domain.LibrarySettings

	locks [lockStripes]sync.Mutex
}

// NewLibraryService creates a new library service.
func NewLibraryService(
	registry *extractors.Registry,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	docs driven.DocumentStore,
	chunking domain.ChunkingSettings,
	library domain.LibrarySettings,
) *LibraryService {
	return &LibraryService{
		registry: registry,
		embedder: embedder,
		index:    index,
		docs:     docs,
		chunking: chunking,
		library:  library,
	}
}

// lockFor returns the stripe mutex for a filename.
func (s *LibraryService) lockFor(filename string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(filename))
	return &s.locks[h.Sum32()%lockStripes]
}

// Add extracts, chunks, embeds and indexes a document.
//
// Ingest is all-or-nothing: the document only becomes visible once its
// chunks are embedded and indexed. Re-adding a filename replaces its
// previous entries atomically and preserves the original CreatedAt.
func (s *LibraryService) Add(ctx context.Context, filename string, data []byte) (*driving.AddResult, error) {
	logger.Section("Ingest")
	logger.Debug("File: %s (%d bytes)", filename, len(data))

	if err := s.validate(filename, data); err != nil {
		return nil, err
	}

	mu := s.lockFor(filename)
	mu.Lock()
	defer mu.Unlock()

	extractor, err := s.registry.ForFilename(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Ext(filename))
	}

	text, err := extractor.Extract(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s contains no extractable text", domain.ErrInvalidInput, filename)
	}
	logger.Debug("Extracted %d chars", len(text))

	// Preserve identity and creation time across re-ingest.
	now := time.Now().UTC()
	doc := domain.Document{
		ID:        uuid.NewString(),
		Filename:  filename,
		SizeBytes: int64(len(data)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, err := s.docs.GetDocument(ctx, filename); err == nil {
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("look up %s: %w", filename, err)
	}

	chunks, err := chunker.Split(doc.ID, filename, text, s.chunking)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", filename, err)
	}
	logger.Debug("Split into %d chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %s: %w", filename, err)
	}

	if err := s.index.Upsert(ctx, doc.ID, chunks, embeddings); err != nil {
		return nil, fmt.Errorf("index %s: %w", filename, err)
	}

	doc.ChunkCount = len(chunks)
	if err := s.docs.SaveDocument(ctx, doc); err != nil {
		// Keep the collection consistent: without a record, the index
		// entries are orphans.
		if delErr := s.index.Delete(ctx, doc.ID); delErr != nil {
			logger.Warn("Rollback of index entries for %s failed: %v", filename, delErr)
		}
		return nil, fmt.Errorf("save document %s: %w", filename, err)
	}

	logger.Info("Indexed %s: %d chunks", filename, len(chunks))
	return &driving.AddResult{
		Document:      doc,
		ChunksCreated: len(chunks),
	}, nil
}

// validate rejects unusable input before any extraction work.
func (s *LibraryService) validate(filename string, data []byte) error {
	if strings.TrimSpace(filename) == "" {
		return fmt.Errorf("%w: filename is empty", domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, filename)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !s.extensionAllowed(ext) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}

	if maxBytes := s.library.MaxFileSizeBytes(); maxBytes > 0 && int64(len(data)) > maxBytes {
		return fmt.Errorf("%w: %s is %d bytes, limit %d",
			domain.ErrFileTooLarge, filename, len(data), maxBytes)
	}

	return nil
}

// extensionAllowed checks the ingest allow-list. An empty list defers
// entirely to the extractor registry.
func (s *LibraryService) extensionAllowed(ext string) bool {
	if len(s.library.AllowedExtensions) == 0 {
		return true
	}
	for _, allowed := range s.library.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

// List returns all indexed documents, ordered by filename.
func (s *LibraryService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.docs.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Remove deletes a document and all of its index entries.
// Returns domain.ErrNotFound if the filename is not indexed.
func (s *LibraryService) Remove(ctx context.Context, filename string) error {
	mu := s.lockFor(filename)
	mu.Lock()
	defer mu.Unlock()

	doc, err := s.docs.GetDocument(ctx, filename)
	if err != nil {
		return fmt.Errorf("look up %s: %w", filename, err)
	}

	if err := s.index.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete index entries for %s: %w", filename, err)
	}

	if err := s.docs.DeleteDocument(ctx, filename); err != nil {
		return fmt.Errorf("delete document %s: %w", filename, err)
	}

	logger.Info("Removed %s", filename)
	return nil
}

// Clear removes every document from the collection.
func (s *LibraryService) Clear(ctx context.Context) (int, error) {
	docs, err := s.docs.ListDocuments(ctx)
	if err != nil {
		return 0, fmt.Errorf("list documents: %w", err)
	}

	for _, doc := range docs {
		if err := s.Remove(ctx, doc.Filename); err != nil {
			return 0, err
		}
	}

	logger.Info("Cleared %d documents", len(docs))
	return len(docs), nil
}
