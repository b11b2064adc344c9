package driven

import (
	"context"

	"github.com/lore-labs/lore-cli/internal/core/domain"
)

// DocumentStore persists document metadata (filename, size, chunk count).
// Chunk content and embeddings live in the VectorIndex; this store only
// tracks the collection's membership for listing and deletion.
type DocumentStore interface {
	// SaveDocument stores or updates a document record, keyed by filename.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// GetDocument retrieves a document by filename.
	// Returns domain.ErrNotFound if absent.
	GetDocument(ctx context.Context, filename string) (*domain.Document, error)

	// ListDocuments returns all documents, ordered by filename.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document record.
	// Returns domain.ErrNotFound if absent.
	DeleteDocument(ctx context.Context, filename string) error
}
