package driving

import (
	"context"

	"github.com/lore-labs/lore-cli/internal/core/domain"
)

// LibraryService manages the document collection: ingest, listing and
// removal. Ingest is all-or-nothing; a document only becomes queryable
// once chunking, embedding and indexing have all succeeded.
type LibraryService interface {
	// Add extracts, chunks, embeds and indexes a document. Re-adding a
	// filename replaces its previous entries. Returns the stored
	// document record and the number of chunks created.
	Add(ctx context.Context, filename string, data []byte) (*AddResult, error)

	// List returns all indexed documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Remove deletes a document and all of its index entries.
	// Returns domain.ErrNotFound if the filename is not indexed.
	Remove(ctx context.Context, filename string) error

	// Clear removes every document from the collection. Returns the
	// number of documents removed.
	Clear(ctx context.Context) (int, error)
}

// AddResult reports the outcome of an ingest.
type AddResult struct {
	// Document is the stored record.
	Document domain.Document

	// ChunksCreated is the number of chunks indexed.
	ChunksCreated int
}
