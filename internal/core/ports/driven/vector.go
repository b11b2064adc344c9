package driven

import (
	"context"

	"github.com/lore-labs/lore-cli/internal/core/domain"
)

// VectorIndex stores chunk embeddings and answers nearest-neighbour
// queries by cosine similarity.
//
// Implementations normalise vectors internally: every stored vector and
// every query vector is scaled to unit length, so the dot product used
// during search is exactly cosine similarity. Entries are durable across
// process restarts.
type VectorIndex interface {
	// Upsert replaces all entries for documentID with the given chunks
	// and their embeddings, as a single atomic operation. Concurrent
	// searches observe either the old or the new set, never a mix.
	// chunks[i] pairs with embeddings[i].
	Upsert(ctx context.Context, documentID string, chunks []domain.Chunk, embeddings [][]float32) error

	// Delete removes all entries for documentID. Deleting an absent
	// document is a no-op, not an error.
	Delete(ctx context.Context, documentID string) error

	// Search returns up to topK entries nearest to the query vector,
	// in descending similarity order. Ties are broken by the chunk's
	// position within its document, lower position first. An empty
	// index yields an empty result, not an error.
	Search(ctx context.Context, query []float32, topK int, filter *SearchFilter) ([]domain.ScoredChunk, error)

	// Count returns the total number of stored entries.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// SearchFilter restricts a search to a subset of documents.
// A nil filter or empty Filenames matches everything.
type SearchFilter struct {
	// Filenames restricts results to these originating documents.
	Filenames []string
}
