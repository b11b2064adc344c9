package services

import (
	"context"
	"fmt"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driven"
	"github.com/lore-labs/lore-cli/internal/logger"
)

// Retriever finds the indexed passages most similar to a question.
type Retriever struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	settings domain.RetrievalSettings
}

// NewRetriever creates a new retriever.
func NewRetriever(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	settings domain.RetrievalSettings,
) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		settings: settings,
	}
}

// Retrieve embeds the question and returns up to topK nearest passages
// in descending similarity order. A topK of zero uses the configured
// default; out-of-range values are clamped, not rejected.
//
// Returns domain.ErrNoDocuments when the index is empty. The emptiness
// check runs before the question is embedded, so an empty collection
// never costs a provider call.
func (r *Retriever) Retrieve(ctx context.Context, question string, topK int) ([]domain.ScoredChunk, error) {
	count, err := r.index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count index entries: %w", err)
	}
	if count == 0 {
		return nil, domain.ErrNoDocuments
	}

	k := r.settings.ClampTopK(topK)
	logger.Debug("Retrieving top %d of %d indexed chunks", k, count)

	query, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	scored, err := r.index.Search(ctx, query, k, nil)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	logger.Debug("Retrieved %d passages", len(scored))
	return scored, nil
}
