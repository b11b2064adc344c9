package driving

import (
	"context"

	"github.com/lore-labs/lore-cli/internal/core/domain"
)

// AskService answers natural-language questions about the indexed
// document collection.
type AskService interface {
	// Ask retrieves relevant passages, assembles a bounded context and
	// synthesises a grounded answer with source citations.
	//
	// Returns domain.ErrNoDocuments when the index is empty, before any
	// language-model call is made.
	Ask(ctx context.Context, question string, opts AskOptions) (*domain.Answer, error)
}

// AskOptions configures a single ask request.
type AskOptions struct {
	// TopK overrides the configured number of retrieved passages.
	// Zero means use the default; out-of-range values are clamped.
	TopK int
}
