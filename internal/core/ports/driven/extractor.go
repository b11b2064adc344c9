package driven

import "context"

// Extractor converts raw file bytes of a particular format into plain
// UTF-8 text, ready for chunking.
type Extractor interface {
	// Extensions returns the file extensions this extractor handles,
	// lower-case with a leading dot (e.g. ".pdf").
	Extensions() []string

	// Extract returns the plain text content of the file.
	// Returns domain.ErrExtraction (wrapped) when the file cannot be parsed.
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}
