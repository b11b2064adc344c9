// Package plaintext extracts text from plain text and markdown files.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/lore-labs/lore-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".md"}
}

// Extract returns the file content as UTF-8 text.
// Invalid byte sequences are replaced rather than rejected, matching
// how editors treat mixed-encoding text files.
func (e *Extractor) Extract(_ context.Context, _ string, data []byte) (string, error) {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return text, nil
}
