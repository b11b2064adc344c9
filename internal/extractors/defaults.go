package extractors

import (
	"github.com/lore-labs/lore-cli/internal/extractors/docx"
	"github.com/lore-labs/lore-cli/internal/extractors/pdf"
	"github.com/lore-labs/lore-cli/internal/extractors/plaintext"
)

// DefaultRegistry returns a registry with all built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	return r
}
