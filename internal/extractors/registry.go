package extractors

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driven"
)

// Registry maps file extensions to extractors.
type Registry struct {
	mu         sync.RWMutex
	byExt      map[string]driven.Extractor
	extensions []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]driven.Extractor),
	}
}

// Register adds an extractor for each of its declared extensions.
// Later registrations win on conflict.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range e.Extensions() {
		ext = strings.ToLower(ext)
		if _, exists := r.byExt[ext]; !exists {
			r.extensions = append(r.extensions, ext)
		}
		r.byExt[ext] = e
	}
}

// ForFilename returns the extractor handling the file's extension.
// Returns domain.ErrUnsupportedFormat when no extractor matches.
func (r *Registry) ForFilename(filename string) (driven.Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byExt[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFormat
	}
	return e, nil
}

// Extensions returns all registered extensions in registration order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.extensions))
	copy(out, r.extensions)
	return out
}
