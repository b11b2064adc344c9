package mcp

import (
	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask answers questions about the indexed documents.
	Ask driving.AskService

	// Library manages the document collection.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	return nil
}
