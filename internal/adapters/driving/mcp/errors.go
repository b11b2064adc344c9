// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants query the local document collection through the
// ask and library services.
package mcp

import "errors"

// ErrMissingAskService is returned when the ask service is not provided.
var ErrMissingAskService = errors.New("mcp: ask service is required")

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("mcp: library service is required")
