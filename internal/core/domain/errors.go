package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors; every failure the
// pipeline can produce maps to exactly one of these sentinels so the
// boundary layer can react without inspecting message text.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDocuments indicates a query was made against an empty index.
	// This is an expected outcome, not a fault; callers short-circuit
	// before any language-model call is made.
	ErrNoDocuments = errors.New("no documents indexed")

	// ErrEmbeddingUnavailable indicates the embedding provider cannot be
	// reached or the model failed to load. Fatal for both the ingest and
	// ask paths; there is no keyword-matching fallback.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrModelUnavailable indicates the language-model provider is
	// unreachable or timed out.
	ErrModelUnavailable = errors.New("language model unavailable")

	// ErrModelEmptyResponse indicates the language model returned an
	// empty completion after a successful call.
	ErrModelEmptyResponse = errors.New("language model returned empty response")

	// ErrUnsupportedFormat indicates a file type no extractor handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtraction indicates a file could not be read or parsed.
	ErrExtraction = errors.New("text extraction failed")

	// ErrFileTooLarge indicates an upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrIndexCorruption indicates the vector index returned a malformed
	// entry. Reported to the caller, never allowed to crash the process.
	ErrIndexCorruption = errors.New("vector index entry corrupt")
)
