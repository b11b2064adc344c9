package domain

import "time"

// Document represents an indexed document in the collection.
// Documents are identified by their filename, which is stable across
// re-uploads; re-adding a file with the same name replaces its chunks.
type Document struct {
	// ID is the unique identifier assigned at ingest time.
	ID string

	// Filename is the stable collection-level identifier (e.g. "notes.pdf").
	Filename string

	// SizeBytes is the size of the original file.
	SizeBytes int64

	// ChunkCount is the number of chunks produced at ingest time.
	ChunkCount int

	// CreatedAt is when the document was first indexed.
	CreatedAt time.Time

	// UpdatedAt is when the document was last re-indexed.
	UpdatedAt time.Time
}

// Chunk is a contiguous passage of a document's extracted text.
// Chunks are the unit of retrieval: each one is embedded and stored
// in the vector index, and citations point back to a chunk.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Filename is the originating document's filename, duplicated here so
	// citations can be built without re-reading the document record.
	Filename string

	// Position is the ordinal position within the document, starting at 0.
	Position int

	// StartOffset is the character offset of the chunk's first character
	// within the document's extracted text.
	StartOffset int

	// EndOffset is the character offset one past the chunk's last character.
	EndOffset int

	// Text is the chunk content.
	Text string
}
