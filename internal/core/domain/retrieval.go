package domain

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	// Chunk is the retrieved passage.
	Chunk Chunk

	// Score is the cosine similarity to the query, in [-1, 1].
	Score float64
}

// Source is a citation attached to an answer. It references the chunk
// the cited passage came from and carries a short excerpt for display.
type Source struct {
	// Filename is the originating document.
	Filename string

	// Position is the cited chunk's position within the document.
	Position int

	// Score is the relevance score of the cited chunk.
	Score float64

	// Excerpt is a short preview of the cited passage.
	Excerpt string
}

// Answer is the result of a grounded question-answering request.
// Answers are ephemeral: computed per request, never persisted.
type Answer struct {
	// Text is the model's answer.
	Text string

	// Sources lists the passages the answer was grounded on, in
	// descending relevance order.
	Sources []Source
}
