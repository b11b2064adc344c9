// Package chunker splits extracted document text into overlapping
// fixed-size passages for embedding and retrieval.
package chunker

import (
	"github.com/google/uuid"

	"github.com/lore-labs/lore-cli/internal/core/domain"
)

// BoundaryLookback is how far the chunk end may be pulled back to land
// on a sentence or whitespace boundary instead of cutting mid-word.
const BoundaryLookback = 50

// Split divides text into chunks of cfg.Size characters with cfg.Overlap
// characters shared between neighbours.
//
// The window advances by a fixed stride of Size-Overlap characters, so
// chunk boundaries are deterministic: chunking the same text with the
// same configuration always yields the same spans. When a window end
// would cut a word, the end is pulled back to the nearest sentence or
// whitespace boundary within the lookback; the stride itself is never
// adjusted. The lookback never exceeds the overlap, so adjacent chunks
// always cover the text with no gap even after alignment. Text with no
// boundary at all (one unbroken token) still chunks at full windows.
//
// Offsets are character (rune) offsets into the extracted text. Empty
// text yields no chunks; text shorter than Size yields exactly one
// chunk holding the full text.
func Split(documentID, filename, text string, cfg domain.ChunkingSettings) ([]domain.Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	step := cfg.Size - cfg.Overlap

	lookback := BoundaryLookback
	if lookback > cfg.Overlap {
		lookback = cfg.Overlap
	}

	estimated := len(runes)/step + 1
	chunks := make([]domain.Chunk, 0, estimated)

	position := 0
	for start := 0; start < len(runes); start += step {
		end := start + cfg.Size
		last := false
		if end >= len(runes) {
			end = len(runes)
			last = true
		} else {
			end = alignEnd(runes, start, end, lookback)
		}

		chunks = append(chunks, domain.Chunk{
			ID:          uuid.New().String(),
			DocumentID:  documentID,
			Filename:    filename,
			Position:    position,
			StartOffset: start,
			EndOffset:   end,
			Text:        string(runes[start:end]),
		})
		position++

		if last {
			break
		}
	}

	return chunks, nil
}

// alignEnd pulls end back to just after the nearest sentence terminator
// or whitespace within lookback characters. Sentence boundaries win over
// plain whitespace. Returns end unchanged when no boundary is found.
func alignEnd(runes []rune, start, end, lookback int) int {
	limit := end - lookback
	if limit < start+1 {
		limit = start + 1
	}

	whitespaceAt := -1
	for i := end - 1; i >= limit; i-- {
		r := runes[i]
		if isSentenceEnd(r) {
			return i + 1
		}
		if whitespaceAt < 0 && isWhitespace(r) {
			whitespaceAt = i
		}
	}
	if whitespaceAt >= 0 {
		return whitespaceAt + 1
	}
	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '\n'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
