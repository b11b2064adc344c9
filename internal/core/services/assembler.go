package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/logger"
)

// sourceExcerptLength caps the excerpt carried on each citation.
const sourceExcerptLength = 200

// Assembler packs retrieved passages into a bounded context string for
// the language model, with a citation per included passage.
type Assembler struct {
	settings domain.RetrievalSettings
}

// NewAssembler creates a new context assembler.
func NewAssembler(settings domain.RetrievalSettings) *Assembler {
	return &Assembler{settings: settings}
}

// Assemble builds the context block from scored passages, highest
// similarity first.
//
// Near-duplicate passages (word overlap at or above the configured
// threshold) are collapsed, keeping the higher-scored one. Passages are
// then packed whole into the character budget; a passage that does not
// fit is dropped entirely rather than split, and packing continues with
// the next one. If not even the best passage fits, it is truncated to
// the budget so the model always sees something.
//
// The returned sources describe exactly the passages that made it into
// the context, in context order.
func (a *Assembler) Assemble(scored []domain.ScoredChunk) (string, []domain.Source) {
	if len(scored) == 0 {
		return "", nil
	}

	kept := a.dedupe(scored)

	budget := a.settings.MaxContextChars
	var blocks []string
	var sources []domain.Source
	used := 0

	for _, sc := range kept {
		block := formatBlock(sc.Chunk)
		cost := len(block)
		if len(blocks) > 0 {
			cost += len(blockSeparator)
		}

		if used+cost > budget {
			logger.Debug("Dropping passage %s#%d: %d chars over budget",
				sc.Chunk.Filename, sc.Chunk.Position, used+cost-budget)
			continue
		}

		blocks = append(blocks, block)
		sources = append(sources, makeSource(sc))
		used += cost
	}

	// Nothing fit whole: truncate the best passage to the budget.
	if len(blocks) == 0 {
		best := kept[0]
		block := truncate(formatBlock(best.Chunk), budget)
		logger.Debug("No passage fit whole, truncating %s#%d to %d chars",
			best.Chunk.Filename, best.Chunk.Position, len(block))
		return block, []domain.Source{makeSource(best)}
	}

	return strings.Join(blocks, blockSeparator), sources
}

const blockSeparator = "\n\n"

// formatBlock renders one passage with its citation marker.
func formatBlock(c domain.Chunk) string {
	return fmt.Sprintf("[%s#%d] %s", c.Filename, c.Position, c.Text)
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// makeSource builds a citation for a passage.
func makeSource(sc domain.ScoredChunk) domain.Source {
	excerpt := truncate(sc.Chunk.Text, sourceExcerptLength)
	return domain.Source{
		Filename: sc.Chunk.Filename,
		Position: sc.Chunk.Position,
		Score:    sc.Score,
		Excerpt:  excerpt,
	}
}

// dedupe drops passages that near-duplicate an earlier, higher-scored
// one. Input is assumed sorted by descending score.
func (a *Assembler) dedupe(scored []domain.ScoredChunk) []domain.ScoredChunk {
	threshold := a.settings.DedupThreshold
	if threshold <= 0 || threshold > 1 {
		return scored
	}

	kept := make([]domain.ScoredChunk, 0, len(scored))
	keptWords := make([]map[string]struct{}, 0, len(scored))

	for _, sc := range scored {
		words := wordSet(sc.Chunk.Text)

		duplicate := false
		for _, existing := range keptWords {
			if jaccard(words, existing) >= threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			logger.Debug("Collapsing near-duplicate passage %s#%d",
				sc.Chunk.Filename, sc.Chunk.Position)
			continue
		}

		kept = append(kept, sc)
		keptWords = append(keptWords, words)
	}

	return kept
}

// wordSet lower-cases and splits text into its unique words.
func wordSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// jaccard computes intersection-over-union for two word sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
