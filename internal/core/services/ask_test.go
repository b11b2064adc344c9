package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
	"github.com/lore-labs/lore-cli/internal/extractors"
)

// newTestPipeline wires the full ask pipeline over in-memory stores and
// deterministic stub providers.
func newTestPipeline(t *testing.T, llm *stubLLM) (*AskService, *LibraryService) {
	t.Helper()

	settings := domain.DefaultSettings()
	provider := newStubEmbedder(128)
	embedder := newTestEmbedder(t, provider, settings.Embedding.BatchSize)
	index := newMemoryIndex()
	docs := newMemoryDocStore()

	library := NewLibraryService(
		extractors.DefaultRegistry(),
		embedder,
		index,
		docs,
		settings.Chunking,
		settings.Library,
	)

	ask := NewAskService(
		NewRetriever(embedder, index, settings.Retrieval),
		NewAssembler(settings.Retrieval),
		NewSynthesizer(llm, nil, settings.LLM),
	)

	return ask, library
}

func TestAskService_BlankQuestion(t *testing.T) {
	ask, _ := newTestPipeline(t, &stubLLM{response: "unused"})

	for _, question := range []string{"", "   ", "\n\t"} {
		_, err := ask.Ask(context.Background(), question, driving.AskOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAskService_NoDocuments(t *testing.T) {
	ask, _ := newTestPipeline(t, &stubLLM{response: "unused"})

	_, err := ask.Ask(context.Background(), "anything at all?", driving.AskOptions{})

	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestAskService_EndToEnd(t *testing.T) {
	llm := &stubLLM{response: "The vault code is kept in the cellar [manual.txt#2]."}
	ask, library := newTestPipeline(t, llm)

	// Roughly 1200 characters of prose; the distinctive fact sits in
	// the final third so only the last chunks carry its words.
	filler := strings.Repeat("general procedures for daily operation are described elsewhere in this manual. ", 13)
	fact := "the vault code is kept in the cellar behind the wine rack. "
	text := filler + fact + "remember to rotate it quarterly."

	result, err := library.Add(context.Background(), "manual.txt", []byte(text))
	require.NoError(t, err)
	assert.Greater(t, result.ChunksCreated, 1)

	answer, err := ask.Ask(context.Background(), "where is the vault code kept?", driving.AskOptions{})
	require.NoError(t, err)

	assert.Equal(t, llm.response, answer.Text)
	require.NotEmpty(t, answer.Sources)
	assert.Equal(t, "manual.txt", answer.Sources[0].Filename)
	assert.Contains(t, answer.Sources[0].Excerpt, "vault")

	// The prompt the model saw must quote the retrieved passage with
	// its citation marker.
	assert.Contains(t, llm.lastPrompt, "[manual.txt#")
	assert.Contains(t, llm.lastPrompt, "vault code")
	assert.Contains(t, llm.lastPrompt, "where is the vault code kept?")
}

func TestAskService_TopKOverrideLimitsSources(t *testing.T) {
	llm := &stubLLM{response: "answer"}
	ask, library := newTestPipeline(t, llm)

	text := strings.Repeat("chapter one covers installation and setup of the appliance. ", 30)
	_, err := library.Add(context.Background(), "guide.txt", []byte(text))
	require.NoError(t, err)

	answer, err := ask.Ask(context.Background(), "how do I install the appliance?", driving.AskOptions{TopK: 1})
	require.NoError(t, err)

	// All chunks repeat the same sentence, so duplicates collapse; with
	// TopK 1 only a single passage can be retrieved regardless.
	assert.Len(t, answer.Sources, 1)
}
