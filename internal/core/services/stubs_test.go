package services

import (
	"context"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driven"
)

// stubEmbedder is a deterministic in-process embedding service.
// Each vector is a one-hot-ish encoding derived from word hashes, so
// texts sharing words score higher under cosine similarity.
type stubEmbedder struct {
	mu         sync.Mutex
	dims       int
	calls      int
	batchSizes []int
	failWith   error
}

func newStubEmbedder(dims int) *stubEmbedder {
	return &stubEmbedder{dims: dims}
}

func (s *stubEmbedder) embedOne(text string) []float32 {
	vec := make([]float32, s.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		vec[int(h.Sum32())%s.dims] += 1
	}
	return vec
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.calls++
	s.batchSizes = append(s.batchSizes, 1)
	return s.embedOne(text), nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.calls++
	s.batchSizes = append(s.batchSizes, len(texts))
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = s.embedOne(t)
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int              { return s.dims }
func (s *stubEmbedder) ModelName() string            { return "stub-embed" }
func (s *stubEmbedder) Ping(context.Context) error   { return nil }
func (s *stubEmbedder) Close() error                 { return nil }

// stubLLM returns a canned response and records the last prompt.
type stubLLM struct {
	mu         sync.Mutex
	response   string
	failWith   error
	lastPrompt string
	pingErr    error
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPrompt = prompt
	if s.failWith != nil {
		return "", s.failWith
	}
	return s.response, nil
}

func (s *stubLLM) ModelName() string          { return "stub-llm" }
func (s *stubLLM) Ping(context.Context) error { return s.pingErr }
func (s *stubLLM) Close() error               { return nil }

// memoryIndex is an in-memory VectorIndex with cosine scoring, mirroring
// the durable store's ordering rules.
type memoryIndex struct {
	mu      sync.Mutex
	entries map[string][]indexEntry // keyed by document ID
}

type indexEntry struct {
	chunk     domain.Chunk
	embedding []float32
}

func newMemoryIndex() *memoryIndex {
	return &memoryIndex{entries: make(map[string][]indexEntry)}
}

func (m *memoryIndex) Upsert(_ context.Context, documentID string, chunks []domain.Chunk, embeddings [][]float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]indexEntry, len(chunks))
	for i := range chunks {
		entries[i] = indexEntry{chunk: chunks[i], embedding: normalise32(embeddings[i])}
	}
	m.entries[documentID] = entries
	return nil
}

func (m *memoryIndex) Delete(_ context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, documentID)
	return nil
}

func (m *memoryIndex) Search(_ context.Context, query []float32, topK int, _ *driven.SearchFilter) ([]domain.ScoredChunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := normalise32(query)
	var scored []domain.ScoredChunk
	for _, entries := range m.entries {
		for _, e := range entries {
			var dot float64
			for i := range q {
				dot += float64(q[i]) * float64(e.embedding[i])
			}
			scored = append(scored, domain.ScoredChunk{Chunk: e.chunk, Score: dot})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Chunk.Filename != scored[j].Chunk.Filename {
			return scored[i].Chunk.Filename < scored[j].Chunk.Filename
		}
		return scored[i].Chunk.Position < scored[j].Chunk.Position
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (m *memoryIndex) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, entries := range m.entries {
		total += len(entries)
	}
	return total, nil
}

func (m *memoryIndex) Close() error { return nil }

func normalise32(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		out := make([]float32, len(v))
		copy(out, v)
		return out
	}
	inv := 1.0 / math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) * inv)
	}
	return out
}

// memoryDocStore is an in-memory DocumentStore keyed by filename.
type memoryDocStore struct {
	mu   sync.Mutex
	docs map[string]domain.Document
}

func newMemoryDocStore() *memoryDocStore {
	return &memoryDocStore{docs: make(map[string]domain.Document)}
}

func (m *memoryDocStore) SaveDocument(_ context.Context, doc domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.Filename] = doc
	return nil
}

func (m *memoryDocStore) GetDocument(_ context.Context, filename string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[filename]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *memoryDocStore) ListDocuments(context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}

func (m *memoryDocStore) DeleteDocument(_ context.Context, filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[filename]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, filename)
	return nil
}

// stubPromptStore serves a fixed template.
type stubPromptStore struct {
	template string
	err      error
}

func (s *stubPromptStore) Load(string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.template, nil
}

func (s *stubPromptStore) Reload() {}
