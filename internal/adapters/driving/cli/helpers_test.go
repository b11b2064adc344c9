package cli

import (
	"context"
	"time"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
)

// fakeAskService returns canned answers.
type fakeAskService struct {
	answer *domain.Answer
	err    error
}

func (f *fakeAskService) Ask(context.Context, string, driving.AskOptions) (*domain.Answer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

// fakeLibraryService keeps documents in memory.
type fakeLibraryService struct {
	docs      map[string]domain.Document
	addErr    error
	removeErr error
}

func newFakeLibrary() *fakeLibraryService {
	return &fakeLibraryService{docs: make(map[string]domain.Document)}
}

func (f *fakeLibraryService) Add(_ context.Context, filename string, data []byte) (*driving.AddResult, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	doc := domain.Document{
		ID:         "id-" + filename,
		Filename:   filename,
		SizeBytes:  int64(len(data)),
		ChunkCount: 2,
		UpdatedAt:  time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC),
	}
	f.docs[filename] = doc
	return &driving.AddResult{Document: doc, ChunksCreated: 2}, nil
}

func (f *fakeLibraryService) List(context.Context) ([]domain.Document, error) {
	out := make([]domain.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (f *fakeLibraryService) Remove(_ context.Context, filename string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.docs[filename]; !ok {
		return domain.ErrNotFound
	}
	delete(f.docs, filename)
	return nil
}

func (f *fakeLibraryService) Clear(context.Context) (int, error) {
	removed := len(f.docs)
	f.docs = make(map[string]domain.Document)
	return removed, nil
}

// fakeHealthService returns a fixed report.
type fakeHealthService struct {
	report *driving.HealthReport
}

func (f *fakeHealthService) Check(context.Context) *driving.HealthReport {
	return f.report
}

// setupTestServices installs fakes and returns a cleanup restoring the
// previous services.
func setupTestServices() func() {
	prevAsk, prevLibrary, prevHealth := askService, libraryService, healthService

	askService = &fakeAskService{
		answer: &domain.Answer{
			Text: "Grounded answer.",
			Sources: []domain.Source{
				{Filename: "manual.txt", Position: 1, Score: 0.87, Excerpt: "excerpt"},
			},
		},
	}
	libraryService = newFakeLibrary()
	healthService = &fakeHealthService{
		report: &driving.HealthReport{
			EmbedderReachable: true,
			ModelReachable:    true,
			EmbeddingModel:    "nomic-embed-text",
			LLMModel:          "llama3.1:8b",
			Documents:         1,
			Chunks:            4,
		},
	}

	return func() {
		askService, libraryService, healthService = prevAsk, prevLibrary, prevHealth
	}
}
