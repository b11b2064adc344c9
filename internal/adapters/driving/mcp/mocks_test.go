package mcp

import (
	"context"
	"time"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
)

// mockAskService returns a canned answer and records the last call.
type mockAskService struct {
	answer       *domain.Answer
	err          error
	lastQuestion string
	lastTopK     int
}

func (m *mockAskService) Ask(_ context.Context, question string, opts driving.AskOptions) (*domain.Answer, error) {
	m.lastQuestion = question
	m.lastTopK = opts.TopK
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

// mockLibraryService serves a fixed document list.
type mockLibraryService struct {
	docs []domain.Document
	err  error
}

func (m *mockLibraryService) Add(context.Context, string, []byte) (*driving.AddResult, error) {
	return nil, nil
}

func (m *mockLibraryService) List(context.Context) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

func (m *mockLibraryService) Remove(context.Context, string) error {
	return nil
}

func (m *mockLibraryService) Clear(context.Context) (int, error) {
	removed := len(m.docs)
	m.docs = nil
	return removed, nil
}

func testDocument(filename string) domain.Document {
	return domain.Document{
		ID:         "doc-" + filename,
		Filename:   filename,
		SizeBytes:  1024,
		ChunkCount: 3,
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
