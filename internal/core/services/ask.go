package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
	"github.com/lore-labs/lore-cli/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// AskService answers questions about the indexed documents by chaining
// retrieval, context assembly and answer synthesis.
type AskService struct {
	retriever   *Retriever
	assembler   *Assembler
	synthesizer *Synthesizer
}

// NewAskService creates a new ask service.
func NewAskService(retriever *Retriever, assembler *Assembler, synthesizer *Synthesizer) *AskService {
	return &AskService{
		retriever:   retriever,
		assembler:   assembler,
		synthesizer: synthesizer,
	}
}

// Ask answers a natural-language question with source citations.
//
// Returns domain.ErrInvalidInput for a blank question and
// domain.ErrNoDocuments when nothing is indexed.
func (s *AskService) Ask(ctx context.Context, question string, opts driving.AskOptions) (*domain.Answer, error) {
	logger.Section("Ask")

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	logger.Debug("Question: %q", question)

	scored, err := s.retriever.Retrieve(ctx, question, opts.TopK)
	if err != nil {
		return nil, err
	}

	contextText, sources := s.assembler.Assemble(scored)
	logger.Debug("Assembled context: %d chars, %d sources", len(contextText), len(sources))

	text, err := s.synthesizer.Synthesize(ctx, question, contextText)
	if err != nil {
		return nil, err
	}

	logger.Info("Answer generated: %d chars, %d sources", len(text), len(sources))
	return &domain.Answer{
		Text:    text,
		Sources: sources,
	}, nil
}
