package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driven"
	"github.com/lore-labs/lore-cli/internal/logger"
)

// defaultAnswerPrompt is the fallback template when no PromptStore is
// configured. The placeholders are context first, question second.
const defaultAnswerPrompt = `You are a careful assistant that answers questions using ONLY the provided context passages.

Rules:
- Answer using only information found in the context below.
- If the context does not contain the answer, say "I don't know based on the provided documents."
- Do not invent facts or draw on outside knowledge.
- Keep the answer concise.

Context:
%s

Question: %s

Answer:`

// Synthesizer turns assembled context and a question into a grounded
// answer via the language model.
type Synthesizer struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
	settings    domain.LLMSettings
}

// NewSynthesizer creates a new answer synthesizer.
// The promptStore parameter is optional (can be nil).
func NewSynthesizer(llm driven.LLMService, promptStore driven.PromptStore, settings domain.LLMSettings) *Synthesizer {
	return &Synthesizer{
		llm:         llm,
		promptStore: promptStore,
		settings:    settings,
	}
}

// Synthesize generates an answer to question grounded in contextText.
//
// Provider failures surface as domain.ErrModelUnavailable. A response
// that is empty after trimming surfaces as domain.ErrModelEmptyResponse;
// an empty completion is a provider fault, never a valid answer.
func (s *Synthesizer) Synthesize(ctx context.Context, question, contextText string) (string, error) {
	template := s.loadPrompt()
	prompt := fmt.Sprintf(template, contextText, question)

	logger.Debug("Synthesizing answer: prompt %d chars, model %s", len(prompt), s.llm.ModelName())

	result, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   s.settings.MaxTokens,
		Temperature: s.settings.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}

	answer := strings.TrimSpace(result)
	if answer == "" {
		return "", domain.ErrModelEmptyResponse
	}

	return answer, nil
}

// loadPrompt loads the answer template, falling back to the embedded
// default if no store is set or the load fails.
func (s *Synthesizer) loadPrompt() string {
	if s.promptStore == nil {
		return defaultAnswerPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptAnswer)
	if err != nil {
		logger.Warn("Prompt load failed, using built-in default: %v", err)
		return defaultAnswerPrompt
	}
	return prompt
}
