package services

import (
	"context"
	"time"

	"github.com/lore-labs/lore-cli/internal/core/ports/driven"
	"github.com/lore-labs/lore-cli/internal/core/ports/driving"
	"github.com/lore-labs/lore-cli/internal/logger"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

// probeTimeout bounds each provider ping during a health check.
const probeTimeout = 5 * time.Second

// HealthService reports reachability of the AI providers and the size
// of the indexed collection.
type HealthService struct {
	embedder driven.EmbeddingService
	llm      driven.LLMService
	index    driven.VectorIndex
	docs     driven.DocumentStore
}

// NewHealthService creates a new health service.
func NewHealthService(
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	index driven.VectorIndex,
	docs driven.DocumentStore,
) *HealthService {
	return &HealthService{
		embedder: embedder,
		llm:      llm,
		index:    index,
		docs:     docs,
	}
}

// Check probes collaborators and returns a snapshot. Probe failures are
// recorded in the report rather than returned; a down provider is a
// finding, not an error.
func (s *HealthService) Check(ctx context.Context) *driving.HealthReport {
	report := &driving.HealthReport{}

	if s.embedder != nil {
		report.EmbeddingModel = s.embedder.ModelName()
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		if err := s.embedder.Ping(probeCtx); err != nil {
			logger.Debug("Embedder ping failed: %v", err)
		} else {
			report.EmbedderReachable = true
		}
		cancel()
	}

	if s.llm != nil {
		report.LLMModel = s.llm.ModelName()
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		if err := s.llm.Ping(probeCtx); err != nil {
			logger.Debug("LLM ping failed: %v", err)
		} else {
			report.ModelReachable = true
		}
		cancel()
	}

	if s.docs != nil {
		if docs, err := s.docs.ListDocuments(ctx); err == nil {
			report.Documents = len(docs)
		} else {
			logger.Debug("Document listing failed: %v", err)
		}
	}

	if s.index != nil {
		if count, err := s.index.Count(ctx); err == nil {
			report.Chunks = count
		} else {
			logger.Debug("Index count failed: %v", err)
		}
	}

	return report
}
