package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driven"
	"github.com/lore-labs/lore-cli/internal/logger"
)

// Ensure BatchingEmbedder implements the interface.
var _ driven.EmbeddingService = (*BatchingEmbedder)(nil)

// Embedder defaults.
const (
	DefaultEmbedBatchSize = 32
	DefaultEmbedCacheSize = 2048

	// DefaultEmbedRequestsPerSecond throttles provider calls. Local
	// Ollama tolerates more, but cloud providers rate-limit hard.
	DefaultEmbedRequestsPerSecond = 10
)

// BatchingEmbedderConfig configures the embedding pipeline wrapper.
type BatchingEmbedderConfig struct {
	// BatchSize caps how many texts go to the provider per call.
	BatchSize int

	// CacheSize is the number of embeddings kept in the LRU cache.
	CacheSize int

	// RequestsPerSecond throttles provider calls. Zero uses the default.
	RequestsPerSecond float64
}

// BatchingEmbedder wraps a provider EmbeddingService with batching, an
// LRU cache keyed by text content, and rate limiting. Identical texts
// are embedded once; repeated queries hit the cache.
//
// Provider failures surface as domain.ErrEmbeddingUnavailable so
// callers can distinguish infrastructure trouble from bad input.
type BatchingEmbedder struct {
	provider  driven.EmbeddingService
	batchSize int
	cache     *lru.Cache[string, []float32]
	limiter   *rate.Limiter
}

// NewBatchingEmbedder creates a batching, caching wrapper around provider.
func NewBatchingEmbedder(provider driven.EmbeddingService, cfg BatchingEmbedderConfig) (*BatchingEmbedder, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultEmbedBatchSize
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultEmbedCacheSize
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultEmbedRequestsPerSecond
	}

	cache, err := lru.New[string, []float32](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}

	return &BatchingEmbedder{
		provider:  provider,
		batchSize: cfg.BatchSize,
		cache:     cache,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

// cacheKey hashes the text so arbitrarily large passages make cheap keys.
func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Embed generates a vector embedding for the given text.
func (e *BatchingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts, preserving input
// order. Cached texts are served locally; the rest go to the provider
// in batches of at most BatchSize.
func (e *BatchingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, len(texts))

	// Collect cache misses, remembering where each came from.
	var missTexts []string
	var missIndexes []int
	for i, text := range texts {
		if vec, ok := e.cache.Get(cacheKey(text)); ok {
			results[i] = vec
			continue
		}
		missTexts = append(missTexts, text)
		missIndexes = append(missIndexes, i)
	}

	if len(missTexts) > 0 {
		logger.Debug("Embedding %d texts (%d cached)", len(missTexts), len(texts)-len(missTexts))
	}

	for start := 0; start < len(missTexts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(missTexts) {
			end = len(missTexts)
		}
		batch := missTexts[start:end]

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}

		vectors, err := e.provider.EmbedBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("%w: provider returned %d embeddings for %d texts",
				domain.ErrEmbeddingUnavailable, len(vectors), len(batch))
		}

		for j, vec := range vectors {
			idx := missIndexes[start+j]
			results[idx] = vec
			e.cache.Add(cacheKey(batch[j]), vec)
		}
	}

	return results, nil
}

// Dimensions returns the embedding vector size of the underlying provider.
func (e *BatchingEmbedder) Dimensions() int {
	return e.provider.Dimensions()
}

// ModelName returns the underlying provider's model name.
func (e *BatchingEmbedder) ModelName() string {
	return e.provider.ModelName()
}

// Ping validates the underlying provider is reachable.
func (e *BatchingEmbedder) Ping(ctx context.Context) error {
	return e.provider.Ping(ctx)
}

// Close releases the underlying provider's resources.
func (e *BatchingEmbedder) Close() error {
	return e.provider.Close()
}
