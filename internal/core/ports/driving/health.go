package driving

import "context"

// HealthService reports the status of the pipeline's collaborators.
type HealthService interface {
	// Check probes the embedding and language-model providers and
	// counts indexed content. Probe failures are reported in the
	// result, not returned as errors.
	Check(ctx context.Context) *HealthReport
}

// HealthReport is a point-in-time status snapshot.
type HealthReport struct {
	// EmbedderReachable is true if the embedding provider answered a ping.
	EmbedderReachable bool

	// ModelReachable is true if the LLM provider answered a ping.
	ModelReachable bool

	// EmbeddingModel is the configured embedding model name.
	EmbeddingModel string

	// LLMModel is the configured language model name.
	LLMModel string

	// Documents is the number of indexed documents.
	Documents int

	// Chunks is the number of indexed chunks.
	Chunks int
}

// Healthy returns true when both providers are reachable.
func (r *HealthReport) Healthy() bool {
	return r.EmbedderReachable && r.ModelReachable
}
