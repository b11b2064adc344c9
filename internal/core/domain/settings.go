package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider selects the embedding backend.
	Provider AIProvider

	// BaseURL is the provider endpoint (Ollama only).
	BaseURL string

	// Model is the embedding model name.
	Model string

	// APIKey authenticates cloud providers.
	APIKey string

	// Dimensions is the embedding vector size. Must match the model.
	Dimensions int

	// BatchSize caps how many texts go to the provider per call.
	BatchSize int

	// TimeoutSeconds bounds a single provider call.
	TimeoutSeconds int
}

// IsConfigured returns true if the settings name a usable provider.
func (s *EmbeddingSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds language-model provider configuration.
type LLMSettings struct {
	// Provider selects the LLM backend.
	Provider AIProvider

	// BaseURL is the provider endpoint (Ollama only).
	BaseURL string

	// Model is the LLM model name.
	Model string

	// APIKey authenticates cloud providers.
	APIKey string

	// TimeoutSeconds bounds a single generation call. Local models can
	// take tens of seconds on modest hardware.
	TimeoutSeconds int

	// MaxTokens caps completion length. Zero means provider default.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64
}

// IsConfigured returns true if the settings name a usable provider.
func (s *LLMSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// ChunkingSettings controls how document text is split into passages.
type ChunkingSettings struct {
	// Size is the chunk window in characters.
	Size int

	// Overlap is the number of characters shared by adjacent chunks.
	Overlap int
}

// Validate returns ErrInvalidInput unless 0 < Overlap < Size.
func (s ChunkingSettings) Validate() error {
	if s.Size <= 0 || s.Overlap <= 0 || s.Overlap >= s.Size {
		return ErrInvalidInput
	}
	return nil
}

// RetrievalSettings controls similarity search and context assembly.
type RetrievalSettings struct {
	// TopK is the default number of passages retrieved per question.
	TopK int

	// MaxTopK bounds per-request overrides; larger values are clamped.
	MaxTopK int

	// MaxContextChars is the prompt context budget in characters.
	MaxContextChars int

	// DedupThreshold is the word-overlap similarity above which two
	// retrieved passages are considered near-identical and collapsed.
	DedupThreshold float64
}

// ClampTopK maps a requested top-k into the configured range.
// Out-of-range values are clamped, not rejected; zero or negative
// requests fall back to the configured default.
func (s RetrievalSettings) ClampTopK(requested int) int {
	if requested <= 0 {
		return s.TopK
	}
	if requested > s.MaxTopK {
		return s.MaxTopK
	}
	return requested
}

// LibrarySettings controls document ingest and storage locations.
type LibrarySettings struct {
	// DataDir is where the index database lives.
	DataDir string

	// DocumentsDir is the directory watched for auto-ingest.
	DocumentsDir string

	// MaxFileSizeMB caps uploads.
	MaxFileSizeMB int

	// AllowedExtensions lists ingestable file types (with leading dot).
	AllowedExtensions []string
}

// MaxFileSizeBytes returns the upload cap in bytes.
func (s LibrarySettings) MaxFileSizeBytes() int64 {
	return int64(s.MaxFileSizeMB) * 1024 * 1024
}

// Settings aggregates all configuration for the application.
type Settings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Chunking  ChunkingSettings
	Retrieval RetrievalSettings
	Library   LibrarySettings
}

// DefaultSettings returns the built-in configuration used when no
// config file value overrides it.
func DefaultSettings() Settings {
	return Settings{
		Embedding: EmbeddingSettings{
			Provider:       AIProviderOllama,
			BaseURL:        "http://localhost:11434",
			Model:          "nomic-embed-text",
			Dimensions:     768,
			BatchSize:      32,
			TimeoutSeconds: 30,
		},
		LLM: LLMSettings{
			Provider:       AIProviderOllama,
			BaseURL:        "http://localhost:11434",
			Model:          "llama3.1:8b",
			TimeoutSeconds: 120,
			Temperature:    0.2,
		},
		Chunking: ChunkingSettings{
			Size:    500,
			Overlap: 50,
		},
		Retrieval: RetrievalSettings{
			TopK:            3,
			MaxTopK:         10,
			MaxContextChars: 4000,
			DedupThreshold:  0.9,
		},
		Library: LibrarySettings{
			MaxFileSizeMB:     10,
			AllowedExtensions: []string{".pdf", ".txt", ".md", ".docx"},
		},
	}
}
