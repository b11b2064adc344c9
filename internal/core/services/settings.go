package services

import (
	"fmt"
	"os"

	"github.com/lore-labs/lore-cli/internal/core/domain"
	"github.com/lore-labs/lore-cli/internal/core/ports/driven"
)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider  = "embedding.provider"
	keyEmbedModel     = "embedding.model"
	keyEmbedBaseURL   = "embedding.base_url"
	keyEmbedAPIKey    = "embedding.api_key"
	keyEmbedDims      = "embedding.dimensions"
	keyEmbedBatchSize = "embedding.batch_size"
	keyEmbedTimeout   = "embedding.timeout_seconds"

	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyLLMTimeout     = "llm.timeout_seconds"
	keyLLMMaxTokens   = "llm.max_tokens"
	keyLLMTemperature = "llm.temperature"

	keyChunkSize    = "chunking.size"
	keyChunkOverlap = "chunking.overlap"

	keyTopK            = "retrieval.top_k"
	keyMaxTopK         = "retrieval.max_top_k"
	keyMaxContextChars = "retrieval.max_context_chars"
	keyDedupThreshold  = "retrieval.dedup_threshold"

	keyDataDir       = "library.data_dir"
	keyDocumentsDir  = "library.documents_dir"
	keyMaxFileSizeMB = "library.max_file_size_mb"
	keyAllowedExts   = "library.allowed_extensions"
)

// Environment variables that override stored API keys.
const (
	envOpenAIAPIKey = "OPENAI_API_KEY"
)

// SettingsService resolves application settings by layering the config
// file over built-in defaults, with environment variables taking
// precedence for credentials.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get resolves the effective settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	settings.Embedding.Provider = s.getProvider(keyEmbedProvider, settings.Embedding.Provider)
	settings.Embedding.Model = s.getString(keyEmbedModel, settings.Embedding.Model)
	settings.Embedding.BaseURL = s.getString(keyEmbedBaseURL, settings.Embedding.BaseURL)
	settings.Embedding.APIKey = s.getAPIKey(keyEmbedAPIKey)
	settings.Embedding.Dimensions = s.getInt(keyEmbedDims, settings.Embedding.Dimensions)
	settings.Embedding.BatchSize = s.getInt(keyEmbedBatchSize, settings.Embedding.BatchSize)
	settings.Embedding.TimeoutSeconds = s.getInt(keyEmbedTimeout, settings.Embedding.TimeoutSeconds)

	settings.LLM.Provider = s.getProvider(keyLLMProvider, settings.LLM.Provider)
	settings.LLM.Model = s.getString(keyLLMModel, settings.LLM.Model)
	settings.LLM.BaseURL = s.getString(keyLLMBaseURL, settings.LLM.BaseURL)
	settings.LLM.APIKey = s.getAPIKey(keyLLMAPIKey)
	settings.LLM.TimeoutSeconds = s.getInt(keyLLMTimeout, settings.LLM.TimeoutSeconds)
	settings.LLM.MaxTokens = s.getInt(keyLLMMaxTokens, settings.LLM.MaxTokens)
	settings.LLM.Temperature = s.getFloat(keyLLMTemperature, settings.LLM.Temperature)

	settings.Chunking.Size = s.getInt(keyChunkSize, settings.Chunking.Size)
	settings.Chunking.Overlap = s.getInt(keyChunkOverlap, settings.Chunking.Overlap)
	if err := settings.Chunking.Validate(); err != nil {
		return nil, fmt.Errorf("chunking settings: %w", err)
	}

	settings.Retrieval.TopK = s.getInt(keyTopK, settings.Retrieval.TopK)
	settings.Retrieval.MaxTopK = s.getInt(keyMaxTopK, settings.Retrieval.MaxTopK)
	settings.Retrieval.MaxContextChars = s.getInt(keyMaxContextChars, settings.Retrieval.MaxContextChars)
	settings.Retrieval.DedupThreshold = s.getFloat(keyDedupThreshold, settings.Retrieval.DedupThreshold)

	settings.Library.DataDir = s.getString(keyDataDir, settings.Library.DataDir)
	settings.Library.DocumentsDir = s.getString(keyDocumentsDir, settings.Library.DocumentsDir)
	settings.Library.MaxFileSizeMB = s.getInt(keyMaxFileSizeMB, settings.Library.MaxFileSizeMB)
	if exts := s.configStore.GetStringSlice(keyAllowedExts); len(exts) > 0 {
		settings.Library.AllowedExtensions = exts
	}

	return &settings, nil
}

// getProvider reads a provider key, keeping the default for unknown values.
func (s *SettingsService) getProvider(key string, fallback domain.AIProvider) domain.AIProvider {
	raw := s.configStore.GetString(key)
	if raw == "" {
		return fallback
	}
	provider := domain.AIProvider(raw)
	if !provider.IsValid() {
		return fallback
	}
	return provider
}

// getAPIKey reads an API key, with the environment taking precedence
// over the config file.
func (s *SettingsService) getAPIKey(key string) string {
	if env := os.Getenv(envOpenAIAPIKey); env != "" {
		return env
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v != 0 {
		return v
	}
	return fallback
}

func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if v := s.configStore.GetFloat(key); v != 0 {
		return v
	}
	return fallback
}
