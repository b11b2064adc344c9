package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		provider AIProvider
		want     bool
	}{
		{AIProviderOllama, true},
		{AIProviderOpenAI, true},
		{AIProvider("anthropic"), false},
		{AIProvider(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderOllama.IsLocal())
	assert.False(t, AIProviderOpenAI.IsLocal())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings *EmbeddingSettings
		want     bool
	}{
		{
			name:     "nil settings",
			settings: nil,
			want:     false,
		},
		{
			name:     "ollama needs no key",
			settings: &EmbeddingSettings{Provider: AIProviderOllama},
			want:     true,
		},
		{
			name:     "openai without key",
			settings: &EmbeddingSettings{Provider: AIProviderOpenAI},
			want:     false,
		},
		{
			name:     "openai with key",
			settings: &EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"},
			want:     true,
		},
		{
			name:     "unknown provider",
			settings: &EmbeddingSettings{Provider: "huggingface"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestChunkingSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{"valid", 500, 50, false},
		{"overlap equals size", 500, 500, true},
		{"overlap exceeds size", 100, 200, true},
		{"zero overlap", 500, 0, true},
		{"zero size", 0, 0, true},
		{"negative overlap", 500, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ChunkingSettings{Size: tt.size, Overlap: tt.overlap}.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetrievalSettings_ClampTopK(t *testing.T) {
	s := RetrievalSettings{TopK: 3, MaxTopK: 10}

	assert.Equal(t, 3, s.ClampTopK(0), "zero falls back to default")
	assert.Equal(t, 3, s.ClampTopK(-5), "negative falls back to default")
	assert.Equal(t, 1, s.ClampTopK(1))
	assert.Equal(t, 7, s.ClampTopK(7))
	assert.Equal(t, 10, s.ClampTopK(10))
	assert.Equal(t, 10, s.ClampTopK(50), "oversized request is clamped, not rejected")
}

func TestLibrarySettings_MaxFileSizeBytes(t *testing.T) {
	s := LibrarySettings{MaxFileSizeMB: 10}
	assert.Equal(t, int64(10*1024*1024), s.MaxFileSizeBytes())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.Chunking.Validate())
	assert.True(t, s.Embedding.IsConfigured())
	assert.True(t, s.LLM.IsConfigured())
	assert.Equal(t, 500, s.Chunking.Size)
	assert.Equal(t, 50, s.Chunking.Overlap)
	assert.Equal(t, 3, s.Retrieval.TopK)
	assert.Contains(t, s.Library.AllowedExtensions, ".pdf")
}
