package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/lore-labs/lore-cli/internal/adapters/driven/ai"
	"github.com/lore-labs/lore-cli/internal/adapters/driven/config/file"
	"github.com/lore-labs/lore-cli/internal/adapters/driven/index/sqlite"
	"github.com/lore-labs/lore-cli/internal/adapters/driving/cli"
	"github.com/lore-labs/lore-cli/internal/core/services"
	"github.com/lore-labs/lore-cli/internal/extractors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Pick up OPENAI_API_KEY and friends from a local .env, if present.
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settings, err := services.NewSettingsService(configStore).Get()
	if err != nil {
		return fmt.Errorf("resolving settings: %w", err)
	}

	provider, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}
	defer provider.Close()

	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		return fmt.Errorf("creating LLM service: %w", err)
	}
	defer llm.Close()

	embedder, err := services.NewBatchingEmbedder(provider, services.BatchingEmbedderConfig{
		BatchSize: settings.Embedding.BatchSize,
	})
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	store, err := sqlite.NewStore(settings.Library.DataDir, settings.Embedding.Dimensions)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer store.Close()

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	retriever := services.NewRetriever(embedder, store, settings.Retrieval)
	assembler := services.NewAssembler(settings.Retrieval)
	synthesizer := services.NewSynthesizer(llm, prompts, settings.LLM)

	return cli.Execute(cli.Dependencies{
		Ask:     services.NewAskService(retriever, assembler, synthesizer),
		Library: services.NewLibraryService(extractors.DefaultRegistry(), embedder, store, store, settings.Chunking, settings.Library),
		Health:  services.NewHealthService(embedder, llm, store, store),

		DocumentsDir: settings.Library.DocumentsDir,
	})
}
