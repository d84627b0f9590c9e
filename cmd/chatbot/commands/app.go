// ABOUTME: Shared wiring for CLI commands: config, storage and pipeline setup
// ABOUTME: Builds the retrieval/generation stack once per command invocation
package commands

import (
	"fmt"
	"log"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jacob/career-chatbot/internal/charm"
	"github.com/jacob/career-chatbot/internal/config"
	"github.com/jacob/career-chatbot/internal/core"
	"github.com/jacob/career-chatbot/internal/index"
	"github.com/jacob/career-chatbot/internal/llm"
	"github.com/jacob/career-chatbot/internal/storage"
	"github.com/jacob/career-chatbot/internal/storage/charmkv"
	"github.com/jacob/career-chatbot/internal/storage/sqlite"
)

// app bundles everything a command might need.
type app struct {
	cfg          *config.Config
	store        storage.Store
	index        *index.EmbeddingIndex
	client       *llm.Client
	chunker      *core.Chunker
	ingestor     *core.Ingestor
	retriever    *core.Retriever
	orchestrator *core.Orchestrator
}

// openStore selects the storage backend from config.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	case config.BackendSQLite:
		path := sqlite.DefaultDBPath()
		if cfg.DataDir != "" {
			path = filepath.Join(cfg.DataDir, "corpus.db")
		}
		return sqlite.OpenStore(path)
	case config.BackendCharm:
		return charmkv.Open(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// newApp loads config and wires the full pipeline.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	idx, err := index.New(store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("initializing embedding index: %w", err)
	}

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
		Timeout:        cfg.Timeout,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	if verbose {
		client.SetObserver(func(r llm.CallRecord) {
			log.Printf("[LLM] %s attempts=%d latency=%s err=%v", r.Operation, r.Attempts, r.Duration, r.Err)
		})
	}

	chunker, err := core.NewChunker(cfg.ChunkMaxChars, cfg.ChunkOverlap)
	if err != nil {
		store.Close()
		return nil, err
	}
	ingestor, err := core.NewIngestor(chunker, client, store, idx)
	if err != nil {
		store.Close()
		return nil, err
	}
	retriever, err := core.NewRetriever(client, idx, store, core.RetrieverConfig{
		TopK:            cfg.TopK,
		MinScore:        cfg.MinScore,
		AdjacentOverlap: cfg.AdjacentOverlap,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	assembler, err := core.NewPromptAssembler(cfg.ContextBudgetChars)
	if err != nil {
		store.Close()
		return nil, err
	}

	generator := llm.PromptGenerator{
		Client: client,
		Options: llm.GenerationOptions{
			Temperature:   cfg.Temperature,
			MaxTokens:     cfg.MaxTokens,
			StopSequences: cfg.StopSequences,
		},
	}
	orchestrator, err := core.NewOrchestrator(retriever, assembler, generator, cfg.Persona())
	if err != nil {
		store.Close()
		return nil, err
	}
	if verbose {
		orchestrator.SetEventHook(func(e core.TurnEvent) {
			log.Printf("[Turn] session=%s state=%s retrieved=%d latency=%s err=%v",
				e.SessionID, e.FinalState, e.RetrievedCount, e.Latency, e.Err)
		})
	}

	return &app{
		cfg:          cfg,
		store:        store,
		index:        idx,
		client:       client,
		chunker:      chunker,
		ingestor:     ingestor,
		retriever:    retriever,
		orchestrator: orchestrator,
	}, nil
}

// Close releases the storage backend.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.Printf("Warning: closing storage: %v", err)
	}
}
