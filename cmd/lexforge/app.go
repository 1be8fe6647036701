package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lexforge/lexforge/internal/config"
	"github.com/lexforge/lexforge/internal/events"
	"github.com/lexforge/lexforge/internal/ingest"
	"github.com/lexforge/lexforge/internal/llm"
	"github.com/lexforge/lexforge/internal/seed"
	"github.com/lexforge/lexforge/internal/store"
	"github.com/lexforge/lexforge/internal/store/mongo"
	"github.com/lexforge/lexforge/internal/store/postgres"
	"github.com/lexforge/lexforge/internal/store/sqlite"
)

// app wires the pieces one command run needs. Commands build only what they
// use: generate commands need a provider, store commands only the store.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	pipeline  *ingest.Pipeline
	registry  *llm.Registry
	docs      store.DocumentStore
	publisher *events.Publisher

	resilient *llm.ResilientProvider
	broker    *events.Connection
}

func newApp() (*app, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		pipeline: ingest.NewPipeline(logger),
	}, nil
}

// initProviders registers the configured LLM providers. seedMode forces the
// offline seed provider regardless of configuration.
func (a *app) initProviders(seedMode bool) error {
	a.registry = llm.NewRegistry()

	seedProvider, err := seed.NewProvider()
	if err != nil {
		return fmt.Errorf("load seed provider: %w", err)
	}
	a.registry.Register("seed", seedProvider)

	if seedMode {
		return a.registry.SetDefault("seed")
	}

	cfg := a.cfg
	a.registry.Register("gemini", llm.NewGeminiProvider(llm.GeminiConfig{
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
	}))
	a.registry.Register("claude", llm.NewClaudeProvider(llm.ClaudeConfig{
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
	}))
	a.registry.Register("openai", llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
	}))
	a.registry.Register("ollama", llm.NewOllamaProvider(llm.OllamaConfig{
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
	}))

	return a.registry.SetDefault(cfg.LLMProvider)
}

// provider returns the default provider wrapped with the resilience stack.
// Retry and circuit breaking live here, at the transport edge: the ingestion
// pipeline downstream never retries.
func (a *app) provider() (llm.Provider, error) {
	p, err := a.registry.Default()
	if err != nil {
		return nil, err
	}
	if p.Name() == "seed" {
		return p, nil
	}
	if a.resilient == nil {
		a.resilient = llm.NewResilientProvider(p, llm.DefaultResilientConfig())
	}
	return a.resilient, nil
}

// initStore opens the configured store backend.
func (a *app) initStore(ctx context.Context) error {
	switch a.cfg.StoreBackend {
	case "sqlite":
		db, err := sqlite.Open(a.cfg.SQLitePath)
		if err != nil {
			return err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return err
		}
		a.docs = sqlite.NewDocumentStore(db)
	case "postgres":
		docs, err := postgres.Open(ctx, a.cfg.PostgresURL)
		if err != nil {
			return err
		}
		a.docs = docs
	case "mongo":
		docs, err := mongo.Open(ctx, a.cfg.MongoURI, a.cfg.MongoDatabase)
		if err != nil {
			return err
		}
		a.docs = docs
	default:
		return fmt.Errorf("unknown store backend %q", a.cfg.StoreBackend)
	}
	return nil
}

// initPublisher connects to the broker when one is configured. A broker that
// is configured but unreachable degrades to disabled with a warning: content
// generation must not depend on the event fabric.
func (a *app) initPublisher() {
	if a.cfg.RabbitMQURL == "" {
		a.publisher = events.NewPublisher(nil)
		return
	}
	conn, err := events.NewConnection(a.cfg.RabbitMQURL)
	if err != nil {
		a.logger.Warn("event broker unavailable, continuing without events", "error", err)
		a.publisher = events.NewPublisher(nil)
		return
	}
	a.broker = conn
	a.publisher = events.NewPublisher(conn)
}

func (a *app) close() {
	if a.resilient != nil {
		a.resilient.Close()
	}
	if a.broker != nil {
		a.broker.Close()
	}
	if a.docs != nil {
		a.docs.Close()
	}
}
