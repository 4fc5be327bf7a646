// Package app wires configuration, storage, the skill graph, the ledger and
// the recommendation service into one handle for the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/config"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ledger"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/llm"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/recommend"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/store"
)

// Options holds collaborators that tests replace.
type Options struct {
	Logger *slog.Logger

	// Provider replaces the configured LLM provider when the llm reasoner
	// is selected.
	Provider llm.Provider
}

// App is a fully wired skillmap instance.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Store     *store.Store
	Graph     *skillgraph.Graph
	Ledger    *ledger.Ledger
	Recommend *recommend.Service
}

// New opens the store and builds every service from cfg.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	graph, err := BuildGraph(cfg.Graph, logger)
	if err != nil {
		return nil, err
	}

	dbPath := cfg.DB
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create DB dir: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	events := st.EventRepo()
	led := ledger.New(ctx, graph,
		ledger.SeedLearners(graph, cfg.Ledger.ExpandSteps),
		st.LearnerRepo(),
		ledger.Options{Events: events, Logger: logger},
	)

	reasoner := newReasoner(ctx, cfg.Recommend, events, logger, opts.Provider)
	svc := recommend.NewService(graph, led,
		recommend.WithMaxResults(cfg.Recommend.MaxResults),
		recommend.WithReasoner(reasoner),
		recommend.WithLogger(logger),
	)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Store:     st,
		Graph:     graph,
		Ledger:    led,
		Recommend: svc,
	}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.Store.Close()
}

// LoadDataset reads the configured skills file, or returns the built-in
// seed data when no file is set.
func LoadDataset(cfg config.GraphConfig) (skillgraph.Dataset, error) {
	if cfg.SkillsFile != "" {
		return skillgraph.LoadFile(cfg.SkillsFile)
	}
	return skillgraph.Dataset{
		Skills:      skillgraph.SeedSkills(),
		Connections: skillgraph.SeedConnections(),
	}, nil
}

// BuildGraph builds the configured dataset. Entries dropped by a
// permissive build are logged.
func BuildGraph(cfg config.GraphConfig, logger *slog.Logger) (*skillgraph.Graph, error) {
	ds, err := LoadDataset(cfg)
	if err != nil {
		return nil, err
	}

	graph, err := ds.Build(skillgraph.BuildOptions{Strict: cfg.Strict})
	if err != nil {
		return nil, err
	}
	for _, d := range graph.Dropped() {
		logger.Warn("dropped skill graph entry", "entry", d)
	}
	return graph, nil
}

func newReasoner(ctx context.Context, cfg config.RecommendConfig, events store.EventRepo, logger *slog.Logger, provider llm.Provider) recommend.Reasoner {
	template := recommend.NewTemplateReasoner(nil)
	if cfg.Reasoner != config.ReasonerLLM {
		return template
	}

	llmCfg := llm.ConfigFromEnv()
	if provider == nil {
		err := llmCfg.Validate()
		if err == nil {
			provider, err = llm.NewProvider(ctx, llmCfg, events, logger)
		}
		if err != nil {
			logger.Warn("LLM reasoner unavailable, using templates", "error", err)
			return template
		}
	}
	return &recommend.LLMReasoner{
		Provider: provider,
		Fallback: template,
		Logger:   logger,
		Timeout:  llmCfg.Timeout,
	}
}
