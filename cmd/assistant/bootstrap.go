package main

import (
	"context"
	"fmt"
	"os"

	"finance-assistant/internal/assistant"
	"finance-assistant/internal/auth"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/llm"
	"finance-assistant/internal/llm/llmobs"
	"finance-assistant/internal/llm/noop"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/market"
	"finance-assistant/internal/market/marketobs"
	"finance-assistant/internal/news"
	"finance-assistant/internal/news/newsobs"
	"finance-assistant/internal/prompt"
	"finance-assistant/internal/session"
	"finance-assistant/internal/store"
	"finance-assistant/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem loads secrets and initializes logger and tracer
func initializeSystem(envFile string) error {
	// A missing env file is fine when the variables come from the environment
	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "No env file loaded from %s: %v\n", envFile, err)
	}

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// initializeNews returns the headline source wrapped with observability
func initializeNews(ctx context.Context, cfg *store.Config) (interfaces.NewsFetcher, error) {
	fetcher, err := news.New(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "News source ready", "provider", cfg.News.Provider, "source", fetcher.Name())
	return newsobs.Wrap(fetcher), nil
}

// initializeMarket returns the price-history source wrapped with observability
func initializeMarket(ctx context.Context, cfg *store.Config) (interfaces.MarketData, error) {
	source, err := market.New(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Market data source ready", "provider", cfg.Market.Provider, "period", cfg.Market.Period)
	return marketobs.Wrap(source), nil
}

// initializeCompleter returns the LLM completer wrapped with observability
func initializeCompleter(ctx context.Context, cfg *store.Config) interfaces.Completer {
	completer := llm.New(cfg)
	if _, ok := completer.(*noop.NoopCompleter); ok {
		logger.Warn(ctx, "No LLM provider configured - using Noop completer", "provider", cfg.LLM.Provider)
	}
	return llmobs.Wrap(completer)
}

// initializeAssistant wires fetchers, composer and completer
func initializeAssistant(ctx context.Context, cfg *store.Config) (*assistant.Assistant, error) {
	newsFetcher, err := initializeNews(ctx, cfg)
	if err != nil {
		return nil, err
	}
	marketData, err := initializeMarket(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return assistant.New(
		newsFetcher,
		marketData,
		prompt.NewComposer(cfg),
		initializeCompleter(ctx, cfg),
		assistant.WithPeriod(cfg.Market.Period),
	), nil
}

// initializeCredentials opens the credential database
func initializeCredentials(ctx context.Context, cfg *store.Config) (*auth.SQLStore, error) {
	credentials, err := auth.OpenSQLStore(ctx, cfg.Auth.Driver, cfg.Auth.DSN)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to open credential store", err, "driver", cfg.Auth.Driver)
		return nil, err
	}
	logger.Info(ctx, "Credential store ready", "driver", cfg.Auth.Driver)
	return credentials, nil
}

// initializeSessions returns the configured session store
func initializeSessions(ctx context.Context, cfg *store.Config) (interfaces.SessionStore, error) {
	sessions, err := session.New(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to open session store", err, "store", cfg.Session.Store)
		return nil, err
	}
	if cfg.Session.Store == "memory" {
		logger.Warn(ctx, "Using in-memory sessions - they are lost on restart")
	}
	return sessions, nil
}
