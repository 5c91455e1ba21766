package commands

import (
	"fmt"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/external/yahoo"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/fetch"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/judgment"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/marketdata"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/pipeline"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/regime"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/scoring"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/selection"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/strategyconfig"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/config"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/httputil"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// app bundles the wired components every command starts from.
type app struct {
	cfg      *config.Config
	strategy *strategyconfig.Config
	log      *logger.Logger

	provider     marketdata.Provider
	batch        *fetch.Batch
	orchestrator *pipeline.Orchestrator
}

// bootstrap loads configuration and wires the pipeline. Every component
// shares one rate limiter and one concurrency cap.
func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	strategy, _, err := strategyconfig.Load(cfg.StrategyPath)
	if err != nil {
		return nil, fmt.Errorf("load strategy config: %w", err)
	}

	hash, err := strategyconfig.Hash(strategy)
	if err != nil {
		return nil, fmt.Errorf("hash strategy config: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"path":        cfg.StrategyPath,
		"config_hash": hash[:12],
	}).Info("Strategy config loaded")

	httpClient := httputil.New(log)
	provider := yahoo.NewClient(yahoo.Config{
		NewsBaseURL:    cfg.Yahoo.NewsBaseURL,
		RequestsPerSec: float64(cfg.Yahoo.RequestsPerSec),
	}, httpClient, log)

	limiter := fetch.NewRateLimiter(strategy.Fetch.RequestsPerWindow, strategy.Window())
	slots := fetch.NewSemaphore(strategy.Fetch.MaxConcurrent)
	executor := fetch.NewExecutor(limiter, slots, strategy.RetryConfig(), log)
	fetcher := fetch.NewFetcher(provider, executor, log)
	batch := fetch.NewBatch(fetcher, log)

	var judgments judgment.Source
	if cfg.Judgment.FilePath != "" {
		judgments = judgment.NewFileSource(cfg.Judgment.FilePath, log)
	}

	orchestrator := pipeline.NewOrchestrator(
		provider,
		batch,
		scoring.NewCompositeScorer(log),
		selection.NewSelector(log),
		regime.NewClassifier(log),
		judgments,
		strategy,
		log,
	)

	return &app{
		cfg:          cfg,
		strategy:     strategy,
		log:          log,
		provider:     provider,
		batch:        batch,
		orchestrator: orchestrator,
	}, nil
}
