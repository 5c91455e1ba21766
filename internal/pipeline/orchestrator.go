package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/fetch"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/judgment"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/marketdata"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/regime"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/scoring"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/selection"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/strategyconfig"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// vixSymbol is the index quote used to stamp the market regime.
const vixSymbol = "^VIX"

// Orchestrator coordinates one dual-strategy run end to end: regime
// classification, concurrent acquisition, dual scoring with independent
// normalization, and both selection passes.
type Orchestrator struct {
	provider   marketdata.Provider
	batch      *fetch.Batch
	scorer     *scoring.CompositeScorer
	selector   *selection.Selector
	classifier *regime.Classifier
	judgments  judgment.Source // nil skips judgment selection
	cfg        *strategyconfig.Config

	logger *logger.Logger
	now    func() time.Time
}

// RunOptions tunes one run. Caller overrides take precedence over the
// regime's own adjustments, which take precedence over the config.
type RunOptions struct {
	Overrides regime.Overrides
	Progress  fetch.ProgressFunc
}

// NewOrchestrator wires the pipeline components together.
func NewOrchestrator(
	provider marketdata.Provider,
	batch *fetch.Batch,
	scorer *scoring.CompositeScorer,
	selector *selection.Selector,
	classifier *regime.Classifier,
	judgments judgment.Source,
	cfg *strategyconfig.Config,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		provider:   provider,
		batch:      batch,
		scorer:     scorer,
		selector:   selector,
		classifier: classifier,
		judgments:  judgments,
		cfg:        cfg,
		logger:     log.WithField("module", "pipeline"),
		now:        time.Now,
	}
}

// Run executes the full pipeline over symbols. Individual symbol failures
// are isolated into the outcome; only invalid configuration or a cohort
// with zero usable records fails the run.
func (o *Orchestrator) Run(ctx context.Context, symbols []string, opts RunOptions) (*contracts.DualScoringResult, error) {
	start := o.now()

	snapshot := o.classifier.Snapshot(o.fetchVIX(ctx))
	overrides := mergeOverrides(o.classifier.Overrides(snapshot), opts.Overrides)

	weights := map[contracts.Strategy]contracts.StrategyWeights{}
	criteria := map[contracts.Strategy]selection.Criteria{}
	for _, strategy := range []contracts.Strategy{contracts.StrategyMomentum, contracts.StrategyConservative} {
		w, c := o.effective(strategy, overrides)
		if err := w.Validate(scoring.FactorNames(strategy)); err != nil {
			return nil, fmt.Errorf("%s weights: %w", strategy, err)
		}
		weights[strategy] = w
		criteria[strategy] = c
	}

	outcome := o.batch.FetchAll(ctx, symbols, snapshot, opts.Progress)
	if len(outcome.Successes) == 0 {
		return nil, fmt.Errorf("no usable records for %d symbols", len(symbols))
	}

	var momentum, conservative []contracts.CompositeResult
	for _, stock := range outcome.Successes {
		ext := stock.Extended
		if ext == nil {
			synthesized := contracts.Extend(stock.Base, snapshot)
			ext = &synthesized
		}

		m, c, err := o.scorer.ScoreBoth(&stock.Base, ext, weights)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", stock.Symbol, err)
		}
		momentum = append(momentum, m)
		conservative = append(conservative, c)
	}

	// Each strategy's cohort is normalized against itself only.
	momentum = scoring.Normalize(momentum)
	conservative = scoring.Normalize(conservative)

	result := &contracts.DualScoringResult{
		MomentumScores:     momentum,
		ConservativeScores: conservative,
		MomentumPicks:      o.selector.Select(momentum, criteria[contracts.StrategyMomentum]),
		ConservativePicks:  o.selector.Select(conservative, criteria[contracts.StrategyConservative]),
		Market:             snapshot,
		CutoffAt:           start,
	}

	o.applyJudgments(ctx, result, criteria)

	o.logger.WithFields(map[string]interface{}{
		"symbols":            len(symbols),
		"scored":             len(outcome.Successes),
		"failed":             len(outcome.Failures),
		"regime":             snapshot.Regime,
		"momentum_picks":     len(result.MomentumPicks),
		"conservative_picks": len(result.ConservativePicks),
		"duration":           time.Since(start),
	}).Info("Pipeline run completed")

	return result, nil
}

// fetchVIX reads the regime index quote; an unavailable quote degrades to a
// mid-range reading instead of failing the run.
func (o *Orchestrator) fetchVIX(ctx context.Context) float64 {
	quote, err := o.provider.Quote(ctx, vixSymbol)
	if err != nil || quote.Price <= 0 {
		o.logger.WithError(err).Warn("VIX quote unavailable, assuming normal regime")
		return 20
	}
	return quote.Price
}

// applyJudgments runs the judgment-gated selection pass when a source is
// configured. A failing source degrades to empty AI pick lists; the rule
// picks above stand on their own.
func (o *Orchestrator) applyJudgments(ctx context.Context, result *contracts.DualScoringResult, criteria map[contracts.Strategy]selection.Criteria) {
	if o.judgments == nil {
		return
	}

	judged, err := o.judgments.Judgments(ctx)
	if err != nil {
		o.logger.WithError(err).Error("Judgment source failed, skipping AI picks")
		return
	}
	if len(judged) == 0 {
		return
	}

	minConf := o.cfg.Judgment.MinConfidence
	result.MomentumAIPicks = o.selector.SelectWithJudgments(result.MomentumScores, judged, criteria[contracts.StrategyMomentum], minConf)
	result.ConservativeAIPicks = o.selector.SelectWithJudgments(result.ConservativeScores, judged, criteria[contracts.StrategyConservative], minConf)
}

// effective resolves one strategy's weights and criteria after overrides.
func (o *Orchestrator) effective(strategy contracts.Strategy, overrides regime.Overrides) (contracts.StrategyWeights, selection.Criteria) {
	w := o.cfg.StrategyWeights(strategy)
	c := o.cfg.Criteria(strategy)

	ov, ok := overrides[strategy]
	if !ok {
		return w, c
	}

	if ov.Weights != nil {
		w = ov.Weights
	}
	if ov.MinScore != nil {
		c.MinScore = *ov.MinScore
	}
	if ov.MaxPicks != nil {
		c.MaxPicks = *ov.MaxPicks
	}
	return w, c
}

// mergeOverrides layers caller overrides on top of regime overrides,
// field by field.
func mergeOverrides(base, caller regime.Overrides) regime.Overrides {
	merged := regime.Overrides{}
	for strategy, ov := range base {
		merged[strategy] = ov
	}
	for strategy, ov := range caller {
		m := merged[strategy]
		if ov.MinScore != nil {
			m.MinScore = ov.MinScore
		}
		if ov.MaxPicks != nil {
			m.MaxPicks = ov.MaxPicks
		}
		if ov.Weights != nil {
			m.Weights = ov.Weights
		}
		merged[strategy] = m
	}
	return merged
}
