package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// CompositeScorer runs all eight factors over one stock and folds them into
// per-strategy composites. All eight scores are computed for every stock no
// matter which strategy is being weighted, so both models can be compared
// on the same underlying data.
type CompositeScorer struct {
	scorers map[string]Scorer
	logger  *logger.Logger
	now     func() time.Time
}

// NewCompositeScorer resolves the full factor set at construction.
func NewCompositeScorer(log *logger.Logger) *CompositeScorer {
	log = log.WithField("module", "scoring")

	scorers := map[string]Scorer{}
	for _, s := range []Scorer{
		NewPriceMomentumScorer(log),
		NewVolumeSurgeScorer(log),
		NewNewsSentimentScorer(log),
		NewRelativeValueScorer(log),
		NewLowVolatilityScorer(log),
		NewEarningsQualityScorer(log),
		NewAnalystRevisionScorer(log),
		NewShortInterestScorer(log),
	} {
		scorers[s.Name()] = s
	}

	return &CompositeScorer{
		scorers: scorers,
		logger:  log,
		now:     time.Now,
	}
}

// Score produces one strategy's composite for a base/extended record pair.
// The pair must describe the same symbol and the weight map must cover the
// strategy's exact factor set; either violation is a hard error and nothing
// is scored.
func (c *CompositeScorer) Score(base *contracts.StockRecord, ext *contracts.ExtendedStockRecord, strategy contracts.Strategy, weights contracts.StrategyWeights) (contracts.CompositeResult, error) {
	if base.Symbol != ext.Symbol {
		return contracts.CompositeResult{}, contracts.ValidationError{
			Field:   "symbol",
			Message: "base record " + base.Symbol + " does not match extended record " + ext.Symbol,
		}
	}

	required := FactorNames(strategy)
	if required == nil {
		return contracts.CompositeResult{}, contracts.ValidationError{
			Field:   "strategy",
			Message: "unknown strategy " + string(strategy),
		}
	}
	if err := weights.Validate(required); err != nil {
		return contracts.CompositeResult{}, err
	}

	return c.compose(ext, strategy, c.scoreAll(ext), weights), nil
}

// ScoreBoth produces both strategies' composites from one factor pass.
func (c *CompositeScorer) ScoreBoth(base *contracts.StockRecord, ext *contracts.ExtendedStockRecord, weights map[contracts.Strategy]contracts.StrategyWeights) (momentum, conservative contracts.CompositeResult, err error) {
	if base.Symbol != ext.Symbol {
		return momentum, conservative, contracts.ValidationError{
			Field:   "symbol",
			Message: "base record " + base.Symbol + " does not match extended record " + ext.Symbol,
		}
	}

	for _, strategy := range []contracts.Strategy{contracts.StrategyMomentum, contracts.StrategyConservative} {
		if err := weights[strategy].Validate(FactorNames(strategy)); err != nil {
			return momentum, conservative, err
		}
	}

	factors := c.scoreAll(ext)
	momentum = c.compose(ext, contracts.StrategyMomentum, factors, weights[contracts.StrategyMomentum])
	conservative = c.compose(ext, contracts.StrategyConservative, factors, weights[contracts.StrategyConservative])
	return momentum, conservative, nil
}

// scoreAll runs every registered factor once.
func (c *CompositeScorer) scoreAll(ext *contracts.ExtendedStockRecord) map[string]contracts.FactorScore {
	factors := make(map[string]contracts.FactorScore, len(c.scorers))
	for name, s := range c.scorers {
		factors[name] = s.Score(ext)
	}
	return factors
}

// compose folds the strategy's factor subset into a weighted composite.
// Half-away-from-zero rounding: a weighted 59.5 becomes 60.
func (c *CompositeScorer) compose(ext *contracts.ExtendedStockRecord, strategy contracts.Strategy, factors map[string]contracts.FactorScore, weights contracts.StrategyWeights) contracts.CompositeResult {
	names := FactorNames(strategy)

	weighted := 0.0
	for _, name := range names {
		weighted += float64(factors[name].Score) * weights[name]
	}

	result := contracts.CompositeResult{
		Symbol:      ext.Symbol,
		Strategy:    strategy,
		Factors:     factors,
		Composite:   int(math.Round(weighted)),
		Explanation: topExplanations(names, factors),
		Weights:     weights,
		CreatedAt:   c.now(),
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":    ext.Symbol,
		"strategy":  string(strategy),
		"composite": result.Composite,
	}).Debug("Composite computed")

	return result
}

// topExplanations joins the first two non-empty factor explanations in the
// strategy's priority order.
func topExplanations(names []string, factors map[string]contracts.FactorScore) string {
	parts := make([]string, 0, 2)
	for _, name := range names {
		if exp := factors[name].Explanation; exp != "" {
			parts = append(parts, exp)
			if len(parts) == 2 {
				break
			}
		}
	}
	return strings.Join(parts, " | ")
}
