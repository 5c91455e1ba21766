package scoring

import (
	"math"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// Factor names. The per-strategy order below is also the fixed priority
// order used when picking explanations for a composite.
const (
	FactorPriceMomentum   = "price_momentum"
	FactorVolumeSurge     = "volume_surge"
	FactorNewsSentiment   = "news_sentiment"
	FactorRelativeValue   = "relative_value"
	FactorLowVolatility   = "low_volatility"
	FactorEarningsQuality = "earnings_quality"
	FactorAnalystRevision = "analyst_revision"
	FactorShortInterest   = "short_interest"
)

// FactorNames returns the required factor key set for a strategy, in
// explanation priority order.
func FactorNames(strategy contracts.Strategy) []string {
	switch strategy {
	case contracts.StrategyMomentum:
		return []string{FactorPriceMomentum, FactorVolumeSurge, FactorNewsSentiment, FactorRelativeValue}
	case contracts.StrategyConservative:
		return []string{FactorLowVolatility, FactorEarningsQuality, FactorAnalystRevision, FactorShortInterest}
	default:
		return nil
	}
}

// Scorer is the one capability every factor implements: take stock data,
// return a bounded score with components and reasoning. Variants are
// resolved at construction, not via reflection.
type Scorer interface {
	Name() string
	Score(rec *contracts.ExtendedStockRecord) contracts.FactorScore
}

// clampScore bounds a raw score to [0, 100]. Out-of-range raw scores are a
// soft data-quality issue: clamped, with a warning.
func clampScore(log *logger.Logger, factor, symbol string, raw float64) int {
	clamped := math.Max(0, math.Min(100, raw))
	if clamped != raw {
		log.WithFields(map[string]interface{}{
			"factor": factor,
			"symbol": symbol,
			"raw":    raw,
			"score":  clamped,
		}).Warn("Factor score out of range, clamped")
	}
	return int(math.Round(clamped))
}

// returnOver computes the simple return over the trailing n observations
// of a chronological price series.
func returnOver(prices []float64, n int) float64 {
	if len(prices) < n+1 {
		return 0
	}
	past := prices[len(prices)-1-n]
	if past == 0 {
		return 0
	}
	return (prices[len(prices)-1] - past) / past
}

// average returns the arithmetic mean of vs, or 0 for an empty slice.
func average(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
