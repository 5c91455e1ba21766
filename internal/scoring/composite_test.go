package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

func momentumWeights() contracts.StrategyWeights {
	return contracts.StrategyWeights{
		FactorPriceMomentum: 0.35,
		FactorVolumeSurge:   0.25,
		FactorNewsSentiment: 0.25,
		FactorRelativeValue: 0.15,
	}
}

func conservativeWeights() contracts.StrategyWeights {
	return contracts.StrategyWeights{
		FactorLowVolatility:   0.35,
		FactorEarningsQuality: 0.30,
		FactorAnalystRevision: 0.20,
		FactorShortInterest:   0.15,
	}
}

func bothWeights() map[contracts.Strategy]contracts.StrategyWeights {
	return map[contracts.Strategy]contracts.StrategyWeights{
		contracts.StrategyMomentum:     momentumWeights(),
		contracts.StrategyConservative: conservativeWeights(),
	}
}

func testRecord(symbol string) (*contracts.StockRecord, *contracts.ExtendedStockRecord) {
	prices := make([]float64, 70)
	volumes := make([]float64, 70)
	for i := range prices {
		prices[i] = 100 + float64(i)*0.5
		volumes[i] = 1_000_000
	}

	base := &contracts.StockRecord{
		Symbol:        symbol,
		Prices:        prices,
		Volumes:       volumes,
		Open:          prices[len(prices)-1],
		PER:           18,
		PBR:           2.5,
		SectorPER:     22,
		NewsCount7D:   6,
		NewsSentiment: 0.4,
	}

	ext := contracts.Extend(*base, contracts.MarketSnapshot{VIX: 18, Regime: "normal"})
	return base, &ext
}

func TestCompositeScorer_ScoreBothComputesAllEightFactors(t *testing.T) {
	scorer := NewCompositeScorer(logger.NewNop())
	base, ext := testRecord("AAPL")

	momentum, conservative, err := scorer.ScoreBoth(base, ext, bothWeights())
	require.NoError(t, err)

	// Both results carry the full factor set, whatever the strategy.
	for _, result := range []contracts.CompositeResult{momentum, conservative} {
		assert.Len(t, result.Factors, 8)
		for name, factor := range result.Factors {
			assert.Equal(t, name, factor.Name)
			assert.GreaterOrEqual(t, factor.Score, 0)
			assert.LessOrEqual(t, factor.Score, 100)
		}
	}

	assert.Equal(t, contracts.StrategyMomentum, momentum.Strategy)
	assert.Equal(t, contracts.StrategyConservative, conservative.Strategy)
	assert.Equal(t, "AAPL", momentum.Symbol)
	assert.Zero(t, momentum.Percentile, "percentile unset before normalization")
}

func TestCompositeScorer_SymbolMismatchIsHardError(t *testing.T) {
	scorer := NewCompositeScorer(logger.NewNop())
	base, _ := testRecord("AAPL")
	_, ext := testRecord("MSFT")

	_, _, err := scorer.ScoreBoth(base, ext, bothWeights())
	var verr contracts.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "symbol", verr.Field)

	_, err = scorer.Score(base, ext, contracts.StrategyMomentum, momentumWeights())
	assert.ErrorAs(t, err, &verr)
}

func TestCompositeScorer_WeightValidation(t *testing.T) {
	scorer := NewCompositeScorer(logger.NewNop())
	base, ext := testRecord("AAPL")

	t.Run("missing required key rejected", func(t *testing.T) {
		weights := momentumWeights()
		delete(weights, FactorRelativeValue)
		_, err := scorer.Score(base, ext, contracts.StrategyMomentum, weights)
		var verr contracts.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("sum outside tolerance rejected", func(t *testing.T) {
		weights := momentumWeights()
		weights[FactorPriceMomentum] = 0.50
		_, err := scorer.Score(base, ext, contracts.StrategyMomentum, weights)
		require.Error(t, err)
	})

	t.Run("sum within tolerance accepted", func(t *testing.T) {
		weights := momentumWeights()
		weights[FactorPriceMomentum] = 0.355 // sum 1.005
		_, err := scorer.Score(base, ext, contracts.StrategyMomentum, weights)
		require.NoError(t, err)
	})

	t.Run("extra keys tolerated", func(t *testing.T) {
		weights := momentumWeights()
		weights["something_else"] = 0.8
		_, err := scorer.Score(base, ext, contracts.StrategyMomentum, weights)
		require.NoError(t, err)
	})

	t.Run("unknown strategy rejected", func(t *testing.T) {
		_, err := scorer.Score(base, ext, contracts.Strategy("aggressive"), momentumWeights())
		require.Error(t, err)
	})
}

func TestCompose_RoundsHalfAwayFromZero(t *testing.T) {
	scorer := NewCompositeScorer(logger.NewNop())
	_, ext := testRecord("AAPL")

	factors := map[string]contracts.FactorScore{
		FactorPriceMomentum: {Name: FactorPriceMomentum, Score: 60},
		FactorVolumeSurge:   {Name: FactorVolumeSurge, Score: 59},
		FactorNewsSentiment: {Name: FactorNewsSentiment, Score: 60},
		FactorRelativeValue: {Name: FactorRelativeValue, Score: 59},
	}
	weights := contracts.StrategyWeights{
		FactorPriceMomentum: 0.25,
		FactorVolumeSurge:   0.25,
		FactorNewsSentiment: 0.25,
		FactorRelativeValue: 0.25,
	}

	result := scorer.compose(ext, contracts.StrategyMomentum, factors, weights)
	assert.Equal(t, 60, result.Composite, "59.5 rounds up, not to even")
}

func TestCompose_ExplanationTakesTopTwoInPriorityOrder(t *testing.T) {
	scorer := NewCompositeScorer(logger.NewNop())
	_, ext := testRecord("AAPL")

	factors := map[string]contracts.FactorScore{
		FactorPriceMomentum: {Name: FactorPriceMomentum, Score: 80},
		FactorVolumeSurge:   {Name: FactorVolumeSurge, Score: 70, Explanation: "volume doubled"},
		FactorNewsSentiment: {Name: FactorNewsSentiment, Score: 60, Explanation: "positive coverage"},
		FactorRelativeValue: {Name: FactorRelativeValue, Score: 50, Explanation: "cheap vs sector"},
	}

	result := scorer.compose(ext, contracts.StrategyMomentum, factors, momentumWeights())
	assert.Equal(t, "volume doubled | positive coverage", result.Explanation,
		"empty explanations are skipped, priority order kept")
}

func TestClampScore(t *testing.T) {
	log := logger.NewNop()
	assert.Equal(t, 0, clampScore(log, "f", "S", -12))
	assert.Equal(t, 100, clampScore(log, "f", "S", 140))
	assert.Equal(t, 73, clampScore(log, "f", "S", 73.4))
}
