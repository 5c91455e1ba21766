package contracts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyWeights_Validate(t *testing.T) {
	required := []string{"a", "b"}

	t.Run("exact sum accepted", func(t *testing.T) {
		w := StrategyWeights{"a": 0.6, "b": 0.4}
		assert.NoError(t, w.Validate(required))
	})

	t.Run("within tolerance accepted", func(t *testing.T) {
		w := StrategyWeights{"a": 0.6, "b": 0.409}
		assert.NoError(t, w.Validate(required))
	})

	t.Run("outside tolerance rejected", func(t *testing.T) {
		w := StrategyWeights{"a": 0.6, "b": 0.42}
		assert.Error(t, w.Validate(required))
	})

	t.Run("missing key rejected even if sum works", func(t *testing.T) {
		w := StrategyWeights{"a": 1.0}
		err := w.Validate(required)
		var verr ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "weights.b", verr.Field)
	})

	t.Run("extra keys ignored for the sum", func(t *testing.T) {
		w := StrategyWeights{"a": 0.6, "b": 0.4, "legacy": 3.0}
		assert.NoError(t, w.Validate(required))
	})
}

func TestStockRecord_Validate(t *testing.T) {
	ok := StockRecord{Symbol: "A", Prices: []float64{1, 2}, Volumes: []float64{10, 20}}
	assert.NoError(t, ok.Validate())

	misaligned := StockRecord{Symbol: "A", Prices: []float64{1, 2}, Volumes: []float64{10}}
	assert.Error(t, misaligned.Validate())

	// A missing volume series is degradation, not misalignment.
	noVolumes := StockRecord{Symbol: "A", Prices: []float64{1, 2}}
	assert.NoError(t, noVolumes.Validate())
}

func TestExtend_Defaults(t *testing.T) {
	base := StockRecord{
		Symbol: "AAPL",
		Prices: []float64{100, 104},
		Open:   102,
	}
	market := MarketSnapshot{VIX: 22, Regime: "normal", AsOf: time.Now()}

	ext := Extend(base, market)

	assert.Equal(t, 22.0, ext.VIX)
	assert.InDelta(t, (102.0-104.0)/104.0*100, ext.OpeningGapPct, 1e-9)
	assert.Zero(t, ext.EarningsSurprisePct)
	assert.Equal(t, 50.0, ext.AnalystRevision)
	assert.Zero(t, ext.ShortInterestPct)
}

func TestExtend_NoOpenMeansNoGap(t *testing.T) {
	ext := Extend(StockRecord{Symbol: "A", Prices: []float64{100}}, MarketSnapshot{})
	assert.Zero(t, ext.OpeningGapPct)
}

func TestJudgment_Validate(t *testing.T) {
	assert.NoError(t, Judgment{Symbol: "A", Decision: DecisionBuy, Confidence: 0.5}.Validate())
	assert.NoError(t, Judgment{Symbol: "A", Decision: DecisionAvoid, Confidence: 1}.Validate())
	assert.Error(t, Judgment{Symbol: "A", Decision: "strong_buy", Confidence: 0.5}.Validate())
	assert.Error(t, Judgment{Symbol: "A", Decision: DecisionBuy, Confidence: 1.2}.Validate())
	assert.Error(t, Judgment{Symbol: "A", Decision: DecisionBuy, Confidence: -0.1}.Validate())
}

func TestCompositeResult_WithPercentile(t *testing.T) {
	original := CompositeResult{Symbol: "A", Composite: 70}
	ranked := original.WithPercentile(88)

	assert.Equal(t, 88, ranked.Percentile)
	assert.Zero(t, original.Percentile, "copies, never mutates")
}
