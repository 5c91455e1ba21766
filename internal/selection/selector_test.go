package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

func cohort() []contracts.CompositeResult {
	return []contracts.CompositeResult{
		{Symbol: "AAPL", Composite: 82, Percentile: 93},
		{Symbol: "MSFT", Composite: 75, Percentile: 64},
		{Symbol: "GOOGL", Composite: 40, Percentile: 5},
		{Symbol: "AMZN", Composite: 68, Percentile: 42},
		{Symbol: "TSLA", Composite: 75, Percentile: 64},
	}
}

func TestSelect_ThresholdAndRank(t *testing.T) {
	selector := NewSelector(logger.NewNop())

	picks := selector.Select(cohort(), Criteria{MinScore: 50, MaxPicks: 3})

	// MSFT before TSLA: equal ranks break ties by symbol.
	assert.Equal(t, []string{"AAPL", "MSFT", "TSLA"}, picks)
}

func TestSelect_MinScoreExcludes(t *testing.T) {
	selector := NewSelector(logger.NewNop())

	picks := selector.Select(cohort(), Criteria{MinScore: 50, MaxPicks: 10})

	assert.NotContains(t, picks, "GOOGL", "composite 40 sits under the 50 threshold")
	assert.Len(t, picks, 4)
}

func TestSelect_ThresholdIsInclusive(t *testing.T) {
	selector := NewSelector(logger.NewNop())

	picks := selector.Select([]contracts.CompositeResult{{Symbol: "X", Composite: 50}}, Criteria{MinScore: 50, MaxPicks: 5})

	assert.Equal(t, []string{"X"}, picks)
}

func TestSelect_ZeroMaxPicksAlwaysEmpty(t *testing.T) {
	selector := NewSelector(logger.NewNop())

	picks := selector.Select(cohort(), Criteria{MinScore: 0, MaxPicks: 0})

	assert.Empty(t, picks)
	assert.NotNil(t, picks)
}

func TestSelectWithJudgments_OrdersByConfidence(t *testing.T) {
	selector := NewSelector(logger.NewNop())

	results := []contracts.CompositeResult{
		{Symbol: "GOOGL", Composite: 70},
		{Symbol: "AAPL", Composite: 60},
		{Symbol: "MSFT", Composite: 80},
		{Symbol: "TSLA", Composite: 90},
		{Symbol: "NFLX", Composite: 85},
	}
	judgments := map[string]contracts.Judgment{
		"AAPL":  {Symbol: "AAPL", Decision: contracts.DecisionBuy, Confidence: 0.9},
		"MSFT":  {Symbol: "MSFT", Decision: contracts.DecisionBuy, Confidence: 0.8},
		"GOOGL": {Symbol: "GOOGL", Decision: contracts.DecisionBuy, Confidence: 0.6},
		"TSLA":  {Symbol: "TSLA", Decision: contracts.DecisionHold, Confidence: 0.95},
		"NFLX":  {Symbol: "NFLX", Decision: contracts.DecisionBuy, Confidence: 0.4},
	}

	picks := selector.SelectWithJudgments(results, judgments, Criteria{MinScore: 50, MaxPicks: 5}, 0.5)

	// Judgment confidence orders the list; composites only gate entry.
	assert.Equal(t, []string{"AAPL", "MSFT", "GOOGL"}, picks)
}

func TestSelectWithJudgments_ScoreGateStillApplies(t *testing.T) {
	selector := NewSelector(logger.NewNop())

	results := []contracts.CompositeResult{{Symbol: "AAPL", Composite: 30}}
	judgments := map[string]contracts.Judgment{
		"AAPL": {Symbol: "AAPL", Decision: contracts.DecisionBuy, Confidence: 0.99},
	}

	picks := selector.SelectWithJudgments(results, judgments, Criteria{MinScore: 50, MaxPicks: 5}, 0.5)

	assert.Empty(t, picks, "a confident buy cannot bypass the score threshold")
}

func TestSelectWithJudgments_MissingJudgmentSkipsSymbol(t *testing.T) {
	selector := NewSelector(logger.NewNop())

	results := []contracts.CompositeResult{
		{Symbol: "AAPL", Composite: 90},
		{Symbol: "MSFT", Composite: 85},
	}
	judgments := map[string]contracts.Judgment{
		"MSFT": {Symbol: "MSFT", Decision: contracts.DecisionBuy, Confidence: 0.7},
	}

	picks := selector.SelectWithJudgments(results, judgments, Criteria{MinScore: 50, MaxPicks: 5}, 0.5)

	assert.Equal(t, []string{"MSFT"}, picks)
}

func TestSelectWithJudgments_MaxPicksCuts(t *testing.T) {
	selector := NewSelector(logger.NewNop())

	results := []contracts.CompositeResult{
		{Symbol: "AAPL", Composite: 90},
		{Symbol: "MSFT", Composite: 85},
		{Symbol: "GOOGL", Composite: 80},
	}
	judgments := map[string]contracts.Judgment{
		"AAPL":  {Symbol: "AAPL", Decision: contracts.DecisionBuy, Confidence: 0.6},
		"MSFT":  {Symbol: "MSFT", Decision: contracts.DecisionBuy, Confidence: 0.9},
		"GOOGL": {Symbol: "GOOGL", Decision: contracts.DecisionBuy, Confidence: 0.8},
	}

	picks := selector.SelectWithJudgments(results, judgments, Criteria{MinScore: 50, MaxPicks: 2}, 0.5)

	assert.Equal(t, []string{"MSFT", "GOOGL"}, picks)
}
