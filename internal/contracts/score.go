package contracts

import (
	"fmt"
	"math"
	"time"
)

// Strategy identifies one of the two independent factor models.
type Strategy string

const (
	StrategyMomentum     Strategy = "momentum"
	StrategyConservative Strategy = "conservative"
)

// ValidationError is a fatal configuration or caller error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FactorScore is one signal's bounded score with its breakdown.
type FactorScore struct {
	Name        string             `json:"name"`
	Score       int                `json:"score"` // 0 ~ 100
	Components  map[string]float64 `json:"components"`
	Explanation string             `json:"explanation"`
}

// StrategyWeights maps factor name to weight for one strategy.
type StrategyWeights map[string]float64

// Sum returns the total weight.
func (w StrategyWeights) Sum() float64 {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	return sum
}

// Validate checks the weight map against a strategy's required key set.
// The sum must be 1.0 within ±0.01; every required key must be present;
// extra keys are tolerated.
func (w StrategyWeights) Validate(required []string) error {
	for _, key := range required {
		if _, ok := w[key]; !ok {
			return ValidationError{Field: "weights." + key, Message: "required factor weight missing"}
		}
	}

	sum := 0.0
	for _, key := range required {
		sum += w[key]
	}
	if math.Abs(sum-1.0) > 0.01 {
		return ValidationError{Field: "weights", Message: fmt.Sprintf("must sum to 1.0±0.01, got %.4f", sum)}
	}

	return nil
}

// CompositeResult is one symbol's scoring outcome under one strategy.
// It carries all eight factor scores from both models so strategies can be
// compared side by side. Built with Percentile 0; normalization derives a
// new value exactly once, after which the result is immutable.
type CompositeResult struct {
	Symbol      string                 `json:"symbol"`
	Strategy    Strategy               `json:"strategy"`
	Factors     map[string]FactorScore `json:"factors"`
	Composite   int                    `json:"composite"`
	Percentile  int                    `json:"percentile"` // 0 until normalized, then 1~99 or rank fallback
	Explanation string                 `json:"explanation"`
	Weights     StrategyWeights        `json:"weights"`
	CreatedAt   time.Time              `json:"created_at"`
}

// WithPercentile returns a copy with the percentile rank set.
func (r CompositeResult) WithPercentile(rank int) CompositeResult {
	r.Percentile = rank
	return r
}

// DualScoringResult is the combined outcome of one pipeline run.
type DualScoringResult struct {
	MomentumScores     []CompositeResult `json:"momentum_scores"`
	ConservativeScores []CompositeResult `json:"conservative_scores"`

	// Legacy threshold+rank picks, per strategy.
	MomentumPicks     []string `json:"momentum_picks"`
	ConservativePicks []string `json:"conservative_picks"`

	// Judgment-gated picks, per strategy. Empty when no judgments supplied.
	MomentumAIPicks     []string `json:"momentum_ai_picks"`
	ConservativeAIPicks []string `json:"conservative_ai_picks"`

	Market   MarketSnapshot `json:"market"`
	CutoffAt time.Time      `json:"cutoff_at"`
}
