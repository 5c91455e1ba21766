package strategyconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
)

const validYAML = `
meta:
  strategy_id: ai-pick-daily
  version: 1

strategies:
  momentum:
    weights:
      price_momentum: 0.35
      volume_surge: 0.25
      news_sentiment: 0.25
      relative_value: 0.15
    min_score: 60
    max_picks: 5
  conservative:
    weights:
      low_volatility: 0.35
      earnings_quality: 0.30
      analyst_revision: 0.20
      short_interest: 0.15
    min_score: 55
    max_picks: 5

judgment:
  min_confidence: 0.6

fetch:
  requests_per_window: 5
  window_seconds: 1
  max_concurrent: 4
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, raw, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	assert.Equal(t, "ai-pick-daily", cfg.Meta.StrategyID)
	assert.Equal(t, 0.6, cfg.Judgment.MinConfidence)
	assert.Equal(t, 60, cfg.Strategies["momentum"].MinScore)

	// Omitted fetch knobs get defaults.
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, 500, cfg.Fetch.BaseDelayMs)
	assert.Equal(t, 10000, cfg.Fetch.AttemptTimeoutMs)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	_, _, err := Load(writeConfig(t, validYAML+"\nunknwon_field: true\n"))
	require.Error(t, err, "KnownFields must reject typos")
}

func TestLoad_BadWeightSumRejected(t *testing.T) {
	bad := `
meta:
  strategy_id: ai-pick-daily
  version: 1
strategies:
  momentum:
    weights:
      price_momentum: 0.50
      volume_surge: 0.25
      news_sentiment: 0.25
      relative_value: 0.15
    min_score: 60
    max_picks: 5
  conservative:
    weights:
      low_volatility: 0.35
      earnings_quality: 0.30
      analyst_revision: 0.20
      short_interest: 0.15
    min_score: 55
    max_picks: 5
`
	_, _, err := Load(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum")
}

func TestLoad_MissingStrategyRejected(t *testing.T) {
	bad := `
meta:
  strategy_id: ai-pick-daily
  version: 1
strategies:
  momentum:
    weights:
      price_momentum: 0.35
      volume_surge: 0.25
      news_sentiment: 0.25
      relative_value: 0.15
    min_score: 60
    max_picks: 5
`
	_, _, err := Load(writeConfig(t, bad))
	var verr contracts.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "strategies.conservative", verr.Field)
}

func TestHash_Deterministic(t *testing.T) {
	cfg, _, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	h1, err := Hash(cfg)
	require.NoError(t, err)
	h2, err := Hash(cfg)
	require.NoError(t, err)

	assert.Len(t, h1, 64)
	assert.Equal(t, h1, h2)
}

func TestHash_ChangesWithContent(t *testing.T) {
	cfg1, _, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	cfg2, _, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	spec := cfg2.Strategies["momentum"]
	spec.MinScore = 61
	cfg2.Strategies["momentum"] = spec

	h1, _ := Hash(cfg1)
	h2, _ := Hash(cfg2)
	assert.NotEqual(t, h1, h2)
}

func TestConfigAccessors(t *testing.T) {
	cfg, _, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	weights := cfg.StrategyWeights(contracts.StrategyMomentum)
	assert.InDelta(t, 1.0, weights.Sum(), 0.001)

	criteria := cfg.Criteria(contracts.StrategyConservative)
	assert.Equal(t, 55, criteria.MinScore)
	assert.Equal(t, 5, criteria.MaxPicks)

	retry := cfg.RetryConfig()
	assert.Equal(t, 3, retry.MaxRetries)
}
