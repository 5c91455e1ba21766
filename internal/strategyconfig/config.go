package strategyconfig

import (
	"time"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/fetch"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/selection"
)

// Config is the single source of truth for a scoring run: factor weights,
// selection bounds, judgment gating and fetch limits all come from one
// YAML document, hashed for auditability.
type Config struct {
	Meta       Meta                    `yaml:"meta" json:"meta"`
	Strategies map[string]StrategySpec `yaml:"strategies" json:"strategies"`
	Judgment   JudgmentSpec            `yaml:"judgment" json:"judgment"`
	Fetch      FetchSpec               `yaml:"fetch" json:"fetch"`
}

// Meta identifies the config document.
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    int    `yaml:"version" json:"version"`
}

// StrategySpec is one strategy's weights and selection bounds.
type StrategySpec struct {
	Weights  map[string]float64 `yaml:"weights" json:"weights"`
	MinScore int                `yaml:"min_score" json:"min_score"`
	MaxPicks int                `yaml:"max_picks" json:"max_picks"`
}

// JudgmentSpec configures the judgment gate for primary selection.
type JudgmentSpec struct {
	MinConfidence float64 `yaml:"min_confidence" json:"min_confidence"`
}

// FetchSpec configures the shared acquisition limits.
type FetchSpec struct {
	RequestsPerWindow int `yaml:"requests_per_window" json:"requests_per_window"`
	WindowSeconds     int `yaml:"window_seconds" json:"window_seconds"`
	MaxConcurrent     int `yaml:"max_concurrent" json:"max_concurrent"`
	MaxRetries        int `yaml:"max_retries" json:"max_retries"`
	BaseDelayMs       int `yaml:"base_delay_ms" json:"base_delay_ms"`
	MaxDelayMs        int `yaml:"max_delay_ms" json:"max_delay_ms"`
	AttemptTimeoutMs  int `yaml:"attempt_timeout_ms" json:"attempt_timeout_ms"`
}

// StrategyWeights returns one strategy's weight map in the contracts form.
func (c *Config) StrategyWeights(strategy contracts.Strategy) contracts.StrategyWeights {
	return contracts.StrategyWeights(c.Strategies[string(strategy)].Weights)
}

// Criteria returns one strategy's selection bounds.
func (c *Config) Criteria(strategy contracts.Strategy) selection.Criteria {
	spec := c.Strategies[string(strategy)]
	return selection.Criteria{MinScore: spec.MinScore, MaxPicks: spec.MaxPicks}
}

// RetryConfig maps the fetch spec onto the executor's retry settings.
func (c *Config) RetryConfig() fetch.RetryConfig {
	return fetch.RetryConfig{
		MaxRetries:     c.Fetch.MaxRetries,
		BaseDelay:      time.Duration(c.Fetch.BaseDelayMs) * time.Millisecond,
		MaxDelay:       time.Duration(c.Fetch.MaxDelayMs) * time.Millisecond,
		AttemptTimeout: time.Duration(c.Fetch.AttemptTimeoutMs) * time.Millisecond,
	}
}

// Window returns the rate limiter's rolling window.
func (c *Config) Window() time.Duration {
	return time.Duration(c.Fetch.WindowSeconds) * time.Second
}
