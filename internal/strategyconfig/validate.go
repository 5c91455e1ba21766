package strategyconfig

import (
	"fmt"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/scoring"
)

// Validate checks all required constraints. Any failure aborts the run; a
// config that half-loads is worse than no config.
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return contracts.ValidationError{Field: "meta.strategy_id", Message: "required"}
	}
	if cfg.Meta.Version <= 0 {
		return contracts.ValidationError{Field: "meta.version", Message: "must be > 0"}
	}

	// === Strategies ===
	for _, strategy := range []contracts.Strategy{contracts.StrategyMomentum, contracts.StrategyConservative} {
		spec, ok := cfg.Strategies[string(strategy)]
		if !ok {
			return contracts.ValidationError{Field: "strategies." + string(strategy), Message: "required"}
		}
		if err := contracts.StrategyWeights(spec.Weights).Validate(scoring.FactorNames(strategy)); err != nil {
			return fmt.Errorf("strategies.%s.%w", strategy, err)
		}
		if spec.MinScore < 0 || spec.MinScore > 100 {
			return contracts.ValidationError{Field: "strategies." + string(strategy) + ".min_score", Message: "must be in [0, 100]"}
		}
		if spec.MaxPicks < 0 {
			return contracts.ValidationError{Field: "strategies." + string(strategy) + ".max_picks", Message: "must be >= 0"}
		}
	}

	// === Judgment ===
	if cfg.Judgment.MinConfidence < 0 || cfg.Judgment.MinConfidence > 1 {
		return contracts.ValidationError{Field: "judgment.min_confidence", Message: "must be in [0, 1]"}
	}

	// === Fetch ===
	if cfg.Fetch.RequestsPerWindow <= 0 {
		return contracts.ValidationError{Field: "fetch.requests_per_window", Message: "must be > 0"}
	}
	if cfg.Fetch.WindowSeconds <= 0 {
		return contracts.ValidationError{Field: "fetch.window_seconds", Message: "must be > 0"}
	}
	if cfg.Fetch.MaxConcurrent <= 0 {
		return contracts.ValidationError{Field: "fetch.max_concurrent", Message: "must be > 0"}
	}
	if cfg.Fetch.MaxRetries < 0 {
		return contracts.ValidationError{Field: "fetch.max_retries", Message: "must be >= 0"}
	}
	if cfg.Fetch.BaseDelayMs <= 0 {
		return contracts.ValidationError{Field: "fetch.base_delay_ms", Message: "must be > 0"}
	}
	if cfg.Fetch.MaxDelayMs < cfg.Fetch.BaseDelayMs {
		return contracts.ValidationError{Field: "fetch.max_delay_ms", Message: "must be >= base_delay_ms"}
	}
	if cfg.Fetch.AttemptTimeoutMs <= 0 {
		return contracts.ValidationError{Field: "fetch.attempt_timeout_ms", Message: "must be > 0"}
	}

	return nil
}
