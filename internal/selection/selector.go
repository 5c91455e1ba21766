package selection

import (
	"sort"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// Criteria bounds one strategy's pick list.
type Criteria struct {
	MinScore int // composite threshold, inclusive
	MaxPicks int // 0 picks nothing
}

// Selector turns a scored cohort into ordered pick lists. Pure over its
// inputs; nothing here touches storage or the network.
type Selector struct {
	logger *logger.Logger
}

// NewSelector creates a selector.
func NewSelector(log *logger.Logger) *Selector {
	return &Selector{logger: log.WithField("module", "selection")}
}

// Select applies the threshold-and-rank rule: keep composites at or above
// MinScore, order by percentile rank descending (composite, then symbol
// ascending on ties), and cut at MaxPicks. A zero MaxPicks always yields an
// empty list.
func (s *Selector) Select(results []contracts.CompositeResult, criteria Criteria) []string {
	if criteria.MaxPicks <= 0 {
		return []string{}
	}

	eligible := make([]contracts.CompositeResult, 0, len(results))
	for _, r := range results {
		if r.Composite >= criteria.MinScore {
			eligible = append(eligible, r)
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Percentile != eligible[j].Percentile {
			return eligible[i].Percentile > eligible[j].Percentile
		}
		if eligible[i].Composite != eligible[j].Composite {
			return eligible[i].Composite > eligible[j].Composite
		}
		return eligible[i].Symbol < eligible[j].Symbol
	})

	if len(eligible) > criteria.MaxPicks {
		eligible = eligible[:criteria.MaxPicks]
	}

	picks := make([]string, len(eligible))
	for i, r := range eligible {
		picks[i] = r.Symbol
	}

	s.logger.WithFields(map[string]interface{}{
		"candidates": len(results),
		"picks":      len(picks),
		"min_score":  criteria.MinScore,
	}).Info("Threshold selection completed")

	return picks
}

// SelectWithJudgments layers an external judgment gate over the score
// threshold: a symbol is picked only when its composite clears MinScore AND
// its judgment is a buy at or above minConfidence. Output is ordered by
// judgment confidence descending (symbol ascending on ties) and cut at
// MaxPicks. Symbols without a judgment are skipped, not failed.
func (s *Selector) SelectWithJudgments(results []contracts.CompositeResult, judgments map[string]contracts.Judgment, criteria Criteria, minConfidence float64) []string {
	if criteria.MaxPicks <= 0 {
		return []string{}
	}

	type gated struct {
		symbol     string
		confidence float64
	}

	eligible := make([]gated, 0, len(results))
	for _, r := range results {
		if r.Composite < criteria.MinScore {
			continue
		}
		j, ok := judgments[r.Symbol]
		if !ok {
			continue
		}
		if j.Decision != contracts.DecisionBuy || j.Confidence < minConfidence {
			continue
		}
		eligible = append(eligible, gated{symbol: r.Symbol, confidence: j.Confidence})
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].confidence != eligible[j].confidence {
			return eligible[i].confidence > eligible[j].confidence
		}
		return eligible[i].symbol < eligible[j].symbol
	})

	if len(eligible) > criteria.MaxPicks {
		eligible = eligible[:criteria.MaxPicks]
	}

	picks := make([]string, len(eligible))
	for i, g := range eligible {
		picks[i] = g.symbol
	}

	s.logger.WithFields(map[string]interface{}{
		"candidates":     len(results),
		"picks":          len(picks),
		"min_confidence": minConfidence,
	}).Info("Judgment selection completed")

	return picks
}
