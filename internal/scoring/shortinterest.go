package scoring

import (
	"fmt"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// ShortInterestScorer penalizes crowded shorts. Under 2% of float is
// clean; the score decays linearly and bottoms out near 20%.
type ShortInterestScorer struct {
	logger *logger.Logger
}

func NewShortInterestScorer(log *logger.Logger) *ShortInterestScorer {
	return &ShortInterestScorer{logger: log.WithField("factor", FactorShortInterest)}
}

func (s *ShortInterestScorer) Name() string { return FactorShortInterest }

func (s *ShortInterestScorer) Score(rec *contracts.ExtendedStockRecord) contracts.FactorScore {
	si := rec.ShortInterestPct

	raw := 100.0
	if si > 2 {
		raw = 100 - (si-2)*(100.0/18.0)
	}

	fs := contracts.FactorScore{
		Name:  FactorShortInterest,
		Score: clampScore(s.logger, FactorShortInterest, rec.Symbol, raw),
		Components: map[string]float64{
			"short_interest_pct": si,
		},
	}
	if si > 0 {
		fs.Explanation = fmt.Sprintf("short interest %.1f%% of float", si)
	}
	return fs
}
