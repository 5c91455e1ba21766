package scoring

import (
	"fmt"
	"math"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// EarningsQualityScorer scores the latest earnings surprise. Beats score
// above neutral, misses below, saturating so a single blowout quarter
// cannot pin the factor.
type EarningsQualityScorer struct {
	logger *logger.Logger
}

func NewEarningsQualityScorer(log *logger.Logger) *EarningsQualityScorer {
	return &EarningsQualityScorer{logger: log.WithField("factor", FactorEarningsQuality)}
}

func (s *EarningsQualityScorer) Name() string { return FactorEarningsQuality }

func (s *EarningsQualityScorer) Score(rec *contracts.ExtendedStockRecord) contracts.FactorScore {
	surprise := rec.EarningsSurprisePct
	raw := 50 + 50*math.Tanh(surprise/15)

	fs := contracts.FactorScore{
		Name:  FactorEarningsQuality,
		Score: clampScore(s.logger, FactorEarningsQuality, rec.Symbol, raw),
		Components: map[string]float64{
			"earnings_surprise_pct": surprise,
		},
	}
	if surprise != 0 {
		fs.Explanation = fmt.Sprintf("earnings surprise %+.1f%%", surprise)
	}
	return fs
}
