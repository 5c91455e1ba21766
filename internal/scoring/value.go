package scoring

import (
	"fmt"
	"math"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// RelativeValueScorer scores valuation against the sector: a PER discount
// to the sector multiple scores high, a premium scores low, with a PBR
// sanity tilt. Missing valuation data is neutral, not penalized.
type RelativeValueScorer struct {
	logger *logger.Logger
}

func NewRelativeValueScorer(log *logger.Logger) *RelativeValueScorer {
	return &RelativeValueScorer{logger: log.WithField("factor", FactorRelativeValue)}
}

func (s *RelativeValueScorer) Name() string { return FactorRelativeValue }

func (s *RelativeValueScorer) Score(rec *contracts.ExtendedStockRecord) contracts.FactorScore {
	if rec.PER <= 0 || rec.SectorPER <= 0 {
		return contracts.FactorScore{
			Name:       FactorRelativeValue,
			Score:      50,
			Components: map[string]float64{"per": rec.PER, "sector_per": rec.SectorPER},
		}
	}

	// discount > 0 means cheaper than the sector.
	discount := 1 - rec.PER/rec.SectorPER
	raw := 50 + 50*math.Tanh(discount*2)

	// Sub-book pricing nudges the score up, stretched PBR nudges it down.
	if rec.PBR > 0 {
		switch {
		case rec.PBR < 1:
			raw += 5
		case rec.PBR > 5:
			raw -= 5
		}
	}

	return contracts.FactorScore{
		Name:  FactorRelativeValue,
		Score: clampScore(s.logger, FactorRelativeValue, rec.Symbol, raw),
		Components: map[string]float64{
			"per":        rec.PER,
			"sector_per": rec.SectorPER,
			"pbr":        rec.PBR,
			"discount":   discount,
		},
		Explanation: fmt.Sprintf("PER %.1f vs sector %.1f (%+.0f%% discount)", rec.PER, rec.SectorPER, discount*100),
	}
}
