package scoring

import (
	"fmt"
	"math"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// VolumeSurgeScorer scores recent volume against its own baseline: the
// trailing 5-day average over the prior 20-day average. A ratio of 1 is
// neutral; sustained surges score high, drying volume scores low.
type VolumeSurgeScorer struct {
	logger *logger.Logger
}

func NewVolumeSurgeScorer(log *logger.Logger) *VolumeSurgeScorer {
	return &VolumeSurgeScorer{logger: log.WithField("factor", FactorVolumeSurge)}
}

func (s *VolumeSurgeScorer) Name() string { return FactorVolumeSurge }

func (s *VolumeSurgeScorer) Score(rec *contracts.ExtendedStockRecord) contracts.FactorScore {
	vols := rec.Volumes
	if len(vols) < 25 {
		return contracts.FactorScore{
			Name:       FactorVolumeSurge,
			Score:      50,
			Components: map[string]float64{"volume_ratio": 1},
		}
	}

	recent := average(vols[len(vols)-5:])
	baseline := average(vols[len(vols)-25 : len(vols)-5])

	ratio := 1.0
	if baseline > 0 {
		ratio = recent / baseline
	}

	raw := 50 + 50*math.Tanh(ratio-1)

	return contracts.FactorScore{
		Name:  FactorVolumeSurge,
		Score: clampScore(s.logger, FactorVolumeSurge, rec.Symbol, raw),
		Components: map[string]float64{
			"volume_ratio": ratio,
			"avg_5d":       recent,
			"avg_20d":      baseline,
		},
		Explanation: fmt.Sprintf("5d volume %.2fx the 20d baseline", ratio),
	}
}
