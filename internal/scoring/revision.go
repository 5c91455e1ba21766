package scoring

import (
	"fmt"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// AnalystRevisionScorer passes the provider's 0-100 revision gauge through
// directly; 50 is the no-change neutral the record synthesizer defaults to.
type AnalystRevisionScorer struct {
	logger *logger.Logger
}

func NewAnalystRevisionScorer(log *logger.Logger) *AnalystRevisionScorer {
	return &AnalystRevisionScorer{logger: log.WithField("factor", FactorAnalystRevision)}
}

func (s *AnalystRevisionScorer) Name() string { return FactorAnalystRevision }

func (s *AnalystRevisionScorer) Score(rec *contracts.ExtendedStockRecord) contracts.FactorScore {
	fs := contracts.FactorScore{
		Name:  FactorAnalystRevision,
		Score: clampScore(s.logger, FactorAnalystRevision, rec.Symbol, rec.AnalystRevision),
		Components: map[string]float64{
			"analyst_revision": rec.AnalystRevision,
		},
	}
	if rec.AnalystRevision != 50 {
		fs.Explanation = fmt.Sprintf("analyst revision gauge %.0f/100", rec.AnalystRevision)
	}
	return fs
}
