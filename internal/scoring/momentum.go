package scoring

import (
	"fmt"
	"math"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// PriceMomentumScorer scores trailing price returns. Blends the 20-day and
// 60-day simple returns, with the shorter horizon weighted heavier, then
// maps through tanh so extreme moves saturate instead of dominating.
type PriceMomentumScorer struct {
	logger *logger.Logger
}

func NewPriceMomentumScorer(log *logger.Logger) *PriceMomentumScorer {
	return &PriceMomentumScorer{logger: log.WithField("factor", FactorPriceMomentum)}
}

func (s *PriceMomentumScorer) Name() string { return FactorPriceMomentum }

func (s *PriceMomentumScorer) Score(rec *contracts.ExtendedStockRecord) contracts.FactorScore {
	r20 := returnOver(rec.Prices, 20)
	r60 := returnOver(rec.Prices, 60)

	blended := 0.6*r20 + 0.4*r60
	raw := 50 + 50*math.Tanh(blended*5)

	return contracts.FactorScore{
		Name:  FactorPriceMomentum,
		Score: clampScore(s.logger, FactorPriceMomentum, rec.Symbol, raw),
		Components: map[string]float64{
			"return_20d": r20,
			"return_60d": r60,
		},
		Explanation: fmt.Sprintf("20d return %+.1f%%, 60d return %+.1f%%", r20*100, r60*100),
	}
}
