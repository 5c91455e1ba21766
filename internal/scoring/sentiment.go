package scoring

import (
	"fmt"
	"math"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// NewsSentimentScorer scores 7-day news tone. The raw sentiment in
// [-1, 1] maps linearly to [0, 100], then shrinks toward neutral when the
// article count is thin, since two headlines are not a signal.
type NewsSentimentScorer struct {
	logger *logger.Logger
}

func NewNewsSentimentScorer(log *logger.Logger) *NewsSentimentScorer {
	return &NewsSentimentScorer{logger: log.WithField("factor", FactorNewsSentiment)}
}

func (s *NewsSentimentScorer) Name() string { return FactorNewsSentiment }

func (s *NewsSentimentScorer) Score(rec *contracts.ExtendedStockRecord) contracts.FactorScore {
	sentiment := rec.NewsSentiment
	count := float64(rec.NewsCount7D)

	// Full confidence at 10+ articles over the window.
	confidence := math.Min(count/10, 1)
	raw := 50 + sentiment*50*confidence

	fs := contracts.FactorScore{
		Name:  FactorNewsSentiment,
		Score: clampScore(s.logger, FactorNewsSentiment, rec.Symbol, raw),
		Components: map[string]float64{
			"sentiment":  sentiment,
			"news_count": count,
			"confidence": confidence,
		},
	}
	if rec.NewsCount7D > 0 {
		fs.Explanation = fmt.Sprintf("%d articles in 7d, sentiment %+.2f", rec.NewsCount7D, sentiment)
	}
	return fs
}
