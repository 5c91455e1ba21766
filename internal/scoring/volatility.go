package scoring

import (
	"fmt"
	"math"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// LowVolatilityScorer rewards calm price action: low realized volatility
// over 20 trading days scores high. A stressed market (high VIX) shaves the
// score further, so the conservative model de-risks when the tape is wild.
type LowVolatilityScorer struct {
	logger *logger.Logger
}

func NewLowVolatilityScorer(log *logger.Logger) *LowVolatilityScorer {
	return &LowVolatilityScorer{logger: log.WithField("factor", FactorLowVolatility)}
}

func (s *LowVolatilityScorer) Name() string { return FactorLowVolatility }

func (s *LowVolatilityScorer) Score(rec *contracts.ExtendedStockRecord) contracts.FactorScore {
	returns := dailyReturns(rec.Prices, 21)
	if len(returns) < 5 {
		return contracts.FactorScore{
			Name:       FactorLowVolatility,
			Score:      50,
			Components: map[string]float64{"volatility_20d": 0, "vix": rec.VIX},
		}
	}

	vol := populationStdDev(returns)
	annualized := vol * math.Sqrt(252) * 100

	// 15% annualized is calm, 60%+ is speculative.
	raw := 100 - (annualized-15)*(100.0/45.0)

	if rec.VIX > 25 {
		raw -= (rec.VIX - 25) * 0.5
	}

	return contracts.FactorScore{
		Name:  FactorLowVolatility,
		Score: clampScore(s.logger, FactorLowVolatility, rec.Symbol, raw),
		Components: map[string]float64{
			"volatility_20d": vol,
			"annualized_pct": annualized,
			"vix":            rec.VIX,
		},
		Explanation: fmt.Sprintf("annualized volatility %.0f%%", annualized),
	}
}

// dailyReturns computes up to n trailing day-over-day returns.
func dailyReturns(prices []float64, n int) []float64 {
	if len(prices) < 2 {
		return nil
	}
	start := len(prices) - n
	if start < 1 {
		start = 1
	}
	returns := make([]float64, 0, len(prices)-start)
	for i := start; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

// populationStdDev computes the population standard deviation of vs.
func populationStdDev(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	mean := average(vs)
	sumSq := 0.0
	for _, v := range vs {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(vs)))
}
