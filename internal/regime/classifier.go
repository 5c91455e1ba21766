package regime

import (
	"time"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/scoring"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// Market regimes by VIX band.
const (
	RegimeCalm     = "calm"     // VIX < 15
	RegimeNormal   = "normal"   // 15 <= VIX < 25
	RegimeStressed = "stressed" // 25 <= VIX < 35
	RegimePanic    = "panic"    // VIX >= 35
)

// StrategyOverride is a partial replacement for one strategy's configured
// criteria. Nil fields leave the config value in force.
type StrategyOverride struct {
	MinScore *int
	MaxPicks *int
	Weights  contracts.StrategyWeights
}

// Overrides maps strategy to its regime-driven adjustments.
type Overrides map[contracts.Strategy]StrategyOverride

// Classifier maps a VIX reading to a market regime and the selection
// overrides that regime implies.
type Classifier struct {
	logger *logger.Logger
	now    func() time.Time
}

func NewClassifier(log *logger.Logger) *Classifier {
	return &Classifier{
		logger: log.WithField("module", "regime"),
		now:    time.Now,
	}
}

// Snapshot classifies vix into a regime-stamped market snapshot.
func (c *Classifier) Snapshot(vix float64) contracts.MarketSnapshot {
	snap := contracts.MarketSnapshot{
		VIX:    vix,
		Regime: classify(vix),
		AsOf:   c.now(),
	}

	c.logger.WithFields(map[string]interface{}{
		"vix":    vix,
		"regime": snap.Regime,
	}).Info("Market regime classified")

	return snap
}

// Overrides returns the selection adjustments for a snapshot's regime.
// Stressed markets shrink the momentum book and tilt the conservative model
// harder into realized volatility; panic shuts momentum off entirely and
// raises the conservative bar.
func (c *Classifier) Overrides(snap contracts.MarketSnapshot) Overrides {
	switch snap.Regime {
	case RegimeStressed:
		return Overrides{
			contracts.StrategyMomentum: {MaxPicks: intPtr(3)},
			contracts.StrategyConservative: {
				Weights: contracts.StrategyWeights{
					scoring.FactorLowVolatility:   0.45,
					scoring.FactorEarningsQuality: 0.25,
					scoring.FactorAnalystRevision: 0.15,
					scoring.FactorShortInterest:   0.15,
				},
			},
		}
	case RegimePanic:
		return Overrides{
			contracts.StrategyMomentum:     {MaxPicks: intPtr(0)},
			contracts.StrategyConservative: {MinScore: intPtr(70)},
		}
	default:
		return Overrides{}
	}
}

func classify(vix float64) string {
	switch {
	case vix < 15:
		return RegimeCalm
	case vix < 25:
		return RegimeNormal
	case vix < 35:
		return RegimeStressed
	default:
		return RegimePanic
	}
}

func intPtr(v int) *int { return &v }
