package contracts

import "fmt"

// Decision is an external judgment verdict.
type Decision string

const (
	DecisionBuy   Decision = "buy"
	DecisionHold  Decision = "hold"
	DecisionAvoid Decision = "avoid"
)

// Judgment is one externally supplied, confidence-ranked verdict.
// Judgments are the final ranking authority in primary selection; the
// rule-based composite score only gates eligibility.
type Judgment struct {
	Symbol     string   `json:"symbol"`
	Decision   Decision `json:"decision"`
	Confidence float64  `json:"confidence"` // 0.0 ~ 1.0
}

// Validate rejects unknown decisions and out-of-range confidence.
func (j Judgment) Validate() error {
	switch j.Decision {
	case DecisionBuy, DecisionHold, DecisionAvoid:
	default:
		return ValidationError{Field: "decision", Message: fmt.Sprintf("unknown decision %q for %s", j.Decision, j.Symbol)}
	}
	if j.Confidence < 0 || j.Confidence > 1 {
		return ValidationError{Field: "confidence", Message: fmt.Sprintf("must be in [0, 1], got %.3f for %s", j.Confidence, j.Symbol)}
	}
	return nil
}
