package scoring

import (
	"math"
	"sort"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
)

// stdDevEpsilon is the spread below which a cohort counts as degenerate and
// percentile ranking falls back to ordinal position.
const stdDevEpsilon = 1e-9

// Normalize assigns a cross-sectional percentile rank to each composite and
// returns the results as a new slice in input order; inputs are never
// mutated. Ranks come from the normal CDF of each z-score, clamped to
// [1, 99] so no stock reads as a literal best or worst. When the cohort has
// no spread the CDF is meaningless and ranks fall back to ordinal position:
// round(100*(N-i)/N) for the i-th entry of the descending order, which can
// legitimately emit 100.
func Normalize(results []contracts.CompositeResult) []contracts.CompositeResult {
	if len(results) == 0 {
		return nil
	}

	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = float64(r.Composite)
	}

	mean := average(scores)
	std := populationStdDev(scores)

	out := make([]contracts.CompositeResult, len(results))

	if std < stdDevEpsilon {
		for pos, idx := range descendingOrder(scores) {
			rank := int(math.Round(100 * float64(len(scores)-pos) / float64(len(scores))))
			out[idx] = results[idx].WithPercentile(rank)
		}
		return out
	}

	for i, r := range results {
		z := (scores[i] - mean) / std
		rank := int(math.Round(normalCDF(z) * 100))
		if rank < 1 {
			rank = 1
		}
		if rank > 99 {
			rank = 99
		}
		out[i] = r.WithPercentile(rank)
	}
	return out
}

// descendingOrder returns result indices sorted by score descending, ties
// kept in input order.
func descendingOrder(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

// normalCDF is the standard normal cumulative distribution function.
func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}
