package fetch

import (
	"context"
	"time"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// ProgressFunc is invoked once per completed symbol, in completion order.
type ProgressFunc func(symbol string, completed, total int)

// Batch fans a symbol set through the fetcher. Every fetch in the batch
// shares the executor's rate limiter and concurrency cap; one symbol's
// failure never aborts its siblings.
type Batch struct {
	fetcher *Fetcher
	logger  *logger.Logger
}

// NewBatch creates a batch orchestrator.
func NewBatch(fetcher *Fetcher, log *logger.Logger) *Batch {
	return &Batch{
		fetcher: fetcher,
		logger:  log.WithField("module", "batch"),
	}
}

// FetchAll fetches all symbols concurrently and aggregates the outcome.
// Aggregation and progress callbacks happen strictly in completion order,
// which carries no relation to input order. The batch itself has no
// timeout; its duration is observational.
func (b *Batch) FetchAll(ctx context.Context, symbols []string, market contracts.MarketSnapshot, progress ProgressFunc) *contracts.BatchFetchOutcome {
	start := time.Now()
	total := len(symbols)

	b.logger.WithFields(map[string]interface{}{
		"symbol_count": total,
	}).Info("Starting batch fetch")

	resultCh := make(chan Result, total)
	for _, symbol := range symbols {
		go func(symbol string) {
			resultCh <- b.fetcher.Fetch(ctx, symbol, market)
		}(symbol)
	}

	outcome := &contracts.BatchFetchOutcome{}
	var sumDurations time.Duration

	for completed := 1; completed <= total; completed++ {
		res := <-resultCh
		sumDurations += res.Elapsed

		if res.OK {
			outcome.Successes = append(outcome.Successes, contracts.FetchedStock{
				Symbol:   res.Symbol,
				Base:     *res.Base,
				Extended: res.Extended,
			})
		} else {
			b.logger.WithError(res.Err).WithFields(map[string]interface{}{
				"symbol": res.Symbol,
			}).Error("Fetch failed permanently")
			outcome.Failures = append(outcome.Failures, contracts.FetchFailure{
				Symbol: res.Symbol,
				Err:    res.Err,
			})
		}

		if progress != nil {
			progress(res.Symbol, completed, total)
		}
	}

	outcome.Duration = time.Since(start)
	outcome.Speedup = speedup(sumDurations, outcome.Duration, total)

	b.logger.WithFields(map[string]interface{}{
		"success":  len(outcome.Successes),
		"failed":   len(outcome.Failures),
		"duration": outcome.Duration,
		"speedup":  outcome.Speedup,
	}).Info("Batch fetch completed")

	return outcome
}

// speedup compares the summed per-symbol durations against the observed
// wall clock. Guarded so any batch with at least one completion reports a
// positive ratio.
func speedup(sum, wall time.Duration, completions int) float64 {
	if completions == 0 {
		return 0
	}
	if wall <= 0 {
		return 1
	}
	if sum <= 0 {
		sum = wall
	}
	return float64(sum) / float64(wall)
}
