package contracts

import "time"

// FetchedStock is one successful per-symbol acquisition. Extended is nil
// when the extension fields could not be sourced; the scoring pipeline
// synthesizes a default-filled one in that case.
type FetchedStock struct {
	Symbol   string
	Base     StockRecord
	Extended *ExtendedStockRecord
}

// FetchFailure is one isolated per-symbol failure.
type FetchFailure struct {
	Symbol string
	Err    error
}

// BatchFetchOutcome aggregates a whole batch acquisition. A batch always
// completes: failures are captured as entries, never raised.
type BatchFetchOutcome struct {
	Successes []FetchedStock
	Failures  []FetchFailure
	Duration  time.Duration
	// Speedup is the sum of individual fetch durations divided by the
	// observed wall-clock duration of the batch.
	Speedup float64
}
