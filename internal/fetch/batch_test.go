package fetch

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/marketdata"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

func newTestBatch(provider marketdata.Provider) *Batch {
	return NewBatch(newTestFetcher(provider), logger.NewNop())
}

func TestBatch_AllSucceed(t *testing.T) {
	batch := newTestBatch(healthyProvider())

	symbols := []string{"AAPL", "MSFT", "GOOGL"}
	outcome := batch.FetchAll(context.Background(), symbols, contracts.MarketSnapshot{}, nil)

	assert.Len(t, outcome.Successes, 3)
	assert.Empty(t, outcome.Failures)
	assert.Greater(t, outcome.Speedup, 0.0)
}

func TestBatch_OneFailureDoesNotAbortSiblings(t *testing.T) {
	provider := healthyProvider()
	base := provider.history
	provider.history = func(symbol string) (*marketdata.PriceHistory, error) {
		if symbol == "BAD" {
			return nil, marketdata.ErrNoData
		}
		return base(symbol)
	}
	batch := newTestBatch(provider)

	outcome := batch.FetchAll(context.Background(), []string{"AAPL", "BAD", "MSFT"}, contracts.MarketSnapshot{}, nil)

	assert.Len(t, outcome.Successes, 2)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, "BAD", outcome.Failures[0].Symbol)
	assert.ErrorIs(t, outcome.Failures[0].Err, marketdata.ErrNoData)
}

func TestBatch_ProgressInCompletionOrder(t *testing.T) {
	batch := newTestBatch(healthyProvider())

	var mu sync.Mutex
	var completedSeq []int
	var seen []string

	symbols := []string{"A", "B", "C", "D"}
	outcome := batch.FetchAll(context.Background(), symbols, contracts.MarketSnapshot{}, func(symbol string, completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		completedSeq = append(completedSeq, completed)
		seen = append(seen, symbol)
		assert.Equal(t, 4, total)
	})

	require.Len(t, outcome.Successes, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, completedSeq, "completed counter is strictly increasing")
	assert.ElementsMatch(t, symbols, seen, "every symbol reported exactly once")
}

func TestBatch_EmptySymbolList(t *testing.T) {
	batch := newTestBatch(healthyProvider())

	outcome := batch.FetchAll(context.Background(), nil, contracts.MarketSnapshot{}, nil)

	assert.Empty(t, outcome.Successes)
	assert.Empty(t, outcome.Failures)
	assert.Zero(t, outcome.Speedup)
}
