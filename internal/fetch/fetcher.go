package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/marketdata"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// Result is the outcome of one per-symbol fetch.
type Result struct {
	Symbol   string
	OK       bool
	Base     *contracts.StockRecord
	Extended *contracts.ExtendedStockRecord
	Err      error
	Elapsed  time.Duration
}

// Fetcher assembles a StockRecord and ExtendedStockRecord per symbol from
// four independent provider sub-fetches, each running as its own executor
// operation through the shared rate limiter and concurrency cap.
type Fetcher struct {
	provider marketdata.Provider
	exec     *Executor
	logger   *logger.Logger
}

// NewFetcher creates a fetcher over one provider and executor.
func NewFetcher(provider marketdata.Provider, exec *Executor, log *logger.Logger) *Fetcher {
	return &Fetcher{
		provider: provider,
		exec:     exec,
		logger:   log.WithField("module", "fetcher"),
	}
}

// Fetch runs the four sub-fetches concurrently and merges once all four
// (or their fallbacks) complete. Missing price history is the single hard
// failure; quote, fundamentals and news degrade to neutral defaults.
func (f *Fetcher) Fetch(ctx context.Context, symbol string, market contracts.MarketSnapshot) Result {
	start := time.Now()

	var (
		history *marketdata.PriceHistory
		histErr error
		quote   *marketdata.Quote
		fund    *marketdata.Fundamentals
		news    *marketdata.NewsSummary
	)

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		histErr = f.exec.Do(ctx, "history "+symbol, func(ctx context.Context) error {
			h, err := f.provider.History(ctx, symbol)
			if err != nil {
				return err
			}
			history = h
			return nil
		})
	}()

	go func() {
		defer wg.Done()
		err := f.exec.Do(ctx, "quote "+symbol, func(ctx context.Context) error {
			q, err := f.provider.Quote(ctx, symbol)
			if err != nil {
				return err
			}
			quote = q
			return nil
		})
		if err != nil {
			f.logger.WithError(err).WithField("symbol", symbol).Warn("Quote unavailable, using defaults")
		}
	}()

	go func() {
		defer wg.Done()
		err := f.exec.Do(ctx, "fundamentals "+symbol, func(ctx context.Context) error {
			fd, err := f.provider.Fundamentals(ctx, symbol)
			if err != nil {
				return err
			}
			fund = fd
			return nil
		})
		if err != nil {
			f.logger.WithError(err).WithField("symbol", symbol).Warn("Fundamentals unavailable, using defaults")
		}
	}()

	go func() {
		defer wg.Done()
		err := f.exec.Do(ctx, "news "+symbol, func(ctx context.Context) error {
			n, err := f.provider.News(ctx, symbol)
			if err != nil {
				return err
			}
			news = n
			return nil
		})
		if err != nil {
			f.logger.WithError(err).WithField("symbol", symbol).Warn("News unavailable, using defaults")
		}
	}()

	wg.Wait()

	if histErr != nil {
		return Result{Symbol: symbol, Err: fmt.Errorf("price history for %s: %w", symbol, histErr), Elapsed: time.Since(start)}
	}
	if history == nil || len(history.Prices) == 0 {
		return Result{Symbol: symbol, Err: fmt.Errorf("price history for %s: %w", symbol, marketdata.ErrNoData), Elapsed: time.Since(start)}
	}

	base, err := f.merge(symbol, history, quote, fund, news)
	if err != nil {
		return Result{Symbol: symbol, Err: err, Elapsed: time.Since(start)}
	}

	ext := contracts.Extend(*base, market)
	if fund != nil {
		ext.EarningsSurprisePct = fund.EarningsSurprisePct
		if fund.AnalystRevision > 0 {
			ext.AnalystRevision = fund.AnalystRevision
		}
		ext.ShortInterestPct = fund.ShortInterestPct
	}

	return Result{
		Symbol:   symbol,
		OK:       true,
		Base:     base,
		Extended: &ext,
		Elapsed:  time.Since(start),
	}
}

// merge builds the base record from whatever sub-fetches succeeded.
func (f *Fetcher) merge(symbol string, history *marketdata.PriceHistory, quote *marketdata.Quote, fund *marketdata.Fundamentals, news *marketdata.NewsSummary) (*contracts.StockRecord, error) {
	rec := &contracts.StockRecord{
		Symbol:  symbol,
		Prices:  history.Prices,
		Volumes: history.Volumes,
	}

	if quote != nil {
		rec.Open = quote.Open
		rec.High52W = quote.High52W
		rec.Low52W = quote.Low52W
	}
	if fund != nil {
		rec.PER = fund.PER
		rec.PBR = fund.PBR
		rec.SectorPER = fund.SectorPER
	}
	if news != nil {
		rec.NewsCount7D = news.Count7D
		rec.NewsSentiment = news.Sentiment
	}

	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("record for %s: %w", symbol, err)
	}

	return rec, nil
}
