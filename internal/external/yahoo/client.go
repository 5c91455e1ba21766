package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/fetch"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/marketdata"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/httputil"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// historyDays covers the longest factor lookback (60 trading days) with
// calendar slack for weekends and holidays.
const historyDays = 130

// Client is the Yahoo Finance implementation of marketdata.Provider.
// A courtesy limiter throttles every outbound call on top of the engine's
// own rate limiter; Yahoo bans aggressive scrapers by IP.
type Client struct {
	limiter     *rate.Limiter
	httpClient  *httputil.Client
	newsBaseURL string
	logger      *logger.Logger
}

// Config holds the Yahoo client settings.
type Config struct {
	NewsBaseURL    string
	RequestsPerSec float64
}

// NewClient creates a Yahoo Finance client.
func NewClient(cfg Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 2
	}
	if cfg.NewsBaseURL == "" {
		cfg.NewsBaseURL = "https://finance.yahoo.com"
	}

	return &Client{
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		httpClient:  httpClient,
		newsBaseURL: cfg.NewsBaseURL,
		logger:      log.WithField("module", "yahoo"),
	}
}

// History fetches the daily close/volume series for the factor lookback
// window, oldest first.
func (c *Client) History(ctx context.Context, symbol string) (*marketdata.PriceHistory, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -historyDays)

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	history := &marketdata.PriceHistory{Symbol: symbol}

	iter := chart.Get(params)
	for iter.Next() {
		bar := iter.Bar()
		history.Prices = append(history.Prices, toFloat(bar.AdjClose))
		history.Volumes = append(history.Volumes, float64(bar.Volume))
	}
	if err := iter.Err(); err != nil {
		return nil, fetch.Transient(fmt.Errorf("chart for %s: %w", symbol, err))
	}

	if len(history.Prices) == 0 {
		return nil, marketdata.ErrNoData
	}

	return history, nil
}

// Quote fetches the current session snapshot.
func (c *Client) Quote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fetch.Transient(fmt.Errorf("quote for %s: %w", symbol, err))
	}
	if q == nil {
		return nil, marketdata.ErrNoData
	}

	return &marketdata.Quote{
		Price:     q.RegularMarketPrice,
		Open:      q.RegularMarketOpen,
		PrevClose: q.RegularMarketPreviousClose,
		High52W:   q.FiftyTwoWeekHigh,
		Low52W:    q.FiftyTwoWeekLow,
	}, nil
}

// Fundamentals fetches valuation multiples. Yahoo's equity surface carries
// no sector multiple, surprise history or short interest; those stay zero
// and score neutral downstream.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*marketdata.Fundamentals, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	eq, err := equity.Get(symbol)
	if err != nil {
		return nil, fetch.Transient(fmt.Errorf("equity for %s: %w", symbol, err))
	}
	if eq == nil {
		return nil, marketdata.ErrNoData
	}

	return &marketdata.Fundamentals{
		PER: eq.TrailingPE,
		PBR: eq.PriceToBook,
	}, nil
}

// toFloat lowers a decimal bar field into the float series the factor
// models consume.
func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
