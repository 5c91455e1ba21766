package marketdata

import (
	"context"
	"errors"
)

// ErrNoData is the explicit "no data" marker a provider returns when a
// symbol has nothing for the requested operation.
var ErrNoData = errors.New("marketdata: no data")

// PriceHistory is a chronological daily series (oldest first).
type PriceHistory struct {
	Symbol  string
	Prices  []float64
	Volumes []float64
}

// Quote is the current session snapshot for a symbol.
type Quote struct {
	Price     float64
	Open      float64
	PrevClose float64
	High52W   float64
	Low52W    float64
}

// Fundamentals carries valuation and analyst-derived fields. Zero values
// mean "unknown" and degrade to neutral contributions downstream.
type Fundamentals struct {
	PER                 float64
	PBR                 float64
	SectorPER           float64
	EarningsSurprisePct float64
	AnalystRevision     float64 // 0~100, 50 neutral
	ShortInterestPct    float64
}

// NewsSummary aggregates recent coverage for a symbol.
type NewsSummary struct {
	Count7D   int
	Sentiment float64 // -1.0 ~ 1.0
}

// Provider is the market-data source behind the acquisition engine.
// Implementations return ErrNoData when a symbol has no payload for an
// operation; any wire schema stays behind this interface.
type Provider interface {
	History(ctx context.Context, symbol string) (*PriceHistory, error)
	Quote(ctx context.Context, symbol string) (*Quote, error)
	Fundamentals(ctx context.Context, symbol string) (*Fundamentals, error)
	News(ctx context.Context, symbol string) (*NewsSummary, error)
}
