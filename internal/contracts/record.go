package contracts

import (
	"fmt"
	"time"
)

// StockRecord is the base per-symbol snapshot assembled from the four
// provider sub-fetches. Records are immutable after construction.
type StockRecord struct {
	Symbol string `json:"symbol"`

	// Chronological close prices (oldest first) with 1:1 aligned volumes.
	Prices  []float64 `json:"prices"`
	Volumes []float64 `json:"volumes"`

	// Quote fields (0 = unknown)
	Open    float64 `json:"open"`
	High52W float64 `json:"high_52w"`
	Low52W  float64 `json:"low_52w"`

	// Valuation (0 = unknown)
	PER       float64 `json:"per"`
	PBR       float64 `json:"pbr"`
	SectorPER float64 `json:"sector_per"`

	// News (7-day window)
	NewsCount7D   int     `json:"news_count_7d"`
	NewsSentiment float64 `json:"news_sentiment"` // -1.0 ~ 1.0
}

// Validate checks the price/volume alignment invariant.
func (r *StockRecord) Validate() error {
	if len(r.Prices) > 0 && len(r.Volumes) > 0 && len(r.Prices) != len(r.Volumes) {
		return ValidationError{
			Field:   "volumes",
			Message: fmt.Sprintf("length %d does not match prices length %d", len(r.Volumes), len(r.Prices)),
		}
	}
	return nil
}

// LastPrice returns the most recent close, or 0 for an empty series.
func (r *StockRecord) LastPrice() float64 {
	if len(r.Prices) == 0 {
		return 0
	}
	return r.Prices[len(r.Prices)-1]
}

// ExtendedStockRecord is a superset of StockRecord carrying the fields the
// conservative factor model needs.
type ExtendedStockRecord struct {
	StockRecord

	VIX                 float64 `json:"vix"`
	OpeningGapPct       float64 `json:"opening_gap_pct"`
	EarningsSurprisePct float64 `json:"earnings_surprise_pct"`
	AnalystRevision     float64 `json:"analyst_revision"` // 0~100, 50 neutral
	ShortInterestPct    float64 `json:"short_interest_pct"`
}

// Extend synthesizes an ExtendedStockRecord from a base record when no
// richer source exists. Default table:
//
//	VIX                 <- market snapshot
//	OpeningGapPct       <- (open - last close) / last close * 100, else 0
//	EarningsSurprisePct <- 0 (neutral)
//	AnalystRevision     <- 50 (neutral)
//	ShortInterestPct    <- 0 (neutral)
func Extend(base StockRecord, market MarketSnapshot) ExtendedStockRecord {
	ext := ExtendedStockRecord{
		StockRecord:     base,
		VIX:             market.VIX,
		AnalystRevision: 50,
	}

	if base.Open > 0 && base.LastPrice() > 0 {
		ext.OpeningGapPct = (base.Open - base.LastPrice()) / base.LastPrice() * 100
	}

	return ext
}

// MarketSnapshot is the market context a scoring run was produced under.
type MarketSnapshot struct {
	VIX    float64   `json:"vix"`
	Regime string    `json:"regime"`
	AsOf   time.Time `json:"as_of"`
}
