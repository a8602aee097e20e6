package collector

import (
	"context"

	"EquitySentinel/internal/model"
)

// Fetcher defines the interface for fetching price history.
// rng and interval use Yahoo's vocabulary ("6mo", "1d", "2d", "1h").
type Fetcher interface {
	FetchBars(ctx context.Context, symbol, rng, interval string) ([]model.OHLCV, error)
	Name() string
}

// FundamentalsSource supplies valuation ratios for a symbol.
type FundamentalsSource interface {
	FetchRatios(ctx context.Context, symbol string) (model.FundamentalRatios, error)
}

// Summarizer writes a natural-language summary for an analysis.
type Summarizer interface {
	Summarize(ctx context.Context, a *model.Analysis) (string, error)
}
