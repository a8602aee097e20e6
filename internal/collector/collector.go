package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"EquitySentinel/internal/calculator"
	"EquitySentinel/internal/model"
	"EquitySentinel/internal/strategy"
	"EquitySentinel/internal/trace"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// ErrNoData is returned when the data source has no bars for a symbol.
var ErrNoData = errors.New("no data for symbol")

// FallbackSummary is shown when the summarizer is missing or fails.
const FallbackSummary = "AI summary is not available right now."

// Options controls symbol handling and fetch windows.
type Options struct {
	SymbolSuffix  string            // appended to bare symbols, e.g. ".IS"
	Aliases       map[string]string // display aliases, e.g. XU100 -> BIST100
	HistoryRange  string
	Interval      string
	SummaryRange  string
	SummaryStep   string
	CSVRange      string
	MarketTickers []string
}

// DefaultOptions matches Borsa Istanbul symbols with six months of daily bars.
func DefaultOptions() Options {
	return Options{
		SymbolSuffix: ".IS",
		Aliases:      map[string]string{"XU100": "BIST100"},
		HistoryRange: "6mo",
		Interval:     "1d",
		SummaryRange: "2d",
		SummaryStep:  "1h",
		CSVRange:     "1y",
	}
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.OHLCV
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, symbol, _, _ string) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars[symbol], nil
	}
	return generateMockBars(m.Price, 120), nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	start := time.Now().Truncate(24*time.Hour).AddDate(0, 0, -count)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates data fetching, indicator computation and scoring.
type Collector struct {
	Fetcher      Fetcher
	Fundamentals FundamentalsSource
	Summarizer   Summarizer // optional
	Scorer       *strategy.Scorer
	Params       calculator.IndicatorParams
	Options      Options
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, fundamentals FundamentalsSource, summarizer Summarizer, scorer *strategy.Scorer, params calculator.IndicatorParams, opts Options) *Collector {
	return &Collector{
		Fetcher:      fetcher,
		Fundamentals: fundamentals,
		Summarizer:   summarizer,
		Scorer:       scorer,
		Params:       params,
		Options:      opts,
	}
}

// QuerySymbol normalizes user input into the data source's ticker.
func (c *Collector) QuerySymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || c.Options.SymbolSuffix == "" {
		return s
	}
	if strings.Contains(s, c.Options.SymbolSuffix) {
		return s
	}
	return s + c.Options.SymbolSuffix
}

// DisplaySymbol strips the exchange suffix and applies display aliases.
func (c *Collector) DisplaySymbol(symbol string) string {
	s := strings.TrimSuffix(strings.ToUpper(symbol), c.Options.SymbolSuffix)
	if alias, ok := c.Options.Aliases[s]; ok {
		return alias
	}
	return s
}

// Analyze fetches bars and ratios for symbol and scores them.
func (c *Collector) Analyze(ctx context.Context, symbol string) (a *model.Analysis, err error) {
	query := c.QuerySymbol(symbol)
	ctx, span := trace.StartSpan(ctx, "collector.analyze", attribute.String("symbol", query))
	defer func() { trace.End(span, err) }()

	if query == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrNoData)
	}

	bars, err := c.Fetcher.FetchBars(ctx, query, c.Options.HistoryRange, c.Options.Interval)
	if err != nil {
		return nil, fmt.Errorf("fetch bars %s: %w", query, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, query)
	}
	_, price, err := calculator.FirstLastClose(bars)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: every bar is missing", ErrNoData, query)
	}

	series, err := calculator.ComputeIndicators(bars, c.Params)
	if err != nil {
		return nil, fmt.Errorf("compute indicators %s: %w", query, err)
	}
	latest := series.Latest()

	var ratios model.FundamentalRatios
	if c.Fundamentals != nil {
		if r, err := c.Fundamentals.FetchRatios(ctx, query); err != nil {
			log.Printf("[WARN] fundamentals for %s unavailable: %v", query, err)
		} else {
			ratios = r
		}
	}

	a = &model.Analysis{
		Symbol:        query,
		DisplaySymbol: c.DisplaySymbol(query),
		Price:         price,
		Indicators:    latest,
		Ratios:        c.Scorer.Thresholds.Sanitize(ratios),
		Result:        c.Scorer.Evaluate(latest, ratios),
		Chart:         model.ChartPoints(bars),
		AnalyzedAt:    time.Now(),
	}
	if h, l, err := calculator.CalculateRange(bars); err != nil {
		log.Printf("[WARN] range for %s: %v", query, err)
	} else {
		a.High, a.Low = h, l
	}

	a.Summary = c.summarize(ctx, a)
	return a, nil
}

func (c *Collector) summarize(ctx context.Context, a *model.Analysis) string {
	if c.Summarizer == nil {
		return FallbackSummary
	}
	summary, err := c.Summarizer.Summarize(ctx, a)
	if err != nil {
		log.Printf("[WARN] summary for %s failed: %v", a.Symbol, err)
		return FallbackSummary
	}
	return summary
}

// MarketSummary snapshots the configured tickers in configured order.
// Tickers that fail to fetch are skipped.
func (c *Collector) MarketSummary(ctx context.Context) ([]model.TickerSnapshot, error) {
	ctx, span := trace.StartSpan(ctx, "collector.market_summary")
	defer span.End()

	out := make([]model.TickerSnapshot, 0, len(c.Options.MarketTickers))
	var lastErr error
	for _, ticker := range c.Options.MarketTickers {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		query := c.QuerySymbol(ticker)
		bars, err := c.Fetcher.FetchBars(ctx, query, c.Options.SummaryRange, c.Options.SummaryStep)
		if err != nil {
			log.Printf("[WARN] market summary %s: %v", query, err)
			lastErr = err
			continue
		}
		first, last, err := calculator.FirstLastClose(bars)
		if err != nil {
			continue
		}
		out = append(out, snapshot(c.DisplaySymbol(query), first, last))
	}
	if len(out) == 0 && lastErr != nil {
		return nil, fmt.Errorf("market summary: %w", lastErr)
	}
	return out, nil
}

func snapshot(display string, first, last float64) model.TickerSnapshot {
	change := calculator.PercentChange(last, first)
	color := "gray"
	switch {
	case change > 0:
		color = "green"
	case change < 0:
		color = "red"
	}
	sign := ""
	if change >= 0 {
		sign = "+"
	}
	return model.TickerSnapshot{
		Symbol: display,
		Price:  humanize.FormatFloat("#,###.##", last),
		Change: sign + decimal.NewFromFloat(change).StringFixed(2) + "%",
		Color:  color,
	}
}

// History fetches the export window of daily bars for symbol.
func (c *Collector) History(ctx context.Context, symbol string) ([]model.OHLCV, error) {
	query := c.QuerySymbol(symbol)
	bars, err := c.Fetcher.FetchBars(ctx, query, c.Options.CSVRange, "1d")
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", query, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, query)
	}
	return bars, nil
}
