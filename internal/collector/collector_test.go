package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"EquitySentinel/internal/calculator"
	"EquitySentinel/internal/model"
	"EquitySentinel/internal/strategy"
)

type stubSummarizer struct {
	text string
	err  error
}

func (s *stubSummarizer) Summarize(_ context.Context, _ *model.Analysis) (string, error) {
	return s.text, s.err
}

func risingBars(n int, start float64) []model.OHLCV {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := range bars {
		p := start + float64(i)
		bars[i] = model.OHLCV{Time: t0.AddDate(0, 0, i), Open: p, High: p + 0.5, Low: p - 0.5, Close: p}
	}
	return bars
}

func newTestCollector(f Fetcher, fund FundamentalsSource, sum Summarizer) *Collector {
	opts := DefaultOptions()
	opts.MarketTickers = []string{"XU100", "THYAO", "AKBNK"}
	return NewCollector(f, fund, sum, strategy.DefaultScorer(), calculator.DefaultParams(), opts)
}

func TestAnalyze_RisingScenario(t *testing.T) {
	f := &MockFetcher{Bars: map[string][]model.OHLCV{"THYAO.IS": risingBars(20, 100)}}
	fund := &StaticFundamentals{Ratios: model.FundamentalRatios{
		PriceToEarnings: model.Some(8),
		PriceToBook:     model.Some(1.5),
	}}
	c := newTestCollector(f, fund, &stubSummarizer{text: "looks strong"})

	a, err := c.Analyze(context.Background(), " thyao ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Symbol != "THYAO.IS" || a.DisplaySymbol != "THYAO" {
		t.Errorf("expected THYAO.IS/THYAO, got %s/%s", a.Symbol, a.DisplaySymbol)
	}
	if a.Result.Score != 3 || a.Result.Label != model.LabelBuy {
		t.Errorf("expected 3/%s, got %d/%s", model.LabelBuy, a.Result.Score, a.Result.Label)
	}
	if a.Result.Oversold {
		t.Error("expected oversold=false on a rising series")
	}
	if rsi, ok := a.Indicators.RSI.Get(); !ok || rsi <= 70 {
		t.Errorf("expected RSI above 70, got %v", a.Indicators.RSI)
	}
	if a.Price != 119 {
		t.Errorf("expected price 119, got %.2f", a.Price)
	}
	if a.High != 119.5 || a.Low != 99.5 {
		t.Errorf("expected range 119.5/99.5, got %.2f/%.2f", a.High, a.Low)
	}
	if len(a.Chart) != 20 {
		t.Errorf("expected 20 chart points, got %d", len(a.Chart))
	}
	if a.Summary != "looks strong" {
		t.Errorf("expected summarizer text, got %q", a.Summary)
	}
}

func TestAnalyze_NoData(t *testing.T) {
	c := newTestCollector(&MockFetcher{Bars: map[string][]model.OHLCV{}}, nil, nil)
	_, err := c.Analyze(context.Background(), "NOPE")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestAnalyze_FetchError(t *testing.T) {
	c := newTestCollector(&MockFetcher{Err: errors.New("timeout")}, nil, nil)
	if _, err := c.Analyze(context.Background(), "THYAO"); err == nil {
		t.Error("expected error when fetch fails")
	}
}

func TestAnalyze_DegradesWithoutFundamentalsOrSummary(t *testing.T) {
	f := &MockFetcher{Bars: map[string][]model.OHLCV{"THYAO.IS": risingBars(20, 100)}}
	fund := &StaticFundamentals{Err: errors.New("quote unavailable")}
	c := newTestCollector(f, fund, &stubSummarizer{err: errors.New("llm down")})

	a, err := c.Analyze(context.Background(), "THYAO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Result.Score != 1 || !a.Result.BullishCross {
		t.Errorf("expected only the MACD sub-signal, got %+v", a.Result)
	}
	if a.Ratios.PriceToEarnings.Valid || a.Ratios.PriceToBook.Valid {
		t.Errorf("expected unavailable ratios, got %+v", a.Ratios)
	}
	if a.Summary != FallbackSummary {
		t.Errorf("expected fallback summary, got %q", a.Summary)
	}
}

func TestAnalyze_SanitizesRatiosForDisplay(t *testing.T) {
	f := &MockFetcher{Bars: map[string][]model.OHLCV{"THYAO.IS": risingBars(20, 100)}}
	fund := &StaticFundamentals{Ratios: model.FundamentalRatios{
		PriceToEarnings: model.Some(-4),
		PriceToBook:     model.Some(1500),
	}}
	c := newTestCollector(f, fund, nil)
	a, err := c.Analyze(context.Background(), "THYAO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Ratios.PriceToEarnings.Valid || a.Ratios.PriceToBook.Valid {
		t.Errorf("expected out-of-range ratios dropped, got %+v", a.Ratios)
	}
}

func TestSymbols(t *testing.T) {
	c := newTestCollector(&MockFetcher{}, nil, nil)
	tests := []struct{ in, query, display string }{
		{"thyao", "THYAO.IS", "THYAO"},
		{"THYAO.IS", "THYAO.IS", "THYAO"},
		{"xu100", "XU100.IS", "BIST100"},
	}
	for _, tt := range tests {
		q := c.QuerySymbol(tt.in)
		if q != tt.query {
			t.Errorf("%s: expected query %s, got %s", tt.in, tt.query, q)
		}
		if d := c.DisplaySymbol(q); d != tt.display {
			t.Errorf("%s: expected display %s, got %s", tt.in, tt.display, d)
		}
	}
}

func TestMarketSummary_KeepsOrderAndSkipsEmpty(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f := &MockFetcher{Bars: map[string][]model.OHLCV{
		"XU100.IS": {
			{Time: t0, Close: 100},
			{Time: t0.Add(time.Hour), Missing: true},
			{Time: t0.Add(2 * time.Hour), Close: 102.5},
		},
		"THYAO.IS": {
			{Time: t0, Close: 200},
			{Time: t0.Add(time.Hour), Close: 190},
		},
	}}
	c := newTestCollector(f, nil, nil)

	rows, err := c.MarketSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := []model.TickerSnapshot{
		{Symbol: "BIST100", Price: "102.50", Change: "+2.50%", Color: "green"},
		{Symbol: "THYAO", Price: "190.00", Change: "-5.00%", Color: "red"},
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}
}

func TestAnalyze_AllBarsMissing(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := &MockFetcher{Bars: map[string][]model.OHLCV{"GAP.IS": {
		{Time: t0, Missing: true},
		{Time: t0.AddDate(0, 0, 1), Missing: true},
	}}}
	c := newTestCollector(f, nil, nil)
	a, err := c.Analyze(context.Background(), "gap")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if a != nil {
		t.Errorf("expected no analysis, got %+v", a)
	}
}

func TestMarketSummary_ThousandsSeparator(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f := &MockFetcher{Bars: map[string][]model.OHLCV{"XU100.IS": {
		{Time: t0, Close: 10000},
		{Time: t0.Add(time.Hour), Close: 10234.5},
	}}}
	c := newTestCollector(f, nil, nil)
	c.Options.MarketTickers = []string{"XU100"}

	rows, err := c.MarketSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Price != "10,234.50" {
		t.Errorf("expected price 10,234.50, got %+v", rows)
	}
}

func TestMarketSummary_AllFailed(t *testing.T) {
	c := newTestCollector(&MockFetcher{Err: errors.New("down")}, nil, nil)
	if _, err := c.MarketSummary(context.Background()); err == nil {
		t.Error("expected error when every ticker fails")
	}
}

func TestHistory(t *testing.T) {
	f := &MockFetcher{Bars: map[string][]model.OHLCV{"THYAO.IS": risingBars(3, 10)}}
	c := newTestCollector(f, nil, nil)
	bars, err := c.History(context.Background(), "thyao")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 3 {
		t.Errorf("expected 3 bars, got %d", len(bars))
	}
	if _, err := c.History(context.Background(), "none"); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}
