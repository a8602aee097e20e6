package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"EquitySentinel/internal/model"
	"EquitySentinel/internal/trace"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	Client *resty.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(baseURL, proxyURL string, timeout time.Duration) *YahooFetcher {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{Client: client}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
// Price cells are pointers because Yahoo reports absent samples as null.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func cell(vals []*float64, i int) (float64, bool) {
	if i >= len(vals) || vals[i] == nil {
		return 0, false
	}
	return *vals[i], true
}

func (f *YahooFetcher) FetchBars(ctx context.Context, symbol, rng, interval string) (bars []model.OHLCV, err error) {
	ctx, span := trace.StartSpan(ctx, "yahoo.fetch_bars",
		attribute.String("symbol", symbol),
		attribute.String("range", rng),
		attribute.String("interval", interval))
	defer func() { trace.End(span, err) }()

	var chart yahooChart
	resp, err := f.Client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{"interval": interval, "range": rng}).
		SetResult(&chart).
		SetError(&chart).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote block returned")
	}
	quote := result.Indicators.Quote[0]
	bars = make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o, okOpen := cell(quote.Open, i)
		h, okHigh := cell(quote.High, i)
		l, okLow := cell(quote.Low, i)
		c, okClose := cell(quote.Close, i)
		if !okOpen || !okHigh || !okLow || !okClose {
			bars = append(bars, model.OHLCV{Time: time.Unix(ts, 0), Missing: true})
			continue
		}
		v, _ := cell(quote.Volume, i)
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return dedupe(bars), nil
}

// dedupe drops bars sharing a timestamp with the previous one, keeping the later sample.
func dedupe(bars []model.OHLCV) []model.OHLCV {
	if len(bars) < 2 {
		return bars
	}
	out := bars[:1]
	for _, b := range bars[1:] {
		last := &out[len(out)-1]
		if b.Time.Equal(last.Time) {
			*last = b
			continue
		}
		out = append(out, b)
	}
	return out
}
