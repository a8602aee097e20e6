package calculator

import (
	"fmt"
	"math"
	"time"

	"EquitySentinel/internal/model"
)

// InvalidInputError reports a bar series or parameter set the engine cannot use.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid indicator input: " + e.Reason
}

func invalidf(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// IndicatorParams configures the lookbacks of the indicator engine.
type IndicatorParams struct {
	RSIPeriod  int `yaml:"rsi_period"`
	FastSpan   int `yaml:"macd_fast"`
	SlowSpan   int `yaml:"macd_slow"`
	SignalSpan int `yaml:"macd_signal"`
}

// DefaultParams returns RSI(14) and MACD(12, 26, 9).
func DefaultParams() IndicatorParams {
	return IndicatorParams{RSIPeriod: 14, FastSpan: 12, SlowSpan: 26, SignalSpan: 9}
}

// Validate checks that all lookbacks are positive and fast < slow.
func (p IndicatorParams) Validate() error {
	if p.RSIPeriod <= 0 {
		return invalidf("rsi period must be positive, got %d", p.RSIPeriod)
	}
	if p.FastSpan <= 0 || p.SlowSpan <= 0 || p.SignalSpan <= 0 {
		return invalidf("macd spans must be positive, got %d/%d/%d", p.FastSpan, p.SlowSpan, p.SignalSpan)
	}
	if p.FastSpan >= p.SlowSpan {
		return invalidf("macd fast span %d must be below slow span %d", p.FastSpan, p.SlowSpan)
	}
	return nil
}

// ComputeIndicators computes the RSI and MACD series for an ordered bar series.
func ComputeIndicators(bars []model.OHLCV, p IndicatorParams) (*model.IndicatorSeries, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := validateBars(bars); err != nil {
		return nil, err
	}

	times := make([]time.Time, len(bars))
	for i, b := range bars {
		times[i] = b.Time
	}
	closes := extractCloses(bars)
	macd := CalculateMACD(closes, p.FastSpan, p.SlowSpan, p.SignalSpan)

	return &model.IndicatorSeries{
		Times:      times,
		Closes:     closes,
		RSI:        CalculateRSI(closes, p.RSIPeriod),
		EMAFast:    macd.EMAFast,
		EMASlow:    macd.EMASlow,
		MACDLine:   macd.MACDLine,
		SignalLine: macd.SignalLine,
	}, nil
}

func validateBars(bars []model.OHLCV) error {
	if len(bars) == 0 {
		return invalidf("empty bar series")
	}
	for i, b := range bars {
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			return invalidf("bar %d: timestamp %s not after %s", i, b.Time.Format(time.RFC3339), bars[i-1].Time.Format(time.RFC3339))
		}
		if b.Missing {
			continue
		}
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
			return invalidf("bar %d: non-finite close", i)
		}
		if b.Close < 0 {
			return invalidf("bar %d: negative close %.4f", i, b.Close)
		}
	}
	return nil
}
