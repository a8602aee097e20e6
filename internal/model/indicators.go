package model

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"time"
)

// NullFloat is a float64 that may be not yet available.
// A valid NullFloat always holds a finite number.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Some returns an available value. Non-finite input yields an unavailable value.
func Some(v float64) NullFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NullFloat{}
	}
	return NullFloat{Float64: v, Valid: true}
}

// None returns an unavailable value.
func None() NullFloat { return NullFloat{} }

// Get returns the value and whether it is available.
func (n NullFloat) Get() (float64, bool) { return n.Float64, n.Valid }

func (n NullFloat) String() string {
	if !n.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", n.Float64)
}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Float64, 'f', -1, 64)), nil
}

func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("decode NullFloat: %w", err)
	}
	*n = Some(v)
	return nil
}

// Value implements driver.Valuer so unavailable values are stored as NULL.
func (n NullFloat) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Float64, nil
}

// IndicatorSeries holds indicator values aligned one-to-one with the input bars.
type IndicatorSeries struct {
	Times      []time.Time
	Closes     []NullFloat
	RSI        []NullFloat
	EMAFast    []NullFloat
	EMASlow    []NullFloat
	MACDLine   []NullFloat
	SignalLine []NullFloat
}

// Len returns the number of aligned entries.
func (s *IndicatorSeries) Len() int { return len(s.Times) }

// Latest returns the values at the last index.
func (s *IndicatorSeries) Latest() LatestIndicators {
	n := s.Len()
	if n == 0 {
		return LatestIndicators{}
	}
	i := n - 1
	return LatestIndicators{
		Time:       s.Times[i],
		Close:      s.Closes[i],
		RSI:        s.RSI[i],
		EMAFast:    s.EMAFast[i],
		EMASlow:    s.EMASlow[i],
		MACDLine:   s.MACDLine[i],
		SignalLine: s.SignalLine[i],
	}
}

// LatestIndicators holds the most recent indicator values used for scoring.
type LatestIndicators struct {
	Time       time.Time `json:"time"`
	Close      NullFloat `json:"close"`
	RSI        NullFloat `json:"rsi"`
	EMAFast    NullFloat `json:"ema_fast"`
	EMASlow    NullFloat `json:"ema_slow"`
	MACDLine   NullFloat `json:"macd_line"`
	SignalLine NullFloat `json:"signal_line"`
}

// Histogram returns MACD minus signal when both are available.
func (l LatestIndicators) Histogram() NullFloat {
	if !l.MACDLine.Valid || !l.SignalLine.Valid {
		return None()
	}
	return Some(l.MACDLine.Float64 - l.SignalLine.Float64)
}
