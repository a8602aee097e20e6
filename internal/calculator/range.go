package calculator

import (
	"errors"
	"math"

	"EquitySentinel/internal/model"
)

// CalculateRange scans the bars and returns the highest high and lowest low,
// ignoring missing bars.
func CalculateRange(bars []model.OHLCV) (high, low float64, err error) {
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.Missing {
			continue
		}
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	if math.IsInf(high, 0) {
		return 0, 0, errors.New("no present bars provided")
	}
	return high, low, nil
}

// FirstLastClose returns the closes of the first and last present bars.
func FirstLastClose(bars []model.OHLCV) (first, last float64, err error) {
	found := false
	for _, b := range bars {
		if b.Missing {
			continue
		}
		if !found {
			first = b.Close
			found = true
		}
		last = b.Close
	}
	if !found {
		return 0, 0, errors.New("no present bars provided")
	}
	return first, last, nil
}

// PercentChange returns the change from prev to latest in percent, 0 when prev is 0.
func PercentChange(latest, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (latest - prev) / prev * 100
}
