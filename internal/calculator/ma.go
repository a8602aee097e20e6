package calculator

import "EquitySentinel/internal/model"

// RollingMean computes the simple moving average over a trailing window.
// An entry is unavailable until the window holds `window` values, and whenever
// any value inside the window is unavailable.
func RollingMean(values []model.NullFloat, window int) []model.NullFloat {
	out := make([]model.NullFloat, len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			v, valid := values[j].Get()
			if !valid {
				ok = false
				break
			}
			sum += v
		}
		if ok {
			out[i] = model.Some(sum / float64(window))
		}
	}
	return out
}

func extractCloses(bars []model.OHLCV) []model.NullFloat {
	closes := make([]model.NullFloat, len(bars))
	for i, b := range bars {
		if b.Missing {
			continue
		}
		closes[i] = model.Some(b.Close)
	}
	return closes
}
