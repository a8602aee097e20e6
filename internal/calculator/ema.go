package calculator

import "EquitySentinel/internal/model"

// CalculateEMA computes the exponential moving average with smoothing span `span`.
// The first available value seeds the average (no warm-up gap). Unavailable inputs
// produce unavailable outputs while the running average carries over the gap.
func CalculateEMA(values []model.NullFloat, span int) []model.NullFloat {
	out := make([]model.NullFloat, len(values))
	if span <= 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)

	var ema float64
	seeded := false
	for i, nv := range values {
		v, ok := nv.Get()
		if !ok {
			continue
		}
		if !seeded {
			ema = v
			seeded = true
		} else {
			// ema + α(v-ema) equals v·α + ema·(1-α) and stays exact on flat input.
			ema += alpha * (v - ema)
		}
		out[i] = model.Some(ema)
	}
	return out
}
