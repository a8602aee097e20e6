package calculator

import "EquitySentinel/internal/model"

// CalculateRSI computes the RSI series using simple rolling means of gains and losses.
//
// The change at the first bar counts as zero, so the first computed value sits at
// index period-1. A window with no losses and some gains yields 100; a window with
// neither gains nor losses (flat price) is unavailable.
func CalculateRSI(closes []model.NullFloat, period int) []model.NullFloat {
	gains := make([]model.NullFloat, len(closes))
	losses := make([]model.NullFloat, len(closes))

	for i := range closes {
		cur, ok := closes[i].Get()
		if !ok {
			continue
		}
		change := 0.0
		if i > 0 {
			prev, ok := closes[i-1].Get()
			if !ok {
				continue
			}
			change = cur - prev
		}
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else if change < 0 {
			loss = -change
		}
		gains[i] = model.Some(gain)
		losses[i] = model.Some(loss)
	}

	avgGains := RollingMean(gains, period)
	avgLosses := RollingMean(losses, period)

	rsi := make([]model.NullFloat, len(closes))
	for i := range closes {
		avgGain, okGain := avgGains[i].Get()
		avgLoss, okLoss := avgLosses[i].Get()
		if !okGain || !okLoss {
			continue
		}
		rsi[i] = rsiFromAverages(avgGain, avgLoss)
	}
	return rsi
}

func rsiFromAverages(avgGain, avgLoss float64) model.NullFloat {
	if avgLoss == 0 {
		if avgGain > 0 {
			return model.Some(100)
		}
		return model.None()
	}
	rs := avgGain / avgLoss
	return model.Some(100.0 - 100.0/(1.0+rs))
}
