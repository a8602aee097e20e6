package calculator

import "EquitySentinel/internal/model"

// MACD holds the aligned MACD component series.
type MACD struct {
	EMAFast    []model.NullFloat
	EMASlow    []model.NullFloat
	MACDLine   []model.NullFloat
	SignalLine []model.NullFloat
}

// CalculateMACD computes the MACD line (fast EMA minus slow EMA) and its signal line.
func CalculateMACD(closes []model.NullFloat, fast, slow, signal int) MACD {
	emaFast := CalculateEMA(closes, fast)
	emaSlow := CalculateEMA(closes, slow)

	line := make([]model.NullFloat, len(closes))
	for i := range closes {
		f, okFast := emaFast[i].Get()
		s, okSlow := emaSlow[i].Get()
		if okFast && okSlow {
			line[i] = model.Some(f - s)
		}
	}

	return MACD{
		EMAFast:    emaFast,
		EMASlow:    emaSlow,
		MACDLine:   line,
		SignalLine: CalculateEMA(line, signal),
	}
}
