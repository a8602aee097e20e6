package strategy

import (
	"fmt"

	"EquitySentinel/internal/model"
)

const (
	FactorOversold      = "RSI oversold"
	FactorBullishCross  = "MACD bullish cross"
	FactorCheapEarnings = "Low P/E"
	FactorCheapBook     = "Low P/B"
)

// scoreOversold hits when RSI is available and below the oversold threshold.
func scoreOversold(rsi model.NullFloat, t Thresholds) model.FactorScore {
	v, ok := rsi.Get()
	if !ok {
		return model.FactorScore{Name: FactorOversold, Commentary: "RSI unavailable"}
	}
	return model.FactorScore{
		Name:       FactorOversold,
		Hit:        v < t.OversoldRSI,
		Commentary: fmt.Sprintf("RSI=%.2f", v),
	}
}

// scoreBullishCross hits when the MACD line is above its signal line.
func scoreBullishCross(macdLine, signalLine model.NullFloat) model.FactorScore {
	m, okMACD := macdLine.Get()
	s, okSignal := signalLine.Get()
	if !okMACD || !okSignal {
		return model.FactorScore{Name: FactorBullishCross, Commentary: "MACD unavailable"}
	}
	return model.FactorScore{
		Name:       FactorBullishCross,
		Hit:        m > s,
		Commentary: fmt.Sprintf("MACD=%.2f signal=%.2f", m, s),
	}
}

// scoreCheapEarnings expects an already sanitized P/E.
func scoreCheapEarnings(pe model.NullFloat, t Thresholds) model.FactorScore {
	v, ok := pe.Get()
	if !ok {
		return model.FactorScore{Name: FactorCheapEarnings, Commentary: "P/E unavailable"}
	}
	return model.FactorScore{
		Name:       FactorCheapEarnings,
		Hit:        v > 0 && v < t.MaxPriceToEarnings,
		Commentary: "P/E=" + formatFixed(v),
	}
}

// scoreCheapBook expects an already sanitized P/B.
func scoreCheapBook(pb model.NullFloat, t Thresholds) model.FactorScore {
	v, ok := pb.Get()
	if !ok {
		return model.FactorScore{Name: FactorCheapBook, Commentary: "P/B unavailable"}
	}
	return model.FactorScore{
		Name:       FactorCheapBook,
		Hit:        v > 0 && v < t.MaxPriceToBook,
		Commentary: "P/B=" + formatFixed(v),
	}
}
