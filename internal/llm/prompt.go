package llm

import (
	"fmt"
	"strings"

	"EquitySentinel/internal/model"
	"EquitySentinel/internal/strategy"
)

// SummaryPrompt builds the single-paragraph commentary prompt for an analysis.
func SummaryPrompt(a *model.Analysis, language string) string {
	if language == "" {
		language = "English"
	}
	var b strings.Builder
	b.WriteString("You are an expert equity analyst covering both fundamental and technical analysis. ")
	fmt.Fprintf(&b, "Answer only in %s, in a single decisive paragraph of at most 60 words, interpreting these results:\n", language)
	fmt.Fprintf(&b, "Symbol: %s\n", a.DisplaySymbol)
	fmt.Fprintf(&b, "Algorithmic score (out of 4): %d (%s)\n", a.Result.Score, a.Result.Label)
	fmt.Fprintf(&b, "RSI: %s\n", a.Indicators.RSI)
	fmt.Fprintf(&b, "MACD line / signal: %s / %s\n", a.Indicators.MACDLine, a.Indicators.SignalLine)
	fmt.Fprintf(&b, "P/E: %s\n", strategy.FormatRatio(a.Ratios.PriceToEarnings))
	fmt.Fprintf(&b, "P/B: %s\n", strategy.FormatRatio(a.Ratios.PriceToBook))
	b.WriteString("State clearly that a P/E below 10 and a P/B below 2 are strong positive fundamental signals. ")
	b.WriteString("If a ratio is shown as '-', do not comment on it.")
	return b.String()
}

// ChatPrompt wraps a user question with the assistant persona.
func ChatPrompt(message, language string) string {
	if language == "" {
		language = "English"
	}
	return fmt.Sprintf("You are a stock market assistant. Reply in %s. %s", language, message)
}
