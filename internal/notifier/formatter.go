package notifier

import (
	"fmt"
	"html"
	"strings"

	"EquitySentinel/internal/model"
	"EquitySentinel/internal/strategy"

	"github.com/shopspring/decimal"
)

var labelIcons = map[model.Label]string{
	model.LabelStrongSell: "🔴",
	model.LabelSell:       "🔴",
	model.LabelNeutral:    "🟠",
	model.LabelBuy:        "🟡",
	model.LabelStrongBuy:  "🟢",
}

func price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatAnalysis formats an analysis into a Telegram message.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 <b>%s</b> | %s\n\n", html.EscapeString(a.DisplaySymbol), a.AnalyzedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Price: %s (range %s – %s)\n", price(a.Price), price(a.Low), price(a.High))
	fmt.Fprintf(&b, "P/E: %s | P/B: %s\n", strategy.FormatRatio(a.Ratios.PriceToEarnings), strategy.FormatRatio(a.Ratios.PriceToBook))
	fmt.Fprintf(&b, "RSI: %s | MACD: %s / %s\n\n", a.Indicators.RSI, a.Indicators.MACDLine, a.Indicators.SignalLine)

	b.WriteString("📈 <b>Signals:</b>\n")
	for _, f := range a.Result.Factors {
		mark := "✗"
		if f.Hit {
			mark = "✓"
		}
		fmt.Fprintf(&b, "  %s %s (%s)\n", mark, f.Name, html.EscapeString(f.Commentary))
	}
	fmt.Fprintf(&b, "\n%s <b>%s</b> | score %d/4\n", labelIcons[a.Result.Label], a.Result.Label, a.Result.Score)

	if a.Summary != "" {
		fmt.Fprintf(&b, "\n🤖 %s\n", html.EscapeString(a.Summary))
	}
	return b.String()
}

// FormatLabelChange announces a label transition found by the scanner.
func FormatLabelChange(a *model.Analysis, previous model.Label) string {
	from := string(previous)
	if from == "" {
		from = "new"
	}
	return fmt.Sprintf("🔔 <b>%s</b>: %s → %s %s (score %d/4, price %s)",
		html.EscapeString(a.DisplaySymbol), from, a.Result.Label, labelIcons[a.Result.Label], a.Result.Score, price(a.Price))
}

// FormatWatchlist lists watched symbols with their last label.
func FormatWatchlist(symbols []string, labels map[string]model.Label) string {
	if len(symbols) == 0 {
		return "Watchlist is empty. Add a symbol with /watch SYMBOL"
	}
	var b strings.Builder
	b.WriteString("👀 <b>Watchlist</b>\n\n")
	for _, s := range symbols {
		l, ok := labels[s]
		if !ok {
			fmt.Fprintf(&b, "• %s: not scanned yet\n", s)
			continue
		}
		fmt.Fprintf(&b, "• %s: %s %s\n", s, l, labelIcons[l])
	}
	return b.String()
}
