package model

import "time"

// Label is the discrete signal strength derived from a score.
type Label string

const (
	LabelStrongSell Label = "STRONG_SELL"
	LabelSell       Label = "SELL"
	LabelNeutral    Label = "NEUTRAL"
	LabelBuy        Label = "BUY"
	LabelStrongBuy  Label = "STRONG_BUY"
)

// FundamentalRatios are externally supplied valuation ratios.
type FundamentalRatios struct {
	PriceToEarnings NullFloat `json:"price_to_earnings"`
	PriceToBook     NullFloat `json:"price_to_book"`
}

// FactorScore represents a single sub-signal's result.
type FactorScore struct {
	Name       string `json:"name"`
	Hit        bool   `json:"hit"`
	Commentary string `json:"commentary"`
}

// ScoreResult is the final output of the scorer.
type ScoreResult struct {
	Score         int           `json:"score"`
	Label         Label         `json:"label"`
	Oversold      bool          `json:"oversold"`
	BullishCross  bool          `json:"bullish_cross"`
	CheapEarnings bool          `json:"cheap_earnings"`
	CheapBook     bool          `json:"cheap_book"`
	Factors       []FactorScore `json:"factors"`
}

// Analysis is everything produced for one symbol evaluation.
type Analysis struct {
	Symbol        string            `json:"symbol"`
	DisplaySymbol string            `json:"display_symbol"`
	Price         float64           `json:"price"`
	High          float64           `json:"period_high"`
	Low           float64           `json:"period_low"`
	Indicators    LatestIndicators  `json:"indicators"`
	Ratios        FundamentalRatios `json:"ratios"`
	Result        ScoreResult       `json:"result"`
	Chart         []ChartPoint      `json:"chart"`
	Summary       string            `json:"summary"`
	AnalyzedAt    time.Time         `json:"analyzed_at"`
}
