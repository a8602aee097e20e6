package strategy

import (
	"EquitySentinel/internal/model"

	"github.com/shopspring/decimal"
)

// Thresholds are the cut-offs used by the sub-signals and the ratio sanitizer.
type Thresholds struct {
	OversoldRSI        float64 `yaml:"oversold_rsi"`
	MaxPriceToEarnings float64 `yaml:"max_pe"`
	MaxPriceToBook     float64 `yaml:"max_pb"`
	RatioMin           float64 `yaml:"ratio_min"`
	RatioMax           float64 `yaml:"ratio_max"`
}

// DefaultThresholds returns RSI < 30, P/E < 10, P/B < 2 and ratios within [0, 1000].
func DefaultThresholds() Thresholds {
	return Thresholds{
		OversoldRSI:        30,
		MaxPriceToEarnings: 10,
		MaxPriceToBook:     2,
		RatioMin:           0,
		RatioMax:           1000,
	}
}

// SanitizeRatio keeps a ratio only if it is finite and within [0, 1000].
func SanitizeRatio(v model.NullFloat) model.NullFloat {
	return DefaultThresholds().SanitizeRatio(v)
}

// SanitizeRatio keeps a ratio only if it is finite and within [RatioMin, RatioMax].
func (t Thresholds) SanitizeRatio(v model.NullFloat) model.NullFloat {
	f, ok := v.Get()
	if !ok {
		return model.None()
	}
	if f < t.RatioMin || f > t.RatioMax {
		return model.None()
	}
	return model.Some(f)
}

// Sanitize applies SanitizeRatio to both ratios.
func (t Thresholds) Sanitize(r model.FundamentalRatios) model.FundamentalRatios {
	return model.FundamentalRatios{
		PriceToEarnings: t.SanitizeRatio(r.PriceToEarnings),
		PriceToBook:     t.SanitizeRatio(r.PriceToBook),
	}
}

// FormatRatio renders a sanitized ratio with two decimals, or "-" when unavailable.
func FormatRatio(v model.NullFloat) string {
	v = SanitizeRatio(v)
	f, ok := v.Get()
	if !ok {
		return "-"
	}
	return formatFixed(f)
}

func formatFixed(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(2)
}
