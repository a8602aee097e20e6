package collector

import (
	"context"
	"fmt"

	"EquitySentinel/internal/model"
	"EquitySentinel/internal/trace"

	"github.com/piquette/finance-go/equity"
	"go.opentelemetry.io/otel/attribute"
)

// EquityFundamentals reads trailing P/E and P/B from Yahoo via finance-go.
type EquityFundamentals struct{}

func NewEquityFundamentals() *EquityFundamentals { return &EquityFundamentals{} }

// FetchRatios returns the ratios for symbol. finance-go reports absent fields as 0,
// which is mapped to unavailable.
func (e *EquityFundamentals) FetchRatios(ctx context.Context, symbol string) (r model.FundamentalRatios, err error) {
	_, span := trace.StartSpan(ctx, "finance.fetch_ratios", attribute.String("symbol", symbol))
	defer func() { trace.End(span, err) }()

	if err := ctx.Err(); err != nil {
		return r, err
	}
	eq, err := equity.Get(symbol)
	if err != nil {
		return r, fmt.Errorf("equity %s: %w", symbol, err)
	}
	if eq == nil {
		return r, fmt.Errorf("equity %s: not found", symbol)
	}
	return model.FundamentalRatios{
		PriceToEarnings: nonZero(eq.TrailingPE),
		PriceToBook:     nonZero(eq.PriceToBook),
	}, nil
}

func nonZero(v float64) model.NullFloat {
	if v == 0 {
		return model.None()
	}
	return model.Some(v)
}

// StaticFundamentals returns fixed ratios for every symbol.
type StaticFundamentals struct {
	Ratios model.FundamentalRatios
	Err    error
}

func (s *StaticFundamentals) FetchRatios(_ context.Context, _ string) (model.FundamentalRatios, error) {
	return s.Ratios, s.Err
}
