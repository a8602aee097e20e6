package strategy

import (
	"fmt"
	"strings"

	"EquitySentinel/internal/model"
)

// LabelPolicy maps a score of 0..4 to a label, index by score.
type LabelPolicy [5]model.Label

// FiveLevelLabels gives every score its own label. This is the default policy.
var FiveLevelLabels = LabelPolicy{
	model.LabelStrongSell,
	model.LabelSell,
	model.LabelNeutral,
	model.LabelBuy,
	model.LabelStrongBuy,
}

// LegacyLabels collapses scores 0 and 1 into SELL.
var LegacyLabels = LabelPolicy{
	model.LabelSell,
	model.LabelSell,
	model.LabelNeutral,
	model.LabelBuy,
	model.LabelStrongBuy,
}

// PolicyByName resolves a configured label policy name.
func PolicyByName(name string) (LabelPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "five-level", "five":
		return FiveLevelLabels, nil
	case "legacy":
		return LegacyLabels, nil
	default:
		return LabelPolicy{}, fmt.Errorf("unknown label policy %q", name)
	}
}

// Label maps a score to its label. Out-of-range scores are clamped.
func (p LabelPolicy) Label(score int) model.Label {
	if score < 0 {
		score = 0
	}
	if score >= len(p) {
		score = len(p) - 1
	}
	return p[score]
}

// Scorer combines the latest indicators with fundamental ratios.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	Thresholds Thresholds
	Labels     LabelPolicy
}

// NewScorer creates a Scorer.
func NewScorer(t Thresholds, labels LabelPolicy) *Scorer {
	return &Scorer{Thresholds: t, Labels: labels}
}

// DefaultScorer uses DefaultThresholds and FiveLevelLabels.
func DefaultScorer() *Scorer {
	return NewScorer(DefaultThresholds(), FiveLevelLabels)
}

// Evaluate scores the latest indicator values. It never fails.
func (s *Scorer) Evaluate(latest model.LatestIndicators, ratios model.FundamentalRatios) model.ScoreResult {
	return s.score(latest.RSI, latest.MACDLine, latest.SignalLine, ratios)
}

// Score evaluates the raw latest values with the default scorer.
func Score(rsi, macdLine, signalLine model.NullFloat, ratios model.FundamentalRatios) model.ScoreResult {
	return DefaultScorer().score(rsi, macdLine, signalLine, ratios)
}

func (s *Scorer) score(rsi, macdLine, signalLine model.NullFloat, ratios model.FundamentalRatios) model.ScoreResult {
	t := s.Thresholds
	ratios = t.Sanitize(ratios)

	factors := []model.FactorScore{
		scoreOversold(rsi, t),
		scoreBullishCross(macdLine, signalLine),
		scoreCheapEarnings(ratios.PriceToEarnings, t),
		scoreCheapBook(ratios.PriceToBook, t),
	}

	score := 0
	for _, f := range factors {
		if f.Hit {
			score++
		}
	}

	return model.ScoreResult{
		Score:         score,
		Label:         s.Labels.Label(score),
		Oversold:      factors[0].Hit,
		BullishCross:  factors[1].Hit,
		CheapEarnings: factors[2].Hit,
		CheapBook:     factors[3].Hit,
		Factors:       factors,
	}
}
