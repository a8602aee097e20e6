package recorder

import (
	"time"

	"EquitySentinel/internal/model"
)

// AnalysisRecord is one persisted evaluation row.
type AnalysisRecord struct {
	ID              int64           `json:"id"`
	Timestamp       time.Time       `json:"timestamp"`
	Symbol          string          `json:"symbol"`
	Price           float64         `json:"price"`
	RSI             model.NullFloat `json:"rsi"`
	MACDLine        model.NullFloat `json:"macd_line"`
	SignalLine      model.NullFloat `json:"signal_line"`
	PriceToEarnings model.NullFloat `json:"price_to_earnings"`
	PriceToBook     model.NullFloat `json:"price_to_book"`
	Score           int             `json:"score"`
	Label           model.Label     `json:"label"`
	Source          string          `json:"source"` // "api", "cli", "scan", "telegram"
}

// NewAnalysisRecord flattens an analysis for storage.
func NewAnalysisRecord(a *model.Analysis, source string) *AnalysisRecord {
	return &AnalysisRecord{
		Timestamp:       a.AnalyzedAt,
		Symbol:          a.Symbol,
		Price:           a.Price,
		RSI:             a.Indicators.RSI,
		MACDLine:        a.Indicators.MACDLine,
		SignalLine:      a.Indicators.SignalLine,
		PriceToEarnings: a.Ratios.PriceToEarnings,
		PriceToBook:     a.Ratios.PriceToBook,
		Score:           a.Result.Score,
		Label:           a.Result.Label,
		Source:          source,
	}
}

// Recorder persists historical evaluations for analysis.
type Recorder interface {
	RecordAnalysis(rec *AnalysisRecord) error
	RecentAnalyses(symbol string, limit int) ([]AnalysisRecord, error)
	Close() error
}
