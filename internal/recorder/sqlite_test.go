package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"EquitySentinel/internal/model"
)

func TestSQLiteRecorder_RoundTripKeepsUnavailable(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	t0 := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	a := &model.Analysis{
		Symbol:     "THYAO.IS",
		Price:      280.5,
		AnalyzedAt: t0,
		Indicators: model.LatestIndicators{
			RSI:        model.None(),
			MACDLine:   model.Some(1.25),
			SignalLine: model.Some(0.75),
		},
		Ratios: model.FundamentalRatios{PriceToEarnings: model.Some(4.2)},
		Result: model.ScoreResult{Score: 2, Label: model.LabelNeutral},
	}
	if err := r.RecordAnalysis(NewAnalysisRecord(a, "scan")); err != nil {
		t.Fatalf("record: %v", err)
	}
	a.AnalyzedAt = t0.Add(24 * time.Hour)
	a.Result = model.ScoreResult{Score: 3, Label: model.LabelBuy}
	if err := r.RecordAnalysis(NewAnalysisRecord(a, "api")); err != nil {
		t.Fatalf("record: %v", err)
	}

	recs, err := r.RecentAnalyses("THYAO.IS", 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Label != model.LabelBuy || recs[0].Source != "api" {
		t.Errorf("expected newest record first, got %+v", recs[0])
	}
	if recs[1].RSI.Valid {
		t.Errorf("expected NULL rsi to stay unavailable, got %v", recs[1].RSI)
	}
	if recs[1].MACDLine.Float64 != 1.25 || recs[1].PriceToEarnings.Float64 != 4.2 {
		t.Errorf("unexpected values %+v", recs[1])
	}
	if recs[1].PriceToBook.Valid {
		t.Errorf("expected NULL pb, got %v", recs[1].PriceToBook)
	}

	if recs, _ := r.RecentAnalyses("AKBNK.IS", 10); len(recs) != 0 {
		t.Errorf("expected no records for other symbol, got %d", len(recs))
	}
}
