package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"EquitySentinel/internal/model"
)

func TestWriteBarsCSV(t *testing.T) {
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := []model.OHLCV{
		{Time: t0, Open: 10, High: 11, Low: 9.5, Close: 10.25, Volume: 1200},
		{Time: t0.AddDate(0, 0, 1), Missing: true},
	}
	var buf bytes.Buffer
	if err := WriteBarsCSV(&buf, bars); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "date,open,high,low,close,volume" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "2024-01-02T00:00:00Z,10,11,9.5,10.25,1200" {
		t.Errorf("unexpected row %q", lines[1])
	}
	if lines[2] != "2024-01-03T00:00:00Z,,,,," {
		t.Errorf("expected empty cells for missing bar, got %q", lines[2])
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("THYAO"); got != "THYAO_analysis.csv" {
		t.Errorf("expected THYAO_analysis.csv, got %s", got)
	}
}
