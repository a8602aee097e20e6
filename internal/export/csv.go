package export

import (
	"fmt"
	"io"
	"strconv"

	"EquitySentinel/internal/model"

	"github.com/gocarina/gocsv"
)

// barRow is one CSV line. Cells are strings so missing bars export as empty cells.
type barRow struct {
	Date   string `csv:"date"`
	Open   string `csv:"open"`
	High   string `csv:"high"`
	Low    string `csv:"low"`
	Close  string `csv:"close"`
	Volume string `csv:"volume"`
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteBarsCSV writes bars with a header row.
func WriteBarsCSV(w io.Writer, bars []model.OHLCV) error {
	rows := make([]*barRow, 0, len(bars))
	for _, b := range bars {
		row := &barRow{Date: b.Time.UTC().Format("2006-01-02T15:04:05Z")}
		if !b.Missing {
			row.Open = num(b.Open)
			row.High = num(b.High)
			row.Low = num(b.Low)
			row.Close = num(b.Close)
			row.Volume = num(b.Volume)
		}
		rows = append(rows, row)
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// FileName returns the attachment name for a symbol export.
func FileName(displaySymbol string) string {
	return displaySymbol + "_analysis.csv"
}
