package model

import "time"

// OHLCV represents a single candlestick bar.
// Missing marks a bar the data source reported without prices (null cells).
type OHLCV struct {
	Time    time.Time
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  float64
	Missing bool
}

// ChartPoint is one candlestick in the shape the chart frontend expects.
type ChartPoint struct {
	X int64      `json:"x"` // unix milliseconds
	Y [4]float64 `json:"y"` // open, high, low, close
}

// ChartPoints converts bars to chart points, skipping missing bars.
func ChartPoints(bars []OHLCV) []ChartPoint {
	points := make([]ChartPoint, 0, len(bars))
	for _, b := range bars {
		if b.Missing {
			continue
		}
		points = append(points, ChartPoint{
			X: b.Time.UnixMilli(),
			Y: [4]float64{b.Open, b.High, b.Low, b.Close},
		})
	}
	return points
}

// TickerSnapshot is one row of the market summary strip.
type TickerSnapshot struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Change string `json:"change"`
	Color  string `json:"color"`
}
