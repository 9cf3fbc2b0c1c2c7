// Package chart builds plotly figures from price history.
package chart

import (
	"encoding/json"
	"fmt"

	"finance-assistant/internal/types"
)

const dateLayout = "2006-01-02"

// Trace is a single plotly candlestick trace
type Trace struct {
	Type  string    `json:"type"`
	Name  string    `json:"name,omitempty"`
	X     []string  `json:"x"`
	Open  []float64 `json:"open"`
	High  []float64 `json:"high"`
	Low   []float64 `json:"low"`
	Close []float64 `json:"close"`
}

type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title Title  `json:"title"`
	Type  string `json:"type,omitempty"`
}

type Layout struct {
	Title Title `json:"title"`
	XAxis Axis  `json:"xaxis"`
	YAxis Axis  `json:"yaxis"`
}

// Figure is a plotly figure, drawn in the browser by plotly.js
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Candlestick draws series as one candlestick trace. An empty series gives an empty trace.
func Candlestick(series types.PriceSeries, ticker string) Figure {
	n := len(series.Candles)
	tr := Trace{
		Type:  "candlestick",
		Name:  ticker,
		X:     make([]string, 0, n),
		Open:  make([]float64, 0, n),
		High:  make([]float64, 0, n),
		Low:   make([]float64, 0, n),
		Close: make([]float64, 0, n),
	}
	for _, c := range series.Candles {
		tr.X = append(tr.X, c.Date.Format(dateLayout))
		tr.Open = append(tr.Open, c.Open)
		tr.High = append(tr.High, c.High)
		tr.Low = append(tr.Low, c.Low)
		tr.Close = append(tr.Close, c.Close)
	}

	return Figure{
		Data: []Trace{tr},
		Layout: Layout{
			Title: Title{Text: fmt.Sprintf("%s Stock Price", ticker)},
			XAxis: Axis{Title: Title{Text: "Date"}, Type: "date"},
			YAxis: Axis{Title: Title{Text: "Price"}},
		},
	}
}

// Len is the number of candles drawn
func (f Figure) Len() int {
	if len(f.Data) == 0 {
		return 0
	}
	return len(f.Data[0].X)
}

// JSON returns the figure in the form plotly.newPlot accepts
func (f Figure) JSON() ([]byte, error) {
	return json.Marshal(f)
}
