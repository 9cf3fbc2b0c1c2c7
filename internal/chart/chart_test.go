package chart

import (
	"encoding/json"
	"testing"
	"time"

	"finance-assistant/internal/types"
)

func TestCandlestick(t *testing.T) {
	series := types.PriceSeries{Ticker: "AAPL", Period: "1y", Candles: []types.Candle{
		{Date: time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), Open: 187.15, High: 188.44, Low: 183.89, Close: 185.64},
		{Date: time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC), Open: 184.22, High: 185.88, Low: 183.43, Close: 184.25},
	}}

	fig := Candlestick(series, "AAPL")

	if fig.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", fig.Len())
	}
	tr := fig.Data[0]
	if tr.Type != "candlestick" || tr.X[0] != "2024-01-02" || tr.Close[1] != 184.25 || tr.High[0] != 188.44 {
		t.Errorf("trace = %+v", tr)
	}
	if fig.Layout.Title.Text != "AAPL Stock Price" || fig.Layout.XAxis.Title.Text != "Date" || fig.Layout.YAxis.Title.Text != "Price" {
		t.Errorf("layout = %+v", fig.Layout)
	}
}

func TestCandlestickEmptySeries(t *testing.T) {
	fig := Candlestick(types.PriceSeries{Ticker: "ZZZZ9"}, "ZZZZ9")

	if fig.Len() != 0 {
		t.Errorf("Len() = %d, want 0", fig.Len())
	}

	b, err := fig.JSON()
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Data []struct {
			X    []string  `json:"x"`
			Open []float64 `json:"open"`
		} `json:"data"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Data[0].X == nil || decoded.Data[0].Open == nil {
		t.Errorf("empty series should marshal to empty arrays, got %s", b)
	}
}
