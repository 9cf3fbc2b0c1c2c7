package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-assistant/internal/apperr"
)

const chartBody = `{"chart":{"result":[{"meta":{"symbol":"AAPL","gmtoffset":-14400},
"timestamp":[1704205800,1704292200,1704378600],
"indicators":{"quote":[{
"open":[187.15,null,182.15],
"high":[188.44,null,183.09],
"low":[183.89,null,180.88],
"close":[185.64,null,181.91],
"volume":[82488700,null,71983600]}]}}],"error":null}}`

func yahooServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("interval = %q, want 1d", r.URL.Query().Get("interval"))
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestYahooHistory(t *testing.T) {
	var gotPath, gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotRange = r.URL.Path, r.URL.Query().Get("range")
		w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL, time.Second)
	series, err := y.History(context.Background(), " aapl ", "1y")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if gotPath != "/v8/finance/chart/AAPL" || gotRange != "1y" {
		t.Errorf("request = %s range=%s", gotPath, gotRange)
	}
	if series.Ticker != "AAPL" || series.Period != "1y" {
		t.Errorf("series identity = %s/%s", series.Ticker, series.Period)
	}
	if len(series.Candles) != 2 {
		t.Fatalf("expected null row to be skipped, got %d candles", len(series.Candles))
	}
	first := series.Candles[0]
	if first.Open != 187.15 || first.Close != 185.64 || first.Volume != 82488700 {
		t.Errorf("first candle = %+v", first)
	}
	if d := first.Date.Format("2006-01-02"); d != "2024-01-02" {
		t.Errorf("first date = %s, want 2024-01-02", d)
	}
}

func TestYahooUnknownTickerIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`},
		{"error result", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data"}}}`},
		{"no rows", http.StatusOK, `{"chart":{"result":[{"meta":{},"timestamp":[],"indicators":{"quote":[{}]}}],"error":null}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := NewYahoo(yahooServer(t, tt.status, tt.body).URL, time.Second)
			series, err := y.History(context.Background(), "ZZZZ9", "1y")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !series.Empty() {
				t.Errorf("expected empty series, got %d candles", len(series.Candles))
			}
		})
	}
}

func TestYahooErrors(t *testing.T) {
	y := NewYahoo(yahooServer(t, http.StatusUnauthorized, `{}`).URL, time.Second)
	if _, err := y.History(context.Background(), "AAPL", "1y"); apperr.KindOf(err) != apperr.Auth {
		t.Errorf("401 kind = %v, want Auth", apperr.KindOf(err))
	}

	y = NewYahoo(yahooServer(t, http.StatusOK, `{"chart":`).URL, time.Second)
	if _, err := y.History(context.Background(), "AAPL", "1y"); apperr.KindOf(err) != apperr.Malformed {
		t.Errorf("truncated body kind = %v, want Malformed", apperr.KindOf(err))
	}

	if _, err := y.History(context.Background(), "AAPL", "7w"); apperr.KindOf(err) != apperr.Input {
		t.Errorf("bad period kind = %v, want Input", apperr.KindOf(err))
	}
}

func TestYahooNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	y := NewYahoo(url, time.Second)
	if _, err := y.History(context.Background(), "AAPL", "1y"); apperr.KindOf(err) != apperr.Network {
		t.Errorf("closed server kind = %v, want Network", apperr.KindOf(err))
	}
}
