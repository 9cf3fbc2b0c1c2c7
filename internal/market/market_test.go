package market

import (
	"context"
	"strings"
	"testing"

	"finance-assistant/internal/store"
)

func TestInstrumentMapper(t *testing.T) {
	im := newInstrumentMapper()
	im.addMapping("RELIANCE", 738561)
	im.addMapping("INFY", 408065)

	if tok, ok := im.getToken("RELIANCE"); !ok || tok != 738561 {
		t.Errorf("getToken(RELIANCE) = %d, %v", tok, ok)
	}
	if _, ok := im.getToken("ZZZZ9"); ok {
		t.Error("expected unknown symbol to be absent")
	}
	if im.len() != 2 {
		t.Errorf("len() = %d, want 2", im.len())
	}
}

func TestBlankTickerSkipsProvider(t *testing.T) {
	y := NewYahoo("http://127.0.0.1:1", 0)
	series, err := y.History(context.Background(), "   ", "")
	if err != nil || !series.Empty() || series.Period != DefaultPeriod {
		t.Errorf("blank ticker: series=%+v err=%v", series, err)
	}
}

func TestNew(t *testing.T) {
	for _, provider := range []string{"YAHOO", "KITE", "ALPACA"} {
		cfg := store.DefaultConfig()
		cfg.Market.Provider = provider
		src, err := New(cfg)
		if err != nil {
			t.Fatalf("New(%s) error = %v", provider, err)
		}
		if src.Name() == "" {
			t.Errorf("New(%s) returned an unnamed source", provider)
		}
	}

	cfg := store.DefaultConfig()
	cfg.Market.Provider = "BLOOMBERG"
	if _, err := New(cfg); err == nil {
		t.Error("expected an error for an unknown provider")
	}
}

func TestNewRejectsUnknownPeriod(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Market.Period = "1yr"
	_, err := New(cfg)
	if err == nil || !strings.Contains(err.Error(), "market.period") {
		t.Errorf("New() error = %v, want a market.period error", err)
	}
}
