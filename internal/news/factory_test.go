package news

import (
	"testing"

	"finance-assistant/internal/store"
)

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"NEWSAPI", "NewsAPI"},
		{"FINNHUB", "FinnHub"},
		{"SCRAPE", "news.example.com"},
	}
	for _, tt := range tests {
		cfg := store.DefaultConfig()
		cfg.News.Provider = tt.provider
		cfg.News.Scrape.URL = "https://news.example.com/business"
		cfg.News.Scrape.Container = "article"
		cfg.News.Scrape.Title = "h3"

		f, err := New(cfg)
		if err != nil {
			t.Fatalf("New(%s) error = %v", tt.provider, err)
		}
		if f.Name() != tt.want {
			t.Errorf("New(%s).Name() = %q, want %q", tt.provider, f.Name(), tt.want)
		}
	}

	cfg := store.DefaultConfig()
	cfg.News.Provider = "RSS"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for unsupported provider")
	}
}
