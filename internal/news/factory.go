package news

import (
	"fmt"
	"os"

	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/store"
)

// DigestSize is the number of headlines injected into the web prompt
const DigestSize = 5

// New returns the configured headline source. API keys come from the environment.
func New(cfg *store.Config) (interfaces.NewsFetcher, error) {
	switch cfg.News.Provider {
	case "NEWSAPI":
		return NewNewsAPI(cfg.News.BaseURL, os.Getenv("NEWS_API_KEY"), cfg.News.Category, cfg.News.Timeout), nil
	case "FINNHUB":
		return NewFinnHubClient(os.Getenv("FINNHUB_API_KEY"), cfg.News.Category, cfg.News.BaseURL, cfg.News.Timeout), nil
	case "SCRAPE":
		sc := cfg.News.Scrape
		return NewScraper(NewsSource{
			URL: sc.URL,
			Selectors: ArticleSelectors{
				ArticleContainer: sc.Container,
				Title:            sc.Title,
				Description:      sc.Description,
			},
		}, cfg.News.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported news provider: %s", cfg.News.Provider)
	}
}
