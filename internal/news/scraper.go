package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/types"
)

const scraperOp = "news.scrape"

// NewsSource defines a headlines page and how to read it
type NewsSource struct {
	Name      string
	URL       string
	Selectors ArticleSelectors
}

// ArticleSelectors defines CSS selectors for extracting headline data
type ArticleSelectors struct {
	ArticleContainer string
	Title            string
	Description      string
}

// Scraper reads headlines from a single HTML page
type Scraper struct {
	source  NewsSource
	timeout time.Duration
}

var _ interfaces.NewsFetcher = (*Scraper)(nil)

// NewScraper creates a scraper for one configured headlines page
func NewScraper(source NewsSource, timeout time.Duration) *Scraper {
	if source.Name == "" {
		source.Name = getDomain(source.URL)
	}
	return &Scraper{source: source, timeout: timeout}
}

func (s *Scraper) Name() string {
	return s.source.Name
}

// TopHeadlines visits the page once and returns the first limit headlines in page order
func (s *Scraper) TopHeadlines(ctx context.Context, limit int) (types.NewsDigest, error) {
	digest := types.NewsDigest{}

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(s.source.URL)),
		colly.MaxDepth(1),
		colly.Async(false),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	sel := s.source.Selectors
	c.OnHTML(sel.ArticleContainer, func(e *colly.HTMLElement) {
		if limit > 0 && len(digest) >= limit {
			return
		}

		title := strings.TrimSpace(e.DOM.Find(sel.Title).First().Text())
		if title == "" {
			return
		}

		desc := "None"
		if sel.Description != "" {
			if d := strings.Join(strings.Fields(e.DOM.Find(sel.Description).First().Text()), " "); d != "" {
				desc = d
			}
		}

		digest = append(digest, types.NewsItem{Title: title, Description: desc})
	})

	status := 0
	c.OnError(func(r *colly.Response, err error) {
		status = r.StatusCode
		logger.ErrorWithErr(ctx, "Scraping error", err, "source", s.source.Name, "url", r.Request.URL.String())
	})

	if err := c.Visit(s.source.URL); err != nil {
		if ctx.Err() != nil {
			return nil, apperr.New(apperr.Network, scraperOp, ctx.Err())
		}
		kind := apperr.Network
		if status >= 400 {
			kind = apperr.FromStatus(status)
		}
		return nil, apperr.New(kind, scraperOp, fmt.Errorf("failed to visit %s: %w", s.source.URL, err))
	}
	c.Wait()

	if ctx.Err() != nil {
		return nil, apperr.New(apperr.Network, scraperOp, ctx.Err())
	}

	logger.Info(ctx, "Headline scraping completed", "source", s.source.Name, "articles", len(digest))
	return digest, nil
}

// getDomain extracts the host name from a URL
func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
