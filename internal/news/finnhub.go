package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/types"
)

const finnhubOp = "news.finnhub"

// FinnHubClient fetches market news from finnhub.io
type FinnHubClient struct {
	client   *finnhub.DefaultApiService
	category string
}

var _ interfaces.NewsFetcher = (*FinnHubClient)(nil)

// NewFinnHubClient creates a FinnHub news source. FinnHub has no "business"
// category, so it maps to "general". An empty baseURL keeps the public endpoint.
func NewFinnHubClient(apiKey, category, baseURL string, timeout time.Duration) *FinnHubClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	if baseURL != "" {
		cfg.Servers = finnhub.ServerConfigurations{{URL: baseURL}}
	}
	if category == "" || category == "business" {
		category = "general"
	}
	return &FinnHubClient{
		client:   finnhub.NewAPIClient(cfg).DefaultApi,
		category: category,
	}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

func (c *FinnHubClient) TopHeadlines(ctx context.Context, limit int) (types.NewsDigest, error) {
	res, httpResp, err := c.client.MarketNews(ctx).Category(c.category).Execute()
	if err != nil {
		kind := apperr.Network
		switch {
		case httpResp == nil:
		case httpResp.StatusCode >= 300:
			kind = apperr.FromStatus(httpResp.StatusCode)
		default:
			kind = apperr.Malformed
		}
		return nil, apperr.New(kind, finnhubOp, fmt.Errorf("market news: %w", err))
	}

	digest := make(types.NewsDigest, 0, limit)
	for _, n := range res {
		if limit > 0 && len(digest) >= limit {
			break
		}
		item := types.NewsItem{Description: "None"}
		if n.Headline != nil {
			item.Title = *n.Headline
		}
		if n.Summary != nil && *n.Summary != "" {
			item.Description = plainText(*n.Summary)
		}
		digest = append(digest, item)
	}
	return digest, nil
}
