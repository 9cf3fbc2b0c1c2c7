package news

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"finance-assistant/internal/api"
	"finance-assistant/internal/apperr"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/types"
)

const (
	newsAPIOp      = "news.newsapi"
	newsAPIBaseURL = "https://newsapi.org"
)

// NewsAPI fetches top headlines from newsapi.org
type NewsAPI struct {
	client   *api.Client
	apiKey   string
	category string
}

var _ interfaces.NewsFetcher = (*NewsAPI)(nil)

// NewNewsAPI creates a client for the top-headlines endpoint. An empty baseURL
// means the public service.
func NewNewsAPI(baseURL, apiKey, category string, timeout time.Duration) *NewsAPI {
	if baseURL == "" {
		baseURL = newsAPIBaseURL
	}
	return &NewsAPI{
		client: api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithTimeout(timeout),
			api.WithName(newsAPIOp),
			api.WithLogging(true),
		),
		apiKey:   apiKey,
		category: category,
	}
}

func (n *NewsAPI) Name() string {
	return "NewsAPI"
}

// TopHeadlines returns the first limit articles as title/description pairs.
// The response must carry an "articles" array.
func (n *NewsAPI) TopHeadlines(ctx context.Context, limit int) (types.NewsDigest, error) {
	if n.apiKey == "" {
		return nil, apperr.New(apperr.Auth, newsAPIOp, errors.New("NEWS_API_KEY missing"))
	}

	q := url.Values{}
	q.Set("category", n.category)
	q.Set("apiKey", n.apiKey)

	resp, err := n.client.GET(ctx, "/v2/top-headlines?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := resp.ParseJSON(&doc); err != nil {
		return nil, err
	}

	raw, err := jsonpath.Get("$.articles", doc)
	if err != nil {
		return nil, apperr.New(apperr.Malformed, newsAPIOp, fmt.Errorf("response has no articles: %w", err))
	}
	articles, ok := raw.([]interface{})
	if !ok {
		return nil, apperr.Newf(apperr.Malformed, newsAPIOp, "articles is %T, not an array", raw)
	}

	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}

	digest := make(types.NewsDigest, 0, len(articles))
	for i, a := range articles {
		m, ok := a.(map[string]interface{})
		if !ok {
			return nil, apperr.Newf(apperr.Malformed, newsAPIOp, "article %d is %T, not an object", i, a)
		}
		digest = append(digest, types.NewsItem{
			Title:       stringField(m, "title"),
			Description: stringField(m, "description"),
		})
	}

	logger.Debug(ctx, "Fetched top headlines", "source", n.Name(), "count", len(digest))
	return digest, nil
}
