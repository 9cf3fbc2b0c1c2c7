package newsobs

import (
	"context"

	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/trace"
	"finance-assistant/internal/types"
)

// observableFetcher wraps a NewsFetcher with logging & tracing
type observableFetcher struct {
	fetcher interfaces.NewsFetcher
}

var _ interfaces.NewsFetcher = (*observableFetcher)(nil)

// Wrap wraps a news fetcher with observability middleware
func Wrap(fetcher interfaces.NewsFetcher) interfaces.NewsFetcher {
	return &observableFetcher{fetcher: fetcher}
}

func (of *observableFetcher) Name() string {
	return of.fetcher.Name()
}

func (of *observableFetcher) TopHeadlines(ctx context.Context, limit int) (types.NewsDigest, error) {
	ctx, span := trace.StartSpan(ctx, "news.TopHeadlines")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching top headlines", "source", of.fetcher.Name(), "limit", limit)

	digest, err := of.fetcher.TopHeadlines(ctx, limit)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch headlines", err, "source", of.fetcher.Name())
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Headlines fetched", "source", of.fetcher.Name(), "count", len(digest))
	return digest, nil
}
