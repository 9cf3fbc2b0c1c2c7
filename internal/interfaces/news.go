package interfaces

import (
	"context"

	"finance-assistant/internal/types"
)

// NewsFetcher returns the current top business headlines
type NewsFetcher interface {
	TopHeadlines(ctx context.Context, limit int) (types.NewsDigest, error)
	Name() string
}
