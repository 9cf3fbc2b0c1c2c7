package interfaces

import (
	"context"

	"finance-assistant/internal/types"
)

// MarketData returns the daily price history of a ticker over a lookback period
// such as "1y". An unknown ticker yields an empty series, not an error.
type MarketData interface {
	History(ctx context.Context, ticker, period string) (types.PriceSeries, error)
	Name() string
}
