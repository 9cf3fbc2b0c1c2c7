package marketobs

import (
	"context"

	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/types"
)

// observableMarket wraps a MarketData source with an operation timer
type observableMarket struct {
	source interfaces.MarketData
}

var _ interfaces.MarketData = (*observableMarket)(nil)

// Wrap wraps a market data source with observability middleware
func Wrap(source interfaces.MarketData) interfaces.MarketData {
	return &observableMarket{source: source}
}

func (om *observableMarket) Name() string {
	return om.source.Name()
}

func (om *observableMarket) History(ctx context.Context, ticker, period string) (types.PriceSeries, error) {
	timer := logger.StartOperation(ctx, "market.History", "source", om.source.Name(), "ticker", ticker, "period", period)

	series, err := om.source.History(timer.GetContext(), ticker, period)
	if err != nil {
		timer.EndWithError(err)
		return series, err
	}

	if series.Empty() {
		logger.Warn(ctx, "No price history", "ticker", ticker, "period", period)
	}
	timer.End("candles", len(series.Candles))
	return series, nil
}
