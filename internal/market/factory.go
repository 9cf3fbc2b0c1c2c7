package market

import (
	"fmt"
	"os"

	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/store"
)

// New returns the configured price-history source. Credentials come from the environment.
// An unsupported market.period fails here, at startup, rather than on every analysis.
func New(cfg *store.Config) (interfaces.MarketData, error) {
	if err := ValidatePeriod(cfg.Market.Period); err != nil {
		return nil, fmt.Errorf("invalid market.period: %w", err)
	}
	switch cfg.Market.Provider {
	case "YAHOO":
		return NewYahoo(cfg.Market.BaseURL, cfg.Market.Timeout), nil
	case "KITE":
		return NewKite(os.Getenv("KITE_API_KEY"), os.Getenv("KITE_ACCESS_TOKEN"), cfg.Market.Exchange, cfg.Market.BaseURL), nil
	case "ALPACA":
		return NewAlpaca(os.Getenv("ALPACA_API_KEY"), os.Getenv("ALPACA_API_SECRET"), cfg.Market.BaseURL, cfg.Market.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported market provider: %s", cfg.Market.Provider)
	}
}
