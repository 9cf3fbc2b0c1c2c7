package market

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/types"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

const alpacaOp = "market.alpaca"

// Alpaca reads daily bars for US equities from the Alpaca market data API
type Alpaca struct {
	client *marketdata.Client
	now    func() time.Time
}

var _ interfaces.MarketData = (*Alpaca)(nil)

// NewAlpaca creates an Alpaca history source. The client's own retry loop on
// 429/500 is turned off: a negative limit stops after the first attempt.
func NewAlpaca(apiKey, apiSecret, baseURL string, timeout time.Duration) *Alpaca {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Alpaca{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:     apiKey,
			APISecret:  apiSecret,
			BaseURL:    baseURL,
			RetryLimit: -1,
			HTTPClient: &http.Client{Timeout: timeout},
		}),
		now: time.Now,
	}
}

func (a *Alpaca) Name() string {
	return "Alpaca"
}

func (a *Alpaca) History(ctx context.Context, ticker, period string) (types.PriceSeries, error) {
	ticker = normalizeTicker(ticker)
	if period == "" {
		period = DefaultPeriod
	}
	series := types.PriceSeries{Ticker: ticker, Period: period}

	now := a.now()
	start, err := PeriodStart(period, now)
	if err != nil {
		return series, err
	}
	if ticker == "" {
		return series, nil
	}

	bars, err := a.client.GetBars(ticker, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       now,
	})
	if err != nil {
		if isUnknownSymbol(err) {
			logger.Info(ctx, "Symbol rejected by Alpaca, returning empty series", "ticker", ticker)
			return series, nil
		}
		return series, classifyAlpaca(err)
	}

	for _, b := range bars {
		series.Candles = append(series.Candles, types.Candle{
			Date:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}
	return series, nil
}

func isUnknownSymbol(err error) bool {
	var apiErr *alpaca.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode < http.StatusInternalServerError &&
		strings.Contains(strings.ToLower(apiErr.Message), "invalid symbol")
}

func classifyAlpaca(err error) error {
	var apiErr *alpaca.APIError
	if errors.As(err, &apiErr) {
		return apperr.New(apperr.FromStatus(apiErr.StatusCode), alpacaOp, err)
	}
	return apperr.New(apperr.Network, alpacaOp, err)
}
