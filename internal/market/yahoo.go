package market

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"finance-assistant/internal/api"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/types"
)

const (
	yahooOp      = "market.yahoo"
	yahooBaseURL = "https://query1.finance.yahoo.com"
)

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				GmtOffset int    `json:"gmtoffset"`
			} `json:"meta"`
			Timestamps []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Yahoo reads daily history from the Yahoo Finance chart endpoint
type Yahoo struct {
	client *api.Client
}

var _ interfaces.MarketData = (*Yahoo)(nil)

// NewYahoo creates a Yahoo chart client. An empty baseURL means the public service.
func NewYahoo(baseURL string, timeout time.Duration) *Yahoo {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	return &Yahoo{
		client: api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithTimeout(timeout),
			api.WithName(yahooOp),
			api.WithLogging(true),
		),
	}
}

func (y *Yahoo) Name() string {
	return "Yahoo"
}

// History returns one candle per trading day. Unknown tickers yield an empty series.
func (y *Yahoo) History(ctx context.Context, ticker, period string) (types.PriceSeries, error) {
	ticker = normalizeTicker(ticker)
	if period == "" {
		period = DefaultPeriod
	}
	series := types.PriceSeries{Ticker: ticker, Period: period}

	if err := ValidatePeriod(period); err != nil {
		return series, err
	}
	if ticker == "" {
		return series, nil
	}

	path := fmt.Sprintf("/v8/finance/chart/%s?range=%s&interval=1d", url.PathEscape(ticker), url.QueryEscape(period))
	resp, err := y.client.GET(ctx, path, api.YahooFinanceHeaders())
	if err != nil {
		if api.StatusCode(err) == 404 {
			logger.Info(ctx, "Ticker not found, returning empty series", "ticker", ticker)
			return series, nil
		}
		return series, err
	}

	var chart yahooChartResponse
	if err := resp.ParseJSON(&chart); err != nil {
		return series, err
	}
	if chart.Chart.Error != nil || len(chart.Chart.Result) == 0 {
		return series, nil
	}

	res := chart.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return series, nil
	}
	q := res.Indicators.Quote[0]
	loc := time.FixedZone("exchange", res.Meta.GmtOffset)

	for i, ts := range res.Timestamps {
		open, ok1 := at(q.Open, i)
		high, ok2 := at(q.High, i)
		low, ok3 := at(q.Low, i)
		cls, ok4 := at(q.Close, i)
		if !(ok1 && ok2 && ok3 && ok4) {
			continue
		}
		var vol int64
		if i < len(q.Volume) && q.Volume[i] != nil {
			vol = *q.Volume[i]
		}
		series.Candles = append(series.Candles, types.Candle{
			Date:   time.Unix(ts, 0).In(loc),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  cls,
			Volume: vol,
		})
	}

	return series, nil
}

func at(xs []*float64, i int) (float64, bool) {
	if i >= len(xs) || xs[i] == nil {
		return 0, false
	}
	return *xs[i], true
}

func normalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

