package market

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/types"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"
)

const kiteOp = "market.kite"

// Kite reads daily history for exchange-listed symbols through Kite Connect
type Kite struct {
	kc       *kiteconnect.Client
	exchange string
	now      func() time.Time

	mapper   *instrumentMapper
	loadMu   sync.Mutex
	loaded   bool
}

var _ interfaces.MarketData = (*Kite)(nil)

// NewKite creates a Kite history source for one exchange (NSE, BSE).
func NewKite(apiKey, accessToken, exchange, baseURL string) *Kite {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	if baseURL != "" {
		kc.SetBaseURI(baseURL)
	}
	return &Kite{
		kc:       kc,
		exchange: strings.ToUpper(exchange),
		now:      time.Now,
		mapper:   newInstrumentMapper(),
	}
}

func (k *Kite) Name() string {
	return "Kite"
}

// loadInstruments fills the symbol map from the exchange instrument dump. Only a
// successful load is kept; a failed one is attempted again on the next request.
func (k *Kite) loadInstruments(ctx context.Context) error {
	k.loadMu.Lock()
	defer k.loadMu.Unlock()
	if k.loaded {
		return nil
	}

	instruments, err := k.kc.GetInstrumentsByExchange(k.exchange)
	if err != nil {
		logger.Warn(ctx, "Failed to load Kite instruments", "exchange", k.exchange, "error", err)
		return classifyKite(err)
	}
	if len(instruments) == 0 {
		return apperr.Newf(apperr.Malformed, kiteOp, "empty instrument list for %s", k.exchange)
	}
	for _, inst := range instruments {
		k.mapper.addMapping(strings.ToUpper(inst.Tradingsymbol), inst.InstrumentToken)
	}
	k.loaded = true
	logger.Info(ctx, "Loaded Kite instruments", "exchange", k.exchange, "count", k.mapper.len())
	return nil
}

func (k *Kite) History(ctx context.Context, ticker, period string) (types.PriceSeries, error) {
	ticker = normalizeTicker(ticker)
	if period == "" {
		period = DefaultPeriod
	}
	series := types.PriceSeries{Ticker: ticker, Period: period}

	now := k.now()
	from, err := PeriodStart(period, now)
	if err != nil {
		return series, err
	}
	if ticker == "" {
		return series, nil
	}

	if err := k.loadInstruments(ctx); err != nil {
		return series, err
	}
	token, ok := k.mapper.getToken(ticker)
	if !ok {
		logger.Info(ctx, "Symbol not listed on exchange, returning empty series", "ticker", ticker, "exchange", k.exchange)
		return series, nil
	}

	data, err := k.kc.GetHistoricalData(token, "day", from, now, false, false)
	if err != nil {
		return series, classifyKite(err)
	}

	for _, d := range data {
		series.Candles = append(series.Candles, types.Candle{
			Date:   d.Date.Time,
			Open:   d.Open,
			High:   d.High,
			Low:    d.Low,
			Close:  d.Close,
			Volume: int64(d.Volume),
		})
	}
	return series, nil
}

func classifyKite(err error) error {
	var ke kiteconnect.Error
	if errors.As(err, &ke) {
		switch ke.ErrorType {
		case kiteconnect.TokenError, kiteconnect.PermissionError:
			return apperr.New(apperr.Auth, kiteOp, err)
		case kiteconnect.InputError:
			return apperr.New(apperr.Input, kiteOp, err)
		}
		if ke.Code > 0 {
			return apperr.New(apperr.FromStatus(ke.Code), kiteOp, err)
		}
	}
	return apperr.New(apperr.Network, kiteOp, err)
}
