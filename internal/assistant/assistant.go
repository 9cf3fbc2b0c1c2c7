// Package assistant holds the three user-facing flows. Handlers take the
// session or context explicitly and return new values instead of mutating state.
package assistant

import (
	"context"
	"strings"

	"finance-assistant/internal/chart"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/market"
	"finance-assistant/internal/news"
	"finance-assistant/internal/prompt"
	"finance-assistant/internal/types"
)

// StockAnalysis is the output of the stock tab
type StockAnalysis struct {
	Ticker     string
	Figure     chart.Figure
	Commentary string
}

// Assistant wires the fetchers, the prompt composer and the completer
type Assistant struct {
	news      interfaces.NewsFetcher
	market    interfaces.MarketData
	composer  *prompt.Composer
	completer interfaces.Completer
	period    string
}

type Option func(*Assistant)

// WithPeriod sets the history lookback used by AnalyzeStock
func WithPeriod(period string) Option {
	return func(a *Assistant) {
		a.period = period
	}
}

func New(newsFetcher interfaces.NewsFetcher, marketData interfaces.MarketData, composer *prompt.Composer, completer interfaces.Completer, opts ...Option) *Assistant {
	a := &Assistant{
		news:      newsFetcher,
		market:    marketData,
		composer:  composer,
		completer: completer,
		period:    market.DefaultPeriod,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AskWeb answers query from the current headlines and appends the exchange to the session history.
// A blank query returns sess unchanged. On error sess is returned unchanged as well.
func (a *Assistant) AskWeb(ctx context.Context, sess types.Session, query string) (types.Session, string, error) {
	if strings.TrimSpace(query) == "" {
		return sess, "", nil
	}

	digest, err := a.news.TopHeadlines(ctx, news.DigestSize)
	if err != nil {
		return sess, "", err
	}

	answer, err := a.completer.Complete(ctx, a.composer.Web(query, digest))
	if err != nil {
		return sess, "", err
	}

	return sess.WithExchange(query, answer), answer, nil
}

// Advise answers a private advisory question for the given user context. It never sees chat history.
func (a *Assistant) Advise(ctx context.Context, uc types.UserContext, query string) (string, error) {
	return a.completer.Complete(ctx, a.composer.Advisory(uc.Sentence(), query))
}

// AnalyzeStock charts the ticker's history and asks for commentary.
// The commentary prompt is built from the ticker alone.
func (a *Assistant) AnalyzeStock(ctx context.Context, ticker string) (StockAnalysis, error) {
	ticker = strings.TrimSpace(ticker)

	series, err := a.market.History(ctx, ticker, a.period)
	if err != nil {
		return StockAnalysis{Ticker: ticker}, err
	}

	analysis := StockAnalysis{
		Ticker: ticker,
		Figure: chart.Candlestick(series, ticker),
	}
	if series.Empty() {
		logger.Info(ctx, "No price history for ticker", "ticker", ticker, "period", a.period)
	}

	commentary, err := a.completer.Complete(ctx, a.composer.Commentary(ticker))
	if err != nil {
		return analysis, err
	}
	analysis.Commentary = commentary

	return analysis, nil
}
