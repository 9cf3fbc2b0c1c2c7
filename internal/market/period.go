package market

import (
	"time"

	"finance-assistant/internal/apperr"
)

// DefaultPeriod is the lookback used when none is given
const DefaultPeriod = "1y"

// periods maps the supported lookback strings to their start date relative to now.
var periods = map[string]func(now time.Time) time.Time{
	"1d":  func(now time.Time) time.Time { return now.AddDate(0, 0, -1) },
	"5d":  func(now time.Time) time.Time { return now.AddDate(0, 0, -5) },
	"1mo": func(now time.Time) time.Time { return now.AddDate(0, -1, 0) },
	"3mo": func(now time.Time) time.Time { return now.AddDate(0, -3, 0) },
	"6mo": func(now time.Time) time.Time { return now.AddDate(0, -6, 0) },
	"1y":  func(now time.Time) time.Time { return now.AddDate(-1, 0, 0) },
	"2y":  func(now time.Time) time.Time { return now.AddDate(-2, 0, 0) },
	"5y":  func(now time.Time) time.Time { return now.AddDate(-5, 0, 0) },
	"10y": func(now time.Time) time.Time { return now.AddDate(-10, 0, 0) },
	"ytd": func(now time.Time) time.Time { return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()) },
	"max": func(time.Time) time.Time { return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC) },
}

// ValidatePeriod rejects lookback strings no provider understands
func ValidatePeriod(period string) error {
	if _, ok := periods[period]; !ok {
		return apperr.Newf(apperr.Input, "market", "unsupported period %q", period)
	}
	return nil
}

// PeriodStart returns the first day covered by period, counted back from now
func PeriodStart(period string, now time.Time) (time.Time, error) {
	f, ok := periods[period]
	if !ok {
		return time.Time{}, ValidatePeriod(period)
	}
	return f(now), nil
}
