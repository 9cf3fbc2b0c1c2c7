package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NewsItem is one headline of a NewsDigest.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewsDigest is the ordered list of top headlines fed into the web prompt.
type NewsDigest []NewsItem

// Lines renders the digest as one "title: description" line per item.
func (d NewsDigest) Lines() string {
	lines := make([]string, 0, len(d))
	for _, it := range d {
		lines = append(lines, fmt.Sprintf("%s: %s", it.Title, it.Description))
	}
	return strings.Join(lines, "\n")
}

// Candle is one OHLCV row of a PriceSeries.
type Candle struct {
	Date                   time.Time
	Open, High, Low, Close float64
	Volume                 int64
}

// PriceSeries is the ticker history for one lookback period, oldest first.
type PriceSeries struct {
	Ticker  string
	Period  string
	Candles []Candle
}

// Empty reports whether the provider returned no rows.
func (p PriceSeries) Empty() bool {
	return len(p.Candles) == 0
}

// CompletionRequest is a single-sample chat completion call: one system and
// one user message with fixed sampling parameters.
type CompletionRequest struct {
	Flow        string  `json:"flow"`
	Model       string  `json:"model"`
	System      string  `json:"system"`
	User        string  `json:"user"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// Exchange is one question/answer pair of the web supplementation chat.
type Exchange struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// RiskTolerance is the user's declared appetite for risk.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "Low"
	RiskMedium RiskTolerance = "Medium"
	RiskHigh   RiskTolerance = "High"
)

// RiskTolerances lists the slider options in display order.
var RiskTolerances = []RiskTolerance{RiskLow, RiskMedium, RiskHigh}

// ParseRiskTolerance accepts any casing of Low, Medium or High.
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	for _, r := range RiskTolerances {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid risk tolerance %q: must be Low, Medium or High", s)
}

const (
	MinAge = 18
	MaxAge = 100
)

// MaxAmount bounds income and savings so they stay representable in cents.
var MaxAmount = decimal.NewFromInt(1_000_000_000_000)

// UserContext is the sidebar snapshot used by the private advisory flow.
type UserContext struct {
	Age           int             `json:"age"`
	Income        decimal.Decimal `json:"income"`
	Savings       decimal.Decimal `json:"savings"`
	RiskTolerance RiskTolerance   `json:"risk_tolerance"`
}

// DefaultUserContext returns the initial sidebar values.
func DefaultUserContext() UserContext {
	return UserContext{
		Age:           21,
		Income:        decimal.NewFromInt(50000),
		Savings:       decimal.NewFromInt(10000),
		RiskTolerance: RiskLow,
	}
}

// Validate checks the sidebar bounds.
func (u UserContext) Validate() error {
	if u.Age < MinAge || u.Age > MaxAge {
		return fmt.Errorf("age must be between %d and %d, got %d", MinAge, MaxAge, u.Age)
	}
	if u.Income.IsNegative() {
		return fmt.Errorf("income cannot be negative")
	}
	if u.Income.GreaterThan(MaxAmount) {
		return fmt.Errorf("income cannot exceed R%s", MaxAmount)
	}
	if u.Savings.IsNegative() {
		return fmt.Errorf("savings cannot be negative")
	}
	if u.Savings.GreaterThan(MaxAmount) {
		return fmt.Errorf("savings cannot exceed R%s", MaxAmount)
	}
	if _, err := ParseRiskTolerance(string(u.RiskTolerance)); err != nil {
		return err
	}
	return nil
}

// Sentence renders the context the way it is injected into the advisory prompt.
func (u UserContext) Sentence() string {
	return fmt.Sprintf("User is %d years old, with an annual income of R%s, current savings of R%s, and a %s risk tolerance.",
		u.Age, u.Income.String(), u.Savings.String(), strings.ToLower(string(u.RiskTolerance)))
}
