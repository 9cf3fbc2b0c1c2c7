package web

import (
	"bytes"
	"html/template"
	"net/http"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/assistant"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/types"

	"github.com/Rhymond/go-money"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	tabWeb      = "web"
	tabAdvisory = "advisory"
	tabStock    = "stock"

	authLogin    = "login"
	authRegister = "register"
)

var (
	markdown  = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitizer = bluemonday.UGCPolicy()
)

type exchangeView struct {
	Query  string
	Answer template.HTML
}

// view is everything the page template reads. Fields below the session block
// hold the output of the current request only.
type view struct {
	Session  types.Session
	AuthMode string
	Tab      string

	History   []exchangeView
	Income    string
	Savings   string
	Risks     []types.RiskTolerance
	MinAge    int
	MaxAge    int
	FormError string

	Error       string
	AdviceQuery string
	Advice      template.HTML
	Ticker      string
	Analysis    *assistant.StockAnalysis
	FigureJSON  template.JS
	Commentary  template.HTML
}

// render draws the page from the session plus the current request's output.
// It has no side effects, so rendering the same state twice gives the same page.
func render(c *gin.Context, status int, v view) {
	if v.Tab != tabAdvisory && v.Tab != tabStock {
		v.Tab = tabWeb
	}
	if v.AuthMode != authRegister {
		v.AuthMode = authLogin
	}

	v.History = make([]exchangeView, 0, len(v.Session.History))
	for _, ex := range v.Session.History {
		v.History = append(v.History, exchangeView{Query: ex.Query, Answer: toHTML(ex.Answer)})
	}
	v.Income = formatRand(v.Session.Context.Income)
	v.Savings = formatRand(v.Session.Context.Savings)
	v.Risks = types.RiskTolerances
	v.MinAge, v.MaxAge = types.MinAge, types.MaxAge

	if v.Analysis != nil {
		fig, err := v.Analysis.Figure.JSON()
		if err != nil {
			logger.ErrorWithErr(c.Request.Context(), "Failed to encode figure", err, "ticker", v.Analysis.Ticker)
		} else {
			v.FigureJSON = template.JS(fig)
		}
		v.Commentary = toHTML(v.Analysis.Commentary)
	}

	c.HTML(status, "page.html", v)
}

// toHTML renders model output as markdown, stripped of anything unsafe
func toHTML(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// formatRand formats an amount in South African rand, e.g. R50,000.00
func formatRand(amount decimal.Decimal) string {
	return money.New(amount.Shift(2).Round(0).IntPart(), money.ZAR).Display()
}

// statusFor maps a flow error to the status of the page that reports it
func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case "":
		return http.StatusOK
	case apperr.Input:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
