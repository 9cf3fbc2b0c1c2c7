package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/auth"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (s *Server) index(c *gin.Context) {
	sess, ok := s.loadSession(c)
	if !ok {
		return
	}
	if !sess.IsAuthenticated() {
		render(c, http.StatusOK, view{Session: sess, AuthMode: c.Query("auth")})
		return
	}
	render(c, http.StatusOK, view{Session: sess, Tab: c.Query("tab")})
}

func (s *Server) login(c *gin.Context) {
	defer s.lockSession(c)()

	sess, ok := s.loadSession(c)
	if !ok {
		return
	}

	name, err := s.auth.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		render(c, authStatus(err), view{Session: sess, AuthMode: authLogin, FormError: authMessage(err)})
		return
	}

	sess = s.rotate(c, sess).Login(name)
	if s.saveSession(c, sess) {
		redirect(c, "/")
	}
}

// register creates the account and signs the user in
func (s *Server) register(c *gin.Context) {
	defer s.lockSession(c)()

	sess, ok := s.loadSession(c)
	if !ok {
		return
	}

	name, err := s.auth.Register(c.Request.Context(), c.PostForm("username"), c.PostForm("password"), c.PostForm("confirm"))
	if err != nil {
		render(c, authStatus(err), view{Session: sess, AuthMode: authRegister, FormError: authMessage(err)})
		return
	}

	sess = s.rotate(c, sess).Login(name)
	if s.saveSession(c, sess) {
		redirect(c, "/")
	}
}

func (s *Server) logout(c *gin.Context) {
	defer s.lockSession(c)()

	sess, ok := s.loadSession(c)
	if !ok {
		return
	}
	if sess.IsAuthenticated() {
		logger.Auth(c.Request.Context(), sess.Username, "logout")
	}

	if s.saveSession(c, sess.Logout()) {
		redirect(c, "/")
	}
}

func (s *Server) updateContext(c *gin.Context) {
	defer s.lockSession(c)()

	sess, ok := s.loadSession(c)
	if !ok {
		return
	}
	if !sess.IsAuthenticated() {
		render(c, http.StatusUnauthorized, view{Session: sess})
		return
	}

	tab := c.PostForm("tab")
	uc, err := parseUserContext(c)
	if err != nil {
		render(c, http.StatusBadRequest, view{Session: sess, Tab: tab, Error: apperr.UserMessage(err)})
		return
	}

	sess.Context = uc
	if s.saveSession(c, sess) {
		redirect(c, "/?tab="+tabParam(tab))
	}
}

func (s *Server) askWeb(c *gin.Context) {
	defer s.lockSession(c)()

	sess, ok := s.loadSession(c)
	if !ok {
		return
	}
	if !sess.IsAuthenticated() {
		render(c, http.StatusUnauthorized, view{Session: sess})
		return
	}

	next, _, err := s.assistant.AskWeb(c.Request.Context(), sess, c.PostForm("query"))
	if err != nil {
		logger.ErrorWithErr(c.Request.Context(), "Web supplementation failed", err)
		render(c, statusFor(err), view{Session: sess, Tab: tabWeb, Error: apperr.UserMessage(err)})
		return
	}

	if s.saveSession(c, next) {
		redirect(c, "/?tab="+tabWeb)
	}
}

func (s *Server) advise(c *gin.Context) {
	sess, ok := s.loadSession(c)
	if !ok {
		return
	}
	if !sess.IsAuthenticated() {
		render(c, http.StatusUnauthorized, view{Session: sess})
		return
	}

	query := c.PostForm("query")
	advice, err := s.assistant.Advise(c.Request.Context(), sess.Context, query)

	v := view{Session: sess, Tab: tabAdvisory, AdviceQuery: query}
	if err != nil {
		logger.ErrorWithErr(c.Request.Context(), "Private advisory failed", err)
		v.Error = apperr.UserMessage(err)
	} else {
		v.Advice = toHTML(advice)
	}
	render(c, statusFor(err), v)
}

func (s *Server) analyzeStock(c *gin.Context) {
	sess, ok := s.loadSession(c)
	if !ok {
		return
	}
	if !sess.IsAuthenticated() {
		render(c, http.StatusUnauthorized, view{Session: sess})
		return
	}

	ticker := strings.TrimSpace(c.PostForm("ticker"))
	analysis, err := s.assistant.AnalyzeStock(c.Request.Context(), ticker)

	v := view{Session: sess, Tab: tabStock, Ticker: ticker}
	if analysis.Figure.Data != nil {
		v.Analysis = &analysis
	}
	if err != nil {
		logger.ErrorWithErr(c.Request.Context(), "Stock analysis failed", err, "ticker", ticker)
		v.Error = apperr.UserMessage(err)
	}
	render(c, statusFor(err), v)
}

func parseUserContext(c *gin.Context) (types.UserContext, error) {
	const op = "web.context"

	age, err := strconv.Atoi(strings.TrimSpace(c.PostForm("age")))
	if err != nil {
		return types.UserContext{}, apperr.Newf(apperr.Input, op, "age must be a whole number")
	}
	income, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("income")))
	if err != nil {
		return types.UserContext{}, apperr.Newf(apperr.Input, op, "income must be a number")
	}
	savings, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("savings")))
	if err != nil {
		return types.UserContext{}, apperr.Newf(apperr.Input, op, "savings must be a number")
	}
	risk, err := types.ParseRiskTolerance(c.PostForm("risk_tolerance"))
	if err != nil {
		return types.UserContext{}, apperr.New(apperr.Input, op, err)
	}

	uc := types.UserContext{Age: age, Income: income, Savings: savings, RiskTolerance: risk}
	if err := uc.Validate(); err != nil {
		return types.UserContext{}, apperr.New(apperr.Input, op, err)
	}
	return uc, nil
}

func tabParam(tab string) string {
	switch tab {
	case tabAdvisory, tabStock:
		return tab
	default:
		return tabWeb
	}
}

func authStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrUserExists):
		return http.StatusConflict
	case auth.IsUserError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func authMessage(err error) string {
	if auth.IsUserError(err) {
		return capitalize(err.Error())
	}
	return fmt.Sprintf("Sign-in is unavailable right now. %s", apperr.UserMessage(err))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
