package web

import (
	"net/http"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// loadSession returns the caller's session, starting a new one when the cookie is
// missing or expired. On a store failure it renders an error page and returns false.
func (s *Server) loadSession(c *gin.Context) (types.Session, bool) {
	ctx := c.Request.Context()

	if id, err := c.Cookie(s.cookieName); err == nil && id != "" {
		sess, found, err := s.sessions.Load(ctx, id)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to load session", err)
			render(c, http.StatusInternalServerError, view{Session: types.NewSession(""), Error: apperr.UserMessage(err)})
			return types.Session{}, false
		}
		if found {
			return sess, true
		}
	}

	sess := types.NewSession(uuid.NewString())
	s.setCookie(c, sess.ID)
	return sess, true
}

// saveSession persists sess. On failure it renders an error page and returns false.
func (s *Server) saveSession(c *gin.Context, sess types.Session) bool {
	if err := s.sessions.Save(c.Request.Context(), sess, s.ttl); err != nil {
		logger.ErrorWithErr(c.Request.Context(), "Failed to save session", err)
		render(c, http.StatusInternalServerError, view{Session: sess, Error: apperr.UserMessage(err)})
		return false
	}
	return true
}

// rotate moves sess to a fresh id so an id issued before login cannot be reused after it
func (s *Server) rotate(c *gin.Context, sess types.Session) types.Session {
	if err := s.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
		logger.Warn(c.Request.Context(), "Failed to delete old session", "error", err)
	}
	sess.ID = uuid.NewString()
	s.setCookie(c, sess.ID)
	return sess
}

func (s *Server) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, id, int(s.ttl.Seconds()), "/", "", s.cookieSecure, true)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
