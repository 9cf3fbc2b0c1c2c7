// Package web serves the single-page UI. Handlers only marshal form input
// into the assistant and render the resulting session.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"finance-assistant/internal/assistant"
	"finance-assistant/internal/auth"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Params struct {
	Config    *store.Config
	Assistant *assistant.Assistant
	Auth      *auth.Service
	Sessions  interfaces.SessionStore
}

type Server struct {
	engine    *gin.Engine
	assistant *assistant.Assistant
	auth      *auth.Service
	sessions  interfaces.SessionStore
	locks     *sessionLocks

	cookieName   string
	cookieSecure bool
	ttl          time.Duration
}

func New(p Params) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine:       gin.New(),
		assistant:    p.Assistant,
		auth:         p.Auth,
		sessions:     p.Sessions,
		locks:        newSessionLocks(),
		cookieName:   p.Config.Server.SessionCookie,
		cookieSecure: p.Config.Server.CookieSecure,
		ttl:          p.Config.Session.TTL,
	}

	s.engine.SetHTMLTemplate(tmpl)
	s.engine.Use(gin.Recovery(), requestLogger())
	if origins := p.Config.Server.AllowedOrigins; len(origins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/", s.index)
	r.GET("/health", s.health)
	r.POST("/login", s.login)
	r.POST("/register", s.register)
	r.POST("/logout", s.logout)
	r.POST("/context", s.updateContext)
	r.POST("/web", s.askWeb)
	r.POST("/advisory", s.advise)
	r.POST("/stock", s.analyzeStock)
}

// Handler returns the HTTP handler serving the UI
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
