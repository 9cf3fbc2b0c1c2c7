package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-assistant/internal/auth"
	"finance-assistant/internal/logger"
	"finance-assistant/internal/session"
	"finance-assistant/internal/trace"
	"finance-assistant/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	config  string
	envFile string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the finance assistant web UI" }
func (*serveCmd) Usage() string {
	return `assistant serve [-config config.yaml] [-env keyHolder.env]

  Serves the login page, the web supplementation chat, private advisory
  and stock analysis tabs on the configured address.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "config.yaml", "Path to the YAML config file. Defaults apply when it is missing.")
	f.StringVar(&c.envFile, "env", "keyHolder.env", "Env file holding API keys.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := initializeSystem(c.envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer trace.Shutdown(context.Background())

	if err := c.run(ctx); err != nil {
		logger.ErrorWithErr(ctx, "Server stopped with error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *serveCmd) run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, c.config)
	if err != nil {
		return err
	}

	a, err := initializeAssistant(ctx, cfg)
	if err != nil {
		return err
	}
	credentials, err := initializeCredentials(ctx, cfg)
	if err != nil {
		return err
	}
	defer credentials.Close()
	sessions, err := initializeSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(sessions); err != nil {
			logger.Warn(context.Background(), "Failed to close session store", "error", err)
		}
	}()

	if !logger.IsDebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := web.New(web.Params{
		Config:    cfg,
		Assistant: a,
		Auth:      auth.NewService(credentials),
		Sessions:  sessions,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Finance assistant listening", "addr", cfg.Server.Addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info(context.Background(), "Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
