// Package server exposes the poller over HTTP
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/vietdv277/skymap/internal/poller"
	"github.com/vietdv277/skymap/pkg/types"
)

const shutdownTimeout = 5 * time.Second

// Poller is the part of poller.Scheduler the HTTP API drives
type Poller interface {
	Configure(ctx context.Context, vpcID string) error
	Clear()
	Refresh() error
	Latest() (types.PollResult, bool)
	State() poller.State
	NetworkID() string
}

// Server serves the topology API
type Server struct {
	// ctx outlives every request; polling started over HTTP is bound to it
	ctx      context.Context
	fetcher  poller.Fetcher
	poller   Poller
	cfg      poller.Config
	reporter poller.ErrorReporter
	router   *gin.Engine
}

// New creates a server. ctx bounds the polling loops started through
// PUT /api/network.
func New(ctx context.Context, fetcher poller.Fetcher, p Poller, cfg poller.Config, reporter poller.ErrorReporter) *Server {
	s := &Server{
		ctx:      ctx,
		fetcher:  fetcher,
		poller:   p,
		cfg:      cfg,
		reporter: reporter,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(zerolog.Ctx(ctx)), otelgin.Middleware("skymap"))
	s.routes(router)
	s.router = router

	return s
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/instances", s.handleInstances)
	api.GET("/loadbalancers", s.handleLoadBalancers)
	api.GET("/topology", s.handleTopology)
	api.PUT("/network", s.handleConfigure)
	api.DELETE("/network", s.handleClear)
	api.POST("/refresh", s.handleRefresh)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs each request through zerolog
func requestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
