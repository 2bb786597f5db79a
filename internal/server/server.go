// Package server exposes the loaded ledger and stories as a read-only JSON
// API for the transparency site.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// SnapshotProvider returns the data to serve. It is satisfied by
// *snapshotcache.Cache.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) models.Snapshot
}

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	RateLimit      float64 // requests per second across all clients, 0 disables
	RateBurst      int
	Currency       string
}

// Server is the gin-based API server.
type Server struct {
	snapshots SnapshotProvider
	opts      Options
	logger    logging.Logger
	router    *gin.Engine
}

// New builds the router with all routes and middleware.
func New(snapshots SnapshotProvider, opts Options, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Currency == "" {
		opts.Currency = models.DefaultCurrency
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		snapshots: snapshots,
		opts:      opts,
		logger:    logger.WithField(logging.FieldComponent, "server"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog(s.logger))
	r.Use(cors.New(s.corsConfig()))
	if s.opts.RateLimit > 0 {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.opts.RateLimit), s.opts.RateBurst), s.logger))
	}

	r.GET("/health", s.health)

	api := r.Group("/api")
	api.GET("/summary", s.summary)
	api.GET("/breakdown", s.breakdown)
	api.GET("/transactions", s.transactions)
	api.GET("/transactions/export", s.exportTransactions)
	api.GET("/stories", s.stories)
	api.GET("/stories/:slug", s.story)
	api.GET("/map", s.mapPoints)

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range s.opts.AllowedOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = s.opts.AllowedOrigins
	return cfg
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", logging.F("addr", addr))
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
	s.logger.Info("Server shutting down")
	return srv.Shutdown(shutdownCtx)
}
