// Package server exposes one catalog session over a JSON HTTP API for a
// browser front end.
//
// The catalog and router are single-threaded by construction; every handler
// takes the server's mutex before touching them.
//
//	GET  /health
//	GET  /api/status          loading | ready | failed, with notices
//	GET  /api/records         current window of the filtered view
//	GET  /api/genres          facet values and the selection
//	POST /api/filter          {"query": "...", "genres": ["..."]}
//	POST /api/filter/reset
//	POST /api/genres/toggle   {"genre": "..."}
//	POST /api/more
//	POST /api/open            {"index": n} (index into the filtered view)
//	POST /api/back
//	POST /api/route           {"marker": "#detail"}
//	POST /api/resume
//	GET  /api/current
//	GET  /metrics
package server

import (
	"context"
	"errors"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/catalog"
	"github.com/handiism/album-catalog/internal/cover"
	"github.com/handiism/album-catalog/internal/errmsg"
	"github.com/handiism/album-catalog/internal/ingest"
	"github.com/handiism/album-catalog/internal/router"
)

// Status is the ingestion state reported by /api/status.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Server serves one Catalog and Router pair.
type Server struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	router  *router.Router
	proxy   *cover.Proxy
	metrics *Metrics
	logger  *zap.Logger

	status  Status
	failure string
	notices []string

	engine *gin.Engine
}

// New creates a Server in the loading state. Call Populate once ingestion
// finishes. A nil metrics or logger is replaced by a fresh or no-op one.
func New(cat *catalog.Catalog, rt *router.Router, proxy *cover.Proxy, metrics *Metrics, logger *zap.Logger) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if proxy == nil {
		proxy = cover.NewProxy("")
	}
	s := &Server{
		catalog: cat,
		router:  rt,
		proxy:   proxy,
		metrics: metrics,
		logger:  logger,
		status:  StatusLoading,
	}
	rt.OnChange(func(st router.State, _ router.Marker) {
		metrics.transitions.WithLabelValues(st.String()).Inc()
	})
	s.engine = s.routes()
	return s
}

// Populate publishes an ingestion outcome. On success the catalog is
// populated and the route enforced against the persisted marker.
func (s *Server) Populate(res ingest.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.status = StatusFailed
		s.failure = errmsg.Format(errmsg.OpLoadCatalog, err)
		s.logger.Error("catalog load failed", zap.Error(err))
		return
	}

	s.catalog.Populate(res.Records)
	s.notices = s.notices[:0]
	if res.HasNotice(ingest.NoticeShapeFallback) {
		s.notices = append(s.notices, errmsg.NoticeShapeFallback)
	}
	if res.HasNotice(ingest.NoticeEmptyResult) {
		s.notices = append(s.notices, errmsg.NoticeEmptyResult)
	}
	s.status = StatusReady
	s.failure = ""
	s.enforce(s.router.EnforceRoute)
	s.logger.Info("catalog ready", zap.Int("records", len(res.Records)))
}

// Handler returns the HTTP handler.
func (s *Server) Handler() nethttp.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// enforce runs a router operation and counts the corrections it made.
// Callers hold s.mu.
func (s *Server) enforce(op func()) {
	before := s.router.Corrections()
	op()
	if n := s.router.Corrections() - before; n > 0 {
		s.metrics.routeCorrections.Add(float64(n))
	}
}
