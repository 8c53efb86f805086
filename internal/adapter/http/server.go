package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/volcano-explorer/internal/dataset"
	"github.com/couchcryptid/volcano-explorer/internal/observability"
)

// SnapshotProvider supplies the table being served and reports readiness.
type SnapshotProvider interface {
	sharedobs.ReadinessChecker
	Current() (*dataset.Snapshot, bool)
}

// Defaults are applied when a request omits the corresponding parameter.
type Defaults struct {
	TopN          int
	HistogramBins int
	NameSubstring string
}

// Server exposes health, readiness, metrics, and the query API.
type Server struct {
	httpServer *http.Server
	store      SnapshotProvider
	defaults   Defaults
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// the /api/v1 query routes.
func NewServer(addr string, store SnapshotProvider, defaults Defaults, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:    store,
		defaults: defaults,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(store))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/options", s.handleOptions)
	mux.HandleFunc("GET /api/v1/volcanoes", s.handleVolcanoes)
	mux.HandleFunc("GET /api/v1/categories/top", s.handleTopCategories)
	mux.HandleFunc("GET /api/v1/names", s.handleNames)
	mux.HandleFunc("GET /api/v1/elevation/histogram", s.handleHistogram)
	mux.HandleFunc("GET /api/v1/map", s.handleMap)

	mux.HandleFunc("GET /api/v1/pages/types-by-region", s.handleTypesByRegionPage)
	mux.HandleFunc("GET /api/v1/pages/elevation-by-region", s.handleElevationPage)
	mux.HandleFunc("GET /api/v1/pages/eruptions-by-year", s.handleEruptionsPage)
	mux.HandleFunc("GET /api/v1/pages/known-eruption-types", s.handleKnownEruptionTypesPage)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
