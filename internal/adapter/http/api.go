package http

import (
	"math"
	"net/http"
	"net/url"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/volcano-explorer/internal/dataset"
	"github.com/couchcryptid/volcano-explorer/internal/domain"
	"github.com/couchcryptid/volcano-explorer/internal/query"
)

const (
	maxTopN = 1000
	maxBins = 200
)

type optionsResponse struct {
	Source   string                   `json:"source"`
	LoadedAt time.Time                `json:"loaded_at"`
	Rows     int                      `json:"rows"`
	Regions  []domain.Region          `json:"regions"`
	Types    []domain.VolcanoType     `json:"types"`
	Settings []domain.TectonicSetting `json:"tectonic_settings"`
	Years    *query.YearRange         `json:"years"`
}

type volcanoesResponse struct {
	Count         int              `json:"count"`
	MeanElevation *float64         `json:"mean_elevation"`
	Volcanoes     []domain.Volcano `json:"volcanoes"`
}

type elevationPageResponse struct {
	query.ElevationReport
	MeanElevation *float64 `json:"mean_elevation"`
}

// snapshot returns the loaded snapshot, or writes 503 and returns false.
func (s *Server) snapshot(w http.ResponseWriter, endpoint string) (*dataset.Snapshot, bool) {
	snap, ok := s.store.Current()
	if !ok {
		s.metrics.Queries.WithLabelValues(endpoint, "unavailable").Inc()
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return nil, false
	}
	return snap, true
}

// params returns the query parameters, or writes 400 and returns false when
// one is not in allowed.
func (s *Server) params(w http.ResponseWriter, r *http.Request, endpoint string, allowed ...string) (url.Values, bool) {
	q := r.URL.Query()
	if err := checkParams(q, allowed); err != nil {
		s.badRequest(w, endpoint, err)
		return nil, false
	}
	return q, true
}

func (s *Server) badRequest(w http.ResponseWriter, endpoint string, err error) {
	s.metrics.Queries.WithLabelValues(endpoint, "bad_request").Inc()
	s.logger.Debug("rejected query", "endpoint", endpoint, "error", err)
	writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) ok(w http.ResponseWriter, endpoint string, rows int, body any) {
	s.metrics.Queries.WithLabelValues(endpoint, "ok").Inc()
	s.metrics.QueryResultRows.WithLabelValues(endpoint).Observe(float64(rows))
	sharedobs.WriteJSON(w, http.StatusOK, body)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	const endpoint = "options"
	snap, ok := s.snapshot(w, endpoint)
	if !ok {
		return
	}
	if _, ok := s.params(w, r, endpoint); !ok {
		return
	}
	cat := snap.Catalog
	s.ok(w, endpoint, snap.Table.Len(), optionsResponse{
		Source:   snap.Table.Source(),
		LoadedAt: snap.Table.LoadedAt(),
		Rows:     snap.Table.Len(),
		Regions:  cat.Regions.Values(),
		Types:    cat.Types.Values(),
		Settings: cat.Settings.Values(),
		Years:    cat.Years,
	})
}

func (s *Server) handleVolcanoes(w http.ResponseWriter, r *http.Request) {
	const endpoint = "volcanoes"
	snap, ok := s.snapshot(w, endpoint)
	if !ok {
		return
	}
	q, ok := s.params(w, r, endpoint, criteriaParams...)
	if !ok {
		return
	}
	crit, err := parseCriteria(q, snap.Catalog)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}

	rows := crit.Apply(snap.Table.Volcanoes())
	count, mean := query.CountAndAverageElevation(rows)
	s.ok(w, endpoint, count, volcanoesResponse{
		Count:         count,
		MeanElevation: finiteOrNil(mean),
		Volcanoes:     rows,
	})
}

func (s *Server) handleTopCategories(w http.ResponseWriter, r *http.Request) {
	const endpoint = "categories_top"
	snap, ok := s.snapshot(w, endpoint)
	if !ok {
		return
	}
	q, ok := s.params(w, r, endpoint, topCategoryParams...)
	if !ok {
		return
	}
	crit, err := parseCriteria(q, snap.Catalog)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}
	field, err := parseCategoryParam(q)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}
	limit, err := parseIntParam(q, "limit", s.defaults.TopN, 1, maxTopN)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}

	rows := crit.Apply(snap.Table.Volcanoes())
	s.ok(w, endpoint, len(rows), query.TopCategoryCounts(rows, field, limit))
}

func (s *Server) handleNames(w http.ResponseWriter, r *http.Request) {
	const endpoint = "names"
	snap, ok := s.snapshot(w, endpoint)
	if !ok {
		return
	}
	q, ok := s.params(w, r, endpoint, namesParams...)
	if !ok {
		return
	}
	crit, err := parseCriteria(q, snap.Catalog)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}

	names := query.NamedSubset(crit.Apply(snap.Table.Volcanoes()), substringParam(q, s.defaults.NameSubstring))
	s.ok(w, endpoint, len(names), names)
}

func (s *Server) handleHistogram(w http.ResponseWriter, r *http.Request) {
	const endpoint = "elevation_histogram"
	snap, ok := s.snapshot(w, endpoint)
	if !ok {
		return
	}
	q, ok := s.params(w, r, endpoint, histogramParams...)
	if !ok {
		return
	}
	crit, err := parseCriteria(q, snap.Catalog)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}
	bins, err := parseIntParam(q, "bins", s.defaults.HistogramBins, 1, maxBins)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}

	rows := crit.Apply(snap.Table.Volcanoes())
	s.ok(w, endpoint, len(rows), query.ElevationHistogram(rows, bins))
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	const endpoint = "map"
	snap, ok := s.snapshot(w, endpoint)
	if !ok {
		return
	}
	q, ok := s.params(w, r, endpoint, criteriaParams...)
	if !ok {
		return
	}
	crit, err := parseCriteria(q, snap.Catalog)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}

	points := query.MapPoints(crit.Apply(snap.Table.Volcanoes()))
	s.ok(w, endpoint, len(points), newFeatureCollection(points))
}

func (s *Server) handleTypesByRegionPage(w http.ResponseWriter, r *http.Request) {
	const endpoint = "page_types_by_region"
	snap, ok := s.snapshot(w, endpoint)
	if !ok {
		return
	}
	q, ok := s.params(w, r, endpoint, "region", "contains")
	if !ok {
		return
	}
	crit, err := parseCriteria(q, snap.Catalog)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}

	page := query.RegionTypes(snap.Table.Volcanoes(), crit.Region, substringParam(q, s.defaults.NameSubstring))
	s.ok(w, endpoint, len(page.Named), page)
}

func (s *Server) handleElevationPage(w http.ResponseWriter, r *http.Request) {
	const endpoint = "page_elevation_by_region"
	snap, ok := s.snapshot(w, endpoint)
	if !ok {
		return
	}
	q, ok := s.params(w, r, endpoint, "region", "min_elevation", "bins")
	if !ok {
		return
	}
	crit, err := parseCriteria(q, snap.Catalog)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}
	bins, err := parseIntParam(q, "bins", s.defaults.HistogramBins, 1, maxBins)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}
	threshold := math.Inf(-1)
	if crit.MinElevation != nil {
		threshold = *crit.MinElevation
	}

	report := query.RegionElevation(snap.Table.Volcanoes(), crit.Region, threshold, bins)
	s.ok(w, endpoint, report.Count, elevationPageResponse{
		ElevationReport: report,
		MeanElevation:   finiteOrNil(report.MeanElevation),
	})
}

func (s *Server) handleEruptionsPage(w http.ResponseWriter, r *http.Request) {
	const endpoint = "page_eruptions_by_year"
	snap, ok := s.snapshot(w, endpoint)
	if !ok {
		return
	}
	q, ok := s.params(w, r, endpoint, "year_from", "year_to", "setting")
	if !ok {
		return
	}
	crit, err := parseCriteria(q, snap.Catalog)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}
	years := fullYearRange
	if crit.Years != nil {
		years = *crit.Years
	}

	report := query.EruptionsBetween(snap.Table.Volcanoes(), years, crit.Setting)
	s.ok(w, endpoint, report.Count, report)
}

func (s *Server) handleKnownEruptionTypesPage(w http.ResponseWriter, r *http.Request) {
	const endpoint = "page_known_eruption_types"
	snap, ok := s.snapshot(w, endpoint)
	if !ok {
		return
	}
	q, ok := s.params(w, r, endpoint, "type", "region", "known_only", "limit")
	if !ok {
		return
	}
	crit, err := parseCriteria(q, snap.Catalog)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}
	limit, err := parseIntParam(q, "limit", s.defaults.TopN, 1, maxTopN)
	if err != nil {
		s.badRequest(w, endpoint, err)
		return
	}

	counts := query.KnownEruptionTypes(snap.Table.Volcanoes(), crit.Types, crit.Region, crit.KnownOnly, limit)
	s.ok(w, endpoint, len(counts), counts)
}

// finiteOrNil maps the NaN mean of an elevation-less result to JSON null.
func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

