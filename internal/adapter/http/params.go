package http

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"net/url"
	"slices"
	"strconv"

	"github.com/couchcryptid/volcano-explorer/internal/domain"
	"github.com/couchcryptid/volcano-explorer/internal/query"
)

// Eruption years come from four-digit runs, so this range admits all of them.
var fullYearRange = query.YearRange{From: 0, To: 9999}

var errBadParam = errors.New("bad parameter")

// criteriaParams are the filter parameters read by parseCriteria.
var criteriaParams = []string{"region", "setting", "type", "min_elevation", "year_from", "year_to", "known_only"}

var (
	topCategoryParams = slices.Concat(criteriaParams, []string{"field", "limit"})
	namesParams       = slices.Concat(criteriaParams, []string{"contains"})
	histogramParams   = slices.Concat(criteriaParams, []string{"bins"})
)

// checkParams rejects any parameter not in allowed, reporting the first in
// name order.
func checkParams(q url.Values, allowed []string) error {
	for _, name := range slices.Sorted(maps.Keys(q)) {
		if !slices.Contains(allowed, name) {
			return badParam(name, errors.New("not accepted by this endpoint"))
		}
	}
	return nil
}

func badParam(name string, err error) error {
	return fmt.Errorf("%w %s: %v", errBadParam, name, err)
}

// parseCriteria reads the filter parameters. Category values are validated
// against the catalog of the loaded table; an absent parameter means no filter.
func parseCriteria(q url.Values, cat *query.Catalog) (query.Criteria, error) {
	var c query.Criteria

	if q.Has("region") {
		r, err := cat.Regions.Lookup(q.Get("region"))
		if err != nil {
			return c, badParam("region", err)
		}
		c.Region = domain.Only(r)
	}

	if q.Has("setting") {
		s, err := cat.Settings.Lookup(q.Get("setting"))
		if err != nil {
			return c, badParam("setting", err)
		}
		c.Setting = domain.Only(s)
	}

	for _, raw := range q["type"] {
		t, err := cat.Types.Lookup(raw)
		if err != nil {
			return c, badParam("type", err)
		}
		c.Types = append(c.Types, t)
	}

	if q.Has("min_elevation") {
		v, err := strconv.ParseFloat(q.Get("min_elevation"), 64)
		if err != nil || math.IsNaN(v) {
			return c, badParam("min_elevation", errors.New("must be a number"))
		}
		c.MinElevation = &v
	}

	if q.Has("year_from") || q.Has("year_to") {
		years, err := parseYears(q)
		if err != nil {
			return c, err
		}
		c.Years = &years
	}

	if q.Has("known_only") {
		v, err := strconv.ParseBool(q.Get("known_only"))
		if err != nil {
			return c, badParam("known_only", errors.New("must be a boolean"))
		}
		c.KnownOnly = v
	}

	return c, nil
}

func parseYears(q url.Values) (query.YearRange, error) {
	years := fullYearRange
	if q.Has("year_from") {
		v, err := strconv.Atoi(q.Get("year_from"))
		if err != nil {
			return years, badParam("year_from", errors.New("must be an integer"))
		}
		years.From = v
	}
	if q.Has("year_to") {
		v, err := strconv.Atoi(q.Get("year_to"))
		if err != nil {
			return years, badParam("year_to", errors.New("must be an integer"))
		}
		years.To = v
	}
	if years.From > years.To {
		return years, badParam("year_from", fmt.Errorf("%d is after year_to %d", years.From, years.To))
	}
	return years, nil
}

// parseIntParam reads an optional integer in [lo, hi].
func parseIntParam(q url.Values, name string, def, lo, hi int) (int, error) {
	if !q.Has(name) {
		return def, nil
	}
	v, err := strconv.Atoi(q.Get(name))
	if err != nil || v < lo || v > hi {
		return 0, badParam(name, fmt.Errorf("must be an integer between %d and %d", lo, hi))
	}
	return v, nil
}

func parseCategoryParam(q url.Values) (query.Category, error) {
	if !q.Has("field") {
		return query.CategoryType, nil
	}
	c, err := query.ParseCategory(q.Get("field"))
	if err != nil {
		return "", badParam("field", err)
	}
	return c, nil
}

func substringParam(q url.Values, def string) string {
	if q.Has("contains") {
		return q.Get("contains")
	}
	return def
}
