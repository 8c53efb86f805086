package query

import (
	"errors"
	"fmt"
	"slices"

	"github.com/couchcryptid/volcano-explorer/internal/domain"
)

// ErrUnknownCategory is returned when a selection names a value that does
// not occur in the loaded table.
var ErrUnknownCategory = errors.New("unknown category value")

// Options is the sorted set of distinct values observed for one categorical
// field.
type Options[T ~string] struct {
	values []T
	set    map[T]struct{}
}

func newOptions[T ~string](values []T) Options[T] {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	sorted := make([]T, 0, len(set))
	for v := range set {
		sorted = append(sorted, v)
	}
	slices.Sort(sorted)
	return Options[T]{values: sorted, set: set}
}

// Values returns the options in ascending order.
func (o Options[T]) Values() []T {
	return slices.Clone(o.values)
}

// Lookup validates s against the options.
func (o Options[T]) Lookup(s string) (T, error) {
	v := T(s)
	if _, ok := o.set[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return v, nil
}

// Catalog holds the selectable values of a table, computed once per load.
type Catalog struct {
	Regions  Options[domain.Region]
	Types    Options[domain.VolcanoType]
	Settings Options[domain.TectonicSetting]

	// Years spans the observed eruption years; nil when no row has one.
	Years *YearRange
}

// BuildCatalog scans rows for their distinct categories and year bounds.
func BuildCatalog(rows []domain.Volcano) *Catalog {
	regions := make([]domain.Region, 0, len(rows))
	types := make([]domain.VolcanoType, 0, len(rows))
	settings := make([]domain.TectonicSetting, 0, len(rows))
	var years *YearRange

	for _, v := range rows {
		regions = append(regions, v.Region)
		types = append(types, v.Type)
		if v.TectonicSetting != nil {
			settings = append(settings, *v.TectonicSetting)
		}
		if v.EruptionYear == nil {
			continue
		}
		y := *v.EruptionYear
		if years == nil {
			years = &YearRange{From: y, To: y}
			continue
		}
		years.From = min(years.From, y)
		years.To = max(years.To, y)
	}

	return &Catalog{
		Regions:  newOptions(regions),
		Types:    newOptions(types),
		Settings: newOptions(settings),
		Years:    years,
	}
}
