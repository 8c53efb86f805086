package query

import (
	"slices"

	"github.com/couchcryptid/volcano-explorer/internal/domain"
)

// YearRange is an inclusive range of eruption years.
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether year falls within the range, bounds included.
func (r YearRange) Contains(year int) bool {
	return year >= r.From && year <= r.To
}

func where(rows []domain.Volcano, keep func(domain.Volcano) bool) []domain.Volcano {
	out := make([]domain.Volcano, 0, len(rows))
	for _, v := range rows {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// ByRegion keeps rows in the selected region. Any returns all rows.
func ByRegion(rows []domain.Volcano, region domain.Choice[domain.Region]) []domain.Volcano {
	want, ok := region.Get()
	if !ok {
		return slices.Clone(rows)
	}
	return where(rows, func(v domain.Volcano) bool { return v.Region == want })
}

// ByMinElevation keeps rows at or above threshold meters. Rows without an
// elevation are dropped.
func ByMinElevation(rows []domain.Volcano, threshold float64) []domain.Volcano {
	return where(rows, func(v domain.Volcano) bool {
		return v.Elevation != nil && *v.Elevation >= threshold
	})
}

// ByYearRange keeps rows whose eruption year lies in r. Rows without an
// eruption year are dropped.
func ByYearRange(rows []domain.Volcano, r YearRange) []domain.Volcano {
	return where(rows, func(v domain.Volcano) bool {
		return v.EruptionYear != nil && r.Contains(*v.EruptionYear)
	})
}

// ByTectonicSetting keeps rows with the selected setting. Any returns all
// rows; a row with no setting never matches a concrete one.
func ByTectonicSetting(rows []domain.Volcano, setting domain.Choice[domain.TectonicSetting]) []domain.Volcano {
	want, ok := setting.Get()
	if !ok {
		return slices.Clone(rows)
	}
	return where(rows, func(v domain.Volcano) bool {
		return v.TectonicSetting != nil && *v.TectonicSetting == want
	})
}

// ByTypes keeps rows whose primary type is one of types. An empty set
// applies no filter.
func ByTypes(rows []domain.Volcano, types []domain.VolcanoType) []domain.Volcano {
	if len(types) == 0 {
		return slices.Clone(rows)
	}
	set := make(map[domain.VolcanoType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return where(rows, func(v domain.Volcano) bool {
		_, ok := set[v.Type]
		return ok
	})
}

// ByKnownEruption keeps only rows with an eruption date when knownOnly is
// set. Otherwise all rows are returned.
func ByKnownEruption(rows []domain.Volcano, knownOnly bool) []domain.Volcano {
	if !knownOnly {
		return slices.Clone(rows)
	}
	return where(rows, func(v domain.Volcano) bool { return v.LastEruption != nil })
}
