package query

import "github.com/couchcryptid/volcano-explorer/internal/domain"

// Criteria is a full selection. The zero value selects every row.
type Criteria struct {
	Region       domain.Choice[domain.Region]
	Setting      domain.Choice[domain.TectonicSetting]
	Types        []domain.VolcanoType
	MinElevation *float64
	Years        *YearRange
	KnownOnly    bool
}

// Apply runs every filter the criteria set, combined with logical AND.
func (c Criteria) Apply(rows []domain.Volcano) []domain.Volcano {
	out := ByRegion(rows, c.Region)
	out = ByTectonicSetting(out, c.Setting)
	out = ByTypes(out, c.Types)
	out = ByKnownEruption(out, c.KnownOnly)
	if c.MinElevation != nil {
		out = ByMinElevation(out, *c.MinElevation)
	}
	if c.Years != nil {
		out = ByYearRange(out, *c.Years)
	}
	return out
}
