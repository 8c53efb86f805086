package query

import "github.com/couchcryptid/volcano-explorer/internal/domain"

// TypesByRegion answers "which volcano types are most common in a region".
type TypesByRegion struct {
	TypeCounts []CategoryCount `json:"type_counts"`
	Named      []string        `json:"named"`
}

// RegionTypes counts every primary type in the region and lists the names
// containing substr.
func RegionTypes(rows []domain.Volcano, region domain.Choice[domain.Region], substr string) TypesByRegion {
	filtered := ByRegion(rows, region)
	return TypesByRegion{
		TypeCounts: TopCategoryCounts(filtered, CategoryType, len(filtered)),
		Named:      NamedSubset(filtered, substr),
	}
}

// ElevationReport answers "which volcanoes in a region stand above a height".
type ElevationReport struct {
	Volcanoes     []domain.Volcano `json:"volcanoes"`
	Count         int              `json:"count"`
	MeanElevation float64          `json:"-"`
	Histogram     []Bin            `json:"histogram"`
}

// RegionElevation filters by region and minimum elevation and summarizes
// the result with a bins-bucket elevation histogram.
func RegionElevation(rows []domain.Volcano, region domain.Choice[domain.Region], threshold float64, bins int) ElevationReport {
	filtered := ByMinElevation(ByRegion(rows, region), threshold)
	count, mean := CountAndAverageElevation(filtered)
	return ElevationReport{
		Volcanoes:     filtered,
		Count:         count,
		MeanElevation: mean,
		Histogram:     ElevationHistogram(filtered, bins),
	}
}

// EruptionReport answers "which volcanoes erupted between two years".
type EruptionReport struct {
	Volcanoes []domain.Volcano `json:"volcanoes"`
	Count     int              `json:"count"`
	Points    []MapPoint       `json:"points"`
}

// EruptionsBetween filters by eruption year range and tectonic setting.
func EruptionsBetween(rows []domain.Volcano, years YearRange, setting domain.Choice[domain.TectonicSetting]) EruptionReport {
	filtered := ByTectonicSetting(ByYearRange(rows, years), setting)
	return EruptionReport{
		Volcanoes: filtered,
		Count:     len(filtered),
		Points:    MapPoints(filtered),
	}
}

// KnownEruptionTypes returns the n most common types after filtering by
// known eruption, region, and type set.
func KnownEruptionTypes(rows []domain.Volcano, types []domain.VolcanoType, region domain.Choice[domain.Region], knownOnly bool, n int) []CategoryCount {
	filtered := ByKnownEruption(rows, knownOnly)
	filtered = ByRegion(filtered, region)
	filtered = ByTypes(filtered, types)
	return TopCategoryCounts(filtered, CategoryType, n)
}
