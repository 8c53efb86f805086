package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/volcano-explorer/internal/domain"
	"github.com/couchcryptid/volcano-explorer/internal/observability"
)

// missingCounts tallies rows that normalized to a nil value, per field.
type missingCounts struct {
	Elevation       int
	EruptionYear    int
	TectonicSetting int
	Coordinates     int
}

func countMissing(volcanoes []domain.Volcano) missingCounts {
	var c missingCounts
	for _, v := range volcanoes {
		if v.Elevation == nil {
			c.Elevation++
		}
		if v.EruptionYear == nil {
			c.EruptionYear++
		}
		if v.TectonicSetting == nil {
			c.TectonicSetting++
		}
		if !v.HasCoordinates() {
			c.Coordinates++
		}
	}
	return c
}

// normalize runs the domain normalizer and reports how many rows degraded.
// Degraded rows stay in the table; they only drop out of filters on the
// missing field.
func normalize(raw domain.RawTable, logger *slog.Logger, metrics *observability.Metrics) ([]domain.Volcano, error) {
	volcanoes, err := domain.Normalize(raw)
	if err != nil {
		return nil, err
	}

	missing := countMissing(volcanoes)
	metrics.DegradedValues.WithLabelValues("elevation").Set(float64(missing.Elevation))
	metrics.DegradedValues.WithLabelValues("eruption_year").Set(float64(missing.EruptionYear))
	metrics.DegradedValues.WithLabelValues("tectonic_setting").Set(float64(missing.TectonicSetting))
	metrics.DegradedValues.WithLabelValues("coordinates").Set(float64(missing.Coordinates))

	if missing.Elevation > 0 || missing.TectonicSetting > 0 || missing.Coordinates > 0 {
		logger.Warn("rows with missing values",
			"rows", len(volcanoes),
			"missing_elevation", missing.Elevation,
			"missing_tectonic_setting", missing.TectonicSetting,
			"missing_coordinates", missing.Coordinates,
		)
	}
	logger.Debug("eruption years derived",
		"with_year", len(volcanoes)-missing.EruptionYear,
		"without_year", missing.EruptionYear,
	)
	return volcanoes, nil
}
