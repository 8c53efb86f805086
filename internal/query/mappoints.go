package query

import "github.com/couchcryptid/volcano-explorer/internal/domain"

// MapPoint is a volcano with coordinates, as consumed by a map layer.
type MapPoint struct {
	Name         string   `json:"name"`
	Country      string   `json:"country"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Elevation    *float64 `json:"elevation_m"`
	EruptionYear *int     `json:"eruption_year"`
}

// MapPoints returns the rows that have both coordinates.
func MapPoints(rows []domain.Volcano) []MapPoint {
	points := make([]MapPoint, 0, len(rows))
	for _, v := range rows {
		if !v.HasCoordinates() {
			continue
		}
		points = append(points, MapPoint{
			Name:         v.Name,
			Country:      v.Country,
			Latitude:     *v.Latitude,
			Longitude:    *v.Longitude,
			Elevation:    v.Elevation,
			EruptionYear: v.EruptionYear,
		})
	}
	return points
}
