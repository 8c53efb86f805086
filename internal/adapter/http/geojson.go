package http

import "github.com/couchcryptid/volcano-explorer/internal/query"

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string            `json:"type"`
	Geometry   pointGeometry     `json:"geometry"`
	Properties featureProperties `json:"properties"`
}

// Coordinates are [longitude, latitude] per RFC 7946.
type pointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type featureProperties struct {
	Name         string   `json:"name"`
	Country      string   `json:"country"`
	Elevation    *float64 `json:"elevation_m"`
	EruptionYear *int     `json:"eruption_year"`
}

func newFeatureCollection(points []query.MapPoint) featureCollection {
	fc := featureCollection{Type: "FeatureCollection", Features: make([]feature, 0, len(points))}
	for _, p := range points {
		fc.Features = append(fc.Features, feature{
			Type: "Feature",
			Geometry: pointGeometry{
				Type:        "Point",
				Coordinates: [2]float64{p.Longitude, p.Latitude},
			},
			Properties: featureProperties{
				Name:         p.Name,
				Country:      p.Country,
				Elevation:    p.Elevation,
				EruptionYear: p.EruptionYear,
			},
		})
	}
	return fc
}
