package api

import (
	"github.com/mr1hm/go-wildfire-watch/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// toGeoJSON renders one map marker per wildfire.
func toGeoJSON(wildfires []models.Wildfire) FeatureCollection {
	features := make([]Feature, 0, len(wildfires))

	for _, w := range wildfires {
		c := w.Coordinates()
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{c.Longitude, c.Latitude},
			},
			Properties: map[string]any{
				"id":          w.ID,
				"country":     w.Country,
				"location":    w.Location,
				"severity":    string(w.Severity),
				"date":        w.Date.String(),
				"magnitude":   w.Magnitude,
				"reported_at": w.Reported(),
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
