package api

import (
	"github.com/mr1hm/go-sachet-alerts/internal/classify"
	"github.com/mr1hm/go-sachet-alerts/internal/geo"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
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

func toFeature(d models.Disaster) Feature {
	a := classify.Analyze(d)
	props := map[string]any{
		"id":            d.ID,
		"type":          d.Type,
		"effectiveType": a.EffectiveType,
		"title":         a.DisplayTitle,
		"description":   d.Description,
		"severity":      d.Severity,
		"status":        d.Status,
		"source":        d.Source,
		"location":      d.Location.Name,
		"state":         d.Location.State,
		"reportedAt":    d.ReportedAt,
		"color":         classify.SeverityColor(d.Severity),
		"icon":          a.IconName,
		"image":         a.Image,
		"geohash":       geo.Hash(d.Location.Lat, d.Location.Lng),
	}
	if d.Expires != nil {
		props["expires"] = *d.Expires
	}
	if d.AffectedPeople != nil {
		props["affectedPeople"] = *d.AffectedPeople
	}

	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{d.Location.Lng, d.Location.Lat},
		},
		Properties: props,
	}
}

func toGeoJSON(disasters []models.Disaster) FeatureCollection {
	features := make([]Feature, 0, len(disasters))
	for _, d := range disasters {
		features = append(features, toFeature(d))
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
