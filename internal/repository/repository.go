package repository

import (
	"context"

	"github.com/mr1hm/go-sachet-alerts/internal/geo"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

type Filter struct {
	Limit         int
	Type          *models.DisasterType
	MinSeverity   *models.Severity // >= this severity (e.g., HIGH includes HIGH and CRITICAL)
	State         string           // case-insensitive exact match
	GeohashPrefix string
	Near          *Near // applied before Limit
}

// Near keeps records within RadiusKm great-circle kilometres of a point.
type Near struct {
	Lat, Lng float64
	RadiusKm float64
}

func (n Near) Contains(lat, lng float64) bool {
	return geo.DistanceKm(n.Lat, n.Lng, lat, lng) <= n.RadiusKm
}

// LatitudeBounds is the band of latitudes that can hold a match.
func (n Near) LatitudeBounds() (float64, float64) {
	const kmPerDegree = 111.0
	d := n.RadiusKm/kmPerDegree + 0.01
	return n.Lat - d, n.Lat + d
}

// SnapshotRepository holds the most recent delivered batch. Every cycle
// replaces the previous snapshot wholesale.
type SnapshotRepository interface {
	ReplaceAll(ctx context.Context, batch []models.Disaster) error
	GetByID(ctx context.Context, id string) (*models.Disaster, error)
	ListDisasters(ctx context.Context, opts Filter) ([]models.Disaster, error)
}
