package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mr1hm/go-sachet-alerts/internal/broadcast"
	"github.com/mr1hm/go-sachet-alerts/internal/classify"
	"github.com/mr1hm/go-sachet-alerts/internal/geo"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
	"github.com/mr1hm/go-sachet-alerts/internal/observability"
	"github.com/mr1hm/go-sachet-alerts/internal/repository"
)

type Handler struct {
	repo        repository.SnapshotRepository
	broadcaster *broadcast.Broadcaster
	metrics     *observability.Metrics
}

func NewHandler(repo repository.SnapshotRepository, broadcaster *broadcast.Broadcaster, metrics *observability.Metrics) *Handler {
	return &Handler{
		repo:        repo,
		broadcaster: broadcaster,
		metrics:     metrics,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/disasters", h.getDisasters)
	r.GET("/api/disasters/stream", h.streamDisasters)
	r.GET("/api/disasters/:id", h.getDisaster)
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/api/debug/test-disaster", h.createTestDisaster)
}

func (h *Handler) getDisasters(c *gin.Context) {
	filter := repository.Filter{
		Limit: repository.DefaultLimit,
	}

	if t := c.Query("type"); t != "" {
		if dt, ok := models.ParseDisasterType(t); ok {
			filter.Type = &dt
		}
	}
	if s := c.Query("min_severity"); s != "" {
		if sev, ok := models.ParseSeverity(s); ok {
			filter.MinSeverity = &sev
		}
	}
	filter.State = strings.TrimSpace(c.Query("state"))
	filter.GeohashPrefix = strings.TrimSpace(c.Query("geohash"))
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= repository.MaxLimit {
			filter.Limit = lim
		}
	}

	near, err := parseNear(c.Query("near"), c.Query("radius_km"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.Near = near

	disasters, err := h.repo.ListDisasters(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch disasters",
		})
		return
	}

	fc := toGeoJSON(disasters)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

const defaultRadiusKm = 50.0

// parseNear reads "lat,lng" and an optional radius. A nil point means no
// proximity filter was requested.
func parseNear(near, radiusKm string) (*repository.Near, error) {
	if near == "" {
		return nil, nil
	}
	parts := strings.Split(near, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("near must be lat,lng")
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLng != nil || !geo.Valid(lat, lng) {
		return nil, fmt.Errorf("invalid near coordinates: %q", near)
	}

	radius := defaultRadiusKm
	if radiusKm != "" {
		r, err := strconv.ParseFloat(radiusKm, 64)
		if err != nil || r <= 0 {
			return nil, fmt.Errorf("invalid radius_km: %q", radiusKm)
		}
		radius = r
	}
	return &repository.Near{Lat: lat, Lng: lng, RadiusKm: radius}, nil
}

func (h *Handler) getDisaster(c *gin.Context) {
	d, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch disaster",
		})
		return
	}
	if d == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "disaster not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"disaster": d,
		"analysis": classify.Analyze(*d),
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) createTestDisaster(c *gin.Context) {
	now := time.Now()
	disaster := models.Disaster{
		ID:          fmt.Sprintf("test_%d", now.UnixNano()),
		Source:      "TEST",
		Type:        models.DisasterTypeCyclone,
		Severity:    models.SeverityCritical,
		Status:      models.StatusActive,
		Description: "This is a test cyclone alert for debugging",
		Location: models.Location{
			Name:  "Chennai",
			State: "Tamil Nadu",
			Lat:   13.0827,
			Lng:   80.2707,
		},
		ReportedAt: now,
	}

	// Broadcast only - don't persist test data to DB
	if h.broadcaster != nil {
		h.broadcaster.Broadcast(disaster)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "test disaster broadcast (not persisted)",
		"id":      disaster.ID,
	})
}
