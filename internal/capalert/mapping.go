package capalert

import (
	"strings"

	"github.com/mr1hm/go-sachet-alerts/internal/models"
)

type eventRule struct {
	typ   models.DisasterType
	event []string // matched against <event>
	code  []string // matched against <eventCode>
}

var eventRules = []eventRule{
	{typ: models.DisasterTypeFlood, event: []string{"flood"}, code: []string{"flood"}},
	{typ: models.DisasterTypeEarthquake, event: []string{"earthquake"}, code: []string{"quake", "seismic"}},
	{typ: models.DisasterTypeCyclone, event: []string{"cyclone", "hurricane", "typhoon"}, code: []string{"cyclone"}},
	{typ: models.DisasterTypeDrought, event: []string{"drought"}, code: []string{"drought"}},
	{typ: models.DisasterTypeFire, event: []string{"fire", "wildfire", "forest fire", "explosion", "blast"}, code: []string{"fire"}},
	{typ: models.DisasterTypeLandslide, event: []string{"landslide", "mudslide"}, code: []string{"landslide"}},
	{typ: models.DisasterTypeThunderstorm, event: []string{"thunderstorm", "thunder"}, code: []string{"thunder"}},
	{typ: models.DisasterTypeHeatwave, event: []string{"heat wave", "heatwave"}, code: []string{"heat"}},
	{typ: models.DisasterTypeColdwave, event: []string{"cold wave", "coldwave"}, code: []string{"cold"}},
}

// MapEventType maps a CAP event name and event code to a disaster type.
// Unrecognised events are treated as floods, the feed's dominant hazard.
func MapEventType(eventCode, event string) models.DisasterType {
	ev := strings.ToLower(event)
	code := strings.ToLower(eventCode)

	for _, r := range eventRules {
		if containsAny(ev, r.event) || containsAny(code, r.code) {
			return r.typ
		}
	}
	return models.DisasterTypeFlood
}

func containsAny(s string, subs []string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// MapSeverity maps the CAP severity vocabulary (Extreme, Severe, Moderate,
// Minor, Unknown) onto the dashboard scale.
func MapSeverity(severity string) models.Severity {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "extreme", "severe":
		return models.SeverityCritical
	case "moderate":
		return models.SeverityHigh
	case "minor":
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
