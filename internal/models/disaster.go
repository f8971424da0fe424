package models

import (
	"fmt"
	"strings"
	"time"
)

type DisasterType string

const (
	DisasterTypeFlood        DisasterType = "flood"
	DisasterTypeEarthquake   DisasterType = "earthquake"
	DisasterTypeCyclone      DisasterType = "cyclone"
	DisasterTypeDrought      DisasterType = "drought"
	DisasterTypeFire         DisasterType = "fire"
	DisasterTypeLandslide    DisasterType = "landslide"
	DisasterTypeThunderstorm DisasterType = "thunderstorm"
	DisasterTypeHeatwave     DisasterType = "heatwave"
	DisasterTypeColdwave     DisasterType = "coldwave"
	DisasterTypeFog          DisasterType = "fog"
	DisasterTypeHail         DisasterType = "hail"
	DisasterTypeDust         DisasterType = "dust"
)

var disasterTypes = []DisasterType{
	DisasterTypeFlood,
	DisasterTypeEarthquake,
	DisasterTypeCyclone,
	DisasterTypeDrought,
	DisasterTypeFire,
	DisasterTypeLandslide,
	DisasterTypeThunderstorm,
	DisasterTypeHeatwave,
	DisasterTypeColdwave,
	DisasterTypeFog,
	DisasterTypeHail,
	DisasterTypeDust,
}

func (t DisasterType) String() string {
	return string(t)
}

// ParseDisasterType is case-insensitive and reports false for unknown names.
func ParseDisasterType(s string) (DisasterType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range disasterTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

const (
	SourceSachetRSS = "sachet-rss"
	SourceSachetCAP = "sachet-cap"
)

type Location struct {
	Name  string  `json:"name"`
	State string  `json:"state"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

type Disaster struct {
	ID             string       `json:"id"`
	Source         string       `json:"source,omitempty"`
	Type           DisasterType `json:"type"`
	Location       Location     `json:"location"`
	Severity       Severity     `json:"severity"`
	Description    string       `json:"description"`
	ReportedAt     time.Time    `json:"reportedAt"`
	RawReportedAt  string       `json:"-"` // feed value before parsing, kept for logs
	Expires        *time.Time   `json:"expires,omitempty"`
	Status         Status       `json:"status"`
	AffectedPeople *int         `json:"affectedPeople,omitempty"`
}

// Located reports whether the record names a place at all.
func (d *Disaster) Located() bool {
	return d.Location.Name != "" && d.Location.State != ""
}

func (d Disaster) String() string {
	return fmt.Sprintf("%s[%s/%s @ %s]", d.ID, d.Type, d.Severity, d.Location.Name)
}
