// Package capalert turns a single CAP 1.2 <alert> into a Disaster record.
package capalert

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mr1hm/go-sachet-alerts/internal/gazetteer"
	"github.com/mr1hm/go-sachet-alerts/internal/geo"
	"github.com/mr1hm/go-sachet-alerts/internal/livefilter"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
	"github.com/mr1hm/go-sachet-alerts/internal/xmltree"
)

// Geographic centre of India; alerts that resolve to nothing better are dropped.
const (
	DefaultLat = 20.5937
	DefaultLng = 78.9629
)

const DefaultDescription = "Disaster alert from NDMA SACHET"

var (
	ErrUnlocatable        = errors.New("alert has no recognisable location")
	ErrInvalidCoordinates = errors.New("alert coordinates are not valid")
)

var coordSep = regexp.MustCompile(`[\s,]+`)

type Parser struct {
	gaz    *gazetteer.Gazetteer
	filter *livefilter.Filter
}

// NewParser uses filter as the clock for missing sent times and for reading
// zone-less timestamps.
func NewParser(gaz *gazetteer.Gazetteer, filter *livefilter.Filter) *Parser {
	return &Parser{gaz: gaz, filter: filter}
}

// Parse converts one CAP alert element. It fails with ErrUnlocatable when no
// place can be resolved and with ErrInvalidCoordinates when the resolved
// coordinates are unusable.
func (p *Parser) Parse(alert *xmltree.Element) (models.Disaster, error) {
	if alert == nil {
		return models.Disaster{}, fmt.Errorf("nil alert: %w", ErrUnlocatable)
	}

	info := alert.ChildElement("info")
	if info == nil {
		info = alert
	}

	eventCode := info.ChildText("eventCode")
	event := info.ChildText("event")
	if event == "" {
		event = eventCode
	}
	severity := info.ChildText("severity")
	if severity == "" {
		severity = "Unknown"
	}
	description := info.ChildText("description")
	if description == "" {
		description = info.ChildText("headline")
	}
	area := areaText(info)

	lat, lng := DefaultLat, DefaultLng
	if coords := geometry(info); coords != "" {
		parts := strings.Fields(coordSep.ReplaceAllString(coords, " "))
		if len(parts) >= 2 {
			lat = parseCoord(parts[0])
			lng = parseCoord(parts[1])
		}
	}

	id := alert.ChildText("identifier")
	if id == "" {
		id = fmt.Sprintf("sachet-%d-%s", p.filter.Now().UnixMilli(), uuid.NewString())
	}

	place, found := p.gaz.FirstCity(area + " " + description)
	if !found {
		place, found = p.gaz.FirstCity(event)
	}
	if !found && lat == DefaultLat && lng == DefaultLng {
		return models.Disaster{}, fmt.Errorf("alert %s: %w", id, ErrUnlocatable)
	}

	loc := models.Location{Name: area, State: "India", Lat: lat, Lng: lng}
	if loc.Name == "" {
		loc.Name = "India"
	}
	if found {
		loc = models.Location{Name: place.Name, State: place.State, Lat: place.Lat, Lng: place.Lng}
	}
	if !geo.Valid(loc.Lat, loc.Lng) {
		return models.Disaster{}, fmt.Errorf("alert %s (%v, %v): %w", id, loc.Lat, loc.Lng, ErrInvalidCoordinates)
	}

	d := models.Disaster{
		ID:          id,
		Source:      models.SourceSachetCAP,
		Type:        MapEventType(eventCode, event),
		Location:    loc,
		Severity:    MapSeverity(severity),
		Description: firstNonEmpty(description, event, DefaultDescription),
		Status:      models.StatusContained,
	}
	if alert.ChildText("status") == "Actual" {
		d.Status = models.StatusActive
	}

	sent := firstNonEmpty(alert.ChildText("sent"), info.ChildText("sent"))
	if sent == "" {
		d.ReportedAt = p.filter.Now()
		d.RawReportedAt = d.ReportedAt.Format(time.RFC3339)
	} else {
		d.RawReportedAt = sent
		// an unparseable sent time leaves ReportedAt zero, which is never live
		if t, err := p.filter.ParseTimestamp(sent); err == nil {
			d.ReportedAt = t
		}
	}

	if exp := firstNonEmpty(info.ChildText("expires"), alert.ChildText("expires")); exp != "" {
		if t, err := p.filter.ParseTimestamp(exp); err == nil {
			d.Expires = &t
		}
	}

	return d, nil
}

// areaText prefers the areaDesc of every <area> over the raw element text,
// which would otherwise include polygon coordinates.
func areaText(info *xmltree.Element) string {
	var descs []string
	for _, a := range info.ChildrenNamed("area") {
		if desc := a.ChildText("areaDesc"); desc != "" {
			descs = append(descs, desc)
		} else if txt := xmltree.TextOf(a); txt != "" {
			descs = append(descs, txt)
		}
	}
	if len(descs) > 0 {
		return strings.Join(descs, ", ")
	}
	return info.ChildText("areaDesc")
}

// geometry returns the first polygon, else circle, declared on info or any of
// its areas.
func geometry(info *xmltree.Element) string {
	scopes := append([]*xmltree.Element{info}, info.ChildrenNamed("area")...)
	for _, name := range []string{"polygon", "circle"} {
		for _, s := range scopes {
			if v := s.ChildText(name); v != "" {
				return v
			}
		}
	}
	return ""
}

func parseCoord(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
