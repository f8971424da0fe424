package capalert

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-sachet-alerts/internal/gazetteer"
	"github.com/mr1hm/go-sachet-alerts/internal/livefilter"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
	"github.com/mr1hm/go-sachet-alerts/internal/xmltree"
)

var ist = time.FixedZone("IST", 5*60*60+30*60)
var now = time.Date(2026, 3, 10, 9, 0, 0, 0, ist)

func newParser() *Parser {
	return NewParser(gazetteer.Default(), livefilter.New(clockwork.NewFakeClockAt(now), ist))
}

func decode(t *testing.T, doc string) *xmltree.Element {
	t.Helper()
	root, err := xmltree.Decode([]byte(doc))
	require.NoError(t, err)
	return root
}

func TestParse_FullAlert(t *testing.T) {
	alert := decode(t, `<alert xmlns="urn:oasis:names:tc:emergency:cap:1.2">
	<identifier>2.49.0.1.356.0.2026.1</identifier>
	<sent>2026-03-10T08:00:00+05:30</sent>
	<status>Actual</status>
	<info>
		<event>Flash Flood</event>
		<severity>Severe</severity>
		<expires>2026-03-11T08:00:00+05:30</expires>
		<headline>Flash flood warning</headline>
		<description>Flash flooding likely in low lying areas of Mumbai</description>
		<area><areaDesc>Mumbai Suburban</areaDesc><polygon>19.1,72.8 19.2,72.9 19.1,72.9 19.1,72.8</polygon></area>
	</info>
</alert>`)

	d, err := newParser().Parse(alert)
	require.NoError(t, err)

	assert.Equal(t, "2.49.0.1.356.0.2026.1", d.ID)
	assert.Equal(t, models.DisasterTypeFlood, d.Type)
	assert.Equal(t, models.SeverityCritical, d.Severity)
	assert.Equal(t, models.StatusActive, d.Status)
	assert.Equal(t, models.Location{Name: "Mumbai", State: "Maharashtra", Lat: 19.0760, Lng: 72.8777}, d.Location)
	assert.Equal(t, "Flash flooding likely in low lying areas of Mumbai", d.Description)
	assert.True(t, d.ReportedAt.Equal(time.Date(2026, 3, 10, 8, 0, 0, 0, ist)))
	require.NotNil(t, d.Expires)
	assert.True(t, d.Expires.Equal(time.Date(2026, 3, 11, 8, 0, 0, 0, ist)))
	assert.Equal(t, models.SourceSachetCAP, d.Source)
}

func TestParse_GeometryFallback(t *testing.T) {
	alert := decode(t, `<alert>
	<identifier>geo-1</identifier>
	<sent>2026-03-10T08:00:00+05:30</sent>
	<status>Exercise</status>
	<info>
		<event>Landslide</event>
		<severity>Moderate</severity>
		<circle>30.45, 78.10 5</circle>
		<areaDesc>Tehri Garhwal</areaDesc>
	</info>
</alert>`)

	d, err := newParser().Parse(alert)
	require.NoError(t, err)

	assert.Equal(t, models.Location{Name: "Tehri Garhwal", State: "India", Lat: 30.45, Lng: 78.10}, d.Location)
	assert.Equal(t, models.DisasterTypeLandslide, d.Type)
	assert.Equal(t, models.SeverityHigh, d.Severity)
	assert.Equal(t, models.StatusContained, d.Status)
	assert.Equal(t, "Landslide", d.Description)
}

func TestParse_Unlocatable(t *testing.T) {
	alert := decode(t, `<alert><identifier>u-1</identifier><info><event>Heat Wave</event><areaDesc>Somewhere</areaDesc></info></alert>`)

	_, err := newParser().Parse(alert)
	assert.ErrorIs(t, err, ErrUnlocatable)
}

func TestParse_InvalidCoordinates(t *testing.T) {
	alert := decode(t, `<alert><identifier>bad</identifier><info><event>Storm</event><polygon>abc,def</polygon></info></alert>`)

	_, err := newParser().Parse(alert)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	alert = decode(t, `<alert><identifier>range</identifier><info><event>Storm</event><polygon>120,72</polygon></info></alert>`)
	_, err = newParser().Parse(alert)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestParse_AttributedFieldsAndDefaults(t *testing.T) {
	// no <info>, attributed leaves, no identifier, no sent
	alert := decode(t, `<alert>
	<event lang="en">Cold Wave</event>
	<severity lang="en">Minor</severity>
	<areaDesc lang="en">Srinagar</areaDesc>
</alert>`)

	d, err := newParser().Parse(alert)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(d.ID, "sachet-"), d.ID)
	assert.Equal(t, models.DisasterTypeColdwave, d.Type)
	assert.Equal(t, models.SeverityMedium, d.Severity)
	assert.Equal(t, "Srinagar", d.Location.Name)
	assert.Equal(t, "Cold Wave", d.Description)
	assert.True(t, d.ReportedAt.Equal(now))
	assert.Nil(t, d.Expires)
}

func TestParse_LocationFromEvent(t *testing.T) {
	alert := decode(t, `<alert><identifier>e-1</identifier><info><event>Kolkata cyclone</event></info></alert>`)

	d, err := newParser().Parse(alert)
	require.NoError(t, err)
	assert.Equal(t, "Kolkata", d.Location.Name)
	assert.Equal(t, models.DisasterTypeCyclone, d.Type)
	assert.Equal(t, models.SeverityLow, d.Severity)
}

func TestParse_UnparseableSentIsKeptRaw(t *testing.T) {
	alert := decode(t, `<alert><identifier>s-1</identifier><sent>sometime</sent><info><event>Flood</event><areaDesc>Patna</areaDesc></info></alert>`)

	d, err := newParser().Parse(alert)
	require.NoError(t, err)
	assert.True(t, d.ReportedAt.IsZero())
	assert.Equal(t, "sometime", d.RawReportedAt)
}

func TestMapEventType(t *testing.T) {
	tests := []struct {
		code, event string
		want        models.DisasterType
	}{
		{"", "River Flood", models.DisasterTypeFlood},
		{"EQ-SEISMIC", "", models.DisasterTypeEarthquake},
		{"", "Typhoon", models.DisasterTypeCyclone},
		{"", "Forest Fire", models.DisasterTypeFire},
		{"", "Mudslide", models.DisasterTypeLandslide},
		{"", "Thunderstorm and Lightning", models.DisasterTypeThunderstorm},
		{"HEAT", "", models.DisasterTypeHeatwave},
		{"", "Cold Wave", models.DisasterTypeColdwave},
		{"", "Drought", models.DisasterTypeDrought},
		{"", "Tsunami", models.DisasterTypeFlood},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapEventType(tt.code, tt.event), "%s/%s", tt.code, tt.event)
	}
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, models.SeverityCritical, MapSeverity("Extreme"))
	assert.Equal(t, models.SeverityCritical, MapSeverity("severe"))
	assert.Equal(t, models.SeverityHigh, MapSeverity("Moderate"))
	assert.Equal(t, models.SeverityMedium, MapSeverity("Minor"))
	assert.Equal(t, models.SeverityLow, MapSeverity("Unknown"))
	assert.Equal(t, models.SeverityLow, MapSeverity(""))
}
