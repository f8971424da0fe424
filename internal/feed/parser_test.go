package feed

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-sachet-alerts/internal/capalert"
	"github.com/mr1hm/go-sachet-alerts/internal/gazetteer"
	"github.com/mr1hm/go-sachet-alerts/internal/livefilter"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
)

var ist = time.FixedZone("IST", 5*60*60+30*60)

// Tue, 10 Mar 2026 09:00 IST
var now = time.Date(2026, 3, 10, 9, 0, 0, 0, ist)

func newParser(gaz *gazetteer.Gazetteer) *Parser {
	filter := livefilter.New(clockwork.NewFakeClockAt(now), ist)
	return NewParser(gaz, capalert.NewParser(gaz, filter), filter)
}

func rss(items ...string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:cap="urn:oasis:names:tc:emergency:cap:1.2">
<channel><title>SACHET</title>` + strings.Join(items, "\n") + `</channel></rss>`)
}

func TestParse_FreeTextFanOut(t *testing.T) {
	doc := rss(`<item>
	<title>IMD Warning</title>
	<description>Heavy rain and flood warning issued for Mumbai and Kolkata. People are advised to stay indoors.</description>
	<guid>g-1</guid>
	<pubDate>Tue, 10 Mar 2026 08:30:00 +0530</pubDate>
</item>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "sachet-rss-g-1-0", got[0].ID)
	assert.Equal(t, "Mumbai", got[0].Location.Name)
	assert.Equal(t, "sachet-rss-g-1-1", got[1].ID)
	assert.Equal(t, "Kolkata", got[1].Location.Name)

	for _, d := range got {
		assert.Equal(t, models.DisasterTypeFlood, d.Type)
		assert.Equal(t, models.SeverityCritical, d.Severity)
		assert.Equal(t, models.StatusActive, d.Status)
		assert.Equal(t, models.SourceSachetRSS, d.Source)
		assert.True(t, d.ReportedAt.Equal(time.Date(2026, 3, 10, 8, 30, 0, 0, ist)))
		assert.Equal(t, "Tue, 10 Mar 2026 08:30:00 +0530", d.RawReportedAt)
	}
}

func TestParse_ThreeCitiesThreeRecords(t *testing.T) {
	doc := rss(`<item>
	<title>Thunderstorm alert</title>
	<description>Thunderstorm with lightning at isolated places in Pune, Chennai and Delhi</description>
	<guid isPermaLink="false">tri</guid>
</item>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 3)

	ids := map[string]bool{}
	locs := map[models.Location]bool{}
	for _, d := range got {
		ids[d.ID] = true
		locs[d.Location] = true
		assert.Equal(t, got[0].Description, d.Description)
		assert.Equal(t, got[0].Type, d.Type)
	}
	assert.Len(t, ids, 3)
	assert.Len(t, locs, 3)
	assert.True(t, ids["sachet-rss-tri-0"], "guid with attributes should use its text")
}

func TestParse_RegionFallback(t *testing.T) {
	doc := rss(`<item>
	<title>Heavy rainfall</title>
	<description>Heavy rain very likely at isolated places over Tamil Nadu</description>
	<guid>r-1</guid>
	<pubDate>Tue, 10 Mar 2026 07:00:00 +0530</pubDate>
</item>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "sachet-rss-r-1", got[0].ID)
	assert.Equal(t, "Tamil Nadu", got[0].Location.State)
	assert.Equal(t, models.SeverityCritical, got[0].Severity)
}

func TestParse_StaleItemsSkipped(t *testing.T) {
	doc := rss(
		`<item><description>Flood in Patna</description><guid>old</guid><pubDate>Fri, 06 Mar 2026 08:00:00 +0530</pubDate></item>`,
		`<item><description>Flood in Patna</description><guid>bad</guid><pubDate>whenever</pubDate></item>`,
		`<item><description>Flood in Patna</description><guid>new</guid><pubDate>Tue, 10 Mar 2026 06:00:00 +0530</pubDate></item>`,
	)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sachet-rss-new-0", got[0].ID)
}

func TestParse_MissingPubDateIsNow(t *testing.T) {
	doc := rss(`<item><title>Cyclone near Puri</title></item>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.True(t, got[0].ReportedAt.Equal(now))
	assert.Equal(t, models.DisasterTypeCyclone, got[0].Type)
	assert.Equal(t, "Cyclone near Puri", got[0].Description, "title stands in for a missing description")
	assert.Regexp(t, `^sachet-rss-item-[0-9a-f]{16}-0$`, got[0].ID)
}

func TestParse_EmbeddedCAP(t *testing.T) {
	doc := rss(`<item>
	<title>CAP</title>
	<guid>cap-item</guid>
	<pubDate>Tue, 10 Mar 2026 08:00:00 +0530</pubDate>
	<cap:alert>
		<cap:identifier>cap-42</cap:identifier>
		<cap:sent>2026-03-10T08:00:00+05:30</cap:sent>
		<cap:status>Actual</cap:status>
		<cap:info>
			<cap:event>Earthquake</cap:event>
			<cap:severity>Moderate</cap:severity>
			<cap:description>Tremors felt in Guwahati</cap:description>
		</cap:info>
	</cap:alert>
</item>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "cap-42", got[0].ID)
	assert.Equal(t, models.DisasterTypeEarthquake, got[0].Type)
	assert.Equal(t, models.SeverityHigh, got[0].Severity)
	assert.Equal(t, "Guwahati", got[0].Location.Name)
	assert.Equal(t, models.SourceSachetCAP, got[0].Source)
}

func TestParse_EmbeddedCAPNotLiveIsDropped(t *testing.T) {
	doc := rss(`<item>
	<guid>cap-item</guid>
	<alert>
		<identifier>cap-old</identifier>
		<sent>2026-03-01T08:00:00+05:30</sent>
		<info><event>Flood</event><areaDesc>Patna</areaDesc></info>
	</alert>
</item>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParse_RawCAP(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<alert xmlns="urn:oasis:names:tc:emergency:cap:1.2">
	<identifier>raw-1</identifier>
	<sent>2026-03-09T10:00:00+05:30</sent>
	<status>Actual</status>
	<info>
		<event>Heat Wave</event>
		<severity>Extreme</severity>
		<area><areaDesc>Jaipur district</areaDesc></area>
	</info>
</alert>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "raw-1", got[0].ID)
	assert.Equal(t, models.DisasterTypeHeatwave, got[0].Type)
	assert.Equal(t, models.SeverityCritical, got[0].Severity)
	assert.Equal(t, "Jaipur", got[0].Location.Name)
}

func TestParse_Atom(t *testing.T) {
	doc := []byte(`<feed xmlns="http://www.w3.org/2005/Atom">
	<entry>
		<id>urn:sachet:1</id>
		<title>Landslide warning</title>
		<summary type="html">&lt;p&gt;Landslide risk near &lt;b&gt;Shimla&lt;/b&gt;&lt;/p&gt;</summary>
		<published>2026-03-10T05:00:00+05:30</published>
	</entry>
</feed>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "sachet-rss-urn:sachet:1-0", got[0].ID)
	assert.Equal(t, models.DisasterTypeLandslide, got[0].Type)
	assert.Equal(t, "Landslide risk near Shimla", got[0].Description)
}

func TestParse_HTMLDescription(t *testing.T) {
	doc := rss(`<item>
	<guid>h</guid>
	<description><![CDATA[<p>Dense fog</p><p>over&nbsp;<b>Lucknow</b></p>]]></description>
</item>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lucknow", got[0].Location.Name)
	assert.NotContains(t, got[0].Description, "<p>")
}

func TestParse_InvalidCoordinatesNeverEmitted(t *testing.T) {
	gaz := gazetteer.New(
		[]gazetteer.City{
			{Place: gazetteer.Place{Name: "Nowhere", State: "Void", Lat: math.NaN(), Lng: 10}},
			{Place: gazetteer.Place{Name: "Somewhere", State: "Real", Lat: 10, Lng: 10}},
		},
		nil,
	)
	doc := rss(`<item><guid>n</guid><description>Flood at Nowhere and Somewhere</description></item>`)

	got, err := newParser(gaz).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Somewhere", got[0].Location.Name)
	assert.Equal(t, "sachet-rss-n-1", got[0].ID)

	for _, d := range got {
		assert.False(t, math.IsNaN(d.Location.Lat) || math.IsInf(d.Location.Lat, 0))
	}
}

func TestParse_UnlocatableItemDropped(t *testing.T) {
	doc := rss(`<item><guid>x</guid><description>Something happened somewhere</description></item>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParse_MalformedDocument(t *testing.T) {
	_, err := newParser(gazetteer.Default()).Parse([]byte(`<rss><channel><item>`))
	assert.Error(t, err)
}

func TestParse_UnknownShape(t *testing.T) {
	got, err := newParser(gazetteer.Default()).Parse([]byte(`<html><body>maintenance</body></html>`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParse_InlineMarkupInDescription(t *testing.T) {
	doc := rss(`<item>
	<title>IMD Warning</title>
	<description>Heavy rain warning for <b>Mumbai</b> and Pune districts</description>
	<guid>inline-1</guid>
	<pubDate>Tue, 10 Mar 2026 08:30:00 +0530</pubDate>
</item>`)

	got, err := newParser(gazetteer.Default()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Mumbai", got[0].Location.Name)
	assert.Equal(t, "Pune", got[1].Location.Name)
	for _, d := range got {
		assert.Equal(t, "Heavy rain warning for Mumbai and Pune districts", d.Description)
	}
}

func TestParse_ItemWithoutGUIDKeepsIDAcrossFetches(t *testing.T) {
	doc := rss(
		`<item><title>Flood in Patna</title><pubDate>Tue, 10 Mar 2026 08:00:00 +0530</pubDate></item>`,
		`<item><title>Cyclone near Puri</title><pubDate>Tue, 10 Mar 2026 08:00:00 +0530</pubDate></item>`,
	)

	parseAt := func(at time.Time) []models.Disaster {
		filter := livefilter.New(clockwork.NewFakeClockAt(at), ist)
		p := NewParser(gazetteer.Default(), capalert.NewParser(gazetteer.Default(), filter), filter)
		got, err := p.Parse(doc)
		require.NoError(t, err)
		require.Len(t, got, 2)
		return got
	}

	first := parseAt(now)
	second := parseAt(now.Add(10 * time.Minute))

	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
	assert.NotEqual(t, first[0].ID, first[1].ID)
}
