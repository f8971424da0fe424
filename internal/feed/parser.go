// Package feed parses the SACHET RSS/Atom wrapper, or a raw CAP document,
// into Disaster records.
package feed

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"

	"github.com/mr1hm/go-sachet-alerts/internal/capalert"
	"github.com/mr1hm/go-sachet-alerts/internal/classify"
	"github.com/mr1hm/go-sachet-alerts/internal/gazetteer"
	"github.com/mr1hm/go-sachet-alerts/internal/geo"
	"github.com/mr1hm/go-sachet-alerts/internal/livefilter"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
	"github.com/mr1hm/go-sachet-alerts/internal/xmltree"
)

const capNamespace = "urn:oasis:names:tc:emergency:cap"

type Parser struct {
	gaz    *gazetteer.Gazetteer
	cap    *capalert.Parser
	filter *livefilter.Filter
}

func NewParser(gaz *gazetteer.Gazetteer, capParser *capalert.Parser, filter *livefilter.Filter) *Parser {
	return &Parser{
		gaz:    gaz,
		cap:    capParser,
		filter: filter,
	}
}

// Parse returns every usable, live record in doc. Only a malformed document
// is an error; individual unusable items are logged and skipped.
func (p *Parser) Parse(doc []byte) ([]models.Disaster, error) {
	root, err := xmltree.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("error parsing feed: %w", err)
	}

	disasters := make([]models.Disaster, 0)

	if items := feedItems(root); len(items) > 0 {
		for i, item := range items {
			disasters = append(disasters, p.parseItem(i, item)...)
		}
		return disasters, nil
	}

	for _, alert := range capAlerts(root) {
		if d, ok := p.parseCAP(alert); ok {
			disasters = append(disasters, d)
		}
	}
	return disasters, nil
}

// feedItems returns RSS <item>s and, for Atom documents, <entry>s.
func feedItems(root *xmltree.Element) []*xmltree.Element {
	items := root.Find("item")
	if root.Name.Local == "feed" {
		items = append(items, root.Find("entry")...)
	}
	return items
}

func capAlerts(root *xmltree.Element) []*xmltree.Element {
	if root.Name.Local == "alert" {
		return append([]*xmltree.Element{root}, root.Find("alert")...)
	}
	return root.Find("alert")
}

func (p *Parser) parseCAP(alert *xmltree.Element) (models.Disaster, bool) {
	d, err := p.cap.Parse(alert)
	if err != nil {
		slog.Warn("skipping cap alert", "error", err)
		return models.Disaster{}, false
	}
	if !p.filter.IsLiveOrToday(d.ReportedAt, d.Expires) {
		slog.Debug("cap alert not live", "id", d.ID, "sent", d.RawReportedAt)
		return models.Disaster{}, false
	}
	return d, true
}

func (p *Parser) parseItem(index int, item *xmltree.Element) []models.Disaster {
	title := plainText(item.ChildText("title"))
	description := plainText(firstNonEmpty(item.ChildText("description"), item.ChildText("summary")))
	content := plainText(firstNonEmpty(item.ChildText("content"), item.ChildText("encoded")))

	pubDate := firstNonEmpty(item.ChildText("pubDate"), item.ChildText("published"), item.ChildText("updated"))
	reportedAt := p.filter.Now()
	if pubDate != "" {
		t, err := p.filter.ParseTimestamp(pubDate)
		if err != nil {
			slog.Warn("invalid item date", "index", index, "pubDate", pubDate)
			return nil
		}
		reportedAt = t
	}
	if !p.filter.IsLiveOrToday(reportedAt, nil) {
		return nil
	}

	if alert := embeddedAlert(item); alert != nil {
		if d, ok := p.parseCAP(alert); ok {
			return []models.Disaster{d}
		}
		return nil
	}

	fullText := title + " " + description + " " + content
	base := models.Disaster{
		Source:        models.SourceSachetRSS,
		Type:          classify.ClassifyType(fullText),
		Severity:      classify.ClassifySeverity(fullText),
		Description:   firstNonEmpty(description, title, capalert.DefaultDescription),
		ReportedAt:    reportedAt,
		RawReportedAt: pubDate,
		Status:        models.StatusActive,
	}
	guid := itemGUID(index, item)

	if places := p.gaz.MatchCities(fullText); len(places) > 0 {
		out := make([]models.Disaster, 0, len(places))
		for i, place := range places {
			d := base
			d.ID = fmt.Sprintf("sachet-rss-%s-%d", guid, i)
			d.Location = toLocation(place)
			if !validLocation(d) {
				continue
			}
			out = append(out, d)
		}
		return out
	}

	if place, ok := p.gaz.MatchRegion(fullText); ok {
		d := base
		d.ID = "sachet-rss-" + guid
		d.Location = toLocation(place)
		if validLocation(d) {
			return []models.Disaster{d}
		}
	}
	return nil
}

// embeddedAlert finds a CAP alert carried inside an item, either as an
// <alert> element (any prefix) or an element declaring the CAP namespace.
func embeddedAlert(item *xmltree.Element) *xmltree.Element {
	if found := item.Find("alert"); len(found) > 0 {
		return found[0]
	}
	var match *xmltree.Element
	var walk func(*xmltree.Element) bool
	walk = func(n *xmltree.Element) bool {
		for _, c := range n.Children {
			for k, v := range c.Attrs {
				if (k == "xmlns" || strings.HasPrefix(k, "xmlns:")) && strings.Contains(v, capNamespace) {
					match = c
					return true
				}
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(item)
	return match
}

// itemGUID falls back to a digest of the item's text when it carries no
// guid or Atom id, so the same item keeps its id across fetches.
func itemGUID(index int, item *xmltree.Element) string {
	if g := item.ChildElement("guid"); g != nil {
		if txt := xmltree.TextOf(g); txt != "" {
			return txt
		}
		return fmt.Sprintf("item-%d", index)
	}
	if id := item.ChildText("id"); id != "" {
		return id
	}
	return fmt.Sprintf("item-%016x", xxhash.Sum64String(item.Content()))
}

func validLocation(d models.Disaster) bool {
	if d.Located() && geo.Valid(d.Location.Lat, d.Location.Lng) {
		return true
	}
	slog.Warn("skipping disaster with invalid location", "id", d.ID, "location", d.Location)
	return false
}

func toLocation(p gazetteer.Place) models.Location {
	return models.Location{Name: p.Name, State: p.State, Lat: p.Lat, Lng: p.Lng}
}

// plainText reduces HTML markup, common in RSS descriptions, to single-spaced
// text.
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("br, p, div, li, tr").AfterHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
