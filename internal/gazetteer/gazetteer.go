// Package gazetteer resolves Indian place names found in free text to
// coordinates.
package gazetteer

import (
	"regexp"
	"strings"
	"sync"
)

// Place is a resolved location.
type Place struct {
	Name  string
	State string
	Lat   float64
	Lng   float64
}

// City is matched as a whole word, case-insensitively, by its name or any alias.
type City struct {
	Place
	Aliases []string
}

// Region is a coarse fallback matched as a plain lower-case substring.
type Region struct {
	Pattern string
	Place
}

type cityMatcher struct {
	place Place
	re    *regexp.Regexp
}

type Gazetteer struct {
	cities  []cityMatcher
	regions []Region
}

func New(cities []City, regions []Region) *Gazetteer {
	g := &Gazetteer{
		cities:  make([]cityMatcher, 0, len(cities)),
		regions: make([]Region, 0, len(regions)),
	}
	for _, c := range cities {
		names := append([]string{c.Name}, c.Aliases...)
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(n))
		}
		g.cities = append(g.cities, cityMatcher{
			place: c.Place,
			re:    regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`),
		})
	}
	for _, r := range regions {
		r.Pattern = strings.ToLower(r.Pattern)
		g.regions = append(g.regions, r)
	}
	return g
}

var (
	defaultOnce sync.Once
	defaultGaz  *Gazetteer
)

// Default returns the built-in India gazetteer.
func Default() *Gazetteer {
	defaultOnce.Do(func() {
		defaultGaz = New(indiaCities, indiaRegions)
	})
	return defaultGaz
}

// MatchCities returns every distinct city named in text, in table order.
func (g *Gazetteer) MatchCities(text string) []Place {
	if text == "" {
		return nil
	}
	var out []Place
	seen := make(map[string]bool)
	for _, c := range g.cities {
		if seen[c.place.Name] {
			continue
		}
		if c.re.MatchString(text) {
			seen[c.place.Name] = true
			out = append(out, c.place)
		}
	}
	return out
}

func (g *Gazetteer) FirstCity(text string) (Place, bool) {
	if text == "" {
		return Place{}, false
	}
	for _, c := range g.cities {
		if c.re.MatchString(text) {
			return c.place, true
		}
	}
	return Place{}, false
}

// MatchRegion returns the first region whose pattern occurs anywhere in text.
// Unlike city lookup this is not anchored on word boundaries.
func (g *Gazetteer) MatchRegion(text string) (Place, bool) {
	lower := strings.ToLower(text)
	for _, r := range g.regions {
		if strings.Contains(lower, r.Pattern) {
			return r.Place, true
		}
	}
	return Place{}, false
}
