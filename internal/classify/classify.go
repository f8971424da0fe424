// Package classify infers disaster type and severity from alert text.
//
// ClassifyType and ClassifySeverity are flat, first-match-wins decisions used
// while ingesting free-text feed items. Analyze is the weighted scorer used at
// display time; the two are intentionally independent.
package classify

import (
	"strings"

	"github.com/mr1hm/go-sachet-alerts/internal/models"
)

// rule matches when any keyword occurs, or when every keyword of any group in
// allOf occurs.
type rule[T any] struct {
	result T
	anyOf  []string
	allOf  [][]string
}

func (r rule[T]) matches(text string) bool {
	for _, kw := range r.anyOf {
		if strings.Contains(text, kw) {
			return true
		}
	}
	for _, group := range r.allOf {
		if containsAll(text, group) {
			return true
		}
	}
	return false
}

func containsAll(text string, kws []string) bool {
	for _, kw := range kws {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

func firstMatch[T any](rules []rule[T], text string, fallback T) T {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lower) {
			return r.result
		}
	}
	return fallback
}

// IMD rain bulletins ("heavy rain", "7-11 cm") are flood precursors, so the
// rain checks run before every other hazard.
var typeRules = []rule[models.DisasterType]{
	{result: models.DisasterTypeFlood, anyOf: []string{"heavy rain", "heavy  rain"}, allOf: [][]string{{"rain", "07-11 cm"}, {"rain", "flood"}}},
	{result: models.DisasterTypeFlood, anyOf: []string{"flood", "flooding", "inundat"}},
	{result: models.DisasterTypeEarthquake, anyOf: []string{"earthquake", "quake", "seismic"}},
	{result: models.DisasterTypeCyclone, anyOf: []string{"cyclone", "hurricane", "typhoon", "squally weather", "strong wind"}},
	{result: models.DisasterTypeDrought, anyOf: []string{"drought", "water shortage", "scarcity"}},
	{result: models.DisasterTypeFire, anyOf: []string{"fire", "blaze", "inferno", "forest fire", "wildfire", "bush fire", "explosion", "blast", "short circuit"}},
	{result: models.DisasterTypeLandslide, anyOf: []string{"landslide", "mudslide", "rockfall"}},
	{result: models.DisasterTypeColdwave, anyOf: []string{"cold wave", "cold wave conditions", "शीत लहर", "कोल्ड डे"}},
	{result: models.DisasterTypeFlood, anyOf: []string{"rain", "thunderstorm", "thunder"}},
}

var severityRules = []rule[models.Severity]{
	{
		result: models.SeverityCritical,
		anyOf:  []string{"critical", "severe", "extreme", "catastrophic", "07-11 cm", "people are advised"},
		allOf:  [][]string{{"very likely", "heavy"}},
	},
	{
		result: models.SeverityHigh,
		anyOf:  []string{"heavy rain", "heavy  rain", "high", "major", "significant"},
		allOf:  [][]string{{"moderate rain", "very likely"}},
	},
	{result: models.SeverityMedium, anyOf: []string{"moderate", "medium", "at a few places"}},
	{result: models.SeverityLow, anyOf: []string{"light rain", "isolated places", "light to moderate"}},
}

// ClassifyType returns the first hazard whose keywords occur in text, or flood.
func ClassifyType(text string) models.DisasterType {
	return firstMatch(typeRules, text, models.DisasterTypeFlood)
}

// ClassifySeverity returns the first severity whose signals occur in text, or
// medium.
func ClassifySeverity(text string) models.Severity {
	return firstMatch(severityRules, text, models.SeverityMedium)
}
