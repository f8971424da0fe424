package classify

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/mr1hm/go-sachet-alerts/internal/models"
)

const (
	// TypeMatchBonus is added to a key's score when the record's type equals it.
	TypeMatchBonus = 0.5
	// ConfidenceThreshold is the minimum winning score before falling back to
	// the record's own type.
	ConfidenceThreshold = 0.3
)

type Analysis struct {
	EffectiveType string   `json:"effectiveType"`
	Label         string   `json:"label"`
	DisplayTitle  string   `json:"displayTitle"`
	Image         string   `json:"image"`
	IconName      string   `json:"iconName"`
	Color         string   `json:"color"`
	Confidence    float64  `json:"confidence"`
	Factors       []string `json:"factors"`
}

type keywordRef struct {
	config int
	kw     int
}

// keywordIndex finds every configured keyword in a single pass. The matcher
// keeps per-call state, so Match is serialised.
type keywordIndex struct {
	mu      sync.Mutex
	matcher *ahocorasick.Matcher
	refs    [][]keywordRef
}

func newKeywordIndex(configs []TypeConfig) *keywordIndex {
	var dict []string
	pos := make(map[string]int)
	var refs [][]keywordRef

	for ci, c := range configs {
		for ki, kw := range c.Keywords {
			i, ok := pos[kw.Word]
			if !ok {
				i = len(dict)
				pos[kw.Word] = i
				dict = append(dict, kw.Word)
				refs = append(refs, nil)
			}
			refs[i] = append(refs[i], keywordRef{config: ci, kw: ki})
		}
	}

	return &keywordIndex{
		matcher: ahocorasick.NewStringMatcher(dict),
		refs:    refs,
	}
}

// hits reports, per config index, which keyword indexes occur in text.
func (idx *keywordIndex) hits(text string) map[int]map[int]bool {
	idx.mu.Lock()
	found := idx.matcher.Match([]byte(text))
	idx.mu.Unlock()

	out := make(map[int]map[int]bool)
	for _, i := range found {
		for _, r := range idx.refs[i] {
			if out[r.config] == nil {
				out[r.config] = make(map[int]bool)
			}
			out[r.config][r.kw] = true
		}
	}
	return out
}

var defaultIndex = newKeywordIndex(typeConfigs)

// Analyze scores the record's description against every type key and returns
// the winning key with its display metadata.
func Analyze(d models.Disaster) Analysis {
	desc := strings.ToLower(d.Description)
	apiType := strings.ToLower(string(d.Type))
	hits := defaultIndex.hits(desc)

	best := DefaultKey
	bestScore := 0.0
	var factors []string

	for ci, c := range typeConfigs {
		if c.Key == DefaultKey {
			continue
		}

		score := 0.0
		var current []string
		if apiType == c.Key {
			score += TypeMatchBonus
			current = append(current, "API Type match: "+c.Key)
		}
		for ki, kw := range c.Keywords {
			if hits[ci][ki] {
				score += kw.Weight
				current = append(current, fmt.Sprintf("Keyword: %q (+%s)", kw.Word, strconv.FormatFloat(kw.Weight, 'f', -1, 64)))
			}
		}

		if score > bestScore {
			best = c.Key
			bestScore = score
			factors = current
		}
	}

	if bestScore < ConfidenceThreshold {
		if _, ok := configByKey[apiType]; ok {
			best = apiType
			factors = []string{"Fallback to API Type"}
		} else {
			best = DefaultKey
		}
	}

	cfg := Config(best)
	return Analysis{
		EffectiveType: best,
		Label:         strings.ToUpper(cfg.Label),
		DisplayTitle:  displayTitle(best, cfg.Label, d.Location),
		Image:         cfg.Image,
		IconName:      cfg.IconName,
		Color:         cfg.Color,
		Confidence:    min(bestScore, 1.0),
		Factors:       factors,
	}
}

func displayTitle(key, label string, loc models.Location) string {
	place := loc.State
	if place == "" {
		place = loc.Name
	}

	switch key {
	case "flood":
		return "Severe Flood Reported in " + place
	case "fog":
		return "Dense Fog Alert Issued for " + place
	case "thunderstorm":
		return "Thunderstorm Warning in " + place
	case "earthquake":
		return "Earthquake Alert Near " + place
	default:
		return "Severe " + label + " Reported in " + place
	}
}
