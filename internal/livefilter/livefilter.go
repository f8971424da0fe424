// Package livefilter keeps only alerts that are live or from today and
// collapses duplicate records within a batch.
package livefilter

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-sachet-alerts/internal/models"
)

const (
	// RecentWindow keeps alerts without a future expiry that are younger than this.
	RecentWindow = 24 * time.Hour
	// ProximityDegrees is the per-axis distance under which two same-type,
	// same-time records are treated as one.
	ProximityDegrees = 0.1
)

type Filter struct {
	clock clockwork.Clock
	loc   *time.Location
}

// New builds a filter whose notion of "today" is the calendar day in loc.
// A nil clock means the wall clock, a nil loc means UTC.
func New(clock clockwork.Clock, loc *time.Location) *Filter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Filter{clock: clock, loc: loc}
}

func (f *Filter) Now() time.Time {
	return f.clock.Now()
}

func (f *Filter) Location() *time.Location {
	return f.loc
}

// IsLiveOrToday reports whether an alert reported at reportedAt is still of
// interest: reported today, not yet expired, or reported within RecentWindow.
func (f *Filter) IsLiveOrToday(reportedAt time.Time, expires *time.Time) bool {
	if reportedAt.IsZero() {
		return false
	}

	now := f.clock.Now()
	if sameDay(reportedAt.In(f.loc), now.In(f.loc)) {
		return true
	}
	if expires != nil && !expires.IsZero() && expires.After(now) {
		return true
	}
	return now.Sub(reportedAt) < RecentWindow
}

// IsLiveString is IsLiveOrToday for a raw feed timestamp. Unparseable input is
// never live.
func (f *Filter) IsLiveString(reportedAt string) bool {
	t, err := f.ParseTimestamp(reportedAt)
	if err != nil {
		slog.Warn("invalid alert timestamp", "value", reportedAt)
		return false
	}
	return f.IsLiveOrToday(t, nil)
}

// ParseTimestamp parses a feed timestamp; zone-less values are read in the
// filter's location.
func (f *Filter) ParseTimestamp(s string) (time.Time, error) {
	return ParseTimestamp(s, f.loc)
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05 -0700",
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, l := range zonedLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, l := range localLayouts {
		if t, err := time.ParseInLocation(l, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp: %q", s)
}

// Apply drops every record that is no longer live.
func (f *Filter) Apply(disasters []models.Disaster) []models.Disaster {
	out := make([]models.Disaster, 0, len(disasters))
	for _, d := range disasters {
		if f.IsLiveOrToday(d.ReportedAt, d.Expires) {
			out = append(out, d)
		}
	}
	return out
}

// Dedup keeps a record only if no earlier record in the input is equivalent
// to it: same id, or same type and report time within ProximityDegrees on
// both axes. The result is stable and Dedup(Dedup(x)) == Dedup(x).
func Dedup(disasters []models.Disaster) []models.Disaster {
	out := make([]models.Disaster, 0, len(disasters))
	for i, d := range disasters {
		dup := false
		for j := 0; j < i; j++ {
			if equivalent(disasters[j], d) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, d)
		}
	}
	return out
}

// equivalent compares report times as instants, whatever zone they were
// written in.
func equivalent(a, b models.Disaster) bool {
	if a.ID == b.ID {
		return true
	}
	return a.Type == b.Type &&
		a.ReportedAt.Equal(b.ReportedAt) &&
		math.Abs(a.Location.Lat-b.Location.Lat) < ProximityDegrees &&
		math.Abs(a.Location.Lng-b.Location.Lng) < ProximityDegrees
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
