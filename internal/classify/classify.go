// Package classify partitions a team's matches into past, live and upcoming
// relative to a reference instant in a named timezone, and formats match
// data for display.
package classify

import (
	"sort"
	"strings"
	"time"

	"matchday/internal/domain"
)

const (
	dateLayout = "2006-01-02"
)

var clockLayouts = []string{"15:04:05", "15:04"}

type Buckets struct {
	Past     []domain.Match
	Live     []domain.Match
	Upcoming []domain.Match
}

func (b Buckets) Len() int {
	return len(b.Past) + len(b.Live) + len(b.Upcoming)
}

// Classify sorts a copy of matches by kickoff and splits it into the three
// buckets. Every input match lands in exactly one bucket. The input slice is
// left untouched.
func Classify(matches []domain.Match, now time.Time, loc *time.Location) Buckets {
	if loc == nil {
		loc = time.UTC
	}

	sorted := make([]domain.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return EffectiveTime(sorted[i]).Before(EffectiveTime(sorted[j]))
	})

	today := Midnight(now, loc)
	out := Buckets{
		Past:     []domain.Match{},
		Live:     []domain.Match{},
		Upcoming: []domain.Match{},
	}
	for _, m := range sorted {
		switch BucketOf(m, today, loc) {
		case domain.BucketLive:
			out.Live = append(out.Live, m)
		case domain.BucketPast:
			out.Past = append(out.Past, m)
		default:
			out.Upcoming = append(out.Upcoming, m)
		}
	}
	return out
}

// BucketOf applies the classification rules in order: live status, finished
// status, date before today, otherwise upcoming. today must be a midnight in
// loc.
func BucketOf(m domain.Match, today time.Time, loc *time.Location) domain.Bucket {
	if KindOf(m.Status) == StatusInProgress {
		return domain.BucketLive
	}
	if finishedOnClock(m.Status) {
		return domain.BucketPast
	}
	if day, ok := parseDate(m.Date, loc); ok && day.Before(today) {
		return domain.BucketPast
	}
	return domain.BucketUpcoming
}

// Midnight returns the start of now's calendar day in loc.
func Midnight(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	y, mo, d := local.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, loc)
}

// EffectiveTime is the sort key for a match: its date and time of day in
// UTC, midnight when the time is missing. Matches without a usable date get
// the zero time and sort first.
func EffectiveTime(m domain.Match) time.Time {
	day, ok := parseDate(m.Date, time.UTC)
	if !ok {
		return time.Time{}
	}
	clock, ok := parseClock(m.Time)
	if !ok {
		return day
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour +
		time.Duration(clock.Minute())*time.Minute +
		time.Duration(clock.Second())*time.Second)
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseClock(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	// upstream sometimes appends an offset, e.g. "19:30:00+00:00"
	if len(s) > 8 {
		s = s[:8]
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
