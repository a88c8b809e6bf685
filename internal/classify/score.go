package classify

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"matchday/internal/domain"
)

// ParseScore reports the numeric value of s when it is usable as a score.
func ParseScore(s domain.Score) (float64, bool) {
	if !s.Present {
		return 0, false
	}
	raw := strings.TrimSpace(s.Raw)
	if raw == "" || raw == "null" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

type Side struct {
	Team  string
	Score float64
}

// Outcome orders the two sides of a scored match. For a draw First is the
// home side and Second the away side.
type Outcome struct {
	First  Side
	Second Side
	Draw   bool
}

// Leader returns the leading side, false on a draw.
func (o Outcome) Leader() (Side, bool) {
	if o.Draw {
		return Side{}, false
	}
	return o.First, true
}

func (o Outcome) String() string {
	s := fmt.Sprintf("%s %s – %s %s",
		o.First.Team, formatScore(o.First.Score),
		formatScore(o.Second.Score), o.Second.Team)
	if o.Draw {
		s += " (draw)"
	}
	return s
}

// Result orders a match's sides leader first. ok is false unless both scores
// are valid.
func Result(m domain.Match) (Outcome, bool) {
	home, okHome := ParseScore(m.HomeScore)
	away, okAway := ParseScore(m.AwayScore)
	if !okHome || !okAway {
		return Outcome{}, false
	}

	h := Side{Team: m.HomeTeamName, Score: home}
	a := Side{Team: m.AwayTeamName, Score: away}
	switch {
	case home > away:
		return Outcome{First: h, Second: a}, true
	case away > home:
		return Outcome{First: a, Second: h}, true
	default:
		return Outcome{First: h, Second: a, Draw: true}, true
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
