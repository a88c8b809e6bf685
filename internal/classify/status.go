package classify

import "strings"

type StatusKind int

const (
	StatusInProgress StatusKind = iota
	StatusFinished
	StatusNotStarted
	StatusAbandoned
)

func (k StatusKind) String() string {
	switch k {
	case StatusFinished:
		return "finished"
	case StatusNotStarted:
		return "not_started"
	case StatusAbandoned:
		return "abandoned"
	default:
		return "in_progress"
	}
}

// KindOf maps a free-text upstream status onto a lifecycle stage. Anything
// outside the known vocabularies, including statuses we have never seen, is
// treated as in progress.
// TODO: the vocabularies are soccer/baseball centric; unknown statuses from
// other sports currently land in Live.
func KindOf(status string) StatusKind {
	switch normalize(status) {
	case "FT", "MATCH FINISHED", "AOT", "AET", "PEN", "AWD", "WO", "AP", "AW", "":
		return StatusFinished
	case "NS", "NOT STARTED", "TBD":
		return StatusNotStarted
	case "ABD", "CANC", "PST", "POST":
		return StatusAbandoned
	default:
		return StatusInProgress
	}
}

// finishedOnClock reports the two statuses that settle a match as past
// regardless of its date.
func finishedOnClock(status string) bool {
	switch normalize(status) {
	case "FT", "MATCH FINISHED":
		return true
	}
	return false
}

func normalize(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}
