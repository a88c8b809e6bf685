package domain

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

type Team struct {
	ID          string
	Name        string
	ShortName   string
	Sport       string
	League      string
	Location    string
	Stadium     string
	Capacity    string
	Description string
	Badge       string
	Fanart      string
}

// Score keeps the upstream token as-is. Present is false when the field was
// absent or JSON null.
type Score struct {
	Raw     string
	Present bool
}

func ScoreOf(raw string) Score {
	return Score{Raw: raw, Present: true}
}

type Match struct {
	EventName    string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM:SS, may be empty
	Timestamp    string // UTC, no zone suffix
	Status       string
	HomeScore    Score
	AwayScore    Score
	Venue        string
	HomeTeamName string
	AwayTeamName string
	League       string
	Season       string
}

type Bucket int

const (
	BucketUpcoming Bucket = iota
	BucketLive
	BucketPast
)

func (b Bucket) String() string {
	switch b {
	case BucketPast:
		return "past"
	case BucketLive:
		return "live"
	default:
		return "upcoming"
	}
}

type Timezone string

const (
	Pacific Timezone = "America/Los_Angeles"
	Eastern Timezone = "America/New_York"
)

func ParseTimezone(s string) (Timezone, error) {
	switch Timezone(s) {
	case Pacific, Eastern:
		return Timezone(s), nil
	case "":
		return Pacific, nil
	}
	return "", fmt.Errorf("unsupported timezone %q", s)
}

func (tz Timezone) Toggle() Timezone {
	if tz == Eastern {
		return Pacific
	}
	return Eastern
}

// Abbrev is the short label shown on the zone switch.
func (tz Timezone) Abbrev() string {
	if tz == Eastern {
		return "EST"
	}
	return "PST"
}

func (tz Timezone) Location() (*time.Location, error) {
	return time.LoadLocation(string(tz))
}
