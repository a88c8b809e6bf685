package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	SportsDBBaseURL = "https://www.thesportsdb.com/api/v1/json"
	SportsDBTestKey = "3"
)

const (
	SessionIdleTTL       = 30 * time.Minute
	SessionSweepInterval = 5 * time.Minute
	SessionIDLength      = 16
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	TimeUnavailable = "Time not available"
	TimeLayout      = "January 02, 2006, 03:04 PM MST"
)

const (
	MsgNoTeams       = "No teams found"
	MsgSearchFailed  = "Error searching for team: "
	MsgMatchesFailed = "Error fetching matches: "
)
