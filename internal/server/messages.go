package server

type CreateSessionRequest struct {
	Timezone string `json:"timezone,omitempty"`
}

type SessionRequest struct {
	SessionID string `json:"sessionId"`
}

type SearchTeamRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

type SetTimezoneRequest struct {
	SessionID string `json:"sessionId"`
	Timezone  string `json:"timezone"`
}

type StateResponse struct {
	SessionID   string      `json:"sessionId"`
	Timezone    string      `json:"timezone"`
	SwitchLabel string      `json:"switchLabel"`
	Team        *TeamView   `json:"team,omitempty"`
	Past        []MatchView `json:"past"`
	Live        []MatchView `json:"live"`
	Upcoming    []MatchView `json:"upcoming"`
	Loading     bool        `json:"loading"`
	Error       string      `json:"error,omitempty"`
	Generation  uint64      `json:"generation"`
}

type TeamView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"shortName,omitempty"`
	Sport       string `json:"sport,omitempty"`
	League      string `json:"league,omitempty"`
	Location    string `json:"location,omitempty"`
	Stadium     string `json:"stadium,omitempty"`
	Capacity    string `json:"capacity,omitempty"`
	Description string `json:"description,omitempty"`
	Badge       string `json:"badge,omitempty"`
	Fanart      string `json:"fanart,omitempty"`
}

type MatchView struct {
	EventName string   `json:"eventName"`
	Date      string   `json:"date,omitempty"`
	Time      string   `json:"time,omitempty"`
	Kickoff   string   `json:"kickoff"`
	Status    string   `json:"status,omitempty"`
	Venue     string   `json:"venue,omitempty"`
	HomeTeam  string   `json:"homeTeam,omitempty"`
	AwayTeam  string   `json:"awayTeam,omitempty"`
	League    string   `json:"league,omitempty"`
	Season    string   `json:"season,omitempty"`
	HomeScore *float64 `json:"homeScore,omitempty"`
	AwayScore *float64 `json:"awayScore,omitempty"`
	Result    string   `json:"result,omitempty"`
	Leader    string   `json:"leader,omitempty"`
	Draw      bool     `json:"draw,omitempty"`
}
