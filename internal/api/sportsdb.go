package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"matchday/internal/config"
	"matchday/internal/constants"
	"matchday/internal/metrics"

	"github.com/valyala/fasthttp"
)

const (
	EndpointSearchTeams = "searchteams"
	EndpointEventsLast  = "eventslast"
	EndpointEventsNext  = "eventsnext"
)

type SportsDBClient struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
	metrics *metrics.Metrics
}

func NewSportsDBClient(cfg *config.Config, m *metrics.Metrics) *SportsDBClient {
	return &SportsDBClient{
		baseURL: strings.TrimRight(cfg.SportsDBBaseURL, "/"),
		apiKey:  cfg.SportsDBAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     32,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		metrics: m,
	}
}

func (c *SportsDBClient) SearchTeams(ctx context.Context, name string) (*SearchTeamsResponse, error) {
	u := fmt.Sprintf("%s/%s/searchteams.php?t=%s", c.baseURL, c.apiKey, url.QueryEscape(name))
	return doRequest[SearchTeamsResponse](ctx, c, EndpointSearchTeams, u)
}

func (c *SportsDBClient) GetPastEvents(ctx context.Context, teamID string) (*PastEventsResponse, error) {
	u := fmt.Sprintf("%s/%s/eventslast.php?id=%s", c.baseURL, c.apiKey, url.QueryEscape(teamID))
	return doRequest[PastEventsResponse](ctx, c, EndpointEventsLast, u)
}

func (c *SportsDBClient) GetNextEvents(ctx context.Context, teamID string) (*NextEventsResponse, error) {
	u := fmt.Sprintf("%s/%s/eventsnext.php?id=%s", c.baseURL, c.apiKey, url.QueryEscape(teamID))
	return doRequest[NextEventsResponse](ctx, c, EndpointEventsNext, u)
}

func doRequest[T any](ctx context.Context, client *SportsDBClient, endpoint, uri string) (result *T, err error) {
	start := time.Now()
	defer func() {
		if client.metrics != nil {
			client.metrics.ObserveUpstream(endpoint, err, time.Since(start))
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var out T
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("malformed %s response: %w", endpoint, err)
	}
	return &out, nil
}

// LooseString accepts a JSON string, number, or null. Valid reports whether
// the field was present and non-null.
type LooseString struct {
	Value string
	Valid bool
}

func (s *LooseString) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*s = LooseString{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = LooseString{Value: v, Valid: true}
		return nil
	}
	*s = LooseString{Value: raw, Valid: true}
	return nil
}

type SearchTeamsResponse struct {
	Teams []TeamData `json:"teams"`
}

type TeamData struct {
	IDTeam             string      `json:"idTeam"`
	StrTeam            string      `json:"strTeam"`
	StrTeamShort       string      `json:"strTeamShort"`
	StrSport           string      `json:"strSport"`
	StrLeague          string      `json:"strLeague"`
	StrLocation        string      `json:"strLocation"`
	StrStadium         string      `json:"strStadium"`
	IntStadiumCapacity LooseString `json:"intStadiumCapacity"`
	StrDescriptionEN   string      `json:"strDescriptionEN"`
	StrBadge           string      `json:"strBadge"`
	StrFanart1         string      `json:"strFanart1"`
}

type PastEventsResponse struct {
	Results []EventData `json:"results"`
}

type NextEventsResponse struct {
	Events []EventData `json:"events"`
}

type EventData struct {
	IDEvent      string      `json:"idEvent"`
	StrEvent     string      `json:"strEvent"`
	DateEvent    string      `json:"dateEvent"`
	StrTime      string      `json:"strTime"`
	StrTimestamp string      `json:"strTimestamp"`
	StrStatus    string      `json:"strStatus"`
	IntHomeScore LooseString `json:"intHomeScore"`
	IntAwayScore LooseString `json:"intAwayScore"`
	StrVenue     string      `json:"strVenue"`
	StrHomeTeam  string      `json:"strHomeTeam"`
	StrAwayTeam  string      `json:"strAwayTeam"`
	StrLeague    string      `json:"strLeague"`
	StrSeason    string      `json:"strSeason"`
}
