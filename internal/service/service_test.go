package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"matchday/internal/api"
	"matchday/internal/config"
	"matchday/internal/metrics"
	"matchday/internal/service"

	"github.com/rs/zerolog"
)

type fakeSportsDB struct {
	search string
	last   string
	next   string

	lastStatus int
	nextStatus int

	calls atomic.Int32
}

func (f *fakeSportsDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	switch {
	case strings.HasSuffix(r.URL.Path, "/searchteams.php"):
		w.Write([]byte(f.search))
	case strings.HasSuffix(r.URL.Path, "/eventslast.php"):
		if f.lastStatus != 0 {
			w.WriteHeader(f.lastStatus)
			return
		}
		w.Write([]byte(f.last))
	case strings.HasSuffix(r.URL.Path, "/eventsnext.php"):
		if f.nextStatus != 0 {
			w.WriteHeader(f.nextStatus)
			return
		}
		w.Write([]byte(f.next))
	default:
		http.NotFound(w, r)
	}
}

func newServices(t *testing.T, fake *fakeSportsDB) (*service.TeamService, *service.MatchService) {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := api.NewSportsDBClient(&config.Config{SportsDBBaseURL: srv.URL, SportsDBAPIKey: "3"}, metrics.New())
	return service.NewTeamService(client, zerolog.Nop()), service.NewMatchService(client, zerolog.Nop())
}

func TestFetchMatchesConcatenatesPastThenUpcoming(t *testing.T) {
	fake := &fakeSportsDB{
		last: `{"results":[{"strEvent":"P1","dateEvent":"2026-10-10","strStatus":"FT","intHomeScore":"2","intAwayScore":"0"},{"strEvent":"P2"}]}`,
		next: `{"events":[{"strEvent":"N1","dateEvent":"2026-10-20","strStatus":"NS","intHomeScore":null}]}`,
	}
	_, matches := newServices(t, fake)

	got, err := matches.FetchMatches(context.Background(), "134153")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"P1", "P2", "N1"}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].EventName != name {
			t.Errorf("match[%d] = %q, want %q", i, got[i].EventName, name)
		}
	}
	if !got[0].HomeScore.Present || got[0].HomeScore.Raw != "2" {
		t.Errorf("home score = %+v", got[0].HomeScore)
	}
	if got[2].HomeScore.Present {
		t.Errorf("null score should not be present: %+v", got[2].HomeScore)
	}
}

func TestFetchMatchesToleratesMissingCollections(t *testing.T) {
	fake := &fakeSportsDB{last: `{"results":null}`, next: `{}`}
	_, matches := newServices(t, fake)

	got, err := matches.FetchMatches(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %+v, want an empty list", got)
	}
}

func TestFetchMatchesFailsWhole(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeSportsDB
	}{
		{"past fails", &fakeSportsDB{lastStatus: http.StatusBadGateway, next: `{"events":[{"strEvent":"N1"}]}`}},
		{"upcoming fails", &fakeSportsDB{last: `{"results":[{"strEvent":"P1"}]}`, nextStatus: http.StatusInternalServerError}},
		{"upcoming malformed", &fakeSportsDB{last: `{"results":[]}`, next: `not json`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, matches := newServices(t, tt.fake)
			got, err := matches.FetchMatches(context.Background(), "1")
			if err == nil {
				t.Fatal("expected an error")
			}
			if got != nil {
				t.Errorf("partial result leaked: %+v", got)
			}
		})
	}
}

func TestFetchMatchesEmptyIDIsNoOp(t *testing.T) {
	fake := &fakeSportsDB{}
	_, matches := newServices(t, fake)

	got, err := matches.FetchMatches(context.Background(), "")
	if err != nil || got != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", got, err)
	}
	if n := fake.calls.Load(); n != 0 {
		t.Errorf("%d requests sent, want 0", n)
	}
}

func TestTeamSearch(t *testing.T) {
	fake := &fakeSportsDB{
		search: `{"teams":[
			{"idTeam":"134153","strTeam":"Seattle Kraken","strTeamShort":"SEA","strSport":"Ice Hockey","strLeague":"NHL","strStadium":"Climate Pledge Arena","intStadiumCapacity":"17100","strBadge":"badge.png"},
			{"idTeam":"999","strTeam":"Seattle Other"}
		]}`,
	}
	teams, _ := newServices(t, fake)

	team, err := teams.Search(context.Background(), "Seattle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.ID != "134153" || team.Name != "Seattle Kraken" || team.ShortName != "SEA" {
		t.Errorf("team = %+v", team)
	}
	if team.Capacity != "17100" || team.Stadium != "Climate Pledge Arena" {
		t.Errorf("venue fields = %q / %q", team.Stadium, team.Capacity)
	}
}

func TestTeamSearchNotFound(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		body   string
		remote bool
	}{
		{"null teams", "nobody", `{"teams":null}`, true},
		{"empty teams", "nobody", `{"teams":[]}`, true},
		{"blank name", "   ", `{"teams":[{"idTeam":"1"}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSportsDB{search: tt.body}
			teams, _ := newServices(t, fake)

			_, err := teams.Search(context.Background(), tt.query)
			if !errors.Is(err, service.ErrTeamNotFound) {
				t.Fatalf("err = %v, want ErrTeamNotFound", err)
			}
			if sent := fake.calls.Load() > 0; sent != tt.remote {
				t.Errorf("request sent = %v, want %v", sent, tt.remote)
			}
		})
	}
}

func TestTeamSearchNetworkFailure(t *testing.T) {
	fake := &fakeSportsDB{search: `{{{`}
	teams, _ := newServices(t, fake)

	_, err := teams.Search(context.Background(), "Seattle")
	if err == nil || errors.Is(err, service.ErrTeamNotFound) {
		t.Fatalf("err = %v, want a network failure", err)
	}
}
