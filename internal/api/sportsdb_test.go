package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"matchday/internal/api"
	"matchday/internal/config"
	"matchday/internal/metrics"
)

func newClient(t *testing.T, h http.HandlerFunc) *api.SportsDBClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := &config.Config{SportsDBBaseURL: srv.URL + "/", SportsDBAPIKey: "key123"}
	return api.NewSportsDBClient(cfg, metrics.New())
}

func TestSearchTeamsBuildsURL(t *testing.T) {
	var gotPath, gotQuery string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("t")
		w.Write([]byte(`{"teams":[{"idTeam":"134153","strTeam":"Seattle Kraken","intStadiumCapacity":17100}]}`))
	})

	resp, err := c.SearchTeams(context.Background(), "Seattle Kraken")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/key123/searchteams.php" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "Seattle Kraken" {
		t.Errorf("query t = %q", gotQuery)
	}
	if len(resp.Teams) != 1 || resp.Teams[0].IDTeam != "134153" {
		t.Fatalf("teams = %+v", resp.Teams)
	}
	if capacity := resp.Teams[0].IntStadiumCapacity; !capacity.Valid || capacity.Value != "17100" {
		t.Errorf("capacity = %+v, want 17100", capacity)
	}
}

func TestSearchTeamsNullTeams(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"teams":null}`))
	})

	resp, err := c.SearchTeams(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Teams) != 0 {
		t.Errorf("teams = %+v, want none", resp.Teams)
	}
}

func TestEventsDecodeLooseScores(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/key123/eventslast.php" || r.URL.Query().Get("id") != "42" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"results":[
			{"strEvent":"A vs B","dateEvent":"2026-10-15","intHomeScore":"3","intAwayScore":1},
			{"strEvent":"C vs D","intHomeScore":null,"intAwayScore":"null"},
			{"strEvent":"E vs F"}
		]}`))
	})

	resp, err := c.GetPastEvents(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(resp.Results))
	}

	tests := []struct {
		name      string
		got       api.LooseString
		wantValue string
		wantValid bool
	}{
		{"string score", resp.Results[0].IntHomeScore, "3", true},
		{"numeric score", resp.Results[0].IntAwayScore, "1", true},
		{"json null", resp.Results[1].IntHomeScore, "", false},
		{"literal null string", resp.Results[1].IntAwayScore, "null", true},
		{"absent", resp.Results[2].IntHomeScore, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Value != tt.wantValue || tt.got.Valid != tt.wantValid {
				t.Errorf("got %+v, want {%q %v}", tt.got, tt.wantValue, tt.wantValid)
			}
		})
	}
}

func TestNextEventsMissingField(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	resp, err := c.GetNextEvents(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Events) != 0 {
		t.Errorf("events = %+v, want none", resp.Events)
	}
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>rate limited</html>`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, tt.handler)
			if _, err := c.GetNextEvents(context.Background(), "42"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCanceledContext(t *testing.T) {
	called := false
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.GetPastEvents(ctx, "42"); err == nil {
		t.Error("expected an error for a canceled context")
	}
	if called {
		t.Error("request should not be sent after cancellation")
	}
}
