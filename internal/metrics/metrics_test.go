package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveUpstream("eventslast", nil, 20*time.Millisecond)
	m.ObserveUpstream("eventslast", errors.New("boom"), 5*time.Millisecond)
	m.ObserveUpstream("eventsnext", nil, time.Millisecond)
	m.Classified("past", 3)
	m.Search("found")
	m.StaleDiscard()
	m.SetSessions(4)

	if got := testutil.ToFloat64(m.upstreamRequests.WithLabelValues("eventslast", "ok")); got != 1 {
		t.Errorf("eventslast ok = %v", got)
	}
	if got := testutil.ToFloat64(m.upstreamRequests.WithLabelValues("eventslast", "error")); got != 1 {
		t.Errorf("eventslast error = %v", got)
	}
	if got := testutil.ToFloat64(m.classified.WithLabelValues("past")); got != 3 {
		t.Errorf("classified past = %v", got)
	}
	if got := testutil.ToFloat64(m.staleDiscards); got != 1 {
		t.Errorf("stale = %v", got)
	}
	if got := testutil.ToFloat64(m.activeSessions); got != 4 {
		t.Errorf("sessions = %v", got)
	}
}

func TestHandlerExposesNamespace(t *testing.T) {
	m := New()
	m.Search("not_found")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if !strings.Contains(rec.Body.String(), `matchday_team_searches_total{outcome="not_found"} 1`) {
		t.Errorf("metrics output missing search counter:\n%s", rec.Body.String())
	}
}
