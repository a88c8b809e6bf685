package tracker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"matchday/internal/classify"
	"matchday/internal/constants"
	"matchday/internal/domain"
	"matchday/internal/metrics"
	"matchday/internal/service"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type TeamSearcher interface {
	Search(ctx context.Context, name string) (*domain.Team, error)
}

type MatchFetcher interface {
	FetchMatches(ctx context.Context, teamID string) ([]domain.Match, error)
}

// State is what presentation renders. It is only ever replaced whole.
type State struct {
	Team     *domain.Team
	Past     []domain.Match
	Live     []domain.Match
	Upcoming []domain.Match
}

type Snapshot struct {
	State
	SessionID  string
	Timezone   domain.Timezone
	Location   *time.Location
	Loading    bool
	Err        string
	Generation uint64
}

type Session struct {
	id       string
	searcher TeamSearcher
	fetcher  MatchFetcher
	clock    clockwork.Clock
	metrics  *metrics.Metrics
	logger   zerolog.Logger

	// gen is bumped by every fetch cycle; a result is committed only if
	// its generation is still the latest.
	gen atomic.Uint64

	mu       sync.RWMutex
	state    State
	matches  []domain.Match
	tz       domain.Timezone
	loc      *time.Location
	loading  bool
	err      string
	lastSeen time.Time
}

func (s *Session) ID() string {
	return s.id
}

// Search resolves name to a team, fetches its matches and replaces the
// session state. Failures are kept as the latest error message.
func (s *Session) Search(ctx context.Context, name string) Snapshot {
	gen := s.begin()
	log := s.logger.With().Uint64("generation", gen).Logger()

	team, err := s.searcher.Search(ctx, name)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			log.Info().Str("name", name).Msg("no team matched search")
			s.metrics.Search("not_found")
			s.fail(gen, constants.MsgNoTeams)
		} else {
			log.Warn().Err(err).Str("name", name).Msg("team search failed")
			s.metrics.Search("error")
			s.fail(gen, constants.MsgSearchFailed+err.Error())
		}
		return s.Snapshot()
	}
	s.metrics.Search("found")

	s.load(ctx, gen, team, log)
	return s.Snapshot()
}

// Refresh refetches matches for the current team. Without a team it does
// nothing.
func (s *Session) Refresh(ctx context.Context) Snapshot {
	s.mu.RLock()
	team := s.state.Team
	s.mu.RUnlock()

	if team == nil || team.ID == "" {
		return s.Snapshot()
	}

	gen := s.begin()
	s.load(ctx, gen, team, s.logger.With().Uint64("generation", gen).Logger())
	return s.Snapshot()
}

func (s *Session) load(ctx context.Context, gen uint64, team *domain.Team, log zerolog.Logger) {
	matches, err := s.fetcher.FetchMatches(ctx, team.ID)
	if err != nil {
		log.Warn().Err(err).Str("team_id", team.ID).Msg("match fetch failed")
		s.fail(gen, constants.MsgMatchesFailed+err.Error())
		return
	}
	s.commit(gen, team, matches)
}

// SetTimezone switches the display zone and reclassifies the current matches
// without refetching.
func (s *Session) SetTimezone(tz domain.Timezone) (Snapshot, error) {
	loc, err := tz.Location()
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	s.tz = tz
	s.loc = loc
	s.reclassifyLocked()
	s.mu.Unlock()

	s.logger.Debug().Str("timezone", string(tz)).Msg("timezone changed")
	return s.Snapshot(), nil
}

func (s *Session) ToggleTimezone() (Snapshot, error) {
	s.mu.RLock()
	next := s.tz.Toggle()
	s.mu.RUnlock()
	return s.SetTimezone(next)
}

// Reclassify rebuilds the buckets against the current clock reading.
func (s *Session) Reclassify() Snapshot {
	s.mu.Lock()
	s.reclassifyLocked()
	s.mu.Unlock()
	return s.Snapshot()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		State:      s.state,
		SessionID:  s.id,
		Timezone:   s.tz,
		Location:   s.loc,
		Loading:    s.loading,
		Err:        s.err,
		Generation: s.gen.Load(),
	}
}

func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen := s.gen.Add(1)
	s.loading = true
	s.lastSeen = s.clock.Now()
	return gen
}

func (s *Session) commit(gen uint64, team *domain.Team, matches []domain.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen.Load() {
		s.discardLocked(gen)
		return
	}

	s.matches = matches
	s.state = s.classifyLocked(team)
	s.loading = false
	s.err = ""

	s.metrics.Classified(domain.BucketPast.String(), len(s.state.Past))
	s.metrics.Classified(domain.BucketLive.String(), len(s.state.Live))
	s.metrics.Classified(domain.BucketUpcoming.String(), len(s.state.Upcoming))

	s.logger.Info().
		Uint64("generation", gen).
		Str("team_id", team.ID).
		Int("past", len(s.state.Past)).
		Int("live", len(s.state.Live)).
		Int("upcoming", len(s.state.Upcoming)).
		Msg("session state replaced")
}

func (s *Session) fail(gen uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen.Load() {
		s.discardLocked(gen)
		return
	}
	s.loading = false
	s.err = msg
}

func (s *Session) discardLocked(gen uint64) {
	s.metrics.StaleDiscard()
	s.logger.Debug().
		Uint64("generation", gen).
		Uint64("current", s.gen.Load()).
		Msg("discarding stale result")
}

func (s *Session) reclassifyLocked() {
	s.state = s.classifyLocked(s.state.Team)
}

func (s *Session) classifyLocked(team *domain.Team) State {
	b := classify.Classify(s.matches, s.clock.Now(), s.loc)
	return State{
		Team:     team,
		Past:     b.Past,
		Live:     b.Live,
		Upcoming: b.Upcoming,
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.clock.Now()
	s.mu.Unlock()
}

func (s *Session) idleFor() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.Since(s.lastSeen)
}
