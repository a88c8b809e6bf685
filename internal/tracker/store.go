package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"matchday/internal/constants"
	"matchday/internal/domain"
	"matchday/internal/metrics"

	"github.com/jonboulle/clockwork"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrSessionNotFound = errors.New("session not found")

// Store holds the live sessions, one per viewer.
type Store struct {
	searcher  TeamSearcher
	fetcher   MatchFetcher
	clock     clockwork.Clock
	metrics   *metrics.Metrics
	defaultTZ domain.Timezone
	logger    zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(searcher TeamSearcher, fetcher MatchFetcher, clock clockwork.Clock, m *metrics.Metrics, defaultTZ domain.Timezone, logger zerolog.Logger) *Store {
	if defaultTZ == "" {
		defaultTZ = domain.Pacific
	}
	return &Store{
		searcher:  searcher,
		fetcher:   fetcher,
		clock:     clock,
		metrics:   m,
		defaultTZ: defaultTZ,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Create starts a session in tz, or the store default when tz is empty.
func (st *Store) Create(tz domain.Timezone) (*Session, error) {
	if tz == "" {
		tz = st.defaultTZ
	}
	loc, err := tz.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", tz, err)
	}

	id, err := gonanoid.New(constants.SessionIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	s := &Session{
		id:       id,
		searcher: st.searcher,
		fetcher:  st.fetcher,
		clock:    st.clock,
		metrics:  st.metrics,
		logger:   st.logger.With().Str("session_id", id).Logger(),
		tz:       tz,
		loc:      loc,
		lastSeen: st.clock.Now(),
	}
	s.reclassifyLocked()

	st.mu.Lock()
	st.sessions[id] = s
	n := len(st.sessions)
	st.mu.Unlock()

	st.metrics.SetSessions(n)
	s.logger.Info().Str("timezone", string(tz)).Msg("session created")
	return s, nil
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch()
	return s, nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle longer than maxIdle and returns how many went.
func (st *Store) Sweep(maxIdle time.Duration) int {
	st.mu.Lock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleFor() > maxIdle {
			delete(st.sessions, id)
			removed++
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	st.metrics.SetSessions(n)
	if removed > 0 {
		st.logger.Debug().Int("removed", removed).Int("remaining", n).Msg("swept idle sessions")
	}
	return removed
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (st *Store) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := st.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			st.Sweep(maxIdle)
		}
	}
}
