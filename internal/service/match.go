package service

import (
	"context"
	"fmt"

	"matchday/internal/api"
	"matchday/internal/constants"
	"matchday/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type MatchService struct {
	sportsdb *api.SportsDBClient
	logger   zerolog.Logger
}

func NewMatchService(sportsdb *api.SportsDBClient, logger zerolog.Logger) *MatchService {
	return &MatchService{sportsdb: sportsdb, logger: logger}
}

// FetchMatches returns the team's recent results followed by its scheduled
// events. An empty teamID is a no-op and returns (nil, nil). If either
// request fails the whole call fails and nothing is returned.
func (s *MatchService) FetchMatches(ctx context.Context, teamID string) ([]domain.Match, error) {
	if teamID == "" {
		return nil, nil
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	var past *api.PastEventsResponse
	var next *api.NextEventsResponse

	g.Go(func() error {
		var err error
		past, err = s.sportsdb.GetPastEvents(gCtx, teamID)
		return err
	})

	g.Go(func() error {
		var err error
		next, err = s.sportsdb.GetNextEvents(gCtx, teamID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("team_id", teamID).Msg("failed to fetch matches from API")
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	matches := make([]domain.Match, 0, len(past.Results)+len(next.Events))
	for _, e := range past.Results {
		matches = append(matches, toMatch(e))
	}
	for _, e := range next.Events {
		matches = append(matches, toMatch(e))
	}

	s.logger.Debug().
		Str("team_id", teamID).
		Int("past_count", len(past.Results)).
		Int("next_count", len(next.Events)).
		Msg("matches fetched successfully")
	return matches, nil
}

func toMatch(e api.EventData) domain.Match {
	return domain.Match{
		EventName:    e.StrEvent,
		Date:         e.DateEvent,
		Time:         e.StrTime,
		Timestamp:    e.StrTimestamp,
		Status:       e.StrStatus,
		HomeScore:    domain.Score{Raw: e.IntHomeScore.Value, Present: e.IntHomeScore.Valid},
		AwayScore:    domain.Score{Raw: e.IntAwayScore.Value, Present: e.IntAwayScore.Valid},
		Venue:        e.StrVenue,
		HomeTeamName: e.StrHomeTeam,
		AwayTeamName: e.StrAwayTeam,
		League:       e.StrLeague,
		Season:       e.StrSeason,
	}
}
