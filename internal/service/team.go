package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"matchday/internal/api"
	"matchday/internal/constants"
	"matchday/internal/domain"

	"github.com/rs/zerolog"
)

var ErrTeamNotFound = errors.New("no teams found")

type TeamService struct {
	sportsdb *api.SportsDBClient
	logger   zerolog.Logger
}

func NewTeamService(sportsdb *api.SportsDBClient, logger zerolog.Logger) *TeamService {
	return &TeamService{sportsdb: sportsdb, logger: logger}
}

// Search returns the first team the API matches for name.
func (s *TeamService) Search(ctx context.Context, name string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNotFound
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	s.logger.Info().Str("name", name).Msg("searching team")

	resp, err := s.sportsdb.SearchTeams(apiCtx, name)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to search team")
		return nil, fmt.Errorf("failed to search team: %w", err)
	}

	if len(resp.Teams) == 0 || resp.Teams[0].IDTeam == "" {
		s.logger.Debug().Str("name", name).Msg("search returned no teams")
		return nil, ErrTeamNotFound
	}

	t := resp.Teams[0]
	team := &domain.Team{
		ID:          t.IDTeam,
		Name:        t.StrTeam,
		ShortName:   t.StrTeamShort,
		Sport:       t.StrSport,
		League:      t.StrLeague,
		Location:    t.StrLocation,
		Stadium:     t.StrStadium,
		Capacity:    t.IntStadiumCapacity.Value,
		Description: t.StrDescriptionEN,
		Badge:       t.StrBadge,
		Fanart:      t.StrFanart1,
	}

	s.logger.Debug().Str("team_id", team.ID).Str("team", team.Name).Int("hits", len(resp.Teams)).Msg("team resolved")
	return team, nil
}
