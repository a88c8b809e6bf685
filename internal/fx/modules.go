package fx

import (
	"matchday/internal/api"
	"matchday/internal/config"
	"matchday/internal/logger"
	"matchday/internal/metrics"
	"matchday/internal/server"
	"matchday/internal/service"
	"matchday/internal/tracker"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func ProvideStore(teams *service.TeamService, matches *service.MatchService, clock clockwork.Clock, m *metrics.Metrics, cfg *config.Config, logger zerolog.Logger) *tracker.Store {
	return tracker.NewStore(teams, matches, clock, m, cfg.DefaultTimezone, logger)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(metrics.New),
	fx.Provide(ProvideClock),
	// api client
	fx.Provide(api.NewSportsDBClient),
	// svc
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewMatchService),
	// state
	fx.Provide(ProvideStore),
	// server
	fx.Provide(server.NewTrackerServer),
)
