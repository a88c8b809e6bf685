package server

import (
	"context"
	"errors"
	"net/http"

	"matchday/internal/classify"
	"matchday/internal/domain"
	"matchday/internal/tracker"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const (
	MatchTrackerPath = "/matchday.v1.MatchTracker/"

	CreateSessionProcedure  = MatchTrackerPath + "CreateSession"
	GetStateProcedure       = MatchTrackerPath + "GetState"
	SearchTeamProcedure     = MatchTrackerPath + "SearchTeam"
	RefreshMatchesProcedure = MatchTrackerPath + "RefreshMatches"
	SetTimezoneProcedure    = MatchTrackerPath + "SetTimezone"
	ToggleTimezoneProcedure = MatchTrackerPath + "ToggleTimezone"
)

type TrackerServer struct {
	store  *tracker.Store
	logger zerolog.Logger
}

func NewTrackerServer(store *tracker.Store, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{store: store, logger: logger}
}

// Handler returns the path prefix and handler serving every MatchTracker
// procedure.
func (s *TrackerServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateSessionProcedure, connect.NewUnaryHandler(CreateSessionProcedure, s.CreateSession, opts...))
	mux.Handle(GetStateProcedure, connect.NewUnaryHandler(GetStateProcedure, s.GetState, opts...))
	mux.Handle(SearchTeamProcedure, connect.NewUnaryHandler(SearchTeamProcedure, s.SearchTeam, opts...))
	mux.Handle(RefreshMatchesProcedure, connect.NewUnaryHandler(RefreshMatchesProcedure, s.RefreshMatches, opts...))
	mux.Handle(SetTimezoneProcedure, connect.NewUnaryHandler(SetTimezoneProcedure, s.SetTimezone, opts...))
	mux.Handle(ToggleTimezoneProcedure, connect.NewUnaryHandler(ToggleTimezoneProcedure, s.ToggleTimezone, opts...))
	return MatchTrackerPath, mux
}

func (s *TrackerServer) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[StateResponse], error) {
	var tz domain.Timezone
	if req.Msg.Timezone != "" {
		var err error
		if tz, err = domain.ParseTimezone(req.Msg.Timezone); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	sess, err := s.store.Create(tz)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(toStateResponse(sess.Snapshot())), nil
}

func (s *TrackerServer) GetState(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[StateResponse], error) {
	sess, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(toStateResponse(sess.Reclassify())), nil
}

func (s *TrackerServer) SearchTeam(ctx context.Context, req *connect.Request[SearchTeamRequest]) (*connect.Response[StateResponse], error) {
	sess, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("session_id", sess.ID()).Str("name", req.Msg.Name).Msg("search requested")
	return connect.NewResponse(toStateResponse(sess.Search(ctx, req.Msg.Name))), nil
}

func (s *TrackerServer) RefreshMatches(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[StateResponse], error) {
	sess, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(toStateResponse(sess.Refresh(ctx))), nil
}

func (s *TrackerServer) SetTimezone(ctx context.Context, req *connect.Request[SetTimezoneRequest]) (*connect.Response[StateResponse], error) {
	sess, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	if req.Msg.Timezone == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("timezone is required"))
	}
	tz, err := domain.ParseTimezone(req.Msg.Timezone)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	snap, err := sess.SetTimezone(tz)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(toStateResponse(snap)), nil
}

func (s *TrackerServer) ToggleTimezone(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[StateResponse], error) {
	sess, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	snap, err := sess.ToggleTimezone()
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(toStateResponse(snap)), nil
}

func (s *TrackerServer) session(id string) (*tracker.Session, error) {
	if id == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("sessionId is required"))
	}
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	return sess, nil
}

func toStateResponse(snap tracker.Snapshot) *StateResponse {
	resp := &StateResponse{
		SessionID:   snap.SessionID,
		Timezone:    string(snap.Timezone),
		SwitchLabel: "Switch to " + snap.Timezone.Toggle().Abbrev(),
		Past:        toMatchViews(snap.Past, snap),
		Live:        toMatchViews(snap.Live, snap),
		Upcoming:    toMatchViews(snap.Upcoming, snap),
		Loading:     snap.Loading,
		Error:       snap.Err,
		Generation:  snap.Generation,
	}
	if t := snap.Team; t != nil {
		resp.Team = &TeamView{
			ID:          t.ID,
			Name:        t.Name,
			ShortName:   t.ShortName,
			Sport:       t.Sport,
			League:      t.League,
			Location:    t.Location,
			Stadium:     t.Stadium,
			Capacity:    t.Capacity,
			Description: t.Description,
			Badge:       t.Badge,
			Fanart:      t.Fanart,
		}
	}
	return resp
}

func toMatchViews(matches []domain.Match, snap tracker.Snapshot) []MatchView {
	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		v := MatchView{
			EventName: m.EventName,
			Date:      m.Date,
			Time:      m.Time,
			Kickoff:   classify.FormatTime(m.Timestamp, snap.Location),
			Status:    m.Status,
			Venue:     m.Venue,
			HomeTeam:  m.HomeTeamName,
			AwayTeam:  m.AwayTeamName,
			League:    m.League,
			Season:    m.Season,
		}
		if out, ok := classify.Result(m); ok {
			home, _ := classify.ParseScore(m.HomeScore)
			away, _ := classify.ParseScore(m.AwayScore)
			v.HomeScore = &home
			v.AwayScore = &away
			v.Result = out.String()
			v.Draw = out.Draw
			if leader, ok := out.Leader(); ok {
				v.Leader = leader.Team
			}
		}
		views = append(views, v)
	}
	return views
}
