package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/ft5-league/internal/domain/player"
	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/riskibarqy/ft5-league/internal/domain/season"
)

type snapshotProvider interface {
	Current(ctx context.Context) (*Snapshot, error)
	Today() time.Time
}

// HomeQuery selects the season and round to show. Nil fields mean "default".
type HomeQuery struct {
	Season *int
	Round  *int
}

type HomeView struct {
	ActiveSeason int
	Season       int
	IsActive     bool
	Seasons      []int
	Today        time.Time
	Rounds       []int
	// RequestedRound is the round asked for, or the default one. Zero when the
	// season has no rounds.
	RequestedRound int
	// Round is nil when the season has no rounds or RequestedRound does not exist.
	Round     *RoundView
	Standings []StandingLine
}

type HomeService struct {
	snapshots snapshotProvider
	images    player.ImagePaths
}

func NewHomeService(snapshots snapshotProvider, images player.ImagePaths) *HomeService {
	return &HomeService{
		snapshots: snapshots,
		images:    images,
	}
}

func (s *HomeService) Home(ctx context.Context, query HomeQuery) (HomeView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HomeService.Home",
		seasonAttr("league.season", query.Season),
		seasonAttr("league.round", query.Round),
	)
	defer span.End()

	if query.Round != nil && *query.Round < 0 {
		return HomeView{}, fmt.Errorf("%w: round must not be negative", ErrInvalidInput)
	}

	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		return HomeView{}, fmt.Errorf("load snapshot: %w", err)
	}

	today := s.snapshots.Today()
	viewed := season.Choose(query.Season, snapshot.Seasons, snapshot.ActiveSeason)
	view := snapshot.Season(viewed)
	ids := identityResolver{players: snapshot.Players, images: s.images}

	out := HomeView{
		ActiveSeason: snapshot.ActiveSeason,
		Season:       viewed,
		IsActive:     viewed == snapshot.ActiveSeason,
		Seasons:      snapshot.Seasons,
		Today:        schedule.DateOf(today),
		Rounds:       schedule.RoundNumbers(view.Rounds),
		Standings:    make([]StandingLine, 0, len(view.Table)),
	}
	for _, row := range view.Table {
		out.Standings = append(out.Standings, ids.standingLine(row))
	}

	var (
		number int
		ok     bool
	)
	if query.Round != nil {
		number, ok = *query.Round, true
	} else {
		number, ok = schedule.DefaultRound(view.Rounds, today)
	}
	if !ok {
		return out, nil
	}
	out.RequestedRound = number

	round, found := schedule.FindRound(view.Rounds, number)
	if !found {
		return out, nil
	}
	out.Round = buildRoundView(ids, view.Rounds, round, today)
	return out, nil
}

func buildRoundView(ids identityResolver, rounds []schedule.Round, round schedule.Round, today time.Time) *RoundView {
	previous, _ := schedule.ShiftRound(rounds, round.Number, -1)
	next, _ := schedule.ShiftRound(rounds, round.Number, 1)

	fixtures := schedule.RoundFixtures(round, today)
	matches := make([]MatchLine, 0, len(fixtures))
	for _, item := range fixtures {
		matches = append(matches, ids.matchLine(item, ""))
	}

	return &RoundView{
		Number:     round.Number,
		StartDate:  round.StartDate,
		EndDate:    round.EndDate,
		RangeLabel: round.RangeLabel(),
		Previous:   previous,
		Next:       next,
		Matches:    matches,
	}
}

// SeasonsView lists the seasons a client can pick from.
type SeasonsView struct {
	ActiveSeason int
	Seasons      []int
	LoadedAt     time.Time
}

func (s *HomeService) Seasons(ctx context.Context) (SeasonsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HomeService.Seasons")
	defer span.End()

	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		return SeasonsView{}, fmt.Errorf("load snapshot: %w", err)
	}

	return SeasonsView{
		ActiveSeason: snapshot.ActiveSeason,
		Seasons:      snapshot.Seasons,
		LoadedAt:     snapshot.LoadedAt,
	}, nil
}
