package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/ft5-league/internal/domain/headtohead"
	"github.com/riskibarqy/ft5-league/internal/domain/player"
	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/riskibarqy/ft5-league/internal/domain/season"
	"github.com/riskibarqy/ft5-league/internal/domain/standing"
	"go.opentelemetry.io/otel/attribute"
)

// SeasonSummary is a player's standing in one season with win ratios.
type SeasonSummary struct {
	Season int
	Line   StandingLine
	FT5    standing.Ratio
	Games  standing.Ratio
}

// NextMatchView is the player's next relevant match with scouting data on the
// opponent. HeadToHead only lists seasons in which an FT5 was decided.
type NextMatchView struct {
	Round           int
	StartDate       string
	EndDate         string
	RangeLabel      string
	Match           MatchLine
	Opponent        Profile
	OpponentSummary *SeasonSummary
	HeadToHead      []headtohead.Record
	Totals          headtohead.Record
}

// ScheduleEntry is one of the player's matches in the active season.
type ScheduleEntry struct {
	Round      int
	StartDate  string
	EndDate    string
	RangeLabel string
	Match      MatchLine
}

type PlayerView struct {
	ActiveSeason int
	Today        time.Time
	Profile      Profile
	Summary      *SeasonSummary
	Next         *NextMatchView
	Schedule     []ScheduleEntry
}

// VersusView is the head-to-head between two players for one season and across
// all seasons.
type VersusView struct {
	ActiveSeason int
	Season       int
	IsActive     bool
	Player       PlayerRef
	Opponent     PlayerRef
	SeasonRecord headtohead.Record
	AllSeasons   []headtohead.Record
	Totals       headtohead.Record
}

type PlayerService struct {
	snapshots snapshotProvider
	images    player.ImagePaths
}

func NewPlayerService(snapshots snapshotProvider, images player.ImagePaths) *PlayerService {
	return &PlayerService{
		snapshots: snapshots,
		images:    images,
	}
}

// Player builds the player page for the active season. Keys missing from the
// roster still get a view with a placeholder profile.
func (s *PlayerService) Player(ctx context.Context, playerKey string) (PlayerView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Player",
		attribute.String("player.key", playerKey),
	)
	defer span.End()

	if strings.TrimSpace(playerKey) == "" {
		return PlayerView{}, fmt.Errorf("%w: player key is required", ErrInvalidInput)
	}

	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		return PlayerView{}, fmt.Errorf("load snapshot: %w", err)
	}

	today := s.snapshots.Today()
	active := snapshot.Active()
	ids := identityResolver{players: snapshot.Players, images: s.images}

	out := PlayerView{
		ActiveSeason: snapshot.ActiveSeason,
		Today:        schedule.DateOf(today),
		Profile:      ids.profile(playerKey),
		Summary:      summaryFor(ids, active, playerKey),
		Schedule:     make([]ScheduleEntry, 0, 16),
	}

	for _, item := range schedule.PlayerFixtures(playerKey, active.Rounds, today) {
		round, _ := schedule.FindRound(active.Rounds, item.Round)
		out.Schedule = append(out.Schedule, ScheduleEntry{
			Round:      item.Round,
			StartDate:  item.StartDate,
			EndDate:    item.EndDate,
			RangeLabel: round.RangeLabel(),
			Match:      ids.matchLine(item, playerKey),
		})
	}

	if next, ok := schedule.NextMatch(playerKey, active.Rounds, today); ok {
		out.Next = s.nextMatch(ids, snapshot, active, playerKey, next)
	}

	return out, nil
}

func (s *PlayerService) nextMatch(ids identityResolver, snapshot *Snapshot, active SeasonView, playerKey string, next schedule.Fixture) *NextMatchView {
	round, _ := schedule.FindRound(active.Rounds, next.Round)
	view := &NextMatchView{
		Round:      next.Round,
		StartDate:  next.StartDate,
		EndDate:    next.EndDate,
		RangeLabel: round.RangeLabel(),
		Match:      ids.matchLine(next, playerKey),
		HeadToHead: []headtohead.Record{},
	}

	opponentKey, ok := next.Match.Opponent(playerKey)
	if !ok || opponentKey == "" {
		return view
	}

	view.Opponent = ids.profile(opponentKey)
	view.OpponentSummary = summaryFor(ids, active, opponentKey)
	view.HeadToHead = headtohead.Decided(headtohead.AllSeasons(playerKey, opponentKey, snapshot.Matches, snapshot.ActiveSeason))
	view.Totals = headtohead.Totals(view.HeadToHead)
	return view
}

// Versus compares two players. The season record uses the requested season when
// it is known, the active season otherwise.
func (s *PlayerService) Versus(ctx context.Context, playerKey, opponentKey string, requested *int) (VersusView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Versus",
		attribute.String("player.key", playerKey),
		attribute.String("opponent.key", opponentKey),
		seasonAttr("league.season", requested),
	)
	defer span.End()

	if strings.TrimSpace(playerKey) == "" || strings.TrimSpace(opponentKey) == "" {
		return VersusView{}, fmt.Errorf("%w: player and opponent keys are required", ErrInvalidInput)
	}
	if playerKey == opponentKey {
		return VersusView{}, fmt.Errorf("%w: a player cannot be compared with itself", ErrInvalidInput)
	}

	snapshot, err := s.snapshots.Current(ctx)
	if err != nil {
		return VersusView{}, fmt.Errorf("load snapshot: %w", err)
	}

	viewed := season.Choose(requested, snapshot.Seasons, snapshot.ActiveSeason)
	ids := identityResolver{players: snapshot.Players, images: s.images}

	record := headtohead.Season(playerKey, opponentKey, snapshot.Season(viewed).Rounds)
	record.Season = viewed
	all := headtohead.AllSeasons(playerKey, opponentKey, snapshot.Matches, snapshot.ActiveSeason)

	return VersusView{
		ActiveSeason: snapshot.ActiveSeason,
		Season:       viewed,
		IsActive:     viewed == snapshot.ActiveSeason,
		Player:       ids.ref(playerKey),
		Opponent:     ids.ref(opponentKey),
		SeasonRecord: record,
		AllSeasons:   all,
		Totals:       headtohead.Totals(all),
	}, nil
}

func summaryFor(ids identityResolver, view SeasonView, playerKey string) *SeasonSummary {
	row, ok := standing.Find(view.Standings, playerKey)
	if !ok {
		return nil
	}
	summary := standing.Summarize(row)
	return &SeasonSummary{
		Season: view.Season,
		Line:   ids.standingLine(row),
		FT5:    summary.FT5,
		Games:  summary.Games,
	}
}
