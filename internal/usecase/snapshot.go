package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/ft5-league/internal/domain/player"
	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/riskibarqy/ft5-league/internal/domain/season"
	"github.com/riskibarqy/ft5-league/internal/domain/standing"
	"go.opentelemetry.io/otel/attribute"
)

const defaultSnapshotWorkers = 4

// SeasonView is the derived schedule and table of one season.
type SeasonView struct {
	Season    int
	Matches   []schedule.Match
	Rounds    []schedule.Round
	Standings []standing.Row
	Table     []standing.Row
}

// Snapshot is one immutable load of the league data plus everything derived from
// it. Readers share a *Snapshot and never modify it; a reload builds a new one.
type Snapshot struct {
	ActiveSeason int
	Seasons      []int
	LoadedAt     time.Time
	Players      player.Directory
	Matches      []schedule.Match
	Standings    []standing.Row
	Reports      []IngestReport

	views map[int]SeasonView
}

// BuildSnapshot resolves the active season and derives a SeasonView for every
// known season on a bounded worker pool.
func BuildSnapshot(ctx context.Context, dataset Dataset, now time.Time, workers int) (*Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BuildSnapshot",
		attribute.Int("snapshot.matches", len(dataset.Matches)),
		attribute.Int("snapshot.workers", workers),
	)
	defer span.End()

	observed := make([]int, 0, len(dataset.CalendarSeasons)+len(dataset.StandingsSeasons))
	observed = append(observed, dataset.CalendarSeasons...)
	observed = append(observed, dataset.StandingsSeasons...)

	snapshot := &Snapshot{
		ActiveSeason: season.Resolve(dataset.CalendarMarker, dataset.StandingsMarker, observed, now),
		Seasons:      season.Available(dataset.CalendarSeasons, dataset.StandingsSeasons),
		LoadedAt:     now,
		Players:      player.NewDirectory(dataset.Players),
		Matches:      dataset.Matches,
		Standings:    dataset.Standings,
		Reports:      dataset.Reports,
	}

	targets := append([]int(nil), snapshot.Seasons...)
	if !season.Contains(targets, snapshot.ActiveSeason) {
		targets = append(targets, snapshot.ActiveSeason)
	}

	views, err := deriveSeasonViews(ctx, snapshot.Matches, snapshot.Standings, targets, workers)
	if err != nil {
		return nil, err
	}
	snapshot.views = views
	return snapshot, nil
}

func deriveSeasonViews(ctx context.Context, matches []schedule.Match, rows []standing.Row, targets []int, workers int) (map[int]SeasonView, error) {
	if workers <= 0 {
		workers = defaultSnapshotWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create snapshot worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]SeasonView, len(targets))
	var wg sync.WaitGroup
	for i, value := range targets {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			out[i] = buildSeasonView(value, matches, rows)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit season %d to worker pool: %w", value, err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	views := make(map[int]SeasonView, len(out))
	for _, view := range out {
		views[view.Season] = view
	}
	return views, nil
}

func buildSeasonView(value int, matches []schedule.Match, rows []standing.Row) SeasonView {
	seasonMatches := make([]schedule.Match, 0, len(matches))
	for _, item := range matches {
		if item.Season == value {
			seasonMatches = append(seasonMatches, item)
		}
	}
	seasonRows := standing.ForSeason(rows, value)

	return SeasonView{
		Season:    value,
		Matches:   seasonMatches,
		Rounds:    schedule.GroupRounds(seasonMatches),
		Standings: seasonRows,
		Table:     standing.Table(seasonRows),
	}
}

// Season returns the derived view of value. Seasons unknown to the snapshot get
// an empty view.
func (s *Snapshot) Season(value int) SeasonView {
	if s == nil {
		return SeasonView{Season: value}
	}
	if view, ok := s.views[value]; ok {
		return view
	}
	return SeasonView{Season: value}
}

// Active returns the view of the active season.
func (s *Snapshot) Active() SeasonView {
	return s.Season(s.ActiveSeason)
}

// Skipped sums the malformed rows dropped across all documents.
func (s *Snapshot) Skipped() int {
	total := 0
	for _, item := range s.Reports {
		total += item.Skipped
	}
	return total
}
