package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/riskibarqy/ft5-league/internal/domain/player"
	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/riskibarqy/ft5-league/internal/domain/standing"
	"github.com/riskibarqy/ft5-league/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type documentSourceMock struct {
	mock.Mock
}

func (m *documentSourceMock) Fetch(ctx context.Context, doc Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	payload, _ := args.Get(0).([]byte)
	return payload, args.Error(1)
}

// stubDecoder ignores the payload bytes and returns a fixed dataset.
type stubDecoder struct {
	dataset Dataset
	err     error
	calls   int
}

func (d *stubDecoder) DecodeDataset(_ context.Context, raw RawDocuments) (Dataset, error) {
	d.calls++
	if d.err != nil {
		return Dataset{}, d.err
	}
	for _, name := range Documents() {
		if _, ok := raw[name]; !ok {
			return Dataset{}, errMissingDocument
		}
	}
	return d.dataset, nil
}

type stubError string

func (e stubError) Error() string { return string(e) }

const errMissingDocument = stubError("missing document")

func intPtr(v int) *int { return &v }

func played(id string, season, round int, start, end, p1, p2 string, s1, s2 int) schedule.Match {
	return schedule.Match{
		ID: id, Season: season, Round: round, StartDate: start, EndDate: end,
		P1: p1, P2: p2, Score1: intPtr(s1), Score2: intPtr(s2),
	}
}

func pending(id string, season, round int, start, end, p1, p2 string) schedule.Match {
	return schedule.Match{ID: id, Season: season, Round: round, StartDate: start, EndDate: end, P1: p1, P2: p2}
}

// leagueDataset is a two-season league: 2024 is finished, 2025 is the active
// season with rounds 1-3 in January 2025.
func leagueDataset() Dataset {
	return Dataset{
		Players: []player.Player{
			{Key: "Ryu", Avatar: "ryu.png", Character1: "ryu_icon.png", WhatsAppLink: "https://wa.me/1"},
			{Key: "Ken", Avatar: "https://cdn.example/ken.png"},
			{Key: "Chun"},
		},
		Matches: []schedule.Match{
			played("24-1", 2024, 1, "2024-01-01", "2024-01-07", "Ken", "Ryu", 5, 2),
			played("25-1a", 2025, 1, "2025-01-01", "2025-01-07", "Ryu", "Ken", 5, 3),
			played("25-1b", 2025, 1, "2025-01-01", "2025-01-07", "Chun", "Ghost", 5, 1),
			pending("25-2a", 2025, 2, "2025-01-08", "2025-01-14", "Chun", "Ryu"),
			pending("25-3a", 2025, 3, "2025-01-15", "2025-01-21", "Ryu", "Ken"),
		},
		Standings: []standing.Row{
			{Season: 2025, PlayerKey: "Ryu", Position: 1, Points: 3, Played: 1, Won: 1, Lost: 0, MatchDiff: 1, GamesWon: 5, GamesLost: 3, GamesDiff: 2},
			{Season: 2025, PlayerKey: "Chun", Position: 2, Points: 3, Played: 1, Won: 1, GamesWon: 5, GamesLost: 1, GamesDiff: 4},
			{Season: 2025, PlayerKey: "Ken", Position: 3, Played: 1, Lost: 1, MatchDiff: -1, GamesWon: 3, GamesLost: 5, GamesDiff: -2},
			{Season: 2024, PlayerKey: "Ken", Position: 1, Points: 3},
		},
		CalendarMarker:   intPtr(2025),
		CalendarSeasons:  []int{2024, 2025, 2025, 2025, 2025},
		StandingsSeasons: []int{2025, 2025, 2025, 2024},
	}
}

func newMockClock(at time.Time) *clock.Mock {
	mockClock := clock.NewMock()
	mockClock.Set(at)
	return mockClock
}

func newTestDatasetService(t *testing.T, dataset Dataset, at time.Time) (*DatasetService, *documentSourceMock, *clock.Mock) {
	t.Helper()

	source := &documentSourceMock{}
	for _, name := range Documents() {
		source.On("Fetch", mock.Anything, name).Return([]byte(`[]`), nil)
	}
	mockClock := newMockClock(at)
	service := NewDatasetService(source, &stubDecoder{dataset: dataset}, DatasetServiceConfig{
		TTL:    5 * time.Minute,
		Clock:  mockClock,
		Logger: logging.NewNop(),
	})
	return service, source, mockClock
}
