package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/ft5-league/internal/domain/player"
	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/riskibarqy/ft5-league/internal/domain/standing"
	"github.com/riskibarqy/ft5-league/internal/platform/logging"
	"github.com/riskibarqy/ft5-league/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iPhoneUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"

type fixedSnapshots struct {
	snapshot *usecase.Snapshot
	today    time.Time
	err      error
}

func (f fixedSnapshots) Current(context.Context) (*usecase.Snapshot, error) {
	return f.snapshot, f.err
}

func (f fixedSnapshots) Today() time.Time {
	return f.today
}

func intPtr(v int) *int { return &v }

func testDataset() usecase.Dataset {
	return usecase.Dataset{
		Players: []player.Player{
			{Key: "Ryu", Avatar: "ryu.png", Character1: "ryu_icon.png"},
			{Key: "Ken"},
		},
		Matches: []schedule.Match{
			{ID: "24-1", Season: 2024, Round: 1, StartDate: "2024-01-01", EndDate: "2024-01-07", P1: "Ken", P2: "Ryu", Score1: intPtr(5), Score2: intPtr(2), Replay: "https://replay.example/0"},
			{ID: "25-1a", Season: 2025, Round: 1, StartDate: "2025-01-01", EndDate: "2025-01-07", P1: "Ryu", P2: "Ken", Score1: intPtr(5), Score2: intPtr(3), Replay: "https://replay.example/1"},
			{ID: "25-2a", Season: 2025, Round: 2, StartDate: "2025-01-08", EndDate: "2025-01-14", P1: "Ken", P2: "Ryu"},
		},
		Standings: []standing.Row{
			{Season: 2025, PlayerKey: "Ryu", Position: 1, Points: 3, Played: 1, Won: 1, MatchDiff: 1, GamesWon: 5, GamesLost: 3, GamesDiff: 2},
			{Season: 2025, PlayerKey: "Ken", Position: 2, Played: 1, Lost: 1, MatchDiff: -1, GamesWon: 3, GamesLost: 5, GamesDiff: -2},
		},
		CalendarMarker:   intPtr(2025),
		CalendarSeasons:  []int{2024, 2025, 2025},
		StandingsSeasons: []int{2025, 2025},
	}
}

func newTestRouter(t *testing.T, snapshots fixedSnapshots) http.Handler {
	t.Helper()

	images := player.DefaultImagePaths()
	handler := NewHandler(
		usecase.NewHomeService(snapshots, images),
		usecase.NewPlayerService(snapshots, images),
		logging.NewNop(),
	)
	return NewRouter(handler, logging.NewNop(), RouterConfig{
		CORSAllowedOrigins: []string{"*"},
		RequestIDs:         fixedIDGenerator{id: "req-1"},
	})
}

func newLeagueRouter(t *testing.T) http.Handler {
	t.Helper()

	today := time.Date(2025, time.January, 10, 18, 0, 0, 0, time.UTC)
	snapshot, err := usecase.BuildSnapshot(context.Background(), testDataset(), today, 2)
	require.NoError(t, err)
	return newTestRouter(t, fixedSnapshots{snapshot: snapshot, today: today})
}

func doGet(t *testing.T, router http.Handler, target, userAgent string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Data       T      `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, googleAPIVersion, envelope.APIVersion)
	return envelope.Data
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	rec := doGet(t, newLeagueRouter(t), "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))
}

func TestHandler_ListSeasons(t *testing.T) {
	t.Parallel()

	rec := doGet(t, newLeagueRouter(t), "/v1/seasons", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData[seasonsDTO](t, rec)
	assert.Equal(t, 2025, data.ActiveSeason)
	assert.Equal(t, []int{2025, 2024}, data.Seasons)
}

func TestHandler_GetHome_DefaultRound(t *testing.T) {
	t.Parallel()

	rec := doGet(t, newLeagueRouter(t), "/v1/home", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData[homeDTO](t, rec)
	assert.Equal(t, 2025, data.Season)
	assert.True(t, data.IsActive)
	assert.Equal(t, "2025-01-10", data.Today)
	assert.Equal(t, []int{1, 2}, data.Rounds)
	require.True(t, data.RoundFound)
	require.NotNil(t, data.Round)
	assert.Equal(t, 2, data.Round.Number)
	assert.Equal(t, "08/01 - 14/01", data.Round.RangeLabel)
	require.Len(t, data.Round.Matches, 1)
	assert.Equal(t, string(schedule.StatePending), data.Round.Matches[0].State)

	require.Len(t, data.Standings, 2)
	assert.Equal(t, "top1", data.Standings[0].Tier)
	assert.Equal(t, "+1", data.Standings[0].MatchDiff)
	assert.Equal(t, "-1", data.Standings[1].MatchDiff)
}

func TestHandler_GetHome_ReplayLinksFollowClient(t *testing.T) {
	t.Parallel()

	router := newLeagueRouter(t)

	desktop := decodeData[homeDTO](t, doGet(t, router, "/v1/home?round=1", ""))
	require.NotNil(t, desktop.Round)
	require.Len(t, desktop.Round.Matches, 1)
	assert.Equal(t, "https://replay.example/1", desktop.Round.Matches[0].Replay)
	assert.Equal(t, "5 - 3", desktop.Round.Matches[0].Score)

	mobile := decodeData[homeDTO](t, doGet(t, router, "/v1/home?round=1", iPhoneUserAgent))
	require.NotNil(t, mobile.Round)
	require.Len(t, mobile.Round.Matches, 1)
	assert.Empty(t, mobile.Round.Matches[0].Replay)
	assert.Equal(t, "5 - 3", mobile.Round.Matches[0].Score)
}

func TestHandler_GetHome_UnknownRound(t *testing.T) {
	t.Parallel()

	rec := doGet(t, newLeagueRouter(t), "/v1/home?round=9", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData[homeDTO](t, rec)
	assert.False(t, data.RoundFound)
	assert.Nil(t, data.Round)
	assert.Equal(t, 9, data.RequestedRound)
}

func TestHandler_GetHome_InvalidQuery(t *testing.T) {
	t.Parallel()

	router := newLeagueRouter(t)
	for _, target := range []string{"/v1/home?round=abc", "/v1/home?season=-1", "/v1/home?round=1234567890"} {
		rec := doGet(t, router, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandler_GetPlayer(t *testing.T) {
	t.Parallel()

	rec := doGet(t, newLeagueRouter(t), "/v1/players/Ryu", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData[playerDTO](t, rec)
	assert.Equal(t, "Ryu", data.Profile.Key)
	assert.Equal(t, "img/ryu.png", data.Profile.Avatar)
	assert.Equal(t, []string{"img/ryu_icon.png"}, data.Profile.Characters)
	require.NotNil(t, data.Summary)
	assert.Equal(t, 100, data.Summary.FT5.WinPct)
	require.Len(t, data.Schedule, 2)
	assert.Equal(t, "won", data.Schedule[0].Match.Outcome)

	require.NotNil(t, data.Next)
	assert.Equal(t, "25-2a", data.Next.Match.ID)
	require.NotNil(t, data.Next.Opponent)
	assert.Equal(t, "Ken", data.Next.Opponent.Key)
	require.Len(t, data.Next.HeadToHead, 2)
	assert.Equal(t, 2025, data.Next.HeadToHead[0].Season)
	assert.Equal(t, 2024, data.Next.HeadToHead[1].Season)
	assert.Equal(t, 2, data.Next.Totals.Played)
	assert.Equal(t, 1, data.Next.Totals.Won)
	assert.Equal(t, 1, data.Next.Totals.Lost)
}

func TestHandler_GetPlayer_UnknownKeyIsPlaceholder(t *testing.T) {
	t.Parallel()

	rec := doGet(t, newLeagueRouter(t), "/v1/players/Ghost", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData[playerDTO](t, rec)
	assert.False(t, data.Profile.Known)
	assert.Equal(t, player.DefaultAvatar, data.Profile.Avatar)
	assert.Nil(t, data.Next)
	assert.Empty(t, data.Schedule)
}

func TestHandler_GetVersus(t *testing.T) {
	t.Parallel()

	router := newLeagueRouter(t)

	rec := doGet(t, router, "/v1/players/Ryu/versus/Ken?season=2024", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData[versusDTO](t, rec)
	assert.Equal(t, 2024, data.Season)
	assert.False(t, data.IsActive)
	assert.Equal(t, 1, data.SeasonRecord.Lost)
	require.NotNil(t, data.SeasonRecord.Latest)
	assert.Equal(t, "2 - 5", data.SeasonRecord.Latest.Score)
	require.Len(t, data.AllSeasons, 2)

	rec = doGet(t, router, "/v1/players/Ryu/versus/Ryu", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_DependencyUnavailable(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixedSnapshots{
		err:   fmt.Errorf("%w: calendar fetch failed", usecase.ErrDependencyUnavailable),
		today: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
	})

	for _, target := range []string{"/v1/seasons", "/v1/home", "/v1/players/Ryu", "/v1/players/Ryu/versus/Ken"} {
		rec := doGet(t, router, target, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}
}
