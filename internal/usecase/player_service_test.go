package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/ft5-league/internal/domain/player"
	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/riskibarqy/ft5-league/internal/domain/standing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerService_PlayerView(t *testing.T) {
	t.Parallel()

	snapshots, _, _ := newTestDatasetService(t, leagueDataset(), time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC))
	service := NewPlayerService(snapshots, player.DefaultImagePaths())

	view, err := service.Player(context.Background(), "Ryu")
	require.NoError(t, err)
	assert.Equal(t, 2025, view.ActiveSeason)

	assert.True(t, view.Profile.Known)
	assert.Equal(t, "img/ryu.png", view.Profile.Avatar)
	assert.Equal(t, []string{"img/ryu_icon.png"}, view.Profile.Characters)
	assert.Equal(t, "https://wa.me/1", view.Profile.WhatsAppLink)

	require.NotNil(t, view.Summary)
	assert.Equal(t, standing.TierTop1, view.Summary.Line.Tier)
	assert.Equal(t, 100, view.Summary.FT5.WinPct)
	assert.Equal(t, 63, view.Summary.Games.WinPct)

	require.Len(t, view.Schedule, 3)
	assert.Equal(t, schedule.OutcomeWon, view.Schedule[0].Match.Outcome)
	assert.Equal(t, "5 - 3", view.Schedule[0].Match.Score)
	assert.Equal(t, schedule.StatePending, view.Schedule[1].Match.State)
	assert.Equal(t, schedule.StateFuture, view.Schedule[2].Match.State)

	require.NotNil(t, view.Next)
	assert.Equal(t, 2, view.Next.Round)
	assert.Equal(t, "Chun", view.Next.Opponent.Key)
	require.NotNil(t, view.Next.OpponentSummary)
	assert.Equal(t, 2, view.Next.OpponentSummary.Line.Position)
	assert.Empty(t, view.Next.HeadToHead)
}

func TestPlayerService_NextOpponentHeadToHeadAcrossSeasons(t *testing.T) {
	t.Parallel()

	// After round 2 ends, Ryu's next match is round 3 against Ken.
	snapshots, _, _ := newTestDatasetService(t, leagueDataset(), time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC))
	service := NewPlayerService(snapshots, player.DefaultImagePaths())

	view, err := service.Player(context.Background(), "Ryu")
	require.NoError(t, err)
	require.NotNil(t, view.Next)
	assert.Equal(t, 2, view.Next.Round, "pending round 2 still comes before round 3")

	dataset := leagueDataset()
	dataset.Matches[3].Score1 = intPtr(0)
	dataset.Matches[3].Score2 = intPtr(5)
	snapshots, _, _ = newTestDatasetService(t, dataset, time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC))
	service = NewPlayerService(snapshots, player.DefaultImagePaths())

	view, err = service.Player(context.Background(), "Ryu")
	require.NoError(t, err)
	require.NotNil(t, view.Next)
	assert.Equal(t, 3, view.Next.Round)
	assert.Equal(t, "Ken", view.Next.Opponent.Key)

	require.Len(t, view.Next.HeadToHead, 2)
	assert.Equal(t, 2025, view.Next.HeadToHead[0].Season)
	assert.Equal(t, 1, view.Next.HeadToHead[0].Won)
	assert.Equal(t, 2024, view.Next.HeadToHead[1].Season)
	assert.Equal(t, 1, view.Next.HeadToHead[1].Lost)
	require.NotNil(t, view.Next.HeadToHead[1].Latest)
	assert.Equal(t, "2 - 5", view.Next.HeadToHead[1].Latest.Score)
	assert.Equal(t, 2, view.Next.Totals.Played)
}

func TestPlayerService_UnknownPlayerGetsPlaceholder(t *testing.T) {
	t.Parallel()

	snapshots, _, _ := newTestDatasetService(t, leagueDataset(), time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC))
	service := NewPlayerService(snapshots, player.DefaultImagePaths())

	view, err := service.Player(context.Background(), "Ghost")
	require.NoError(t, err)
	assert.False(t, view.Profile.Known)
	assert.Equal(t, player.DefaultAvatar, view.Profile.Avatar)
	assert.Nil(t, view.Summary)
	require.Len(t, view.Schedule, 1)
	assert.Equal(t, schedule.OutcomeLost, view.Schedule[0].Match.Outcome)
	assert.Nil(t, view.Next)

	_, err = service.Player(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlayerService_Versus(t *testing.T) {
	t.Parallel()

	snapshots, _, _ := newTestDatasetService(t, leagueDataset(), time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC))
	service := NewPlayerService(snapshots, player.DefaultImagePaths())

	fromKen, err := service.Versus(context.Background(), "Ken", "Ryu", nil)
	require.NoError(t, err)
	assert.Equal(t, 2025, fromKen.Season)
	require.Len(t, fromKen.SeasonRecord.Entries, 1)
	assert.Equal(t, "3 - 5", fromKen.SeasonRecord.Entries[0].Score)
	assert.Equal(t, 1, fromKen.SeasonRecord.Lost)

	require.Len(t, fromKen.AllSeasons, 2)
	assert.Equal(t, 2025, fromKen.AllSeasons[0].Season)
	assert.Equal(t, 1, fromKen.Totals.Won)
	assert.Equal(t, 1, fromKen.Totals.Lost)

	past, err := service.Versus(context.Background(), "Ken", "Ryu", intPtr(2024))
	require.NoError(t, err)
	assert.False(t, past.IsActive)
	assert.Equal(t, 1, past.SeasonRecord.Won)

	_, err = service.Versus(context.Background(), "Ken", "Ken", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
