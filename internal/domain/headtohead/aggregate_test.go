package headtohead

import (
	"testing"

	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v int) *int { return &v }

func played(id string, season, round int, p1, p2 string, s1, s2 int) schedule.Match {
	return schedule.Match{ID: id, Season: season, Round: round, P1: p1, P2: p2, Score1: score(s1), Score2: score(s2)}
}

func TestSeason_AttributionFollowsSlot(t *testing.T) {
	t.Parallel()

	rounds := schedule.GroupRounds([]schedule.Match{
		played("m1", 2025, 1, "A", "B", 3, 1),
	})

	fromA := Season("A", "B", rounds)
	require.Len(t, fromA.Entries, 1)
	assert.Equal(t, 1, fromA.Won)
	assert.Equal(t, 0, fromA.Lost)
	assert.Equal(t, "3 - 1", fromA.Entries[0].Score)
	assert.Equal(t, schedule.OutcomeWon, fromA.Entries[0].Outcome)

	fromB := Season("B", "A", rounds)
	require.Len(t, fromB.Entries, 1)
	assert.Equal(t, 0, fromB.Won)
	assert.Equal(t, 1, fromB.Lost)
	assert.Equal(t, "1 - 3", fromB.Entries[0].Score)
	assert.Equal(t, schedule.OutcomeLost, fromB.Entries[0].Outcome)
	assert.Equal(t, 1, fromB.GamesWon)
	assert.Equal(t, 3, fromB.GamesLost)
}

func TestSeason_EntriesAscendingAndSkipUnplayed(t *testing.T) {
	t.Parallel()

	rounds := schedule.GroupRounds([]schedule.Match{
		played("m3", 2025, 3, "B", "A", 5, 2),
		{ID: "m2", Season: 2025, Round: 2, P1: "A", P2: "B"},
		played("m1", 2025, 1, "A", "B", 5, 4),
		played("m9", 2025, 1, "A", "C", 5, 0),
	})

	record := Season("A", "B", rounds)
	require.Len(t, record.Entries, 2)
	assert.Equal(t, 1, record.Entries[0].Round)
	assert.Equal(t, 3, record.Entries[1].Round)
	assert.Equal(t, "2 - 5", record.Entries[1].Score)
	assert.Equal(t, 2, record.Played)
	assert.Equal(t, 7, record.GamesWon)
	assert.Equal(t, 9, record.GamesLost)
	require.NotNil(t, record.Latest)
	assert.Equal(t, 3, record.Latest.Round)
}

func TestSeason_TieCountsAsPlayedOnly(t *testing.T) {
	t.Parallel()

	record := Season("A", "B", schedule.GroupRounds([]schedule.Match{
		played("m1", 2025, 1, "A", "B", 4, 4),
	}))

	assert.Equal(t, 1, record.Played)
	assert.Equal(t, 0, record.Won)
	assert.Equal(t, 0, record.Lost)
	assert.False(t, record.Decided())
	require.Len(t, record.Entries, 1)
	assert.Equal(t, schedule.OutcomeNone, record.Entries[0].Outcome)
}

func TestAllSeasons_ActiveFirstWithoutLeakage(t *testing.T) {
	t.Parallel()

	matches := []schedule.Match{
		played("a1", 2024, 2, "A", "B", 5, 1),
		played("b1", 2025, 4, "B", "A", 5, 3),
		played("c1", 2023, 1, "A", "B", 5, 2),
	}

	records := AllSeasons("A", "B", matches, 2024)
	require.Len(t, records, 3)
	assert.Equal(t, []int{2024, 2025, 2023}, []int{records[0].Season, records[1].Season, records[2].Season})

	assert.Equal(t, 1, records[0].Won)
	assert.Equal(t, 0, records[0].Lost)
	assert.Equal(t, 5, records[0].GamesWon)

	assert.Equal(t, 0, records[1].Won)
	assert.Equal(t, 1, records[1].Lost)
	require.NotNil(t, records[1].Latest)
	assert.Equal(t, "3 - 5", records[1].Latest.Score)
	assert.Equal(t, schedule.OutcomeLost, records[1].Latest.Outcome)
}

func TestAllSeasons_LatestIsHighestRound(t *testing.T) {
	t.Parallel()

	matches := []schedule.Match{
		played("x2", 2025, 7, "A", "B", 5, 0),
		played("x1", 2025, 2, "A", "B", 1, 5),
	}
	matches[0].Replay = "https://replay.example/7"

	records := AllSeasons("A", "B", matches, 2025)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Latest)
	assert.Equal(t, 7, records[0].Latest.Round)
	assert.Equal(t, "https://replay.example/7", records[0].Latest.Replay)
}

func TestDecidedAndTotals(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Season: 2025, Played: 1},
		{Season: 2024, Played: 2, Won: 1, Lost: 1, GamesWon: 6, GamesLost: 7},
	}

	decided := Decided(records)
	require.Len(t, decided, 1)
	assert.Equal(t, 2024, decided[0].Season)

	total := Totals(records)
	assert.Equal(t, 3, total.Played)
	assert.Equal(t, 6, total.GamesWon)
}
