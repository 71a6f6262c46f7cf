package headtohead

import (
	"sort"

	"github.com/riskibarqy/ft5-league/internal/domain/schedule"
)

// Entry is one played head-to-head match seen from the query player's side.
type Entry struct {
	Season  int
	Round   int
	MatchID string
	Score   string
	Replay  string
	Outcome schedule.Outcome
}

// Record aggregates the played matches between two players inside one season.
// A drawn game count is counted as played only.
type Record struct {
	Season    int
	Played    int
	Won       int
	Lost      int
	GamesWon  int
	GamesLost int
	Entries   []Entry
	Latest    *Entry
}

// Decided reports whether at least one FT5 had a winner.
func (r Record) Decided() bool {
	return r.Won+r.Lost > 0
}

func (r *Record) add(playerKey string, m schedule.Match) {
	own, opp, ok := m.GamesFor(playerKey)
	if !ok {
		return
	}

	r.Played++
	switch {
	case own > opp:
		r.Won++
	case own < opp:
		r.Lost++
	}
	r.GamesWon += own
	r.GamesLost += opp

	entry := Entry{
		Season:  m.Season,
		Round:   m.Round,
		MatchID: m.ID,
		Score:   schedule.FormatScore(own, opp),
		Replay:  m.Replay,
		Outcome: m.OutcomeFor(playerKey),
	}
	r.Entries = append(r.Entries, entry)
	if r.Latest == nil || entry.Round > r.Latest.Round {
		latest := entry
		r.Latest = &latest
	}
}

// Season aggregates the head-to-head inside one already-grouped season schedule.
// Entries come out ascending by round.
func Season(playerKey, opponentKey string, rounds []schedule.Round) Record {
	record := Record{}
	if playerKey == "" || opponentKey == "" || playerKey == opponentKey {
		return record
	}

	ordered := make([]schedule.Round, len(rounds))
	copy(ordered, rounds)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	for _, round := range ordered {
		for _, item := range round.Matches {
			if record.Season == 0 {
				record.Season = item.Season
			}
			if !item.Between(playerKey, opponentKey) {
				continue
			}
			record.add(playerKey, item)
		}
	}
	return record
}

// AllSeasons buckets the head-to-head by season over the unfiltered match list.
// The active season comes first, the rest follow by season descending. Seasons
// without a played meeting are left out.
func AllSeasons(playerKey, opponentKey string, matches []schedule.Match, activeSeason int) []Record {
	if playerKey == "" || opponentKey == "" || playerKey == opponentKey {
		return nil
	}

	bySeason := make(map[int][]schedule.Match)
	for _, item := range matches {
		if !item.Played() || !item.Between(playerKey, opponentKey) {
			continue
		}
		bySeason[item.Season] = append(bySeason[item.Season], item)
	}

	out := make([]Record, 0, len(bySeason))
	for value, items := range bySeason {
		record := Season(playerKey, opponentKey, schedule.GroupRounds(items))
		record.Season = value
		out = append(out, record)
	}

	SortSeasons(out, activeSeason)
	return out
}

// SortSeasons puts the active season first and the others by season descending.
func SortSeasons(records []Record, activeSeason int) {
	sort.SliceStable(records, func(i, j int) bool {
		left, right := records[i].Season, records[j].Season
		if (left == activeSeason) != (right == activeSeason) {
			return left == activeSeason
		}
		return left > right
	})
}

// Decided drops seasons in which no FT5 had a winner.
func Decided(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, item := range records {
		if item.Decided() {
			out = append(out, item)
		}
	}
	return out
}

// Totals sums a set of season records. Entries and Latest are left empty.
func Totals(records []Record) Record {
	total := Record{}
	for _, item := range records {
		total.Played += item.Played
		total.Won += item.Won
		total.Lost += item.Lost
		total.GamesWon += item.GamesWon
		total.GamesLost += item.GamesLost
	}
	return total
}
