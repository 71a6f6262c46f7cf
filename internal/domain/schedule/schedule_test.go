package schedule

import (
	"math/rand"
	"testing"
	"time"
)

func score(v int) *int { return &v }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 15, 30, 0, 0, time.UTC)
}

func TestMatchPlayed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		match Match
		want  bool
	}{
		{name: "both scores", match: Match{Score1: score(5), Score2: score(0)}, want: true},
		{name: "zero zero is still played", match: Match{Score1: score(0), Score2: score(0)}, want: true},
		{name: "missing first", match: Match{Score2: score(3)}, want: false},
		{name: "missing second", match: Match{Score1: score(3)}, want: false},
		{name: "missing both", match: Match{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.match.Played(); got != tt.want {
				t.Fatalf("unexpected played: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	unplayed := Match{P1: "A", P2: "B"}
	done := Match{P1: "A", P2: "B", Score1: score(5), Score2: score(3)}

	if got := Classify(done, "2030-01-01", day(2025, 1, 1)); got != StatePlayed {
		t.Fatalf("expected played, got %s", got)
	}
	if got := Classify(unplayed, "2025-01-08", day(2025, 1, 7)); got != StateFuture {
		t.Fatalf("expected future before start, got %s", got)
	}
	if got := Classify(unplayed, "2025-01-08", day(2025, 1, 8)); got != StatePending {
		t.Fatalf("expected pending on start day, got %s", got)
	}
	if got := Classify(unplayed, "", day(2020, 1, 1)); got != StatePending {
		t.Fatalf("expected pending with unknown start, got %s", got)
	}
}

func TestGroupRounds_DatesAndOrdering(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: "b", Round: 2, P1: "A", P2: "B", StartDate: "", EndDate: "2025-01-14"},
		{ID: "a", Round: 2, P1: "C", P2: "D", StartDate: "2025-01-08", EndDate: "2025-01-20"},
		{ID: "z", Round: 1, P1: "A", P2: "C", StartDate: "2025-01-01", EndDate: "2025-01-07"},
		{ID: "", Round: 1, P1: "B", P2: "D", StartDate: "2024-12-30", EndDate: ""},
	}

	rounds := GroupRounds(matches)
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	if rounds[0].Number != 1 || rounds[1].Number != 2 {
		t.Fatalf("expected ascending rounds, got %d,%d", rounds[0].Number, rounds[1].Number)
	}
	if rounds[0].StartDate != "2025-01-01" || rounds[0].EndDate != "2025-01-07" {
		t.Fatalf("round 1 window should keep first values, got %s..%s", rounds[0].StartDate, rounds[0].EndDate)
	}
	if rounds[1].StartDate != "2025-01-08" || rounds[1].EndDate != "2025-01-14" {
		t.Fatalf("round 2 window should backfill start only, got %s..%s", rounds[1].StartDate, rounds[1].EndDate)
	}
	if rounds[0].Matches[0].ID != "" || rounds[0].Matches[1].ID != "z" {
		t.Fatalf("empty id should sort first, got %q,%q", rounds[0].Matches[0].ID, rounds[0].Matches[1].ID)
	}
	if got := rounds[1].RangeLabel(); got != "08/01 - 14/01" {
		t.Fatalf("unexpected range label %q", got)
	}
}

func TestGroupRounds_StableUnderPermutation(t *testing.T) {
	t.Parallel()

	base := []Match{
		{ID: "10", Round: 1, P1: "A", P2: "B"},
		{ID: "02", Round: 1, P1: "C", P2: "D"},
		{ID: "07", Round: 3, P1: "A", P2: "C"},
		{ID: "01", Round: 2, P1: "B", P2: "D"},
		{ID: "05", Round: 3, P1: "B", P2: "C"},
	}
	want := GroupRounds(base)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]Match, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := GroupRounds(shuffled)
		if len(got) != len(want) {
			t.Fatalf("round count changed: got=%d want=%d", len(got), len(want))
		}
		total := 0
		for r := range want {
			if got[r].Number != want[r].Number || len(got[r].Matches) != len(want[r].Matches) {
				t.Fatalf("round %d differs after shuffle", want[r].Number)
			}
			for m := range want[r].Matches {
				if got[r].Matches[m].ID != want[r].Matches[m].ID {
					t.Fatalf("match order differs in round %d", want[r].Number)
				}
			}
			total += len(got[r].Matches)
		}
		if total != len(base) {
			t.Fatalf("grouping lost matches: got=%d want=%d", total, len(base))
		}
	}
}

func TestDefaultRound(t *testing.T) {
	t.Parallel()

	rounds := []Round{
		{Number: 1, StartDate: "2025-01-01", EndDate: "2025-01-07"},
		{Number: 2, StartDate: "2025-01-08", EndDate: "2025-01-14"},
	}

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{name: "inside second window", today: day(2025, 1, 10), want: 2},
		{name: "before first round", today: day(2024, 12, 31), want: 1},
		{name: "after last round", today: day(2025, 2, 1), want: 2},
		{name: "inclusive end", today: day(2025, 1, 7), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DefaultRound(rounds, tt.today)
			if !ok || got != tt.want {
				t.Fatalf("unexpected default round: got=%d ok=%v want=%d", got, ok, tt.want)
			}
		})
	}
}

func TestDefaultRound_OverlappingPicksHighest(t *testing.T) {
	t.Parallel()

	rounds := []Round{
		{Number: 4, StartDate: "2025-03-01", EndDate: "2025-03-20"},
		{Number: 3, StartDate: "2025-03-01", EndDate: "2025-03-10"},
	}
	got, ok := DefaultRound(rounds, day(2025, 3, 5))
	if !ok || got != 4 {
		t.Fatalf("expected highest active round 4, got %d", got)
	}
}

func TestDefaultRound_EmptyHasNoDefault(t *testing.T) {
	t.Parallel()

	if _, ok := DefaultRound(nil, day(2025, 1, 1)); ok {
		t.Fatalf("expected no default round for empty schedule")
	}
}

func TestNextMatch_PendingBeforeFuture(t *testing.T) {
	t.Parallel()

	rounds := GroupRounds([]Match{
		{ID: "1", Round: 1, P1: "A", P2: "B", StartDate: "2025-01-01", EndDate: "2025-01-07", Score1: score(5), Score2: score(2)},
		{ID: "3", Round: 3, P1: "C", P2: "A", StartDate: "2025-01-15", EndDate: "2025-01-21"},
		{ID: "5", Round: 5, P1: "A", P2: "D", StartDate: "2025-02-01", EndDate: "2025-02-07"},
	})

	next, ok := NextMatch("A", rounds, day(2025, 1, 20))
	if !ok {
		t.Fatalf("expected a next match")
	}
	if next.Round != 3 || next.State != StatePending {
		t.Fatalf("expected pending round 3, got round=%d state=%s", next.Round, next.State)
	}
	if opp, _ := next.Match.Opponent("A"); opp != "C" {
		t.Fatalf("unexpected opponent %q", opp)
	}
}

func TestNextMatch_FutureWhenNothingPending(t *testing.T) {
	t.Parallel()

	rounds := GroupRounds([]Match{
		{ID: "5", Round: 5, P1: "A", P2: "D", StartDate: "2025-02-01", EndDate: "2025-02-07"},
		{ID: "6", Round: 6, P1: "E", P2: "A", StartDate: "2025-02-08", EndDate: "2025-02-14"},
	})

	next, ok := NextMatch("A", rounds, day(2025, 1, 1))
	if !ok || next.Round != 5 || next.State != StateFuture {
		t.Fatalf("expected future round 5, got %+v ok=%v", next, ok)
	}

	if _, ok := NextMatch("Z", rounds, day(2025, 1, 1)); ok {
		t.Fatalf("expected no match for unknown player")
	}
}

func TestShiftRound_Wraps(t *testing.T) {
	t.Parallel()

	rounds := []Round{{Number: 1}, {Number: 2}, {Number: 3}}
	if got, _ := ShiftRound(rounds, 1, -1); got != 3 {
		t.Fatalf("expected wrap to last, got %d", got)
	}
	if got, _ := ShiftRound(rounds, 3, 1); got != 1 {
		t.Fatalf("expected wrap to first, got %d", got)
	}
	if got, _ := ShiftRound(rounds, 2, 1); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if _, ok := ShiftRound(nil, 1, 1); ok {
		t.Fatalf("expected no shift on empty schedule")
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	if _, ok := ParseDate("2025-1-01"); ok {
		t.Fatalf("expected malformed date to be rejected")
	}
	got, ok := ParseDate(" 2025-03-09 ")
	if !ok || !got.Equal(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected parse result %v ok=%v", got, ok)
	}
}
