package schedule

import (
	"fmt"
	"time"
)

// State is the display state of a match relative to "today".
type State string

const (
	StatePlayed  State = "played"
	StatePending State = "pending"
	StateFuture  State = "future"
)

// Outcome is a player-relative FT5 result. A drawn game count yields OutcomeNone.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// Match is one FT5 pairing. P1/P2 order comes from the calendar and is never re-sorted.
type Match struct {
	ID        string
	Season    int
	Round     int
	StartDate string
	EndDate   string
	P1        string
	P2        string
	Score1    *int
	Score2    *int
	Replay    string
}

// Played reports whether both game counts are present.
func (m Match) Played() bool {
	return m.Score1 != nil && m.Score2 != nil
}

func (m Match) Involves(playerKey string) bool {
	return playerKey != "" && (m.P1 == playerKey || m.P2 == playerKey)
}

// Between reports whether the match pairs exactly these two players, in either slot order.
func (m Match) Between(playerKey, opponentKey string) bool {
	return (m.P1 == playerKey && m.P2 == opponentKey) || (m.P1 == opponentKey && m.P2 == playerKey)
}

// Opponent returns the other slot's key when playerKey takes part in the match.
func (m Match) Opponent(playerKey string) (string, bool) {
	switch {
	case playerKey == "":
		return "", false
	case m.P1 == playerKey:
		return m.P2, true
	case m.P2 == playerKey:
		return m.P1, true
	default:
		return "", false
	}
}

// GamesFor returns (own, opponent) game counts from playerKey's side.
func (m Match) GamesFor(playerKey string) (int, int, bool) {
	if playerKey == "" || !m.Played() {
		return 0, 0, false
	}
	switch {
	case m.P1 == playerKey:
		return *m.Score1, *m.Score2, true
	case m.P2 == playerKey:
		return *m.Score2, *m.Score1, true
	default:
		return 0, 0, false
	}
}

// OutcomeFor returns the FT5 result for playerKey, OutcomeNone when unplayed or drawn.
func (m Match) OutcomeFor(playerKey string) Outcome {
	own, opp, ok := m.GamesFor(playerKey)
	if !ok {
		return OutcomeNone
	}
	return outcomeOf(own, opp)
}

// ScoreLine renders the result in calendar order ("p1 - p2"), empty when unplayed.
func (m Match) ScoreLine() string {
	if !m.Played() {
		return ""
	}
	return FormatScore(*m.Score1, *m.Score2)
}

func FormatScore(left, right int) string {
	return fmt.Sprintf("%d - %d", left, right)
}

func outcomeOf(own, opp int) Outcome {
	switch {
	case own > opp:
		return OutcomeWon
	case own < opp:
		return OutcomeLost
	default:
		return OutcomeNone
	}
}

// Round groups one season's matches sharing a round number.
type Round struct {
	Number    int
	StartDate string
	EndDate   string
	Matches   []Match
}

// Window returns the parsed inclusive date window. ok is false unless both dates parse.
func (r Round) Window() (time.Time, time.Time, bool) {
	start, okStart := ParseDate(r.StartDate)
	end, okEnd := ParseDate(r.EndDate)
	if !okStart || !okEnd {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// RangeLabel renders "dd/mm - dd/mm", or "" when either date is missing.
func (r Round) RangeLabel() string {
	start, end, ok := r.Window()
	if !ok {
		return ""
	}
	return start.Format("02/01") + " - " + end.Format("02/01")
}

// Fixture is a match placed in its round with its state for a given day.
type Fixture struct {
	Round     int
	StartDate string
	EndDate   string
	Match     Match
	State     State
}
