package schedule

import "time"

// Classify decides the display state of a match. Unplayed matches are future while
// today is strictly before the round's start date, pending otherwise (including when
// the start date is unknown).
func Classify(m Match, roundStart string, today time.Time) State {
	if m.Played() {
		return StatePlayed
	}
	if start, ok := ParseDate(roundStart); ok && DateOf(today).Before(start) {
		return StateFuture
	}
	return StatePending
}

// DefaultRound picks the round to open first. When today falls inside one or more
// round windows the highest such round wins; before the first round the first is
// chosen; otherwise the last. ok is false for an empty schedule.
func DefaultRound(rounds []Round, today time.Time) (int, bool) {
	if len(rounds) == 0 {
		return 0, false
	}

	day := DateOf(today)
	ordered := sortedRounds(rounds)

	found := false
	best := 0
	for _, item := range ordered {
		start, end, ok := item.Window()
		if !ok || day.Before(start) || day.After(end) {
			continue
		}
		if !found || item.Number > best {
			best = item.Number
			found = true
		}
	}
	if found {
		return best, true
	}

	first := ordered[0]
	if start, ok := ParseDate(first.StartDate); ok && day.Before(start) {
		return first.Number, true
	}

	return ordered[len(ordered)-1].Number, true
}

// NextMatch returns the player's earliest pending match, or failing that the
// earliest future one. Played matches are never returned.
func NextMatch(playerKey string, rounds []Round, today time.Time) (Fixture, bool) {
	var future *Fixture
	for _, item := range PlayerFixtures(playerKey, rounds, today) {
		switch item.State {
		case StatePending:
			return item, true
		case StateFuture:
			if future == nil {
				candidate := item
				future = &candidate
			}
		}
	}

	if future != nil {
		return *future, true
	}
	return Fixture{}, false
}

// PlayerFixtures lists every match involving playerKey, ascending by round and in
// round order inside a round.
func PlayerFixtures(playerKey string, rounds []Round, today time.Time) []Fixture {
	if playerKey == "" {
		return nil
	}

	out := make([]Fixture, 0, 16)
	for _, round := range sortedRounds(rounds) {
		for _, item := range round.Matches {
			if !item.Involves(playerKey) {
				continue
			}
			out = append(out, Fixture{
				Round:     round.Number,
				StartDate: round.StartDate,
				EndDate:   round.EndDate,
				Match:     item,
				State:     Classify(item, round.StartDate, today),
			})
		}
	}

	return out
}

// RoundFixtures classifies every match of a round.
func RoundFixtures(round Round, today time.Time) []Fixture {
	out := make([]Fixture, 0, len(round.Matches))
	for _, item := range round.Matches {
		out = append(out, Fixture{
			Round:     round.Number,
			StartDate: round.StartDate,
			EndDate:   round.EndDate,
			Match:     item,
			State:     Classify(item, round.StartDate, today),
		})
	}
	return out
}
