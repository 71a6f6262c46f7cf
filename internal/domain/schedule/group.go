package schedule

import (
	"sort"
	"strings"
)

// GroupRounds buckets one season's matches by round number, ascending. The date
// window of each round keeps the first non-empty start/end seen. Matches inside a
// round are ordered by match ID so the result does not depend on input order.
func GroupRounds(matches []Match) []Round {
	byNumber := make(map[int]*Round)
	numbers := make([]int, 0, 16)

	for _, item := range matches {
		round, ok := byNumber[item.Round]
		if !ok {
			round = &Round{
				Number:    item.Round,
				StartDate: item.StartDate,
				EndDate:   item.EndDate,
			}
			byNumber[item.Round] = round
			numbers = append(numbers, item.Round)
		}

		round.Matches = append(round.Matches, item)
		if round.StartDate == "" && item.StartDate != "" {
			round.StartDate = item.StartDate
		}
		if round.EndDate == "" && item.EndDate != "" {
			round.EndDate = item.EndDate
		}
	}

	sort.Ints(numbers)
	out := make([]Round, 0, len(numbers))
	for _, number := range numbers {
		round := byNumber[number]
		sortMatches(round.Matches)
		out = append(out, *round)
	}

	return out
}

func sortMatches(items []Match) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := strings.Compare(items[i].ID, items[j].ID); c != 0 {
			return c < 0
		}
		if items[i].P1 != items[j].P1 {
			return items[i].P1 < items[j].P1
		}
		return items[i].P2 < items[j].P2
	})
}

// FindRound returns the round with the given number.
func FindRound(rounds []Round, number int) (Round, bool) {
	for _, item := range rounds {
		if item.Number == number {
			return item, true
		}
	}
	return Round{}, false
}

// RoundNumbers lists round numbers in ascending order.
func RoundNumbers(rounds []Round) []int {
	out := make([]int, 0, len(rounds))
	for _, item := range rounds {
		out = append(out, item.Number)
	}
	sort.Ints(out)
	return out
}

// ShiftRound moves current by delta, wrapping past either end of the schedule.
func ShiftRound(rounds []Round, current, delta int) (int, bool) {
	numbers := RoundNumbers(rounds)
	if len(numbers) == 0 {
		return 0, false
	}

	first, last := numbers[0], numbers[len(numbers)-1]
	next := current + delta
	switch {
	case next < first:
		return last, true
	case next > last:
		return first, true
	default:
		return next, true
	}
}

func sortedRounds(rounds []Round) []Round {
	out := make([]Round, len(rounds))
	copy(out, rounds)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
