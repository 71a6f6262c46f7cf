package season

import (
	"sort"
	"time"
)

// Resolve picks the active season for one data load. The calendar marker wins over
// the standings marker; without either, the highest observed season is used, and
// the year of now is the last resort.
func Resolve(calendarMarker, standingsMarker *int, observed []int, now time.Time) int {
	if calendarMarker != nil {
		return *calendarMarker
	}
	if standingsMarker != nil {
		return *standingsMarker
	}

	if latest, ok := maxOf(observed); ok {
		return latest
	}
	return now.Year()
}

// Available returns the distinct seasons of every source, most recent first.
func Available(sources ...[]int) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0, 4)
	for _, items := range sources {
		for _, value := range items {
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			out = append(out, value)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Choose returns the season to view. A requested season is honoured only when it
// is one of the available seasons.
func Choose(requested *int, available []int, active int) int {
	if requested == nil {
		return active
	}
	for _, value := range available {
		if value == *requested {
			return value
		}
	}
	return active
}

// Contains reports whether value is one of seasons.
func Contains(seasons []int, value int) bool {
	for _, item := range seasons {
		if item == value {
			return true
		}
	}
	return false
}

func maxOf(values []int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	best := values[0]
	for _, value := range values[1:] {
		if value > best {
			best = value
		}
	}
	return best, true
}
