package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// ParseDate parses a calendar date into UTC midnight. Out-of-range days roll over
// into the next month the same way time.Date does.
func ParseDate(value string) (time.Time, bool) {
	parts := dateRegex.FindStringSubmatch(strings.TrimSpace(value))
	if parts == nil {
		return time.Time{}, false
	}

	year, errYear := strconv.Atoi(parts[1])
	month, errMonth := strconv.Atoi(parts[2])
	day, errDay := strconv.Atoi(parts[3])
	if errYear != nil || errMonth != nil || errDay != nil {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// DateOf strips the time of day from t, keeping t's own calendar day.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
