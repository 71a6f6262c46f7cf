package document

import (
	"math"
	"strconv"
	"strings"
)

// numberOf converts a JSON scalar to a finite number. Empty strings, null,
// booleans and non-numeric text are absent.
func numberOf(raw any) (float64, bool) {
	switch typed := raw.(type) {
	case float64:
		return typed, isFinite(typed)
	case float32:
		return float64(typed), isFinite(float64(typed))
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		text := strings.TrimSpace(typed)
		if text == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}
		return parsed, isFinite(parsed)
	default:
		return 0, false
	}
}

// intOf accepts only integral finite numbers.
func intOf(raw any) (int, bool) {
	value, ok := numberOf(raw)
	if !ok || value != math.Trunc(value) {
		return 0, false
	}
	if value > math.MaxInt32 || value < math.MinInt32 {
		return 0, false
	}
	return int(value), true
}

// truncatedIntOf accepts any finite number in int32 range and drops its
// fractional part.
func truncatedIntOf(raw any) (int, bool) {
	value, ok := numberOf(raw)
	if !ok {
		return 0, false
	}
	value = math.Trunc(value)
	if value > math.MaxInt32 || value < math.MinInt32 {
		return 0, false
	}
	return int(value), true
}

func optionalInt(src map[string]any, key string) *int {
	value, ok := intOf(src[key])
	if !ok {
		return nil
	}
	return &value
}

func getInt(src map[string]any, key string) int {
	value, _ := intOf(src[key])
	return value
}

func getString(src map[string]any, key string) string {
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// getID is getString that also accepts numeric identifiers, rendered without a
// fractional part when integral.
func getID(src map[string]any, key string) string {
	switch typed := src[key].(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if !isFinite(typed) {
			return ""
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return ""
	}
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
