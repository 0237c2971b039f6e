package derive

import (
	"regexp"
)

// MaxProjectKeyLength is the longest key the quality service accepts.
const MaxProjectKeyLength = 400

var projectKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_:.-]+$`)

// ValidProjectKey reports whether key is a well-formed project key.
func ValidProjectKey(key string) bool {
	return len(key) >= 1 && len(key) <= MaxProjectKeyLength && projectKeyPattern.MatchString(key)
}

// RatingLetter maps a numeric rating (1..5) to its letter (A..E).
// Values outside that range map to "?".
func RatingLetter(value float64) string {
	switch {
	case value >= 0.5 && value < 1.5:
		return "A"
	case value >= 1.5 && value < 2.5:
		return "B"
	case value >= 2.5 && value < 3.5:
		return "C"
	case value >= 3.5 && value < 4.5:
		return "D"
	case value >= 4.5 && value < 5.5:
		return "E"
	default:
		return "?"
	}
}
