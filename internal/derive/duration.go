package derive

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var (
	durationPattern = regexp.MustCompile(`^(?:(\d+)\s*d)?\s*(?:(\d+)\s*h)?\s*(?:(\d+)\s*min)?$`)
	minutesPattern  = regexp.MustCompile(`^\d+$`)
)

// ParseDuration converts a compound duration such as "2d 4h 30min" into
// minutes. Every segment is optional and whitespace is ignored. A bare integer
// is read as minutes.
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if minutesPattern.MatchString(s) {
		return strconv.Atoi(s)
	}

	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("malformed duration %q", s)
	}

	days, hours, minutes := atoiOrZero(m[1]), atoiOrZero(m[2]), atoiOrZero(m[3])
	return days*minutesPerDay + hours*minutesPerHour + minutes, nil
}

// FormatDuration renders minutes using the largest units that fit:
// "45min", "3h", "3h 15min", "2d", "2d 4h". Leftover minutes in the day range
// are kept ("2d 4h 5min") so that the value parses back unchanged.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes < minutesPerHour {
		return fmt.Sprintf("%dmin", minutes)
	}
	if minutes < minutesPerDay {
		h, m := minutes/minutesPerHour, minutes%minutesPerHour
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh %dmin", h, m)
	}

	d := minutes / minutesPerDay
	rest := minutes % minutesPerDay
	h, m := rest/minutesPerHour, rest%minutesPerHour

	parts := []string{fmt.Sprintf("%dd", d)}
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dmin", m))
	}
	return strings.Join(parts, " ")
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
