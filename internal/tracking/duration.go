// Package tracking implements the time computation engine behind the CLI:
// duration parsing, range resolution, entry synthesis, workday gap
// detection and report aggregation. Every function is pure; the current
// instant and reference timezone are always supplied by the caller.
package tracking

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"toggl-cli/internal/errors"
)

// durationToken matches one <number><unit> token at the start of the
// remaining input. The unit is optional only for a bare number.
var durationToken = regexp.MustCompile(`^(\d+)\s*([a-z]+)?`)

// unitTable maps accepted unit spellings to their length. A day is a flat
// 24 hours for duration purposes, not a calendar day.
var unitTable = map[string]time.Duration{
	"s":       time.Second,
	"sec":     time.Second,
	"secs":    time.Second,
	"second":  time.Second,
	"seconds": time.Second,
	"m":       time.Minute,
	"min":     time.Minute,
	"mins":    time.Minute,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"h":       time.Hour,
	"hr":      time.Hour,
	"hrs":     time.Hour,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"d":       24 * time.Hour,
	"day":     24 * time.Hour,
	"days":    24 * time.Hour,
}

// defaultUnit is applied to a bare number, matching the service's
// convention of taking durations in minutes.
const defaultUnit = time.Minute

// ParseDuration converts human duration text such as "8 hours", "90m",
// "1h 30min" or a bare "45" (minutes) into a duration. Tokens are summed.
// Case and whitespace are insensitive. Unknown units, negative numbers and
// trailing garbage are rejected rather than silently dropped.
func ParseDuration(text string) (time.Duration, error) {
	rest := strings.ToLower(strings.TrimSpace(text))
	if rest == "" {
		return 0, errors.NewInvalidDurationError(text)
	}

	var total time.Duration
	for rest != "" {
		match := durationToken.FindStringSubmatch(rest)
		if match == nil {
			return 0, errors.NewInvalidDurationError(text)
		}

		value, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return 0, errors.NewInvalidDurationError(text)
		}

		unit := defaultUnit
		if match[2] != "" {
			known, ok := unitTable[match[2]]
			if !ok {
				return 0, errors.NewInvalidDurationError(text)
			}
			unit = known
		}

		// Reject values the multiplication or the running sum cannot
		// represent; the result must never go negative.
		if value > math.MaxInt64/int64(unit) {
			return 0, errors.NewInvalidDurationError(text)
		}
		total += time.Duration(value) * unit
		if total < 0 {
			return 0, errors.NewInvalidDurationError(text)
		}
		rest = strings.TrimSpace(rest[len(match[0]):])
	}

	return total, nil
}

// FormatDuration renders a duration in the parser's own canonical form,
// e.g. "1h 30m" or "1d 2h 5s". The output round-trips through
// ParseDuration for any non-negative duration of whole seconds.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}

	days := d / (24 * time.Hour)
	hours := (d % (24 * time.Hour)) / time.Hour
	minutes := (d % time.Hour) / time.Minute
	seconds := (d % time.Minute) / time.Second

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	if len(parts) == 0 {
		// Sub-second remainder only.
		return "0m"
	}

	return strings.Join(parts, " ")
}
