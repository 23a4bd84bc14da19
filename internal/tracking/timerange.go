package tracking

import (
	"fmt"
	"strings"
	"time"

	"toggl-cli/internal/errors"
)

// rangeDateLayout is the calendar date format accepted in explicit ranges.
const rangeDateLayout = "2006-01-02"

// TimeRange is a half-open interval [Start, End). The half-open shape
// prevents entries landing exactly on a boundary from being counted twice.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the instant falls inside the interval.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Days returns the midnight of every calendar day whose span intersects
// the range, in the range's location, in ascending order.
func (r TimeRange) Days() []time.Time {
	loc := r.Start.Location()
	var days []time.Time
	for day := midnight(r.Start, loc); day.Before(r.End); day = day.AddDate(0, 0, 1) {
		if day.AddDate(0, 0, 1).After(r.Start) {
			days = append(days, day)
		}
	}
	return days
}

// String renders the interval as an inclusive date pair.
func (r TimeRange) String() string {
	return fmt.Sprintf("%s|%s",
		r.Start.Format(rangeDateLayout),
		r.End.AddDate(0, 0, -1).Format(rangeDateLayout))
}

// ResolveRange converts a range token into a concrete interval anchored to
// the supplied instant. Recognized keywords: today, yesterday, this-week,
// last-week, this-month, last-month (weeks are ISO, Monday-first). An
// empty token defaults to today. "YYYY-MM-DD|YYYY-MM-DD" is an explicit
// range with an inclusive end date; a bare "YYYY-MM-DD" is that single
// day. Anything else fails; a malformed range is never silently resolved.
func ResolveRange(token string, now time.Time) (TimeRange, error) {
	loc := now.Location()

	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "today":
		start := midnight(now, loc)
		return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}, nil

	case "yesterday":
		end := midnight(now, loc)
		return TimeRange{Start: end.AddDate(0, 0, -1), End: end}, nil

	case "this-week":
		start := startOfISOWeek(now, loc)
		return TimeRange{Start: start, End: start.AddDate(0, 0, 7)}, nil

	case "last-week":
		end := startOfISOWeek(now, loc)
		return TimeRange{Start: end.AddDate(0, 0, -7), End: end}, nil

	case "this-month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return TimeRange{Start: start, End: start.AddDate(0, 1, 0)}, nil

	case "last-month":
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return TimeRange{Start: end.AddDate(0, -1, 0), End: end}, nil
	}

	return resolveExplicitRange(token, loc)
}

// resolveExplicitRange handles "<date>|<date>" pairs and single dates.
func resolveExplicitRange(token string, loc *time.Location) (TimeRange, error) {
	trimmed := strings.TrimSpace(token)

	if from, to, found := strings.Cut(trimmed, "|"); found {
		start, err := time.ParseInLocation(rangeDateLayout, strings.TrimSpace(from), loc)
		if err != nil {
			return TimeRange{}, errors.NewInvalidRangeError(token)
		}
		end, err := time.ParseInLocation(rangeDateLayout, strings.TrimSpace(to), loc)
		if err != nil {
			return TimeRange{}, errors.NewInvalidRangeError(token)
		}
		// Reversed explicit ranges are normalized by swapping.
		if end.Before(start) {
			start, end = end, start
		}
		return TimeRange{Start: start, End: end.AddDate(0, 0, 1)}, nil
	}

	day, err := time.ParseInLocation(rangeDateLayout, trimmed, loc)
	if err != nil {
		return TimeRange{}, errors.NewInvalidRangeError(token)
	}
	return TimeRange{Start: day, End: day.AddDate(0, 0, 1)}, nil
}

// midnight returns the start of t's calendar day in loc.
func midnight(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// startOfISOWeek returns Monday 00:00 of t's week.
func startOfISOWeek(t time.Time, loc *time.Location) time.Time {
	day := midnight(t, loc)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}
