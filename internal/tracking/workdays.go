package tracking

import (
	"time"

	"toggl-cli/internal/domain"
)

// MissingWorkdays returns the ordered business days (Monday to Friday)
// inside the range that have no logged entry. An entry of any length,
// running entries included, counts as coverage for its start date.
// Weekends are never reported; holiday calendars are not consulted.
func MissingWorkdays(r TimeRange, entries []domain.TimeEntry) []time.Time {
	loc := r.Start.Location()

	covered := make(map[string]bool, len(entries))
	for _, entry := range entries {
		covered[entry.Date(loc).Format(rangeDateLayout)] = true
	}

	var missing []time.Time
	for _, day := range r.Days() {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if !covered[day.Format(rangeDateLayout)] {
			missing = append(missing, day)
		}
	}

	return missing
}
