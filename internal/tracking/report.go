package tracking

import (
	"fmt"
	"sort"
	"time"

	"toggl-cli/internal/domain"
)

// Default report thresholds. They are policy defaults, not law: callers
// can override every one of them through ReportConfig.
const (
	DefaultDailyLimit     = 10 * time.Hour
	DefaultBreakThreshold = 6 * time.Hour
	DefaultMinBreak       = 30 * time.Minute
)

// ViolationKind is the closed set of anomalies a report can flag. The
// declaration order is the tie-break order used when sorting violations
// that share a day.
type ViolationKind int

const (
	ViolationOverlap ViolationKind = iota
	ViolationMissingBreak
	ViolationExceedsDailyLimit
	ViolationMissingWorkday
)

// String returns the string representation of the violation kind
func (k ViolationKind) String() string {
	switch k {
	case ViolationOverlap:
		return "overlap"
	case ViolationMissingBreak:
		return "missing_break"
	case ViolationExceedsDailyLimit:
		return "exceeds_daily_limit"
	case ViolationMissingWorkday:
		return "missing_workday"
	default:
		return "unknown"
	}
}

// Violation is one detected anomaly on a single day.
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Day      time.Time     `json:"day"`
	Detail   string        `json:"detail"`
	EntryIDs []int64       `json:"entry_ids,omitempty"`
}

// ReportConfig carries the thresholds used by BuildReport. Zero values
// fall back to the package defaults.
type ReportConfig struct {
	DailyLimit     time.Duration
	BreakThreshold time.Duration
	MinBreak       time.Duration
}

func (c ReportConfig) withDefaults() ReportConfig {
	if c.DailyLimit == 0 {
		c.DailyLimit = DefaultDailyLimit
	}
	if c.BreakThreshold == 0 {
		c.BreakThreshold = DefaultBreakThreshold
	}
	if c.MinBreak == 0 {
		c.MinBreak = DefaultMinBreak
	}
	return c
}

// ReportSummary aggregates a set of entries over a range. ByProject is
// keyed by project id, with key 0 collecting entries without a project.
// ByDay is keyed by calendar date in rangeDateLayout form. Running entries
// are excluded from every total and surfaced by id instead.
type ReportSummary struct {
	ByProject  map[int64]time.Duration  `json:"by_project"`
	ByDay      map[string]time.Duration `json:"by_day"`
	Total      time.Duration            `json:"total"`
	Running    []int64                  `json:"running,omitempty"`
	Violations []Violation              `json:"violations,omitempty"`
}

// BuildReport groups the entries by day and project, sums durations and
// flags violations. Entries are assumed to be pre-filtered to the range;
// the range supplies the reference timezone. Missing workdays are not
// considered here - compose MissingWorkdays and MergeViolations for that.
func BuildReport(r TimeRange, entries []domain.TimeEntry, cfg ReportConfig) ReportSummary {
	cfg = cfg.withDefaults()
	loc := r.Start.Location()

	summary := ReportSummary{
		ByProject: make(map[int64]time.Duration),
		ByDay:     make(map[string]time.Duration),
	}

	perDay := make(map[string][]domain.TimeEntry)
	var running []domain.TimeEntry
	for _, entry := range entries {
		if entry.IsRunning() {
			running = append(running, entry)
			continue
		}

		span := entry.Stop.Sub(entry.Start)
		day := entry.Date(loc).Format(rangeDateLayout)

		summary.ByDay[day] += span
		summary.Total += span
		if entry.ProjectID != nil {
			summary.ByProject[*entry.ProjectID] += span
		} else {
			summary.ByProject[0] += span
		}

		perDay[day] = append(perDay[day], entry)
	}

	// Running entries must not vanish silently; surface them by id,
	// ordered by start instant.
	sort.Slice(running, func(i, j int) bool {
		if running[i].Start.Equal(running[j].Start) {
			return running[i].ID < running[j].ID
		}
		return running[i].Start.Before(running[j].Start)
	})
	for _, entry := range running {
		summary.Running = append(summary.Running, entry.ID)
	}

	for day, dayEntries := range perDay {
		summary.Violations = append(summary.Violations, checkDay(day, dayEntries, cfg, loc)...)
	}
	SortViolations(summary.Violations)

	return summary
}

// checkDay runs the per-day violation checks over completed entries.
func checkDay(day string, entries []domain.TimeEntry, cfg ReportConfig, loc *time.Location) []Violation {
	date, _ := time.ParseInLocation(rangeDateLayout, day, loc)

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Start.Equal(entries[j].Start) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Start.Before(entries[j].Start)
	})

	var violations []Violation

	var total time.Duration
	for _, entry := range entries {
		total += entry.Stop.Sub(entry.Start)
	}

	// Gaps are measured against the latest stop seen so far, not the
	// previous entry's stop: an entry nested inside a longer one must
	// not make the day look like it had a break.
	longestGap := time.Duration(0)
	coveredUntil := *entries[0].Stop
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]

		if gap := cur.Start.Sub(coveredUntil); gap > longestGap {
			longestGap = gap
		}
		if cur.Stop.After(coveredUntil) {
			coveredUntil = *cur.Stop
		}

		// Identical spans are duplicate logging and reported too, even
		// when the shared span is empty.
		overlaps := cur.Start.Before(*prev.Stop) ||
			(cur.Start.Equal(prev.Start) && cur.Stop.Equal(*prev.Stop))
		if overlaps {
			violations = append(violations, Violation{
				Kind: ViolationOverlap,
				Day:  date,
				Detail: fmt.Sprintf("entry %d (%s-%s) overlaps entry %d (%s-%s)",
					prev.ID, prev.Start.In(loc).Format("15:04"), prev.Stop.In(loc).Format("15:04"),
					cur.ID, cur.Start.In(loc).Format("15:04"), cur.Stop.In(loc).Format("15:04")),
				EntryIDs: []int64{prev.ID, cur.ID},
			})
		}
	}

	if total > cfg.BreakThreshold && longestGap < cfg.MinBreak {
		violations = append(violations, Violation{
			Kind: ViolationMissingBreak,
			Day:  date,
			Detail: fmt.Sprintf("worked %s without a break of at least %s",
				FormatDuration(total), FormatDuration(cfg.MinBreak)),
		})
	}

	if total > cfg.DailyLimit {
		violations = append(violations, Violation{
			Kind: ViolationExceedsDailyLimit,
			Day:  date,
			Detail: fmt.Sprintf("logged %s, above the daily limit of %s",
				FormatDuration(total), FormatDuration(cfg.DailyLimit)),
		})
	}

	return violations
}

// MissingWorkdayViolations converts missing workday dates into violations
// so a report command can merge the two independent checks.
func MissingWorkdayViolations(days []time.Time) []Violation {
	violations := make([]Violation, 0, len(days))
	for _, day := range days {
		violations = append(violations, Violation{
			Kind:   ViolationMissingWorkday,
			Day:    day,
			Detail: fmt.Sprintf("no time logged on %s", day.Format(rangeDateLayout)),
		})
	}
	return violations
}

// MergeViolations combines violation lists from independent checks into
// the stable output order.
func MergeViolations(lists ...[]Violation) []Violation {
	var merged []Violation
	for _, list := range lists {
		merged = append(merged, list...)
	}
	SortViolations(merged)
	return merged
}

// SortViolations sorts in place: day ascending, then kind in declaration
// order, then first related entry id.
func SortViolations(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if !a.Day.Equal(b.Day) {
			return a.Day.Before(b.Day)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return firstID(a) < firstID(b)
	})
}

func firstID(v Violation) int64 {
	if len(v.EntryIDs) == 0 {
		return 0
	}
	return v.EntryIDs[0]
}
