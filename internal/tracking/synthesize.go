package tracking

import (
	"time"

	"toggl-cli/internal/domain"
	"toggl-cli/internal/errors"
)

// DefaultLunchBreak is the break length carved out of a gross span when a
// lunch split is requested and no explicit break is given.
const DefaultLunchBreak = time.Hour

// EntrySpec describes the entry (or entry pair) to synthesize. Exactly one
// of End and Duration must be derivable; when both are supplied they must
// agree exactly.
type EntrySpec struct {
	Description string
	ProjectID   *int64
	WorkspaceID int64
	Start       time.Time
	End         *time.Time
	Duration    *time.Duration
	Billable    bool
	Tags        []string
	LunchBreak  bool
	Break       time.Duration // 0 means DefaultLunchBreak
}

// Synthesize builds one or two time entry drafts from the spec. Without a
// lunch break the result is a single draft covering [Start, Start+span).
// With a lunch break the gross span is split into two drafts of equal
// length around its midpoint, with the break itself excluded from both:
// the first ends at midpoint-break/2, the second starts at
// midpoint+break/2, and their combined duration is the gross span minus
// the break. Same spec, same drafts - the function is pure.
func Synthesize(spec EntrySpec) ([]domain.TimeEntry, error) {
	span, err := resolveSpan(spec)
	if err != nil {
		return nil, err
	}

	if !spec.LunchBreak {
		return []domain.TimeEntry{draft(spec, spec.Start, spec.Start.Add(span))}, nil
	}

	breakLen := spec.Break
	if breakLen == 0 {
		breakLen = DefaultLunchBreak
	}
	if span <= breakLen {
		return nil, errors.NewNonPositiveSpanError("span minus lunch break must be positive")
	}

	mid := spec.Start.Add(span / 2)
	first := draft(spec, spec.Start, mid.Add(-breakLen/2))
	second := draft(spec, mid.Add(breakLen/2), spec.Start.Add(span))

	return []domain.TimeEntry{first, second}, nil
}

// resolveSpan derives the gross span from End and/or Duration.
func resolveSpan(spec EntrySpec) (time.Duration, error) {
	switch {
	case spec.End == nil && spec.Duration == nil:
		return 0, errors.NewInconsistentSpanError("either an end time or a duration is required")

	case spec.End != nil:
		span := spec.End.Sub(spec.Start)
		if spec.Duration != nil && *spec.Duration != span {
			return 0, errors.NewInconsistentSpanError("end time and duration disagree")
		}
		if span <= 0 {
			return 0, errors.NewNonPositiveSpanError("end must be after start")
		}
		return span, nil

	default:
		if *spec.Duration <= 0 {
			return 0, errors.NewNonPositiveSpanError("duration must be positive")
		}
		return *spec.Duration, nil
	}
}

// draft builds a single completed entry covering [start, stop).
func draft(spec EntrySpec, start, stop time.Time) domain.TimeEntry {
	return domain.TimeEntry{
		Description: spec.Description,
		ProjectID:   spec.ProjectID,
		WorkspaceID: spec.WorkspaceID,
		Start:       start,
		Stop:        &stop,
		Duration:    stop.Sub(start),
		Billable:    spec.Billable,
		Tags:        spec.Tags,
	}
}
