package domain

import (
	"time"
)

// TimeEntry represents a time tracking entry in the domain model.
// An ID of zero marks a draft that has not been pushed to the remote
// service yet. A nil Stop means the entry is still running; the Toggl
// wire format additionally marks running entries with a negative
// duration, but within the domain the absence of Stop is authoritative.
type TimeEntry struct {
	ID          int64
	Description string
	ProjectID   *int64
	WorkspaceID int64
	Start       time.Time
	Stop        *time.Time
	Duration    time.Duration
	Billable    bool
	Tags        []string
}

// IsRunning returns true if the time entry is currently running (no stop time).
func (te TimeEntry) IsRunning() bool {
	return te.Stop == nil
}

// IsDraft returns true if the entry has not been assigned a remote identifier.
func (te TimeEntry) IsDraft() bool {
	return te.ID == 0
}

// Stopped returns a copy of the entry stopped at the given instant.
func (te TimeEntry) Stopped(at time.Time) TimeEntry {
	te.Stop = &at
	te.Duration = at.Sub(te.Start)
	return te
}

// Elapsed returns the completed span of the entry, or the span up to the
// supplied instant when the entry is still running.
func (te TimeEntry) Elapsed(now time.Time) time.Duration {
	if te.Stop == nil {
		return now.Sub(te.Start)
	}
	return te.Stop.Sub(te.Start)
}

// Date returns the calendar date the entry started on, at midnight in the
// given location.
func (te TimeEntry) Date(loc *time.Location) time.Time {
	local := te.Start.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.Start.IsZero() {
		return false
	}
	if te.Stop != nil && te.Stop.Before(te.Start) {
		return false
	}
	return true
}
