package api

import (
	"context"
	"fmt"
	"time"

	"toggl-cli/internal/domain"
	"toggl-cli/internal/errors"
	"toggl-cli/internal/tracking"
)

// Me fetches the authenticated user's profile.
func (a *businessAPI) Me(ctx context.Context) (*domain.Me, error) {
	return a.client.GetMe(ctx)
}

// Start begins a new running timer. Toggl stops any timer that is already
// running, so there is no stop-first step here.
func (a *businessAPI) Start(ctx context.Context, opts StartOptions) (*domain.TimeEntry, error) {
	workspaceID, err := a.workspaceID(ctx)
	if err != nil {
		return nil, err
	}

	projectID, err := a.resolveProjectID(ctx, opts.Project, false)
	if err != nil {
		return nil, err
	}

	entry, err := a.client.StartTimeEntry(ctx, domain.TimeEntry{
		Description: opts.Description,
		ProjectID:   projectID,
		WorkspaceID: workspaceID,
		Start:       a.now(),
		Billable:    opts.Billable,
		Tags:        opts.Tags,
	})
	if err != nil {
		return nil, err
	}

	a.cacheEntries(ctx, *entry)
	return entry, nil
}

// StopCurrent stops the running timer and returns the completed entry.
func (a *businessAPI) StopCurrent(ctx context.Context) (*domain.TimeEntry, error) {
	current, err := a.client.GetCurrentTimeEntry(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errors.NewNotFoundError("running time entry", "current")
	}

	stopped, err := a.client.StopTimeEntry(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	a.cacheEntries(ctx, *stopped)
	return stopped, nil
}

// Current returns the running timer, or nil when nothing runs.
func (a *businessAPI) Current(ctx context.Context) (*domain.TimeEntry, error) {
	return a.client.GetCurrentTimeEntry(ctx)
}

// Continue restarts the most recently stopped entry of today as a fresh
// running timer.
func (a *businessAPI) Continue(ctx context.Context) (*domain.TimeEntry, error) {
	today, err := tracking.ResolveRange("today", a.now().In(a.loc))
	if err != nil {
		return nil, err
	}

	entries, err := a.client.ListTimeEntries(ctx, today.Start, today.End)
	if err != nil {
		return nil, err
	}

	var latest *domain.TimeEntry
	for i := range entries {
		entry := &entries[i]
		if entry.IsRunning() {
			continue
		}
		if latest == nil || entry.Start.After(latest.Start) {
			latest = entry
		}
	}
	if latest == nil {
		return nil, errors.NewNotFoundError("stopped time entry", "today")
	}

	started, err := a.client.StartTimeEntry(ctx, domain.TimeEntry{
		Description: latest.Description,
		ProjectID:   latest.ProjectID,
		WorkspaceID: latest.WorkspaceID,
		Start:       a.now(),
		Billable:    latest.Billable,
		Tags:        latest.Tags,
	})
	if err != nil {
		return nil, err
	}

	a.cacheEntries(ctx, *started)
	return started, nil
}

// Log records one or two completed entries, splitting around a lunch
// break when requested.
func (a *businessAPI) Log(ctx context.Context, opts LogOptions) ([]*domain.TimeEntry, error) {
	workspaceID, err := a.workspaceID(ctx)
	if err != nil {
		return nil, err
	}

	projectID, err := a.resolveProjectID(ctx, opts.Project, false)
	if err != nil {
		return nil, err
	}

	drafts, err := tracking.Synthesize(tracking.EntrySpec{
		Description: opts.Description,
		ProjectID:   projectID,
		WorkspaceID: workspaceID,
		Start:       opts.Start,
		End:         opts.End,
		Duration:    opts.Duration,
		Billable:    opts.Billable,
		Tags:        opts.Tags,
		LunchBreak:  opts.LunchBreak,
		Break:       a.config.Report.LunchBreak,
	})
	if err != nil {
		return nil, err
	}

	created := make([]*domain.TimeEntry, 0, len(drafts))
	for _, draft := range drafts {
		entry, err := a.client.CreateTimeEntry(ctx, draft)
		if err != nil {
			return nil, err
		}
		created = append(created, entry)
	}

	for _, entry := range created {
		a.cacheEntries(ctx, *entry)
	}
	return created, nil
}

// Edit applies a partial update to an existing entry.
func (a *businessAPI) Edit(ctx context.Context, opts EditOptions) (*domain.TimeEntry, error) {
	entry, err := a.client.GetTimeEntry(ctx, opts.ID)
	if err != nil {
		return nil, err
	}

	if opts.Description != nil {
		entry.Description = *opts.Description
	}
	if opts.Project != nil {
		projectID, err := a.resolveProjectID(ctx, *opts.Project, false)
		if err != nil {
			return nil, err
		}
		entry.ProjectID = projectID
	}
	if opts.Start != nil {
		entry.Start = *opts.Start
	}
	if opts.Stop != nil {
		stop := *opts.Stop
		entry.Stop = &stop
	}
	if opts.Duration != nil {
		stop := entry.Start.Add(*opts.Duration)
		entry.Stop = &stop
	}
	if opts.Tags != nil {
		entry.Tags = *opts.Tags
	}
	if opts.ToggleBillable {
		entry.Billable = !entry.Billable
	}
	if entry.Stop != nil {
		if !entry.Stop.After(entry.Start) {
			return nil, errors.NewNonPositiveSpanError(
				fmt.Sprintf("stop %s is not after start %s", entry.Stop.Format(time.RFC3339), entry.Start.Format(time.RFC3339)))
		}
		entry.Duration = entry.Stop.Sub(entry.Start)
	}

	updated, err := a.client.UpdateTimeEntry(ctx, *entry)
	if err != nil {
		return nil, err
	}

	a.cacheEntries(ctx, *updated)
	return updated, nil
}

// Get fetches one entry by id and resolves its project name.
func (a *businessAPI) Get(ctx context.Context, id int64) (*EntryView, error) {
	entry, err := a.client.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	a.cacheEntries(ctx, *entry)

	view := &EntryView{TimeEntry: *entry}
	if entry.ProjectID != nil {
		names, err := a.projectNames(ctx, false)
		if err != nil {
			return nil, err
		}
		view.ProjectName = names[*entry.ProjectID]
	}
	return view, nil
}

// Delete removes an entry remotely and from the cache.
func (a *businessAPI) Delete(ctx context.Context, id int64) error {
	if err := a.client.DeleteTimeEntry(ctx, id); err != nil {
		return err
	}
	return a.cache.DeleteTimeEntry(ctx, id)
}

// List returns the entries of a range with their project names resolved.
func (a *businessAPI) List(ctx context.Context, rangeToken string, offline bool) (*Listing, error) {
	r, entries, err := a.entriesInRange(ctx, rangeToken, offline)
	if err != nil {
		return nil, err
	}

	names, err := a.projectNames(ctx, offline)
	if err != nil {
		return nil, err
	}

	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		view := EntryView{TimeEntry: entry}
		if entry.ProjectID != nil {
			view.ProjectName = names[*entry.ProjectID]
		}
		views = append(views, view)
	}

	return &Listing{Range: r, Entries: views}, nil
}

// MissingDays returns the weekdays of a range with no entry at all.
func (a *businessAPI) MissingDays(ctx context.Context, rangeToken string, offline bool) ([]time.Time, error) {
	r, entries, err := a.entriesInRange(ctx, rangeToken, offline)
	if err != nil {
		return nil, err
	}
	return tracking.MissingWorkdays(r, entries), nil
}

// Report aggregates a range into per-project and per-day totals and
// flags workday violations, missing workdays included.
func (a *businessAPI) Report(ctx context.Context, rangeToken string, offline bool) (*ReportView, error) {
	r, entries, err := a.entriesInRange(ctx, rangeToken, offline)
	if err != nil {
		return nil, err
	}

	summary := tracking.BuildReport(r, entries, tracking.ReportConfig{
		DailyLimit:     a.config.Report.DailyLimit,
		BreakThreshold: a.config.Report.BreakThreshold,
		MinBreak:       a.config.Report.MinBreak,
	})

	missing := tracking.MissingWorkdayViolations(tracking.MissingWorkdays(r, entries))
	summary.Violations = tracking.MergeViolations(summary.Violations, missing)

	names, err := a.projectNames(ctx, offline)
	if err != nil {
		return nil, err
	}

	return &ReportView{Range: r, Summary: &summary, ProjectNames: names}, nil
}

// Projects lists projects, refreshing the cache when online.
func (a *businessAPI) Projects(ctx context.Context, offline bool) ([]*domain.Project, error) {
	if offline {
		return a.cache.ListProjects(ctx)
	}
	if err := a.refreshProjects(ctx); err != nil {
		return nil, err
	}
	return a.cache.ListProjects(ctx)
}

// Clients lists clients, refreshing the cache when online.
func (a *businessAPI) Clients(ctx context.Context, offline bool) ([]*domain.Client, error) {
	if offline {
		return a.cache.ListClients(ctx)
	}
	clients, err := a.client.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.cache.ReplaceClients(ctx, clients); err != nil {
		return nil, err
	}
	return a.cache.ListClients(ctx)
}

// Workspaces lists workspaces, refreshing the cache when online.
func (a *businessAPI) Workspaces(ctx context.Context, offline bool) ([]*domain.Workspace, error) {
	if offline {
		return a.cache.ListWorkspaces(ctx)
	}
	workspaces, err := a.client.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.cache.ReplaceWorkspaces(ctx, workspaces); err != nil {
		return nil, err
	}
	return a.cache.ListWorkspaces(ctx)
}

// CreateClient creates a client and refreshes the cached client list.
func (a *businessAPI) CreateClient(ctx context.Context, name string) (*domain.Client, error) {
	created, err := a.client.CreateClient(ctx, name)
	if err != nil {
		return nil, err
	}

	clients, err := a.client.ListClients(ctx)
	if err == nil {
		// Refresh is best effort; the create already succeeded.
		_ = a.cache.ReplaceClients(ctx, clients)
	}
	return created, nil
}

// workspaceID returns the configured workspace, falling back to the
// account's default workspace on first use.
func (a *businessAPI) workspaceID(ctx context.Context) (int64, error) {
	if a.config.Toggl.WorkspaceID != 0 {
		return a.config.Toggl.WorkspaceID, nil
	}

	me, err := a.client.GetMe(ctx)
	if err != nil {
		return 0, err
	}
	if me.DefaultWorkspaceID == 0 {
		return 0, errors.NewConfigError("toggl.workspace_id", "no workspace configured and account has no default workspace")
	}

	a.config.Toggl.WorkspaceID = me.DefaultWorkspaceID
	return me.DefaultWorkspaceID, nil
}

// resolveProjectID maps a project name to its id via the cache, falling
// back to a remote refresh on a miss. An empty name means no project.
func (a *businessAPI) resolveProjectID(ctx context.Context, name string, offline bool) (*int64, error) {
	if name == "" {
		return nil, nil
	}

	project, err := a.cache.ProjectByName(ctx, name)
	if err == nil {
		return &project.ID, nil
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) || offline {
		return nil, err
	}

	if err := a.refreshProjects(ctx); err != nil {
		return nil, err
	}

	project, err = a.cache.ProjectByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return &project.ID, nil
}

func (a *businessAPI) refreshProjects(ctx context.Context) error {
	projects, err := a.client.ListProjects(ctx)
	if err != nil {
		return err
	}
	return a.cache.ReplaceProjects(ctx, projects)
}

// entriesInRange resolves a range token and fetches its entries, from the
// cache when offline and from the API (with a cache write-back) otherwise.
func (a *businessAPI) entriesInRange(ctx context.Context, rangeToken string, offline bool) (tracking.TimeRange, []domain.TimeEntry, error) {
	r, err := tracking.ResolveRange(rangeToken, a.now().In(a.loc))
	if err != nil {
		return tracking.TimeRange{}, nil, err
	}

	if offline {
		cached, err := a.cache.TimeEntriesInRange(ctx, r)
		if err != nil {
			return tracking.TimeRange{}, nil, err
		}
		entries := make([]domain.TimeEntry, 0, len(cached))
		for _, entry := range cached {
			entries = append(entries, *entry)
		}
		return r, entries, nil
	}

	entries, err := a.client.ListTimeEntries(ctx, r.Start, r.End)
	if err != nil {
		return tracking.TimeRange{}, nil, err
	}

	// The API filter is inclusive on both ends; keep the range half-open.
	inRange := entries[:0]
	for _, entry := range entries {
		if r.Contains(entry.Start) {
			inRange = append(inRange, entry)
		}
	}

	if err := a.cache.UpsertTimeEntries(ctx, inRange); err != nil {
		return tracking.TimeRange{}, nil, err
	}
	return r, inRange, nil
}

// projectNames returns an id to name index for display, refreshing an
// empty cache when online.
func (a *businessAPI) projectNames(ctx context.Context, offline bool) (map[int64]string, error) {
	projects, err := a.cache.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 && !offline {
		if err := a.refreshProjects(ctx); err != nil {
			return nil, err
		}
		projects, err = a.cache.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
	}

	names := make(map[int64]string, len(projects))
	for _, project := range projects {
		names[project.ID] = project.Name
	}
	return names, nil
}

// cacheEntries writes entries to the cache, best effort. A cache failure
// must not fail the remote operation that already happened.
func (a *businessAPI) cacheEntries(ctx context.Context, entries ...domain.TimeEntry) {
	_ = a.cache.UpsertTimeEntries(ctx, entries)
}
