package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-cli/internal/domain"
	"toggl-cli/internal/errors"
	"toggl-cli/internal/tracking"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func int64Ptr(v int64) *int64 { return &v }

func completedEntry(id int64, start time.Time, d time.Duration) domain.TimeEntry {
	stop := start.Add(d)
	return domain.TimeEntry{
		ID:          id,
		Description: "cached work",
		WorkspaceID: 42,
		Start:       start,
		Stop:        &stop,
		Duration:    d,
	}
}

func TestReplaceProjects(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	first := []domain.Project{
		{ID: 1, WorkspaceID: 42, Name: "website", Active: true, ClientID: int64Ptr(3), Color: "#06aaf5"},
		{ID: 2, WorkspaceID: 42, Name: "backend", Active: true},
	}
	require.NoError(t, cache.ReplaceProjects(ctx, first))

	projects, err := cache.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "backend", projects[0].Name, "projects should be sorted by name")

	// A later sync with one project should fully replace the old list.
	require.NoError(t, cache.ReplaceProjects(ctx, first[:1]))
	projects, err = cache.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "website", projects[0].Name)
	require.NotNil(t, projects[0].ClientID)
	assert.Equal(t, int64(3), *projects[0].ClientID)
}

func TestProjectByName(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.ReplaceProjects(ctx, []domain.Project{
		{ID: 1, WorkspaceID: 42, Name: "website", Active: true},
	}))

	project, err := cache.ProjectByName(ctx, "website")
	require.NoError(t, err)
	assert.Equal(t, int64(1), project.ID)

	_, err = cache.ProjectByName(ctx, "no-such-project")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestUpsertTimeEntriesAccumulates(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	monday := time.Date(2021, 11, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, cache.UpsertTimeEntries(ctx, []domain.TimeEntry{
		completedEntry(1, monday, time.Hour),
	}))
	require.NoError(t, cache.UpsertTimeEntries(ctx, []domain.TimeEntry{
		completedEntry(2, monday.AddDate(0, 0, 1), 2*time.Hour),
	}))

	week := tracking.TimeRange{Start: monday.AddDate(0, 0, -1), End: monday.AddDate(0, 0, 6)}
	entries, err := cache.TimeEntriesInRange(ctx, week)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "syncing a second day should not evict the first")
}

func TestUpsertTimeEntriesRefreshesByID(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	monday := time.Date(2021, 11, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, cache.UpsertTimeEntries(ctx, []domain.TimeEntry{
		completedEntry(1, monday, time.Hour),
	}))

	updated := completedEntry(1, monday, 2*time.Hour)
	updated.Description = "edited work"
	updated.Tags = []string{"deep-work"}
	require.NoError(t, cache.UpsertTimeEntries(ctx, []domain.TimeEntry{updated}))

	day := tracking.TimeRange{Start: monday.AddDate(0, 0, -1), End: monday.AddDate(0, 0, 1)}
	entries, err := cache.TimeEntriesInRange(ctx, day)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "edited work", entries[0].Description)
	assert.Equal(t, 2*time.Hour, entries[0].Duration)
	assert.Equal(t, []string{"deep-work"}, entries[0].Tags)
}

func TestTimeEntriesInRangeIsHalfOpen(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	rangeStart := time.Date(2021, 11, 15, 0, 0, 0, 0, time.UTC)
	rangeEnd := rangeStart.AddDate(0, 0, 1)

	require.NoError(t, cache.UpsertTimeEntries(ctx, []domain.TimeEntry{
		completedEntry(1, rangeStart.Add(-time.Second), time.Hour), // before
		completedEntry(2, rangeStart, time.Hour),                   // on the start boundary
		completedEntry(3, rangeEnd.Add(-time.Second), time.Hour),   // just inside
		completedEntry(4, rangeEnd, time.Hour),                     // on the end boundary
	}))

	entries, err := cache.TimeEntriesInRange(ctx, tracking.TimeRange{Start: rangeStart, End: rangeEnd})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].ID)
	assert.Equal(t, int64(3), entries[1].ID)
}

func TestTimeEntriesInRangeNormalizesZones(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 09:00 Berlin is 08:00 UTC in November; storage must compare in UTC.
	start := time.Date(2021, 11, 15, 9, 0, 0, 0, berlin)
	require.NoError(t, cache.UpsertTimeEntries(ctx, []domain.TimeEntry{
		completedEntry(1, start, time.Hour),
	}))

	r := tracking.TimeRange{
		Start: time.Date(2021, 11, 15, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 11, 15, 9, 0, 0, 0, time.UTC),
	}
	entries, err := cache.TimeEntriesInRange(ctx, r)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Start.Equal(start))
}

func TestDeleteTimeEntry(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	monday := time.Date(2021, 11, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, cache.UpsertTimeEntries(ctx, []domain.TimeEntry{
		completedEntry(1, monday, time.Hour),
	}))

	require.NoError(t, cache.DeleteTimeEntry(ctx, 1))
	// Deleting an unknown id is not an error.
	require.NoError(t, cache.DeleteTimeEntry(ctx, 999))

	day := tracking.TimeRange{Start: monday.AddDate(0, 0, -1), End: monday.AddDate(0, 0, 1)}
	entries, err := cache.TimeEntriesInRange(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReplaceClientsAndWorkspaces(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.ReplaceClients(ctx, []domain.Client{
		{ID: 3, WorkspaceID: 42, Name: "Initech"},
	}))
	require.NoError(t, cache.ReplaceWorkspaces(ctx, []domain.Workspace{
		{ID: 42, Name: "Acme"},
	}))

	clients, err := cache.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Initech", clients[0].Name)

	workspaces, err := cache.ListWorkspaces(ctx)
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, "Acme", workspaces[0].Name)
}
