package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"toggl-cli/internal/domain"
	"toggl-cli/internal/errors"
	"toggl-cli/internal/repository/sqlite/migrations"
	"toggl-cli/internal/tracking"

	_ "modernc.org/sqlite"
)

// Cache is a local read cache of Toggl data. Commands that only need to
// look things up (project names, recent entries) hit the cache instead
// of the API, and `list --offline` works with no network at all.
type Cache struct {
	db *sql.DB
}

// New opens (or creates) the cache database and applies migrations.
func New(dbPath string) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open cache", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection
func (c *Cache) Close() error {
	return c.db.Close()
}

// ReplaceWorkspaces swaps the cached workspace list for a fresh one.
func (c *Cache) ReplaceWorkspaces(ctx context.Context, workspaces []domain.Workspace) error {
	rows := make([][]interface{}, 0, len(workspaces))
	for _, w := range workspaces {
		rows = append(rows, []interface{}{w.ID, w.Name})
	}
	return replaceAll(ctx, c.db, "workspaces",
		"INSERT INTO workspaces (id, name) VALUES (?, ?)", rows)
}

// ReplaceProjects swaps the cached project list for a fresh one.
func (c *Cache) ReplaceProjects(ctx context.Context, projects []domain.Project) error {
	rows := make([][]interface{}, 0, len(projects))
	for _, p := range projects {
		var clientID interface{}
		if p.ClientID != nil {
			clientID = *p.ClientID
		}
		rows = append(rows, []interface{}{p.ID, p.WorkspaceID, p.Name, p.Active, clientID, p.Color})
	}
	return replaceAll(ctx, c.db, "projects",
		"INSERT INTO projects (id, workspace_id, name, active, client_id, color) VALUES (?, ?, ?, ?, ?, ?)", rows)
}

// ReplaceClients swaps the cached client list for a fresh one.
func (c *Cache) ReplaceClients(ctx context.Context, clients []domain.Client) error {
	rows := make([][]interface{}, 0, len(clients))
	for _, cl := range clients {
		rows = append(rows, []interface{}{cl.ID, cl.WorkspaceID, cl.Name, cl.Archived})
	}
	return replaceAll(ctx, c.db, "clients",
		"INSERT INTO clients (id, workspace_id, name, archived) VALUES (?, ?, ?, ?)", rows)
}

// UpsertTimeEntries inserts or refreshes cached entries by id. Unlike the
// reference tables, entries accumulate: fetching last week must not evict
// this week.
func (c *Cache) UpsertTimeEntries(ctx context.Context, entries []domain.TimeEntry) error {
	query := `
	INSERT INTO time_entries (id, description, project_id, workspace_id, start_time, stop_time, duration_seconds, billable, tags)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		description = excluded.description,
		project_id = excluded.project_id,
		workspace_id = excluded.workspace_id,
		start_time = excluded.start_time,
		stop_time = excluded.stop_time,
		duration_seconds = excluded.duration_seconds,
		billable = excluded.billable,
		tags = excluded.tags`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	for _, entry := range entries {
		var projectID interface{}
		if entry.ProjectID != nil {
			projectID = *entry.ProjectID
		}
		_, err := tx.ExecContext(ctx, query,
			entry.ID,
			entry.Description,
			projectID,
			entry.WorkspaceID,
			FormatTimeForDB(entry.Start),
			FormatTimePtrForDB(entry.Stop),
			durationToSeconds(entry.Duration),
			entry.Billable,
			FormatTagsForDB(entry.Tags),
		)
		if err != nil {
			tx.Rollback()
			return HandleDatabaseError("upsert time entry", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit time entries", err)
	}
	return nil
}

// DeleteTimeEntry removes a cached entry after it was deleted remotely.
// A missing row is fine; the cache may simply never have seen it.
func (c *Cache) DeleteTimeEntry(ctx context.Context, id int64) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM time_entries WHERE id = ?", id); err != nil {
		return HandleDatabaseError("delete time entry", err)
	}
	return nil
}

// TimeEntriesInRange returns cached entries starting in [from, to),
// ordered by start time.
func (c *Cache) TimeEntriesInRange(ctx context.Context, r tracking.TimeRange) ([]*domain.TimeEntry, error) {
	query := `
	SELECT id, description, project_id, workspace_id, start_time, stop_time, duration_seconds, billable, tags
	FROM time_entries
	WHERE start_time >= ? AND start_time < ?
	ORDER BY start_time ASC, id ASC`

	return QueryMultiple(ctx, c.db, query, ScanTimeEntries, "time entries",
		FormatTimeForDB(r.Start), FormatTimeForDB(r.End))
}

// ListProjects returns all cached projects ordered by name.
func (c *Cache) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	query := `
	SELECT id, workspace_id, name, active, client_id, color
	FROM projects
	ORDER BY name ASC`

	return QueryMultiple(ctx, c.db, query, ScanProjects, "projects")
}

// ProjectByID looks up a cached project.
func (c *Cache) ProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	query := `
	SELECT id, workspace_id, name, active, client_id, color
	FROM projects
	WHERE id = ?`

	return QuerySingle(ctx, c.db, query, ScanProject, "project", fmt.Sprintf("%d", id), id)
}

// ProjectByName looks up a cached project by exact name.
func (c *Cache) ProjectByName(ctx context.Context, name string) (*domain.Project, error) {
	query := `
	SELECT id, workspace_id, name, active, client_id, color
	FROM projects
	WHERE name = ?`

	return QuerySingle(ctx, c.db, query, ScanProject, "project", name, name)
}

// ListClients returns all cached clients ordered by name.
func (c *Cache) ListClients(ctx context.Context) ([]*domain.Client, error) {
	query := `
	SELECT id, workspace_id, name, archived
	FROM clients
	ORDER BY name ASC`

	return QueryMultiple(ctx, c.db, query, ScanClients, "clients")
}

// ListWorkspaces returns all cached workspaces ordered by name.
func (c *Cache) ListWorkspaces(ctx context.Context) ([]*domain.Workspace, error) {
	query := `
	SELECT id, name
	FROM workspaces
	ORDER BY name ASC`

	return QueryMultiple(ctx, c.db, query, ScanWorkspaces, "workspaces")
}
