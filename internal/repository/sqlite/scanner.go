package sqlite

import (
	"database/sql"

	"toggl-cli/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimeEntry scans a single cached time entry from a database row
func ScanTimeEntry(scanner Scanner) (*domain.TimeEntry, error) {
	entry := &domain.TimeEntry{}
	var (
		projectID       sql.NullInt64
		startRaw        string
		stopRaw         sql.NullString
		durationSeconds int64
		tagsRaw         string
	)

	err := scanner.Scan(
		&entry.ID,
		&entry.Description,
		&projectID,
		&entry.WorkspaceID,
		&startRaw,
		&stopRaw,
		&durationSeconds,
		&entry.Billable,
		&tagsRaw,
	)
	if err != nil {
		return nil, err
	}

	if projectID.Valid {
		p := projectID.Int64
		entry.ProjectID = &p
	}

	start, err := ParseTimeFromDB(startRaw)
	if err != nil {
		return nil, err
	}
	entry.Start = start

	if stopRaw.Valid {
		stop, err := ParseTimeFromDB(stopRaw.String)
		if err != nil {
			return nil, err
		}
		entry.Stop = &stop
	}

	entry.Duration = secondsToDuration(durationSeconds)

	tags, err := ParseTagsFromDB(tagsRaw)
	if err != nil {
		return nil, err
	}
	entry.Tags = tags

	return entry, nil
}

// ScanTimeEntries scans multiple cached time entries from database rows
func ScanTimeEntries(rows Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanProject scans a single cached project from a database row
func ScanProject(scanner Scanner) (*domain.Project, error) {
	project := &domain.Project{}
	var clientID sql.NullInt64

	err := scanner.Scan(&project.ID, &project.WorkspaceID, &project.Name, &project.Active, &clientID, &project.Color)
	if err != nil {
		return nil, err
	}

	if clientID.Valid {
		c := clientID.Int64
		project.ClientID = &c
	}
	return project, nil
}

// ScanProjects scans multiple cached projects from database rows
func ScanProjects(rows Rows) ([]*domain.Project, error) {
	var projects []*domain.Project
	for rows.Next() {
		project, err := ScanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

// ScanClient scans a single cached client from a database row
func ScanClient(scanner Scanner) (*domain.Client, error) {
	client := &domain.Client{}
	err := scanner.Scan(&client.ID, &client.WorkspaceID, &client.Name, &client.Archived)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ScanClients scans multiple cached clients from database rows
func ScanClients(rows Rows) ([]*domain.Client, error) {
	var clients []*domain.Client
	for rows.Next() {
		client, err := ScanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

// ScanWorkspace scans a single cached workspace from a database row
func ScanWorkspace(scanner Scanner) (*domain.Workspace, error) {
	workspace := &domain.Workspace{}
	err := scanner.Scan(&workspace.ID, &workspace.Name)
	if err != nil {
		return nil, err
	}
	return workspace, nil
}

// ScanWorkspaces scans multiple cached workspaces from database rows
func ScanWorkspaces(rows Rows) ([]*domain.Workspace, error) {
	var workspaces []*domain.Workspace
	for rows.Next() {
		workspace, err := ScanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, workspace)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workspaces, nil
}
