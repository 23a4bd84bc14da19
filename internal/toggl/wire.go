package toggl

import (
	"time"

	"toggl-cli/internal/domain"
)

// rawTimeEntry mirrors the JSON from Toggl v9. Durations come back in
// seconds, with -1 marking a running entry.
type rawTimeEntry struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	ProjectID   *int64     `json:"project_id"`
	WorkspaceID int64      `json:"workspace_id"`
	Tags        []string   `json:"tags"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"`
	Duration    int64      `json:"duration"`
	Billable    bool       `json:"billable"`
}

func (r rawTimeEntry) toDomain() domain.TimeEntry {
	var stopPtr *time.Time
	if r.Stop != nil {
		stop := *r.Stop
		stopPtr = &stop
	}
	var projectPtr *int64
	if r.ProjectID != nil {
		p := *r.ProjectID
		projectPtr = &p
	}

	var duration time.Duration
	if r.Duration >= 0 {
		duration = time.Duration(r.Duration) * time.Second
	}

	return domain.TimeEntry{
		ID:          r.ID,
		Description: r.Description,
		ProjectID:   projectPtr,
		WorkspaceID: r.WorkspaceID,
		Start:       r.Start,
		Stop:        stopPtr,
		Duration:    duration,
		Billable:    r.Billable,
		Tags:        r.Tags,
	}
}

// timeEntryRequest is the create/update payload for Toggl v9.
type timeEntryRequest struct {
	CreatedWith string     `json:"created_with"`
	Description string     `json:"description"`
	ProjectID   *int64     `json:"project_id,omitempty"`
	WorkspaceID int64      `json:"workspace_id"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop,omitempty"`
	Duration    int64      `json:"duration"`
	Billable    bool       `json:"billable"`
	Tags        []string   `json:"tags,omitempty"`
}

func newTimeEntryRequest(entry domain.TimeEntry, workspaceID int64) timeEntryRequest {
	if entry.WorkspaceID != 0 {
		workspaceID = entry.WorkspaceID
	}

	req := timeEntryRequest{
		CreatedWith: createdWith,
		Description: entry.Description,
		ProjectID:   entry.ProjectID,
		WorkspaceID: workspaceID,
		Start:       entry.Start,
		Billable:    entry.Billable,
		Tags:        entry.Tags,
	}
	if entry.Stop != nil {
		stop := *entry.Stop
		req.Stop = &stop
		req.Duration = int64(entry.Duration / time.Second)
	} else {
		req.Duration = -1
	}
	return req
}

type rawWorkspace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r rawWorkspace) toDomain() domain.Workspace {
	return domain.Workspace{ID: r.ID, Name: r.Name}
}

type rawProject struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"workspace_id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	Color       string `json:"color"`
	ClientID    *int64 `json:"client_id"`
}

func (r rawProject) toDomain() domain.Project {
	var clientID *int64
	if r.ClientID != nil {
		id := *r.ClientID
		clientID = &id
	}
	return domain.Project{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		Name:        r.Name,
		Active:      r.Active,
		Color:       r.Color,
		ClientID:    clientID,
	}
}

type rawClient struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"wid"`
	Name        string `json:"name"`
	Archived    bool   `json:"archived"`
}

func (r rawClient) toDomain() domain.Client {
	return domain.Client{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		Name:        r.Name,
		Archived:    r.Archived,
	}
}

type rawMe struct {
	ID                 int64  `json:"id"`
	Fullname           string `json:"fullname"`
	Email              string `json:"email"`
	DefaultWorkspaceID int64  `json:"default_workspace_id"`
	Timezone           string `json:"timezone"`
}

func (r rawMe) toDomain() domain.Me {
	return domain.Me{
		ID:                 r.ID,
		Fullname:           r.Fullname,
		Email:              r.Email,
		DefaultWorkspaceID: r.DefaultWorkspaceID,
		Timezone:           r.Timezone,
	}
}
