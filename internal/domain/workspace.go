package domain

// Workspace represents a Toggl workspace.
type Workspace struct {
	ID   int64
	Name string
}

// Project represents a Toggl project in the domain model.
type Project struct {
	ID          int64
	WorkspaceID int64
	Name        string
	Active      bool
	ClientID    *int64
	Color       string
}

// Client represents a Toggl client (customer) in the domain model.
type Client struct {
	ID          int64
	WorkspaceID int64
	Name        string
	Archived    bool
}

// Me holds the account data attached to the configured API token.
type Me struct {
	ID                 int64
	Fullname           string
	Email              string
	DefaultWorkspaceID int64
	Timezone           string
}
