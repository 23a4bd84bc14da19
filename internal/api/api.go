package api

import (
	"context"
	"time"

	"toggl-cli/internal/config"
	"toggl-cli/internal/domain"
	"toggl-cli/internal/repository/sqlite"
	"toggl-cli/internal/tracking"
)

// TogglClient is the slice of the remote API the business layer needs.
// It is satisfied by *toggl.Client and by test fakes.
type TogglClient interface {
	GetMe(ctx context.Context) (*domain.Me, error)
	ListWorkspaces(ctx context.Context) ([]domain.Workspace, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, name string) (*domain.Client, error)
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error)
	GetTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)
	GetCurrentTimeEntry(ctx context.Context) (*domain.TimeEntry, error)
	CreateTimeEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error)
	StartTimeEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error)
	StopTimeEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, id int64) error
}

// StartOptions describes a timer to start.
type StartOptions struct {
	Description string
	Project     string // project name, resolved against the cache
	Billable    bool
	Tags        []string
}

// LogOptions describes one or more completed entries to record.
type LogOptions struct {
	Description string
	Project     string
	Start       time.Time
	End         *time.Time
	Duration    *time.Duration
	LunchBreak  bool
	Billable    bool
	Tags        []string
}

// EditOptions describes a partial update of an existing entry. Nil fields
// keep their current value.
type EditOptions struct {
	ID          int64
	Description *string
	Project     *string
	Start       *time.Time
	Stop        *time.Time
	Duration    *time.Duration
	Tags        *[]string

	// ToggleBillable flips the entry's billable flag.
	ToggleBillable bool
}

// EntryView pairs an entry with the resolved project name for display.
type EntryView struct {
	domain.TimeEntry
	ProjectName string
}

// Listing is the result of a range query over time entries.
type Listing struct {
	Range   tracking.TimeRange
	Entries []EntryView
}

// ReportView is the result of a report over a range: the aggregated
// summary plus the project names needed to render it.
type ReportView struct {
	Range        tracking.TimeRange
	Summary      *tracking.ReportSummary
	ProjectNames map[int64]string
}

// API defines the business operations behind the CLI commands.
type API interface {
	// Account operations
	Me(ctx context.Context) (*domain.Me, error)

	// Timer operations
	Start(ctx context.Context, opts StartOptions) (*domain.TimeEntry, error)
	StopCurrent(ctx context.Context) (*domain.TimeEntry, error)
	Current(ctx context.Context) (*domain.TimeEntry, error)
	Continue(ctx context.Context) (*domain.TimeEntry, error)

	// Entry operations
	Log(ctx context.Context, opts LogOptions) ([]*domain.TimeEntry, error)
	Edit(ctx context.Context, opts EditOptions) (*domain.TimeEntry, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*EntryView, error)
	List(ctx context.Context, rangeToken string, offline bool) (*Listing, error)

	// Analysis operations
	MissingDays(ctx context.Context, rangeToken string, offline bool) ([]time.Time, error)
	Report(ctx context.Context, rangeToken string, offline bool) (*ReportView, error)

	// Reference data operations
	Projects(ctx context.Context, offline bool) ([]*domain.Project, error)
	Clients(ctx context.Context, offline bool) ([]*domain.Client, error)
	Workspaces(ctx context.Context, offline bool) ([]*domain.Workspace, error)
	CreateClient(ctx context.Context, name string) (*domain.Client, error)
}

type businessAPI struct {
	client TogglClient
	cache  *sqlite.Cache
	config *config.Config
	now    func() time.Time
	loc    *time.Location
}

// New creates a new API instance. The clock and location are injected so
// range resolution stays deterministic under test.
func New(client TogglClient, cache *sqlite.Cache, cfg *config.Config, now func() time.Time, loc *time.Location) API {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &businessAPI{
		client: client,
		cache:  cache,
		config: cfg,
		now:    now,
		loc:    loc,
	}
}
