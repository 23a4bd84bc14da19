package cli

import (
	"context"
	"time"

	"toggl-cli/internal/api"
	"toggl-cli/internal/domain"
	"toggl-cli/internal/errors"
)

// mockAPI implements api.API for command handler tests. Unset function
// fields fail loudly so a test only exercises what it configured.
type mockAPI struct {
	startFn        func(ctx context.Context, opts api.StartOptions) (*domain.TimeEntry, error)
	stopCurrentFn  func(ctx context.Context) (*domain.TimeEntry, error)
	currentFn      func(ctx context.Context) (*domain.TimeEntry, error)
	continueFn     func(ctx context.Context) (*domain.TimeEntry, error)
	logFn          func(ctx context.Context, opts api.LogOptions) ([]*domain.TimeEntry, error)
	editFn         func(ctx context.Context, opts api.EditOptions) (*domain.TimeEntry, error)
	deleteFn       func(ctx context.Context, id int64) error
	getFn          func(ctx context.Context, id int64) (*api.EntryView, error)
	listFn         func(ctx context.Context, rangeToken string, offline bool) (*api.Listing, error)
	missingDaysFn  func(ctx context.Context, rangeToken string, offline bool) ([]time.Time, error)
	reportFn       func(ctx context.Context, rangeToken string, offline bool) (*api.ReportView, error)
	projectsFn     func(ctx context.Context, offline bool) ([]*domain.Project, error)
	clientsFn      func(ctx context.Context, offline bool) ([]*domain.Client, error)
	workspacesFn   func(ctx context.Context, offline bool) ([]*domain.Workspace, error)
	createClientFn func(ctx context.Context, name string) (*domain.Client, error)
	meFn           func(ctx context.Context) (*domain.Me, error)
}

var errNotConfigured = errors.NewAPIError(500, "mock not configured")

func (m *mockAPI) Me(ctx context.Context) (*domain.Me, error) {
	if m.meFn == nil {
		return nil, errNotConfigured
	}
	return m.meFn(ctx)
}

func (m *mockAPI) Start(ctx context.Context, opts api.StartOptions) (*domain.TimeEntry, error) {
	if m.startFn == nil {
		return nil, errNotConfigured
	}
	return m.startFn(ctx, opts)
}

func (m *mockAPI) StopCurrent(ctx context.Context) (*domain.TimeEntry, error) {
	if m.stopCurrentFn == nil {
		return nil, errNotConfigured
	}
	return m.stopCurrentFn(ctx)
}

func (m *mockAPI) Current(ctx context.Context) (*domain.TimeEntry, error) {
	if m.currentFn == nil {
		return nil, errNotConfigured
	}
	return m.currentFn(ctx)
}

func (m *mockAPI) Continue(ctx context.Context) (*domain.TimeEntry, error) {
	if m.continueFn == nil {
		return nil, errNotConfigured
	}
	return m.continueFn(ctx)
}

func (m *mockAPI) Log(ctx context.Context, opts api.LogOptions) ([]*domain.TimeEntry, error) {
	if m.logFn == nil {
		return nil, errNotConfigured
	}
	return m.logFn(ctx, opts)
}

func (m *mockAPI) Edit(ctx context.Context, opts api.EditOptions) (*domain.TimeEntry, error) {
	if m.editFn == nil {
		return nil, errNotConfigured
	}
	return m.editFn(ctx, opts)
}

func (m *mockAPI) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return errNotConfigured
	}
	return m.deleteFn(ctx, id)
}

func (m *mockAPI) Get(ctx context.Context, id int64) (*api.EntryView, error) {
	if m.getFn == nil {
		return nil, errNotConfigured
	}
	return m.getFn(ctx, id)
}

func (m *mockAPI) List(ctx context.Context, rangeToken string, offline bool) (*api.Listing, error) {
	if m.listFn == nil {
		return nil, errNotConfigured
	}
	return m.listFn(ctx, rangeToken, offline)
}

func (m *mockAPI) MissingDays(ctx context.Context, rangeToken string, offline bool) ([]time.Time, error) {
	if m.missingDaysFn == nil {
		return nil, errNotConfigured
	}
	return m.missingDaysFn(ctx, rangeToken, offline)
}

func (m *mockAPI) Report(ctx context.Context, rangeToken string, offline bool) (*api.ReportView, error) {
	if m.reportFn == nil {
		return nil, errNotConfigured
	}
	return m.reportFn(ctx, rangeToken, offline)
}

func (m *mockAPI) Projects(ctx context.Context, offline bool) ([]*domain.Project, error) {
	if m.projectsFn == nil {
		return nil, errNotConfigured
	}
	return m.projectsFn(ctx, offline)
}

func (m *mockAPI) Clients(ctx context.Context, offline bool) ([]*domain.Client, error) {
	if m.clientsFn == nil {
		return nil, errNotConfigured
	}
	return m.clientsFn(ctx, offline)
}

func (m *mockAPI) Workspaces(ctx context.Context, offline bool) ([]*domain.Workspace, error) {
	if m.workspacesFn == nil {
		return nil, errNotConfigured
	}
	return m.workspacesFn(ctx, offline)
}

func (m *mockAPI) CreateClient(ctx context.Context, name string) (*domain.Client, error) {
	if m.createClientFn == nil {
		return nil, errNotConfigured
	}
	return m.createClientFn(ctx, name)
}
