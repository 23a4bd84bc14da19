package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-cli/internal/api"
	"toggl-cli/internal/config"
	"toggl-cli/internal/domain"
	"toggl-cli/internal/errors"
	"toggl-cli/internal/tracking"
)

var handlerNow = time.Date(2021, 11, 17, 15, 0, 0, 0, time.UTC)

func setupTestApp(t *testing.T, mock *mockAPI) (*App, *bytes.Buffer) {
	t.Helper()

	originalNow := timeNow
	timeNow = func() time.Time { return handlerNow }
	t.Cleanup(func() { timeNow = originalNow })

	out := &bytes.Buffer{}
	cfg := config.NewConfig()
	return NewApp(mock, cfg, out), out
}

func runningEntry(description string) *domain.TimeEntry {
	return &domain.TimeEntry{
		ID:          100,
		Description: description,
		WorkspaceID: 42,
		Start:       handlerNow.Add(-30 * time.Minute),
	}
}

func TestStartCommand(t *testing.T) {
	var gotOpts api.StartOptions
	mock := &mockAPI{
		startFn: func(ctx context.Context, opts api.StartOptions) (*domain.TimeEntry, error) {
			gotOpts = opts
			entry := runningEntry(opts.Description)
			return entry, nil
		},
	}
	app, out := setupTestApp(t, mock)

	err := NewStartCommand(app).Execute(context.Background(), []string{"reviewing", "PRs"}, "website", true, []string{"focus"})
	require.NoError(t, err)

	assert.Equal(t, "reviewing PRs", gotOpts.Description)
	assert.Equal(t, "website", gotOpts.Project)
	assert.True(t, gotOpts.Billable)
	assert.Contains(t, out.String(), "reviewing PRs")
	assert.Contains(t, out.String(), "running")
}

func TestStartCommandWithoutDescription(t *testing.T) {
	app, _ := setupTestApp(t, &mockAPI{})

	err := NewStartCommand(app).Execute(context.Background(), nil, "", false, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestStopCommand(t *testing.T) {
	stopped := runningEntry("standup")
	stop := handlerNow
	stopped.Stop = &stop
	stopped.Duration = 30 * time.Minute

	mock := &mockAPI{
		stopCurrentFn: func(ctx context.Context) (*domain.TimeEntry, error) {
			return stopped, nil
		},
	}
	app, out := setupTestApp(t, mock)

	require.NoError(t, NewStopCommand(app).Execute(context.Background()))
	assert.Contains(t, out.String(), "standup")
	assert.Contains(t, out.String(), "30m")
}

func TestStopCommandWithNothingRunning(t *testing.T) {
	mock := &mockAPI{
		stopCurrentFn: func(ctx context.Context) (*domain.TimeEntry, error) {
			return nil, errors.NewNotFoundError("running time entry", "current")
		},
	}
	app, out := setupTestApp(t, mock)

	// A quiet day is not an error.
	require.NoError(t, NewStopCommand(app).Execute(context.Background()))
	assert.Contains(t, out.String(), "No timer is running")
}

func TestCurrentCommandWithNothingRunning(t *testing.T) {
	mock := &mockAPI{
		currentFn: func(ctx context.Context) (*domain.TimeEntry, error) {
			return nil, nil
		},
	}
	app, out := setupTestApp(t, mock)

	require.NoError(t, NewCurrentCommand(app).Execute(context.Background()))
	assert.Contains(t, out.String(), "No timer is running")
}

func TestLogCommandParsesFlags(t *testing.T) {
	var gotOpts api.LogOptions
	mock := &mockAPI{
		logFn: func(ctx context.Context, opts api.LogOptions) ([]*domain.TimeEntry, error) {
			gotOpts = opts
			stop := opts.Start.Add(2 * time.Hour)
			return []*domain.TimeEntry{{
				ID:          1,
				Description: opts.Description,
				Start:       opts.Start,
				Stop:        &stop,
				Duration:    2 * time.Hour,
			}}, nil
		},
	}
	app, _ := setupTestApp(t, mock)

	err := NewLogCommand(app).Execute(context.Background(), []string{"focus work"}, LogFlags{
		Start:      "09:00",
		Duration:   "2h",
		LunchBreak: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "focus work", gotOpts.Description)
	assert.Equal(t, 9, gotOpts.Start.Hour())
	require.NotNil(t, gotOpts.Duration)
	assert.Equal(t, 2*time.Hour, *gotOpts.Duration)
	assert.True(t, gotOpts.LunchBreak)
	assert.Nil(t, gotOpts.End)
}

func TestLogCommandRejectsBadDuration(t *testing.T) {
	app, _ := setupTestApp(t, &mockAPI{})

	err := NewLogCommand(app).Execute(context.Background(), []string{"work"}, LogFlags{
		Duration: "two hours-ish",
	})
	require.Error(t, err)
}

func TestEditCommandDistinguishesUnsetFromEmpty(t *testing.T) {
	var gotOpts api.EditOptions
	mock := &mockAPI{
		editFn: func(ctx context.Context, opts api.EditOptions) (*domain.TimeEntry, error) {
			gotOpts = opts
			return runningEntry("edited"), nil
		},
	}
	app, _ := setupTestApp(t, mock)

	err := NewEditCommand(app).Execute(context.Background(), []string{"100"}, EditFlags{
		Project:    "",
		ProjectSet: true, // --project "" clears the project
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), gotOpts.ID)
	assert.Nil(t, gotOpts.Description, "unset description must not be sent")
	require.NotNil(t, gotOpts.Project)
	assert.Empty(t, *gotOpts.Project)
}

func TestDeleteCommandValidatesID(t *testing.T) {
	app, _ := setupTestApp(t, &mockAPI{})

	tests := []struct {
		name string
		args []string
	}{
		{name: "should reject missing id", args: nil},
		{name: "should reject non-numeric id", args: []string{"abc"}},
		{name: "should reject negative id", args: []string{"-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDeleteCommand(app).Execute(context.Background(), tt.args)
			require.Error(t, err)
		})
	}
}

func TestDeleteCommand(t *testing.T) {
	var deleted int64
	mock := &mockAPI{
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	app, out := setupTestApp(t, mock)

	require.NoError(t, NewDeleteCommand(app).Execute(context.Background(), []string{"123"}))
	assert.Equal(t, int64(123), deleted)
	assert.Contains(t, out.String(), "Deleted entry 123")
}

func TestShowCommand(t *testing.T) {
	var fetched int64
	mock := &mockAPI{
		getFn: func(ctx context.Context, id int64) (*api.EntryView, error) {
			fetched = id
			return &api.EntryView{
				TimeEntry:   *runningEntry("deep work"),
				ProjectName: "website",
			}, nil
		},
	}
	app, out := setupTestApp(t, mock)

	require.NoError(t, NewShowCommand(app).Execute(context.Background(), []string{"100"}))
	assert.Equal(t, int64(100), fetched)
	assert.Contains(t, out.String(), "deep work")
	assert.Contains(t, out.String(), "website")
}

func TestShowCommandValidatesID(t *testing.T) {
	app, _ := setupTestApp(t, &mockAPI{})

	require.Error(t, NewShowCommand(app).Execute(context.Background(), []string{"abc"}))
	require.Error(t, NewShowCommand(app).Execute(context.Background(), nil))
}

func TestListCommandPassesRangeToken(t *testing.T) {
	var gotToken string
	var gotOffline bool
	mock := &mockAPI{
		listFn: func(ctx context.Context, rangeToken string, offline bool) (*api.Listing, error) {
			gotToken = rangeToken
			gotOffline = offline
			r, _ := tracking.ResolveRange("this-week", handlerNow)
			return &api.Listing{Range: r}, nil
		},
	}
	app, out := setupTestApp(t, mock)

	err := NewListCommand(app).Execute(context.Background(), []string{"this-week"}, false, true)
	require.NoError(t, err)

	assert.Equal(t, "this-week", gotToken)
	assert.True(t, gotOffline)
	assert.Contains(t, out.String(), "No entries")
}

func TestListCommandMissingMode(t *testing.T) {
	mock := &mockAPI{
		missingDaysFn: func(ctx context.Context, rangeToken string, offline bool) ([]time.Time, error) {
			return []time.Time{
				time.Date(2021, 11, 16, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	app, out := setupTestApp(t, mock)

	err := NewListCommand(app).Execute(context.Background(), nil, true, false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "2021-11-16")
}

func TestReportCommand(t *testing.T) {
	mock := &mockAPI{
		reportFn: func(ctx context.Context, rangeToken string, offline bool) (*api.ReportView, error) {
			r, _ := tracking.ResolveRange("this-week", handlerNow)
			return &api.ReportView{
				Range: r,
				Summary: &tracking.ReportSummary{
					ByProject: map[int64]time.Duration{7: 11 * time.Hour},
					ByDay:     map[string]time.Duration{"2021-11-15": 11 * time.Hour},
					Total:     11 * time.Hour,
					Violations: []tracking.Violation{{
						Kind:   tracking.ViolationExceedsDailyLimit,
						Day:    time.Date(2021, 11, 15, 0, 0, 0, 0, time.UTC),
						Detail: "11h 0m tracked, limit is 10h 0m",
					}},
				},
				ProjectNames: map[int64]string{7: "website"},
			}, nil
		},
	}
	app, out := setupTestApp(t, mock)

	require.NoError(t, NewReportCommand(app).Execute(context.Background(), []string{"this-week"}, false))

	output := out.String()
	assert.Contains(t, output, "website")
	assert.Contains(t, output, "11h")
	assert.Contains(t, output, "exceeds_daily_limit")
}

func TestClientsAddCommand(t *testing.T) {
	mock := &mockAPI{
		createClientFn: func(ctx context.Context, name string) (*domain.Client, error) {
			return &domain.Client{ID: 3, WorkspaceID: 42, Name: name}, nil
		},
	}
	app, out := setupTestApp(t, mock)

	require.NoError(t, NewClientsCommand(app).ExecuteCreate(context.Background(), []string{"Initech"}))
	assert.Contains(t, out.String(), `Created client "Initech"`)
}

func TestParseTimeArg(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
		fails bool
	}{
		{
			name:  "should parse bare clock time as today",
			value: "09:30",
			want:  time.Date(2021, 11, 17, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "should parse date and time",
			value: "2021-11-01T08:00",
			want:  time.Date(2021, 11, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "should parse RFC3339",
			value: "2021-11-01T08:00:00Z",
			want:  time.Date(2021, 11, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "should reject nonsense",
			value: "yesterday-ish",
			fails: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeArg(tt.value, handlerNow)
			if tt.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}
