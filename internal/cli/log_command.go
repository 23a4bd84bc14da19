package cli

import (
	"context"
	"strings"
	"time"

	"toggl-cli/internal/api"
	"toggl-cli/internal/errors"
	"toggl-cli/internal/tracking"
)

// LogFlags carries the raw flag values of the log command.
type LogFlags struct {
	Project    string
	Start      string
	End        string
	Duration   string
	LunchBreak bool
	Billable   bool
	Tags       []string
}

// LogCommand handles the log command: record completed work after the fact.
type LogCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLogCommand creates a new log command handler
func NewLogCommand(app *App) *LogCommand {
	return &LogCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the log command
func (c *LogCommand) Execute(ctx context.Context, args []string, flags LogFlags) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("description", "", "usage: togglcli log \"what you worked on\" --start 09:00 --duration 2h")
	}
	description := strings.Join(args, " ")
	now := timeNow()

	start := now
	if flags.Start != "" {
		parsed, err := parseTimeArg(flags.Start, now)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		start = parsed
	}

	opts := api.LogOptions{
		Description: description,
		Project:     flags.Project,
		Start:       start,
		LunchBreak:  flags.LunchBreak,
		Billable:    flags.Billable,
		Tags:        flags.Tags,
	}

	if flags.End != "" {
		end, err := parseTimeArg(flags.End, now)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		opts.End = &end
	}
	if flags.Duration != "" {
		duration, err := tracking.ParseDuration(flags.Duration)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		opts.Duration = &duration
	}

	created, err := c.app.api.Log(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("log entry", err)
	}

	renderer := c.app.renderer()
	for _, entry := range created {
		if err := renderer.Entry(entry, flags.Project, now); err != nil {
			return err
		}
	}
	return nil
}

// parseTimeArg accepts a clock time (today), a date-and-time, or RFC3339.
func parseTimeArg(value string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	layouts := []string{"2006-01-02T15:04", "2006-01-02 15:04"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return t, nil
		}
	}

	if t, err := time.ParseInLocation("15:04", value, now.Location()); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}

	return time.Time{}, errors.NewInvalidInputError("time", value, "use 15:04, 2006-01-02T15:04 or RFC3339")
}
