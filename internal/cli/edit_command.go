package cli

import (
	"context"

	"toggl-cli/internal/api"
	"toggl-cli/internal/errors"
	"toggl-cli/internal/tracking"
)

// EditFlags carries the raw flag values of the edit command. Empty
// strings mean "leave unchanged".
type EditFlags struct {
	Description    string
	Project        string
	Start          string
	Stop           string
	Duration       string
	Tags           []string
	ToggleBillable bool

	DescriptionSet bool
	ProjectSet     bool
	TagsSet        bool
}

// EditCommand handles the edit command
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string, flags EditFlags) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", "", "usage: togglcli edit <entry-id> [flags]")
	}
	id, err := parseEntryID(args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	now := timeNow()
	opts := api.EditOptions{ID: id}

	if flags.DescriptionSet {
		opts.Description = &flags.Description
	}
	if flags.ProjectSet {
		opts.Project = &flags.Project
	}
	if flags.Start != "" {
		start, err := parseTimeArg(flags.Start, now)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		opts.Start = &start
	}
	if flags.Stop != "" {
		stop, err := parseTimeArg(flags.Stop, now)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		opts.Stop = &stop
	}
	if flags.Duration != "" {
		duration, err := tracking.ParseDuration(flags.Duration)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		opts.Duration = &duration
	}
	if flags.TagsSet {
		opts.Tags = &flags.Tags
	}
	opts.ToggleBillable = flags.ToggleBillable

	updated, err := c.app.api.Edit(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}

	return c.app.renderer().Entry(updated, flags.Project, now)
}
