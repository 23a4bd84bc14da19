package cli

import (
	"context"
	"strings"

	"toggl-cli/internal/api"
	"toggl-cli/internal/errors"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, args []string, project string, billable bool, tags []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("description", "", "usage: togglcli start \"what you are working on\"")
	}
	description := strings.Join(args, " ")

	entry, err := c.app.api.Start(ctx, api.StartOptions{
		Description: description,
		Project:     project,
		Billable:    billable,
		Tags:        tags,
	})
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	return c.app.renderer().Entry(entry, project, timeNow())
}
