package cli

import (
	"context"

	"toggl-cli/internal/errors"
)

// ShowCommand handles the show command
type ShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", "", "usage: togglcli show <entry-id>")
	}
	id, err := parseEntryID(args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	view, err := c.app.api.Get(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("fetch entry", err)
	}

	return c.app.renderer().Entry(&view.TimeEntry, view.ProjectName, timeNow())
}
