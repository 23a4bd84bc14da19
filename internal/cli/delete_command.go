package cli

import (
	"context"

	"toggl-cli/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", "", "usage: togglcli delete <entry-id>")
	}
	id, err := parseEntryID(args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.app.api.Delete(ctx, id); err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}

	c.app.renderer().Message("Deleted entry %d", id)
	return nil
}
