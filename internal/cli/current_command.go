package cli

import (
	"context"
)

// CurrentCommand handles the current command
type CurrentCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCurrentCommand creates a new current command handler
func NewCurrentCommand(app *App) *CurrentCommand {
	return &CurrentCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the current command
func (c *CurrentCommand) Execute(ctx context.Context) error {
	entry, err := c.app.api.Current(ctx)
	if err != nil {
		return c.errorHandler.Handle("fetch current timer", err)
	}
	if entry == nil {
		c.app.renderer().Message("No timer is running")
		return nil
	}

	return c.app.renderer().Entry(entry, "", timeNow())
}
