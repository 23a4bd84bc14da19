package cli

import (
	"context"
)

// ContinueCommand handles the continue command
type ContinueCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewContinueCommand creates a new continue command handler
func NewContinueCommand(app *App) *ContinueCommand {
	return &ContinueCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the continue command
func (c *ContinueCommand) Execute(ctx context.Context) error {
	entry, err := c.app.api.Continue(ctx)
	if err != nil {
		if c.errorHandler.IsNotFoundError(err) {
			c.app.renderer().Message("Nothing to continue today")
			return nil
		}
		return c.errorHandler.Handle("continue timer", err)
	}

	return c.app.renderer().Entry(entry, "", timeNow())
}
