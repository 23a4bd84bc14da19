package cli

import (
	"context"

	"toggl-cli/internal/tracking"
)

// StopCommand handles the stop command
type StopCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the stop command
func (c *StopCommand) Execute(ctx context.Context) error {
	entry, err := c.app.api.StopCurrent(ctx)
	if err != nil {
		if c.errorHandler.IsNotFoundError(err) {
			c.app.renderer().Message("No timer is running")
			return nil
		}
		return c.errorHandler.Handle("stop timer", err)
	}

	c.app.renderer().Message("Stopped %q after %s", entry.Description, tracking.FormatDuration(entry.Duration))
	return nil
}
