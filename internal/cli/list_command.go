package cli

import (
	"context"
	"strings"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the list command. The optional argument is a range token:
// a keyword like today or this-week, a single date, or "from|to".
func (c *ListCommand) Execute(ctx context.Context, args []string, missing, offline bool) error {
	rangeToken := strings.Join(args, " ")

	if missing {
		days, err := c.app.api.MissingDays(ctx, rangeToken, offline)
		if err != nil {
			return c.errorHandler.Handle("list missing days", err)
		}
		return c.app.renderer().MissingDays(days)
	}

	listing, err := c.app.api.List(ctx, rangeToken, offline)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}

	return c.app.renderer().Entries(listing, timeNow())
}
