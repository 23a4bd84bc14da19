package cli

import (
	"context"
	"strings"
)

// ReportCommand handles the report command
type ReportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context, args []string, offline bool) error {
	rangeToken := strings.Join(args, " ")

	view, err := c.app.api.Report(ctx, rangeToken, offline)
	if err != nil {
		return c.errorHandler.Handle("build report", err)
	}

	return c.app.renderer().Report(view)
}
