package cli

import (
	"io"
	"os"
	"strconv"
	"time"

	"toggl-cli/internal/api"
	"toggl-cli/internal/config"
	"toggl-cli/internal/errors"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App bundles the dependencies shared by all command handlers.
type App struct {
	api    api.API
	config *config.Config
	out    io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{
		api:    apiInstance,
		config: cfg,
		out:    out,
	}
}

// renderer builds a renderer for the configured output format.
func (a *App) renderer() *Renderer {
	return NewRenderer(a.out, a.config.Display.Format, a.config.Display.TimeFormat)
}

// parseEntryID parses a time entry id argument.
func parseEntryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("entry id", arg, "must be a positive integer")
	}
	return id, nil
}
