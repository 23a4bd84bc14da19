package cli

import (
	"context"

	"toggl-cli/internal/config"
	"toggl-cli/internal/errors"
)

// InitCommand handles the init command: verify a token and persist it.
type InitCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewInitCommand creates a new init command handler
func NewInitCommand(app *App) *InitCommand {
	return &InitCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the init command
func (c *InitCommand) Execute(ctx context.Context, token string, workspaceID int64) error {
	if token == "" {
		return errors.NewInvalidInputError("token", "", "an API token is required; find yours at https://track.toggl.com/profile")
	}

	// The API instance was built with the new token by the caller, so Me
	// verifies it before anything is written to disk.
	me, err := c.app.api.Me(ctx)
	if err != nil {
		return c.errorHandler.Handle("verify API token", err)
	}

	if workspaceID == 0 {
		workspaceID = me.DefaultWorkspaceID
	}

	settings := &config.Settings{
		APIToken:    token,
		WorkspaceID: workspaceID,
	}
	if err := settings.Save(); err != nil {
		return c.errorHandler.Handle("save settings", err)
	}

	renderer := c.app.renderer()
	renderer.Message("Authenticated as %s (%s)", me.Fullname, me.Email)
	renderer.Message("Settings saved, using workspace %d", workspaceID)
	return nil
}
