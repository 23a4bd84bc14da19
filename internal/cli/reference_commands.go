package cli

import (
	"context"
	"strings"

	"toggl-cli/internal/errors"
)

// ProjectsCommand handles the projects command
type ProjectsCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProjectsCommand creates a new projects command handler
func NewProjectsCommand(app *App) *ProjectsCommand {
	return &ProjectsCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the projects command
func (c *ProjectsCommand) Execute(ctx context.Context, offline bool) error {
	projects, err := c.app.api.Projects(ctx, offline)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}
	return c.app.renderer().Projects(projects)
}

// ClientsCommand handles the clients command
type ClientsCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewClientsCommand creates a new clients command handler
func NewClientsCommand(app *App) *ClientsCommand {
	return &ClientsCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the clients command. Archived clients are hidden unless
// includeArchived is set.
func (c *ClientsCommand) Execute(ctx context.Context, offline, includeArchived bool) error {
	clients, err := c.app.api.Clients(ctx, offline)
	if err != nil {
		return c.errorHandler.Handle("list clients", err)
	}
	if !includeArchived {
		visible := clients[:0]
		for _, client := range clients {
			if !client.Archived {
				visible = append(visible, client)
			}
		}
		clients = visible
	}
	return c.app.renderer().Clients(clients)
}

// ExecuteCreate creates a new client in the workspace.
func (c *ClientsCommand) ExecuteCreate(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("name", "", "usage: togglcli clients add <name>")
	}
	name := strings.Join(args, " ")

	created, err := c.app.api.CreateClient(ctx, name)
	if err != nil {
		return c.errorHandler.Handle("create client", err)
	}

	c.app.renderer().Message("Created client %q (%d)", created.Name, created.ID)
	return nil
}

// WorkspacesCommand handles the workspaces command
type WorkspacesCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewWorkspacesCommand creates a new workspaces command handler
func NewWorkspacesCommand(app *App) *WorkspacesCommand {
	return &WorkspacesCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the workspaces command
func (c *WorkspacesCommand) Execute(ctx context.Context, offline bool) error {
	workspaces, err := c.app.api.Workspaces(ctx, offline)
	if err != nil {
		return c.errorHandler.Handle("list workspaces", err)
	}
	return c.app.renderer().Workspaces(workspaces)
}
