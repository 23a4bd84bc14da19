package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"toggl-cli/internal/api"
	"toggl-cli/internal/config"
)

// APIFactory builds the business API once the configuration is final.
// Deferring construction lets flags like --api-token take effect.
type APIFactory func(cfg *config.Config) (api.API, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	newAPI  APIFactory
	config  *config.Config
	current *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(newAPI APIFactory, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		newAPI: newAPI,
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "togglcli",
		Short: "A command-line client for Toggl Track",
		Long: `togglcli is a command-line client for Toggl Track.

It starts and stops timers, records completed work after the fact
(with an optional lunch break split), and reports on tracked time:
per-day and per-project totals, overlap and long-day warnings, and
missing workdays.

EXAMPLES:
  togglcli init --token <api-token>        # Verify and store your API token
  togglcli start "reviewing PRs"           # Start a timer
  togglcli stop                            # Stop the running timer
  togglcli log "focus work" --start 09:00 --end 17:00 --lunch-break
  togglcli list this-week                  # List this week's entries
  togglcli list --missing this-month       # Weekdays without any entry
  togglcli report last-week                # Totals and warnings
  togglcli list "2021-11-01|2021-11-05"    # Explicit date range

RANGES:
  today (default), yesterday, this-week, last-week, this-month,
  last-month, a single date (2021-11-17), or "from|to" with both
  dates inclusive.

CONFIGURATION:
  Priority order: command-line flags > environment variables >
  settings file (written by init) > defaults.

    TOGGL_API_TOKEN                Toggl Track API token
    TOGGL_WORKSPACE_ID             Workspace (default: account default)
    TOGGL_CACHE_DIR                Local cache directory (default: ~/.togglcli)
    TOGGL_REPORT_DAILY_LIMIT       Long-day warning threshold (default: 10h)
    TOGGL_REPORT_BREAK_THRESHOLD   Workday length requiring a break (default: 6h)
    TOGGL_REPORT_MIN_BREAK         Shortest acceptable break (default: 30m)
    TOGGL_LUNCH_BREAK              Lunch break length for log (default: 1h)
    TOGGL_FORMAT                   Output format: table, json, raw
    TOGGL_DEBUG                    Enable debug output when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("api-token", "", "Toggl API token (overrides TOGGL_API_TOKEN)")
	flags.Int64("workspace", 0, "Workspace id (overrides TOGGL_WORKSPACE_ID)")
	flags.String("cache-dir", "", "Cache directory (overrides TOGGL_CACHE_DIR)")

	flags.Duration("daily-limit", 0, "Long-day warning threshold (overrides TOGGL_REPORT_DAILY_LIMIT)")
	flags.Duration("break-threshold", 0, "Workday length requiring a break (overrides TOGGL_REPORT_BREAK_THRESHOLD)")
	flags.Duration("min-break", 0, "Shortest acceptable break (overrides TOGGL_REPORT_MIN_BREAK)")
	flags.Duration("lunch-duration", 0, "Lunch break length for log (overrides TOGGL_LUNCH_BREAK)")

	flags.StringP("format", "f", "", "Output format: table, json or raw (overrides TOGGL_FORMAT)")
	flags.String("time-format", "", "Clock display format (overrides TOGGL_TIME_FORMAT)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides TOGGL_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TOGGL_APP_VERBOSE)")
}

// app lazily constructs the shared App once the configuration is final.
func (r *RootCommand) app() (*App, error) {
	if r.current != nil {
		return r.current, nil
	}
	apiInstance, err := r.newAPI(r.config)
	if err != nil {
		return nil, err
	}
	r.current = NewApp(apiInstance, r.config, nil)
	return r.current, nil
}

// runWithApp wraps a handler invocation with app construction and timeout.
func (r *RootCommand) runWithApp(run func(ctx context.Context, app *App) error) error {
	app, err := r.app()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
	defer cancel()
	return run(ctx, app)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Verify an API token and store it",
		Long:  "Verify the given Toggl API token against the API and write it to the settings file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, _ := cmd.Flags().GetString("token")
			workspaceID, _ := cmd.Flags().GetInt64("workspace-id")
			if token != "" {
				r.config.Toggl.APIToken = token
			} else {
				token = r.config.Toggl.APIToken
			}
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewInitCommand(app).Execute(ctx, token, workspaceID)
			})
		},
	}
	initCmd.Flags().String("token", "", "Toggl API token to store")
	initCmd.Flags().Int64("workspace-id", 0, "Workspace to store (default: the account default)")

	startCmd := &cobra.Command{
		Use:   "start [description]",
		Short: "Start a timer",
		Long:  "Start a running timer. Toggl stops any timer that is already running.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString("project")
			billable, _ := cmd.Flags().GetBool("billable")
			tags, _ := cmd.Flags().GetStringSlice("tags")
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewStartCommand(app).Execute(ctx, args, project, billable, tags)
			})
		},
	}
	startCmd.Flags().StringP("project", "p", "", "Project name")
	startCmd.Flags().Bool("billable", false, "Mark the entry billable")
	startCmd.Flags().StringSlice("tags", nil, "Tags for the entry")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewStopCommand(app).Execute(ctx)
			})
		},
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewCurrentCommand(app).Execute(ctx)
			})
		},
	}

	continueCmd := &cobra.Command{
		Use:   "continue",
		Short: "Restart today's most recently stopped entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewContinueCommand(app).Execute(ctx)
			})
		},
	}

	logCmd := &cobra.Command{
		Use:   "log [description]",
		Short: "Record completed work after the fact",
		Long: `Record one completed entry, or two when --lunch-break is given:
the span is split around its midpoint with the break excluded.

Give either --end or --duration (a bare number means minutes).

Examples:
  togglcli log "focus work" --start 09:00 --duration 90
  togglcli log "office day" --start 09:00 --end 17:00 --lunch-break`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := LogFlags{}
			flags.Project, _ = cmd.Flags().GetString("project")
			flags.Start, _ = cmd.Flags().GetString("start")
			flags.End, _ = cmd.Flags().GetString("end")
			flags.Duration, _ = cmd.Flags().GetString("duration")
			flags.LunchBreak, _ = cmd.Flags().GetBool("lunch-break")
			flags.Billable, _ = cmd.Flags().GetBool("billable")
			flags.Tags, _ = cmd.Flags().GetStringSlice("tags")
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewLogCommand(app).Execute(ctx, args, flags)
			})
		},
	}
	logCmd.Flags().StringP("project", "p", "", "Project name")
	logCmd.Flags().String("start", "", "Start time (15:04, 2006-01-02T15:04 or RFC3339; default: now)")
	logCmd.Flags().String("end", "", "End time")
	logCmd.Flags().StringP("duration", "d", "", "Duration, e.g. 90, 1h30m, \"2 hours\"")
	logCmd.Flags().Bool("lunch-break", false, "Split the span around a lunch break")
	logCmd.Flags().Bool("billable", false, "Mark the entry billable")
	logCmd.Flags().StringSlice("tags", nil, "Tags for the entry")

	editCmd := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Edit an existing entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := EditFlags{}
			flags.Description, _ = cmd.Flags().GetString("description")
			flags.Project, _ = cmd.Flags().GetString("project")
			flags.Start, _ = cmd.Flags().GetString("start")
			flags.Stop, _ = cmd.Flags().GetString("stop")
			flags.Duration, _ = cmd.Flags().GetString("duration")
			flags.Tags, _ = cmd.Flags().GetStringSlice("tags")
			flags.ToggleBillable, _ = cmd.Flags().GetBool("toggle-billable")
			flags.DescriptionSet = cmd.Flags().Changed("description")
			flags.ProjectSet = cmd.Flags().Changed("project")
			flags.TagsSet = cmd.Flags().Changed("tags")
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewEditCommand(app).Execute(ctx, args, flags)
			})
		},
	}
	editCmd.Flags().String("description", "", "New description")
	editCmd.Flags().StringP("project", "p", "", "New project name (empty clears the project)")
	editCmd.Flags().String("start", "", "New start time")
	editCmd.Flags().String("stop", "", "New stop time")
	editCmd.Flags().StringP("duration", "d", "", "New duration (moves the stop time)")
	editCmd.Flags().StringSlice("tags", nil, "New tags (empty clears the tags)")
	editCmd.Flags().Bool("toggle-billable", false, "Flip the billable flag")

	showCmd := &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewShowCommand(app).Execute(ctx, args)
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewDeleteCommand(app).Execute(ctx, args)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list [range]",
		Short: "List time entries in a range",
		Long: `List the entries of a range (default: today).

Examples:
  togglcli list                          # today
  togglcli list this-week
  togglcli list 2021-11-17               # a single day
  togglcli list "2021-11-01|2021-11-05"  # inclusive date pair
  togglcli list --missing this-month     # weekdays without entries
  togglcli list --offline last-week      # serve from the local cache`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			missing, _ := cmd.Flags().GetBool("missing")
			offline, _ := cmd.Flags().GetBool("offline")
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewListCommand(app).Execute(ctx, args, missing, offline)
			})
		},
	}
	listCmd.Flags().Bool("missing", false, "Show weekdays without any entry instead")
	listCmd.Flags().Bool("offline", false, "Serve from the local cache without network")

	reportCmd := &cobra.Command{
		Use:   "report [range]",
		Short: "Aggregate a range into totals and warnings",
		Long: `Aggregate the entries of a range (default: today) into per-day and
per-project totals, with warnings for overlapping entries, days over
the daily limit, long days without enough break, and weekdays with no
entry at all.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offline, _ := cmd.Flags().GetBool("offline")
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewReportCommand(app).Execute(ctx, args, offline)
			})
		},
	}
	reportCmd.Flags().Bool("offline", false, "Serve from the local cache without network")

	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			offline, _ := cmd.Flags().GetBool("offline")
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewProjectsCommand(app).Execute(ctx, offline)
			})
		},
	}
	projectsCmd.Flags().Bool("offline", false, "Serve from the local cache without network")

	clientsCmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			offline, _ := cmd.Flags().GetBool("offline")
			archived, _ := cmd.Flags().GetBool("archived")
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewClientsCommand(app).Execute(ctx, offline, archived)
			})
		},
	}
	clientsCmd.Flags().Bool("offline", false, "Serve from the local cache without network")
	clientsCmd.Flags().Bool("archived", false, "Include archived clients")

	clientsAddCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a client",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewClientsCommand(app).ExecuteCreate(ctx, args)
			})
		},
	}
	clientsCmd.AddCommand(clientsAddCmd)

	workspacesCmd := &cobra.Command{
		Use:   "workspaces",
		Short: "List workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			offline, _ := cmd.Flags().GetBool("offline")
			return r.runWithApp(func(ctx context.Context, app *App) error {
				return NewWorkspacesCommand(app).Execute(ctx, offline)
			})
		},
	}
	workspacesCmd.Flags().Bool("offline", false, "Serve from the local cache without network")

	r.cmd.AddCommand(
		initCmd,
		startCmd,
		stopCmd,
		currentCmd,
		continueCmd,
		logCmd,
		editCmd,
		showCmd,
		deleteCmd,
		listCmd,
		reportCmd,
		projectsCmd,
		clientsCmd,
		workspacesCmd,
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if token, _ := flags.GetString("api-token"); token != "" {
		r.config.Toggl.APIToken = token
	}
	if workspace, _ := flags.GetInt64("workspace"); workspace != 0 {
		r.config.Toggl.WorkspaceID = workspace
	}
	if cacheDir, _ := flags.GetString("cache-dir"); cacheDir != "" {
		r.config.Cache.Dir = cacheDir
	}

	if limit, _ := flags.GetDuration("daily-limit"); limit > 0 {
		r.config.Report.DailyLimit = limit
	}
	if threshold, _ := flags.GetDuration("break-threshold"); threshold > 0 {
		r.config.Report.BreakThreshold = threshold
	}
	if minBreak, _ := flags.GetDuration("min-break"); minBreak > 0 {
		r.config.Report.MinBreak = minBreak
	}
	if lunch, _ := flags.GetDuration("lunch-duration"); lunch > 0 {
		r.config.Report.LunchBreak = lunch
	}

	if format, _ := flags.GetString("format"); format != "" {
		r.config.Display.Format = format
	}
	if timeFormat, _ := flags.GetString("time-format"); timeFormat != "" {
		r.config.Display.TimeFormat = timeFormat
	}
	if timeout, _ := flags.GetDuration("app-timeout"); timeout > 0 {
		r.config.Application.Timeout = timeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = true
	}

	return r.config.Validate()
}
