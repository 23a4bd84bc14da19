package main

import (
	"fmt"
	"os"
	"time"

	"toggl-cli/internal/api"
	"toggl-cli/internal/cli"
	"toggl-cli/internal/config"
	"toggl-cli/internal/logging"
	"toggl-cli/internal/toggl"
)

func main() {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The API is built lazily so token and workspace flags can still
	// change the configuration before the first request.
	factory := func(cfg *config.Config) (api.API, error) {
		cache, err := config.CreateCache(cfg)
		if err != nil {
			return nil, err
		}

		client := toggl.NewClient(
			cfg.Toggl.BaseURL,
			cfg.Toggl.APIToken,
			cfg.Toggl.WorkspaceID,
			logging.NewLogger(cfg.Application.Verbose),
		)

		return api.New(client, cache, cfg, time.Now, time.Local), nil
	}

	root := cli.NewRootCommand(factory, cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
