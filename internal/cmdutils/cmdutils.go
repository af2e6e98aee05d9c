// Package cmdutils shares the config-to-app bootstrap between the CLI
// subcommands.
package cmdutils

import (
	"context"
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/Mitch2826/Hostel-Hunt/internal/app"
	"github.com/Mitch2826/Hostel-Hunt/internal/config"
	"github.com/Mitch2826/Hostel-Hunt/internal/logging"
)

// AppFromCommand loads config from the inherited --config flag, sets
// up logging, builds the app and runs the restore phase.
func AppFromCommand(ctx context.Context, cmd *cobra.Command) (*app.App, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("reading config flag: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, oops.In("config").Wrapf(err, "Failed to load the configuration")
	}

	logging.Setup(cfg.Logger)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, oops.In("app").Wrapf(err, "Failed to build the application")
	}

	a.Start(ctx)

	return a, nil
}
