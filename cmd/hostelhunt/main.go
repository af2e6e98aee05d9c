package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	slogctx "github.com/veqryn/slog-context"

	"github.com/Mitch2826/Hostel-Hunt/cmd/hostelhunt/authcmd"
	"github.com/Mitch2826/Hostel-Hunt/cmd/hostelhunt/bookingscmd"
	"github.com/Mitch2826/Hostel-Hunt/cmd/hostelhunt/hostelscmd"
	"github.com/Mitch2826/Hostel-Hunt/internal/config"
)

// BuildInfo will be set by the build system
var BuildInfo = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Hostel Hunt Version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), BuildInfo)
	},
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostelhunt",
		Short: "Hostel Hunt",
		Long:  "Command-line client for the Hostel Hunt booking service.",
	}

	cmd.PersistentFlags().String("config", "", "config file (default "+config.DefaultPath()+")")

	cmd.AddCommand(
		versionCmd,
		authcmd.Cmd(),
		bookingscmd.Cmd(),
		hostelscmd.Cmd(),
	)

	return cmd
}

func execute() error {
	ctx, cancelOnSignal := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelOnSignal()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		slogctx.Error(ctx, "Command failed", "error", err)

		return err
	}

	return nil
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
