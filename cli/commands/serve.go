package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/robgonnella/backupcheck/internal/api"
	"github.com/robgonnella/backupcheck/internal/logger"
	"github.com/spf13/cobra"
)

// creates and returns the "serve" command
func serve(props *CommandProps) *cobra.Command {
	var listen string
	var discoverSchedule string
	var inventorySchedule string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the http api and runs scheduled scans",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			appCore, err := createCore(props)

			if err != nil {
				return err
			}

			if err := appCore.StartSchedule(discoverSchedule, inventorySchedule); err != nil {
				return err
			}

			defer appCore.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := api.New(appCore, appCore.Metrics(), listen)

			err = server.Start(ctx)

			log.Info().Msg("shutting down")

			return err
		},
	}

	cmd.Flags().StringVar(&listen, "listen", api.DefaultListen, "address the api listens on")
	cmd.Flags().StringVar(
		&discoverSchedule,
		"discover-schedule",
		"",
		"cron spec for periodic discovery, e.g. \"0 * * * *\" (disabled when empty)",
	)
	cmd.Flags().StringVar(
		&inventorySchedule,
		"inventory-schedule",
		"",
		"cron spec for periodic directory scans (disabled when empty)",
	)

	return cmd
}
