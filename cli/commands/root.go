package commands

import (
	"fmt"
	"io"

	app_info "github.com/robgonnella/backupcheck/internal/app-info"
	"github.com/robgonnella/backupcheck/internal/core"
	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandProps injected props that can be made available to all commands
type CommandProps struct {
	CreateCore func(configFile, dbFile string) (*core.Core, error)
}

// Root builds and returns our root command
func Root(props *CommandProps) *cobra.Command {
	var verbose bool
	var silent bool

	cmd := &cobra.Command{
		Use:           app_info.NAME,
		Short:         "Discover servers and check how recently each was backed up",
		SilenceUsage:  true,
		SilenceErrors: true,
		// This runs before all commands and all sub-commands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// set logging verbosity for all loggers
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if silent {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}

			return nil
		},
	}

	// Persistent flags available to all commands
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "disables all logging")
	cmd.PersistentFlags().String("config", "", "path to the json configuration file")
	cmd.PersistentFlags().String("database", "", "path to the sqlite database file")

	viper.BindPFlag("config-path", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("database-file", cmd.PersistentFlags().Lookup("database"))

	cmd.AddCommand(discover(props))
	cmd.AddCommand(inventoryCmd(props))
	cmd.AddCommand(servers(props))
	cmd.AddCommand(files(props))
	cmd.AddCommand(forget(props))
	cmd.AddCommand(serve(props))
	cmd.AddCommand(clear())
	cmd.AddCommand(version())
	cmd.AddCommand(info())

	return cmd
}

func createCore(props *CommandProps) (*core.Core, error) {
	return props.CreateCore(
		viper.GetString("config-path"),
		viper.GetString("database-file"),
	)
}

// privilegeHint prints a hint when err means the scan needs more privileges
func privilegeHint(out io.Writer, err error) {
	if !exception.IsPrivilegeError(err) {
		return
	}

	fmt.Fprintf(
		out,
		"%s needs root privileges to scan the network, try again with sudo\n",
		app_info.NAME,
	)
}
