package commands

import (
	"fmt"
	"os/exec"

	app_info "github.com/robgonnella/backupcheck/internal/app-info"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func info() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print detailed app info",
		Run: func(cmd *cobra.Command, args []string) {
			nmapCmd := exec.Command("nmap", "--version")
			nmapInfo, err := nmapCmd.Output()

			if err != nil {
				nmapInfo = []byte("nmap not found in PATH\n")
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s: %s\n\nconfig: %s\ndatabase: %s\nlog: %s\n\n%s",
				app_info.NAME,
				app_info.VERSION,
				viper.GetString("config-path"),
				viper.GetString("database-file"),
				viper.GetString("log-file"),
				nmapInfo,
			)
		},
	}

	return cmd
}
