package commands

import (
	"errors"
	"os"

	"github.com/robgonnella/backupcheck/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

/**
 * Command to remove database, log and optionally config files
 */
func clear() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clears the database and log files",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			targets := []string{"database-file", "log-file"}

			if all {
				targets = append(targets, "config-path")
			}

			for _, key := range targets {
				file := viper.GetString(key)

				if file == "" {
					continue
				}

				if err := os.Remove(file); err != nil {
					if errors.Is(err, os.ErrNotExist) {
						continue
					}

					return err
				}

				log.Info().Str("file", file).Msg("removed file")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also remove the config file")

	return cmd
}
