package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/robgonnella/backupcheck/cli/commands"
	app_info "github.com/robgonnella/backupcheck/internal/app-info"
	"github.com/robgonnella/backupcheck/internal/core"
	"github.com/robgonnella/backupcheck/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

/**
 * Main entry point for all commands
 * Here we setup environment config via viper
 */

func setRunTimeConfig() error {
	userHomeDir, err := os.UserHomeDir()

	if err != nil {
		return err
	}

	configDir := path.Join(userHomeDir, ".config", app_info.NAME)

	if err := os.MkdirAll(configDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	logFile := path.Join(configDir, app_info.NAME+".log")

	configFile := path.Join(configDir, "config.json")

	dbFile := path.Join(configDir, "db")

	// BACKUPCHECK_CONFIG_PATH etc. override the defaults
	viper.SetEnvPrefix(strings.ToUpper(app_info.NAME))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// share run-time config globally using viper
	viper.Set("config-dir", configDir)
	viper.SetDefault("log-file", logFile)
	viper.SetDefault("config-path", configFile)
	viper.SetDefault("database-file", dbFile)

	return nil
}

// logs go to the console and to the log file
func setLogOutput() (*os.File, error) {
	f, err := os.OpenFile(
		viper.GetString("log-file"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)

	if err != nil {
		return nil, err
	}

	logger.GlobalSetOutput(zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: os.Stderr},
		f,
	))

	return f, nil
}

// Entry point for the cli
func main() {
	log := logger.New()

	err := setRunTimeConfig()

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	logFile, err := setLogOutput()

	if err != nil {
		log.Warn().Err(err).Msg("logging to console only")
	} else {
		defer logFile.Close()
	}

	// Get the "root" cobra cli command
	cmd := commands.Root(&commands.CommandProps{
		CreateCore: core.CreateNewAppCore,
	})

	// execute the cobra command and exit with error code if necessary
	err = cmd.ExecuteContext(context.Background())

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		logFile.Close()
		os.Exit(1)
	}
}
