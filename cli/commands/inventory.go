package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// creates and returns the "inventory" command
func inventoryCmd(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Rebuilds the backup file inventory from the configured directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCore, err := createCore(props)

			if err != nil {
				return err
			}

			report, err := appCore.ScanDirectories(cmd.Context())

			if err != nil {
				return err
			}

			dirs := make([]string, 0, len(report.Directories))

			for dir := range report.Directories {
				dirs = append(dirs, dir)
			}

			sort.Strings(dirs)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Directory", "Files")

			for _, dir := range dirs {
				if err := table.Append([]string{dir, strconv.Itoa(report.Directories[dir])}); err != nil {
					return err
				}
			}

			if err := table.Render(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "found %d files\n", report.Total)

			return nil
		},
	}

	return cmd
}
