package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// creates and returns the "files" command
func files(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Lists the backup files found by the last inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCore, err := createCore(props)

			if err != nil {
				return err
			}

			result, err := appCore.Files(cmd.Context())

			if err != nil {
				return err
			}

			if len(result) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no files in inventory, run the inventory command first")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Filename", "Path", "Last Modified", "Size")

			for _, f := range result {
				if err := table.Append([]string{
					f.Filename,
					f.Filepath,
					formatTime(f.LastModified),
					strconv.FormatInt(f.Size, 10),
				}); err != nil {
					return err
				}
			}

			return table.Render()
		},
	}

	return cmd
}
