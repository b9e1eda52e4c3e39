package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// creates and returns the "discover" command
func discover(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Sweeps the configured subnets and updates the server registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCore, err := createCore(props)

			if err != nil {
				return err
			}

			report, err := appCore.DiscoverServers(cmd.Context())

			if err != nil {
				privilegeHint(cmd.ErrOrStderr(), err)
				return err
			}

			if report.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No servers found during scan")
			} else {
				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header("Hostname", "IP", "OS", "Open Ports")

				for _, srv := range report.Servers {
					if err := table.Append([]string{
						srv.Hostname,
						srv.IPAddress(),
						srv.DetectedOS(),
						srv.OpenPorts(),
					}); err != nil {
						return err
					}
				}

				if err := table.Render(); err != nil {
					return err
				}
			}

			failed := make([]string, 0, len(report.FailedSubnets))

			for subnet := range report.FailedSubnets {
				failed = append(failed, subnet)
			}

			sort.Strings(failed)

			for _, subnet := range failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "subnet %s failed: %s\n", subnet, report.FailedSubnets[subnet])
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"run %s: %d servers in %s\n",
				report.ID,
				len(report.Servers),
				report.Duration().Round(time.Millisecond),
			)

			return nil
		},
	}

	return cmd
}
