package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/robgonnella/backupcheck/internal/freshness"
	"github.com/spf13/cobra"
)

const timeFormat = "2006-01-02 15:04"

// creates and returns the "servers" command
func servers(props *CommandProps) *cobra.Command {
	var subnets []string

	cmd := &cobra.Command{
		Use:   "servers",
		Short: "Lists known servers and the freshness of their backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCore, err := createCore(props)

			if err != nil {
				return err
			}

			var statuses []*freshness.Status

			if len(subnets) > 0 {
				statuses, err = appCore.ServerStatusesIn(cmd.Context(), subnets)
			} else {
				statuses, err = appCore.ServerStatuses(cmd.Context())
			}

			if err != nil {
				return err
			}

			if len(statuses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no servers discovered yet, run the discover command first")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Hostname", "IP", "OS", "Open Ports", "Reachable", "Last Scan", "Backup", "Latest Backup")

			for _, status := range statuses {
				srv := status.Server

				latest := "-"

				if status.Latest != nil {
					latest = fmt.Sprintf(
						"%s (%s)",
						status.Latest.Filename,
						status.Latest.LastModified.Format(timeFormat),
					)
				}

				if err := table.Append([]string{
					srv.Hostname,
					srv.IPAddress(),
					srv.DetectedOS(),
					srv.OpenPorts(),
					yesNo(srv.Reachable),
					formatTime(srv.LastScan),
					strings.ToUpper(string(status.Verdict)),
					latest,
				}); err != nil {
					return err
				}
			}

			return table.Render()
		},
	}

	cmd.Flags().StringSliceVar(&subnets, "subnet", nil, "only list servers within these subnets or ips")

	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Local().Format(timeFormat)
}
