package commands

import (
	"github.com/spf13/cobra"
)

// creates and returns the "forget" command
func forget(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forget <hostname>...",
		Short: "Removes servers from the registry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCore, err := createCore(props)

			if err != nil {
				return err
			}

			for _, hostname := range args {
				if err := appCore.RemoveServer(cmd.Context(), hostname); err != nil {
					return err
				}
			}

			return nil
		},
	}

	return cmd
}
