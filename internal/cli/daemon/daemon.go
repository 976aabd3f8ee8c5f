// Package daemon holds cli commands for inspecting the event daemon.
package daemon

import (
	"github.com/spf13/cobra"
)

// DaemonCmd returns the daemon parent command
func DaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Inspect the event daemon",
	}

	cmd.AddCommand(StatusCmd())

	return cmd
}
