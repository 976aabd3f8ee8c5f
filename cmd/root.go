package cmd

import (
	"github.com/spf13/cobra"

	clidaemon "github.com/tarea-dev/tarea/internal/cli/daemon"
	"github.com/tarea-dev/tarea/internal/cli/guide"
	"github.com/tarea-dev/tarea/internal/cli/project"
	"github.com/tarea-dev/tarea/internal/cli/task"
	"github.com/tarea-dev/tarea/internal/cli/use"
	"github.com/tarea-dev/tarea/internal/launcher"
)

var rootCmd = &cobra.Command{
	Use:   "tarea",
	Short: "Tarea - a terminal-based project and task tracker",
	Long: `Tarea is a terminal-based tracker for projects and their tasks.

Run with no arguments to open the interactive TUI, or use the
subcommands for scripting and agent workflows.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Once flags parsed cleanly, runtime failures are reported by the
		// command itself; keep cobra from printing them a second time.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return launcher.Launch()
	},
}

func init() {
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(guide.GuideCmd())
	rootCmd.AddCommand(clidaemon.DaemonCmd())
}

func Execute() error {
	return rootCmd.Execute()
}
