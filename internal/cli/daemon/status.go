package daemon

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tarea-dev/tarea/internal/cli"
	"github.com/tarea-dev/tarea/internal/config"
	"github.com/tarea-dev/tarea/internal/events"
)

// StatusCmd returns the daemon status subcommand
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon connection and broadcast counters",
		Long: `Query the running daemon over its socket and report uptime,
client counts, and how many events it has broadcast or dropped.

Examples:
  tarea daemon status
  tarea daemon status --json
`,
		RunE: runStatus,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (active client count only)")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	socketPath := ""
	if cfg, err := config.Load(); err == nil {
		socketPath = cfg.SocketPath()
	}
	if socketPath == "" {
		var err error
		socketPath, err = events.DefaultSocketPath()
		if err != nil {
			if fmtErr := formatter.Error("SOCKET_PATH_ERROR", err.Error()); fmtErr != nil {
				log.Printf("Error formatting error message: %v", fmtErr)
			}
			return err
		}
	}

	status, err := events.RequestStatus(ctx, socketPath)
	if err != nil {
		daemonErr := events.ClassifyDaemonError(err)
		if fmtErr := formatter.ErrorWithSuggestion("DAEMON_UNAVAILABLE",
			daemonErr.Message, daemonErr.Hint); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return err
	}

	// Output in appropriate format
	if quietMode {
		fmt.Printf("%d\n", status.ActiveClients)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"status":  status,
		})
	}

	// Human-readable output
	fmt.Printf("Daemon running (socket: %s)\n\n", socketPath)
	fmt.Printf("  Uptime:           %s\n", status.Uptime)
	fmt.Printf("  Active clients:   %d\n", status.ActiveClients)
	fmt.Printf("  Total clients:    %d\n", status.TotalClients)
	fmt.Printf("  Events broadcast: %d\n", status.EventsBroadcast)
	fmt.Printf("  Events dropped:   %d\n", status.EventsDropped)

	return nil
}
