package task

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tarea-dev/tarea/internal/cli"
)

// AdvanceCmd returns the task advance subcommand
func AdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance <task_id>",
		Short: "Advance a task to its next status",
		Long: `Advance a task one step through the status cycle.

The cycle is todo, then doing, then done, then back to todo. A task
carrying an unrecognized status is reset to todo.

Examples:
  # Move task 42 one step forward
  tarea task advance 42

  # JSON output for agents
  tarea task advance 42 --json

  # Quiet mode for bash capture
  tarea task advance 42 --quiet
`,
		RunE: runAdvance,
		Args: cobra.ExactArgs(1),
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runAdvance(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Parse task ID from positional argument
	taskID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid task ID: %s", args[0])
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	// Initialize CLI
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	// Get the task before the move so the output can show the transition
	before, err := cliInstance.App.TaskService.GetTaskByID(ctx, taskID)
	if err != nil {
		if fmtErr := formatter.Error("TASK_NOT_FOUND", fmt.Sprintf("task %d not found", taskID)); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return err
	}
	fromStatus := before.Status

	// Advance the task
	after, err := cliInstance.App.TaskService.AdvanceTask(ctx, taskID)
	if err != nil {
		if fmtErr := formatter.Error("ADVANCE_ERROR", err.Error()); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return err
	}

	// Output success
	if quietMode {
		fmt.Printf("%d\n", taskID)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":     true,
			"task_id":     taskID,
			"from_status": fromStatus,
			"to_status":   after.Status,
		})
	}

	// Human-readable output
	fmt.Printf("Task %d advanced from '%s' to '%s'\n", taskID, fromStatus, after.Status)
	return nil
}
