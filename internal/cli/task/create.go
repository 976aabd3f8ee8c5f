// Package task holds all cli commands related to tasks
//
// e.g., tarea task ...
package task

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tarea-dev/tarea/internal/cli"
	"github.com/tarea-dev/tarea/internal/models"
	taskservice "github.com/tarea-dev/tarea/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task in a project.

The project comes from --project or, when the flag is omitted, from the
TAREA_PROJECT environment variable set by 'tarea use project'. The title
is kept exactly as given; it only has to contain something other than
whitespace. New tasks start in 'todo' unless --status says otherwise.

Examples:
  # Simple task (human-readable output)
  tarea task create --title="Fix login bug" --project=1

  # Against the active project set by 'tarea use project'
  tarea task create --title="Fix login bug"

  # Start directly in another status
  tarea task create --title="Ship release" --project=1 --status=doing

  # Quiet mode for bash capture
  TASK_ID=$(tarea task create --title="Fix login bug" --project=1 --quiet)
`,
	}

	// A bad status fails at flag-parse time; unset means the default
	var status models.Status
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, status)
	}

	// Required flags
	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	// Optional flags
	cmd.Flags().Int("project", 0, "Project ID (falls back to TAREA_PROJECT)")
	cmd.Flags().Var(cli.NewStatusValue(&status), "status", "Initial status: todo, doing, done (default todo)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, status models.Status) error {
	ctx := cmd.Context()

	taskTitle, _ := cmd.Flags().GetString("title")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	// Resolve the project before touching the database
	projectID, err := cli.GetProjectID(cmd)
	if err != nil {
		if fmtErr := formatter.Error("INVALID_PROJECT", err.Error()); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return err
	}
	if projectID == 0 {
		if fmtErr := formatter.ErrorWithSuggestion("NO_PROJECT",
			"no project specified",
			"pass --project=<id> or run 'eval $(tarea use project --id=<id>)'"); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return fmt.Errorf("no project specified")
	}

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

	// Confirm the project exists so the error names the real problem
	project, err := cliInstance.App.ProjectService.GetProjectByID(ctx, projectID)
	if err != nil {
		if fmtErr := formatter.Error("PROJECT_NOT_FOUND", fmt.Sprintf("project %d not found", projectID)); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return err
	}

	// Create task
	task, err := cliInstance.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		ProjectID: projectID,
		Title:     taskTitle,
		Status:    status,
	})
	if err != nil {
		if fmtErr := formatter.Error("TASK_CREATE_ERROR", err.Error()); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return err
	}

	// Output based on mode (JSON/Quiet/Human)
	if quietMode {
		fmt.Printf("%d\n", task.ID)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"task": map[string]interface{}{
				"id":         task.ID,
				"title":      task.Title,
				"status":     task.Status,
				"project":    map[string]interface{}{"id": project.ID, "name": project.Name},
				"created_at": task.CreatedAt,
			},
		})
	}

	// Human-readable output
	fmt.Printf("✓ Task '%s' created successfully (ID: %d)\n", task.Title, task.ID)
	fmt.Printf("  Project: %s\n", project.Name)
	fmt.Printf("  Status: %s\n", task.Status)

	return nil
}
