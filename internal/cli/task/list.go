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
	"github.com/tarea-dev/tarea/internal/views"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, each annotated with the name of its project.

By default the listing is scoped to the project from --project or the
TAREA_PROJECT environment variable; --all lifts that scope. The --status
filter combines with the project filter, so both must match.

Examples:
  # Tasks of the active project
  tarea task list

  # Every task in every project
  tarea task list --all

  # Unfinished work in project 1
  tarea task list --project=1 --status=todo
`,
	}

	// A bad status fails at flag-parse time; unset means no filter
	var status models.Status
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runList(cmd, status)
	}

	// Optional flags
	cmd.Flags().Int("project", 0, "Filter by project ID (falls back to TAREA_PROJECT)")
	cmd.Flags().Var(cli.NewStatusValue(&status), "status", "Filter by status: todo, doing, done")
	cmd.Flags().Bool("all", false, "List tasks across all projects")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, status models.Status) error {
	ctx := cmd.Context()

	listAll, _ := cmd.Flags().GetBool("all")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	var projectID int
	if !listAll {
		var err error
		projectID, err = cli.GetProjectID(cmd)
		if err != nil {
			if fmtErr := formatter.Error("INVALID_PROJECT", err.Error()); fmtErr != nil {
				log.Printf("Error formatting error message: %v", fmtErr)
			}
			return err
		}
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

	// Fetch the filtered tasks plus all projects for name annotation
	tasks, err := cliInstance.App.TaskService.ListTasks(ctx, taskservice.Filter{
		ProjectID: projectID,
		Status:    status,
	})
	if err != nil {
		if fmtErr := formatter.Error("TASK_FETCH_ERROR", err.Error()); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return err
	}

	projects, err := cliInstance.App.ProjectService.GetAllProjects(ctx)
	if err != nil {
		if fmtErr := formatter.Error("PROJECT_FETCH_ERROR", err.Error()); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return err
	}

	// The service already filtered; the view only adds project names
	rows := views.TaskList(projects, tasks, views.Filters{})

	// Output in appropriate format
	if quietMode {
		for _, row := range rows {
			fmt.Printf("%d\n", row.ID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"tasks":   rows,
		})
	}

	// Human-readable output
	if len(rows) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Printf("Found %d tasks:\n\n", len(rows))
	for _, row := range rows {
		fmt.Printf("  [%d] %s (%s, %s)\n", row.ID, row.Title, row.ProjectName, row.Status)
	}

	return nil
}
