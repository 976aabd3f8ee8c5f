package task

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tarea-dev/tarea/internal/cli"
	"github.com/tarea-dev/tarea/internal/cli/styles"
	"github.com/tarea-dev/tarea/internal/config"
	"github.com/tarea-dev/tarea/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show task details",
		Long:  "Display all details of a task including its project, status, and metadata.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	// Flags
	cmd.Flags().Int("id", 0, "Task ID (can also be provided as positional argument)")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Parse task ID from positional arg or flag
	var taskID int
	if len(args) > 0 {
		if _, err := fmt.Sscanf(args[0], "%d", &taskID); err != nil {
			taskID = 0
		}
	} else {
		taskID, _ = cmd.Flags().GetInt("id")
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	// Validate task ID
	if taskID <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			"task ID must be a positive integer",
			"Usage: tarea task show <id> or tarea task show --id=<id>"); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		os.Exit(cli.ExitUsage)
		return nil
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

	// Get task details
	task, err := cliInstance.App.TaskService.GetTaskByID(ctx, taskID)
	if err != nil {
		if fmtErr := formatter.Error("TASK_NOT_FOUND", fmt.Sprintf("task %d not found", taskID)); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return err
	}

	// The owning project may be gone if it was deleted concurrently
	projectName := "Unknown"
	if project, err := cliInstance.App.ProjectService.GetProjectByID(ctx, task.ProjectID); err == nil {
		projectName = project.Name
	}

	// Output in appropriate format
	if quietMode {
		fmt.Printf("%d\n", task.ID)
		return nil
	}

	if jsonOutput {
		return outputJSON(task, projectName)
	}

	// Load config for color scheme
	cfg, err := config.Load()
	if err != nil {
		// Fallback to default colors if config fails to load
		cfg = &config.Config{
			ColorScheme: config.DefaultColorScheme(),
		}
	}
	styles.Init(cfg.ColorScheme)

	outputHuman(task, projectName)
	return nil
}

func outputJSON(task *models.Task, projectName string) error {
	return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
		"success": true,
		"task": map[string]any{
			"id":     task.ID,
			"title":  task.Title,
			"status": task.Status,
			"project": map[string]any{
				"id":   task.ProjectID,
				"name": projectName,
			},
			"created_at": task.CreatedAt,
		},
	})
}

func outputHuman(task *models.Task, projectName string) {
	var content strings.Builder

	// Header
	header := styles.TitleStyle.Render(fmt.Sprintf("#%d: %s", task.ID, task.Title))
	content.WriteString(header)
	content.WriteString("\n\n")

	// Metadata
	content.WriteString(fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render("Project:"),
		styles.ValueStyle.Render(projectName),
	))
	content.WriteString(fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render("Status:"),
		styles.RenderStatus(task.Status),
	))

	// Timestamps
	if !task.CreatedAt.IsZero() {
		content.WriteString(fmt.Sprintf("%s %s\n",
			styles.LabelStyle.Render("Created:"),
			styles.SubtitleStyle.Render(task.CreatedAt.Format("Jan 2, 2006 3:04 PM")),
		))
	}

	// Render the card
	fmt.Println(styles.RenderCard(content.String()))
}
