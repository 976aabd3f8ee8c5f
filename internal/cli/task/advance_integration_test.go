package task

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tarea-dev/tarea/internal/testutil/cli"
)

func TestAdvanceTask_Positive(t *testing.T) {
	// Setup test DB and App
	db, app := cli.SetupCLITest(t)
	defer func() {
		_ = db.Close()
	}()

	projectID := cli.CreateTestProject(t, db, "Test Project")

	getStatus := func(t *testing.T, taskID int) string {
		t.Helper()
		var status string
		err := db.QueryRowContext(context.Background(),
			"SELECT status FROM tasks WHERE id = ?", taskID).Scan(&status)
		assert.NoError(t, err)
		return status
	}

	t.Run("Advance cycles through all statuses", func(t *testing.T) {
		taskID := cli.CreateTestTask(t, db, projectID, "Cycling task")

		steps := []string{"doing", "done", "todo"}
		for _, want := range steps {
			cmd := AdvanceCmd()

			_, err := cli.ExecuteCLICommand(t, app, cmd,
				[]string{strconv.Itoa(taskID), "--quiet"})

			assert.NoError(t, err)
			assert.Equal(t, want, getStatus(t, taskID))
		}
	})

	t.Run("Unknown status resets to todo", func(t *testing.T) {
		// Seed a status the services would never write
		taskID := cli.CreateTestTaskWithStatus(t, db, projectID, "Legacy task", "blocked")

		cmd := AdvanceCmd()

		_, err := cli.ExecuteCLICommand(t, app, cmd,
			[]string{strconv.Itoa(taskID), "--quiet"})

		assert.NoError(t, err)
		assert.Equal(t, "todo", getStatus(t, taskID))
	})

	t.Run("Advance JSON mode reports the transition", func(t *testing.T) {
		taskID := cli.CreateTestTaskWithStatus(t, db, projectID, "JSON task", "doing")

		cmd := AdvanceCmd()

		output, err := cli.ExecuteCLICommand(t, app, cmd,
			[]string{strconv.Itoa(taskID), "--json"})

		assert.NoError(t, err)

		result := cli.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		assert.Equal(t, float64(taskID), result["task_id"])
		assert.Equal(t, "doing", result["from_status"])
		assert.Equal(t, "done", result["to_status"])
	})

	t.Run("Advance human output names both statuses", func(t *testing.T) {
		taskID := cli.CreateTestTask(t, db, projectID, "Verbose task")

		cmd := AdvanceCmd()

		output, err := cli.ExecuteCLICommand(t, app, cmd,
			[]string{strconv.Itoa(taskID)})

		assert.NoError(t, err)
		assert.Contains(t, output, "advanced from 'todo' to 'doing'")
	})
}

func TestAdvanceTask_Negative(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	defer func() {
		_ = db.Close()
	}()

	t.Run("Advance non-existent task", func(t *testing.T) {
		cmd := AdvanceCmd()

		_, err := cli.ExecuteCLICommand(t, app, cmd, []string{"999", "--quiet"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "task not found")
	})

	t.Run("Advance with non-numeric ID", func(t *testing.T) {
		cmd := AdvanceCmd()

		_, err := cli.ExecuteCLICommand(t, app, cmd, []string{"abc", "--quiet"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid task ID")
	})
}
