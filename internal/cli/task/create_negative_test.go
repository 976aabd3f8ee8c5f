package task

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tarea-dev/tarea/internal/testutil/cli"
)

func TestCreateTask_Negative(t *testing.T) {
	// Setup test DB and App
	db, app := cli.SetupCLITest(t)
	defer func() {
		_ = db.Close()
	}()

	// Create test project
	projectID := cli.CreateTestProject(t, db, "Test Project")

	t.Run("Create task without a project", func(t *testing.T) {
		t.Setenv("TAREA_PROJECT", "")

		cmd := CreateCmd()

		_, err := cli.ExecuteCLICommand(t, app, cmd,
			[]string{"--title", "Orphan Task", "--quiet"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no project specified")
	})

	t.Run("Create task in non-existent project", func(t *testing.T) {
		cmd := CreateCmd()

		_, err := cli.ExecuteCLICommand(t, app, cmd,
			[]string{"--project", "999", "--title", "Lost Task", "--quiet"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "project not found")
	})

	t.Run("Create task with whitespace-only title", func(t *testing.T) {
		cmd := CreateCmd()

		_, err := cli.ExecuteCLICommand(t, app, cmd, []string{
			"--project", fmt.Sprintf("%d", projectID),
			"--title", "   ",
			"--quiet",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "task title cannot be empty")
	})

	t.Run("Create task with invalid status", func(t *testing.T) {
		cmd := CreateCmd()

		_, err := cli.ExecuteCLICommand(t, app, cmd, []string{
			"--project", fmt.Sprintf("%d", projectID),
			"--title", "Bad Status Task",
			"--status", "blocked",
			"--quiet",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid status 'blocked'")
	})
}
