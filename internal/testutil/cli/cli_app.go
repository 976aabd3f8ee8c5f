// Package cli provides test helpers for exercising cobra commands
// against an injected in-memory app. It lives apart from testutil so
// that service tests importing testutil do not pull in the app package.
package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/tarea-dev/tarea/internal/app"
	"github.com/tarea-dev/tarea/internal/testutil"
)

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app is injected through the command context, where command
// handlers pick it up instead of opening the real database.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	cmd.SetArgs(args)

	ctxWithApp := context.WithValue(ctx, testutil.TestAppKey, testApp)
	cmd.SetContext(ctxWithApp)

	// Silence usage output so assertions see only the command's output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})

	return output, executeErr
}
