package cli

import (
	"context"

	"github.com/tarea-dev/tarea/internal/app"
	"github.com/tarea-dev/tarea/internal/testutil"
)

// GetCLIFromContext returns a CLI backed by the app stored in ctx, if one
// is present, and falls back to NewCLI otherwise. Tests inject their app
// under testutil.TestAppKey so commands run against an in-memory database
// instead of the user's; commands must therefore pass cmd.Context() here
// rather than constructing their own context.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if testApp, ok := ctx.Value(testutil.TestAppKey).(*app.App); ok {
		return &CLI{App: testApp, ctx: ctx}, nil
	}
	return NewCLI(ctx)
}
