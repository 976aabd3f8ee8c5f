package cli

import (
	"database/sql"
	"testing"

	"github.com/tarea-dev/tarea/internal/app"
	"github.com/tarea-dev/tarea/internal/database"
	"github.com/tarea-dev/tarea/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App
// instance. Event publishing is left unconfigured; a command's mutations
// succeed without a daemon, which is also the production fallback.
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	appInstance := app.New(database.NewRepository(db))

	return db, appInstance
}
