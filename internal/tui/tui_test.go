package tui

import (
	"context"
	"database/sql"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarea-dev/tarea/internal/app"
	"github.com/tarea-dev/tarea/internal/config"
	"github.com/tarea-dev/tarea/internal/config/colors"
	"github.com/tarea-dev/tarea/internal/database"
	"github.com/tarea-dev/tarea/internal/testutil"
)

// newTestModel builds a model over a fresh in-memory database.
// Seed through the returned handle, then call reload.
func newTestModel(t *testing.T) (Model, *sql.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	application := app.New(repo)

	cfg := &config.Config{
		KeyMappings: config.DefaultKeyMappings(),
		ColorScheme: *colors.Default(),
	}

	m := New(context.Background(), application, cfg, nil)
	return m, db
}

// keyMsg translates a key name into the message Bubble Tea would send
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// press runs one key through Update and returns the next model
func press(t *testing.T, m Model, key string) Model {
	t.Helper()

	updated, _ := m.Update(keyMsg(key))
	next, ok := updated.(Model)
	require.True(t, ok, "Update returned %T, want Model", updated)
	return next
}

func TestNew_LoadsInitialData(t *testing.T) {
	m, db := newTestModel(t)

	backendID := testutil.CreateTestProject(t, db, "Backend")
	testutil.CreateTestTask(t, db, backendID, "Set up CI")
	testutil.CreateTestTask(t, db, backendID, "Add endpoints")
	testutil.CreateTestProject(t, db, "Frontend")

	m = m.reload()

	assert.Len(t, m.projects, 2)
	assert.Len(t, m.visibleTasks(), 2)
	assert.Equal(t, focusTasks, m.focus)
	assert.False(t, m.connected())
}

func TestNew_EmptyDatabase(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Empty(t, m.projects)
	assert.Empty(t, m.visibleTasks())
	assert.Nil(t, m.Init())
}

func TestReload_ClampsSelectionAfterShrink(t *testing.T) {
	m, db := newTestModel(t)

	projectID := testutil.CreateTestProject(t, db, "Backend")
	testutil.CreateTestTask(t, db, projectID, "one")
	taskID := testutil.CreateTestTask(t, db, projectID, "two")
	m = m.reload()

	// Park the cursor on the last task, then remove it behind the UI's back
	m = press(t, m, "j")
	assert.Equal(t, 1, m.selectedTask)

	_, err := db.ExecContext(context.Background(), "DELETE FROM tasks WHERE id = ?", taskID)
	require.NoError(t, err)

	m = m.reload()
	assert.Equal(t, 0, m.selectedTask)
	assert.Len(t, m.visibleTasks(), 1)
}

func TestRefreshMsg_ReloadsData(t *testing.T) {
	m, db := newTestModel(t)
	assert.Empty(t, m.visibleTasks())

	projectID := testutil.CreateTestProject(t, db, "Backend")
	testutil.CreateTestTask(t, db, projectID, "appeared elsewhere")

	updated, _ := m.Update(refreshMsg{})
	m = updated.(Model)

	require.Len(t, m.visibleTasks(), 1)
	assert.Equal(t, "appeared elsewhere", m.visibleTasks()[0].Title)
}

func TestClearNotice_IgnoresStaleTimer(t *testing.T) {
	m, _ := newTestModel(t)

	noticed, cmd := m.setNotice("first")
	m, _ = toModel(t, noticed, cmd)
	staleID := m.noticeID
	noticed, cmd = m.setNotice("second")
	m, _ = toModel(t, noticed, cmd)

	updated, _ := m.Update(clearNoticeMsg{id: staleID})
	m = updated.(Model)
	assert.Equal(t, "second", m.notice)

	updated, _ = m.Update(clearNoticeMsg{id: m.noticeID})
	m = updated.(Model)
	assert.Empty(t, m.notice)
}

// toModel unwraps the (Model, tea.Cmd) pair helpers return
func toModel(t *testing.T, model tea.Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()

	m, ok := model.(Model)
	require.True(t, ok, "got %T, want Model", model)
	return m, cmd
}
