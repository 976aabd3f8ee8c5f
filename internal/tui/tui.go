// Package tui implements the interactive two-pane terminal interface:
// projects on the left, tasks on the right, with project and status
// filters along the top. All reads and mutations go through the service
// layer; rendering goes through the views package so the TUI shows
// exactly what the view models contain.
package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tarea-dev/tarea/internal/app"
	"github.com/tarea-dev/tarea/internal/config"
	"github.com/tarea-dev/tarea/internal/events"
	"github.com/tarea-dev/tarea/internal/models"
	"github.com/tarea-dev/tarea/internal/views"
)

// dbTimeout bounds every database call made from the UI loop
const dbTimeout = 3 * time.Second

// noticeDuration is how long a transient footer notice stays visible
const noticeDuration = 3 * time.Second

// focus identifies which pane receives navigation keys
type focus int

const (
	focusProjects focus = iota
	focusTasks
)

// mode identifies what the keyboard is currently driving
type mode int

const (
	modeNormal mode = iota
	modeProjectForm
	modeTaskForm
	modeConfirm
	modeHelp
)

// confirmKind identifies which destructive action is awaiting a y/n
type confirmKind int

const (
	confirmDeleteTask confirmKind = iota
	confirmDeleteProject
)

// confirmState holds a pending destructive action
type confirmState struct {
	kind   confirmKind
	id     int
	prompt string
}

// refreshMsg arrives when the daemon reports a database change from
// another session
type refreshMsg struct {
	event events.Event
}

// clearNoticeMsg expires the footer notice it was scheduled for
type clearNoticeMsg struct {
	id int
}

// Model is the complete state of the TUI
type Model struct {
	ctx context.Context
	app *app.App
	cfg *config.Config

	keys   config.KeyMappings
	styles views.Styles

	eventClient events.EventPublisher
	eventChan   <-chan events.Event

	projects []*models.Project
	tasks    []*models.Task

	// Filters narrow the task pane; option indexes drive the filter bars.
	// Index 0 is always the "All" sentinel.
	filters       views.Filters
	projectOption int
	statusOption  int

	focus           focus
	mode            mode
	selectedProject int
	selectedTask    int

	form    formState
	confirm confirmState

	width  int
	height int

	notice   string
	noticeID int
	err      error
}

// New builds the TUI model and performs the initial data load. A nil
// event client is fine; the UI runs without live updates.
func New(ctx context.Context, application *app.App, cfg *config.Config, eventClient events.EventPublisher) Model {
	m := Model{
		ctx:         ctx,
		app:         application,
		cfg:         cfg,
		keys:        cfg.KeyMappings,
		styles:      views.NewStyles(cfg.ColorScheme),
		eventClient: eventClient,
		focus:       focusTasks,
	}

	if eventClient != nil {
		ch, err := eventClient.Listen(ctx)
		if err != nil {
			slog.Warn("failed to start event listener", "error", err)
		} else {
			m.eventChan = ch
		}
	}

	return m.reload()
}

// Init starts the daemon event loop when one is connected
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// connected reports whether live updates are flowing
func (m Model) connected() bool {
	return m.eventChan != nil
}

// dbContext derives a bounded context for a database call
func (m Model) dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, dbTimeout)
}

// reload replaces the project and task state from the database and
// clamps the selection to the new data
func (m Model) reload() Model {
	ctx, cancel := m.dbContext()
	defer cancel()

	projects, err := m.app.ProjectService.GetAllProjects(ctx)
	if err != nil {
		slog.Error("error reloading projects", "error", err)
		m.err = err
		return m
	}

	tasks, err := m.app.TaskService.GetAllTasks(ctx)
	if err != nil {
		slog.Error("error reloading tasks", "error", err)
		m.err = err
		return m
	}

	m.projects = projects
	m.tasks = tasks
	m.err = nil
	return m.clampSelection()
}

// visibleTasks returns the task rows the task pane is showing, filters
// applied and project names resolved
func (m Model) visibleTasks() []views.TaskRow {
	return views.TaskList(m.projects, m.tasks, m.filters)
}

// selectedTaskRow returns the task row under the cursor, if any
func (m Model) selectedTaskRow() (views.TaskRow, bool) {
	rows := m.visibleTasks()
	if len(rows) == 0 || m.selectedTask >= len(rows) {
		return views.TaskRow{}, false
	}
	return rows[m.selectedTask], true
}

// selectedProjectRow returns the project under the cursor, if any
func (m Model) selectedProjectRow() (*models.Project, bool) {
	if len(m.projects) == 0 || m.selectedProject >= len(m.projects) {
		return nil, false
	}
	return m.projects[m.selectedProject], true
}

// clampSelection keeps both cursors inside their lists after the data
// or the filters change
func (m Model) clampSelection() Model {
	if m.selectedProject >= len(m.projects) {
		m.selectedProject = len(m.projects) - 1
	}
	if m.selectedProject < 0 {
		m.selectedProject = 0
	}

	visible := len(m.visibleTasks())
	if m.selectedTask >= visible {
		m.selectedTask = visible - 1
	}
	if m.selectedTask < 0 {
		m.selectedTask = 0
	}
	return m
}

// waitForEvent returns a command that blocks on the next daemon event.
// Re-issued after every received event to keep the loop going.
func (m Model) waitForEvent() tea.Cmd {
	if m.eventChan == nil {
		return nil
	}

	ch := m.eventChan
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case event, ok := <-ch:
			if !ok {
				// Channel closed, connection lost
				return nil
			}
			return refreshMsg{event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

// setNotice shows a transient message in the footer and schedules its
// expiry. The id guards against an older timer clearing a newer notice.
func (m Model) setNotice(text string) (Model, tea.Cmd) {
	m.notice = text
	m.noticeID++
	id := m.noticeID
	return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}
