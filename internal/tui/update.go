package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tarea-dev/tarea/internal/models"
	"github.com/tarea-dev/tarea/internal/views"
)

// Update routes messages by mode. Required by tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		// Another session changed the database; reload and keep listening
		m = m.reload()
		return m, m.waitForEvent()

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case modeHelp:
			return m.updateHelp(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeProjectForm, modeTaskForm:
			return m.updateForm(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	// Anything else (cursor blinks and the like) belongs to the open form
	if m.mode == modeProjectForm || m.mode == modeTaskForm {
		var cmd tea.Cmd
		m.form.input, cmd = m.form.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// updateHelp closes the help overlay on any of the usual dismiss keys
func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.keys.ShowHelp, m.keys.CancelForm, m.keys.Quit:
		m.mode = modeNormal
	}
	return m, nil
}

// updateConfirm resolves a pending destructive action
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeNormal
		switch m.confirm.kind {
		case confirmDeleteTask:
			return m.deleteTask(m.confirm.id)
		case confirmDeleteProject:
			return m.deleteProject(m.confirm.id)
		}
	case "n", "N", m.keys.CancelForm:
		m.mode = modeNormal
	}
	return m, nil
}

// updateNormal handles browsing-mode keys
func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.keys.Quit:
		return m, tea.Quit

	case m.keys.ShowHelp:
		m.mode = modeHelp
		return m, nil

	case m.keys.Refresh:
		m = m.reload()
		return m.setNotice("Refreshed")

	case m.keys.FocusProjects:
		m.focus = focusProjects
		return m, nil

	case m.keys.FocusTasks:
		m.focus = focusTasks
		return m, nil

	case m.keys.NextItem:
		return m.moveCursor(1), nil

	case m.keys.PrevItem:
		return m.moveCursor(-1), nil

	case m.keys.CycleProject:
		return m.cycleProjectFilter(), nil

	case m.keys.CycleStatus:
		return m.cycleStatusFilter(), nil

	case m.keys.AdvanceTask:
		return m.advanceSelected()

	case m.keys.AddProject:
		return m.openProjectForm()

	case m.keys.AddTask:
		return m.openTaskForm()

	case m.keys.DeleteTask:
		return m.confirmDeleteTask()

	case m.keys.DeleteProject:
		return m.confirmDeleteProject()
	}

	return m, nil
}

// moveCursor moves the selection in the focused pane
func (m Model) moveCursor(delta int) Model {
	if m.focus == focusProjects {
		m.selectedProject += delta
	} else {
		m.selectedTask += delta
	}
	return m.clampSelection()
}

// cycleProjectFilter advances the project filter bar one step:
// All -> first project -> ... -> last project -> All
func (m Model) cycleProjectFilter() Model {
	m.projectOption = (m.projectOption + 1) % (len(m.projects) + 1)
	if m.projectOption == 0 {
		m.filters.ProjectID = 0
	} else {
		m.filters.ProjectID = m.projects[m.projectOption-1].ID
	}
	m.selectedTask = 0

	// Narrow the daemon subscription to the filtered project so this
	// session only reloads for changes it can see
	if m.eventClient != nil {
		if err := m.eventClient.Subscribe(m.filters.ProjectID); err != nil {
			slog.Warn("failed to update daemon subscription", "error", err)
		}
	}
	return m.clampSelection()
}

// cycleStatusFilter advances the status filter bar one step:
// All -> todo -> doing -> done -> All
func (m Model) cycleStatusFilter() Model {
	m.statusOption = (m.statusOption + 1) % (len(models.Statuses) + 1)
	if m.statusOption == 0 {
		m.filters.Status = ""
	} else {
		m.filters.Status = models.Statuses[m.statusOption-1]
	}
	m.selectedTask = 0
	return m.clampSelection()
}

// advanceSelected moves the task under the cursor one step through the
// status cycle
func (m Model) advanceSelected() (tea.Model, tea.Cmd) {
	row, ok := m.selectedTaskRow()
	if !ok {
		return m, nil
	}

	ctx, cancel := m.dbContext()
	defer cancel()

	task, err := m.app.TaskService.AdvanceTask(ctx, row.ID)
	if err != nil {
		return m.withError("advance task", err), nil
	}

	m = m.reload()
	return m.setNotice(fmt.Sprintf("Task %d is now %s", task.ID, task.Status))
}

// confirmDeleteTask stages deletion of the task under the cursor
func (m Model) confirmDeleteTask() (tea.Model, tea.Cmd) {
	row, ok := m.selectedTaskRow()
	if !ok {
		return m, nil
	}

	m.mode = modeConfirm
	m.confirm = confirmState{
		kind:   confirmDeleteTask,
		id:     row.ID,
		prompt: fmt.Sprintf("Delete task #%d: '%s'? (y/n)", row.ID, row.Title),
	}
	return m, nil
}

// confirmDeleteProject stages deletion of the project under the cursor,
// spelling out how many tasks the cascade will take with it
func (m Model) confirmDeleteProject() (tea.Model, tea.Cmd) {
	project, ok := m.selectedProjectRow()
	if !ok {
		return m, nil
	}

	ctx, cancel := m.dbContext()
	defer cancel()

	taskCount, err := m.app.ProjectService.GetTaskCount(ctx, project.ID)
	if err != nil {
		return m.withError("count tasks", err), nil
	}

	m.mode = modeConfirm
	m.confirm = confirmState{
		kind:   confirmDeleteProject,
		id:     project.ID,
		prompt: fmt.Sprintf("Delete project #%d: '%s' and its %d tasks? (y/n)", project.ID, project.Name, taskCount),
	}
	return m, nil
}

// deleteTask removes one task
func (m Model) deleteTask(id int) (tea.Model, tea.Cmd) {
	ctx, cancel := m.dbContext()
	defer cancel()

	if err := m.app.TaskService.DeleteTask(ctx, id); err != nil {
		return m.withError("delete task", err), nil
	}

	m = m.reload()
	return m.setNotice(fmt.Sprintf("Task %d deleted", id))
}

// deleteProject removes a project and, transactionally, all of its tasks
func (m Model) deleteProject(id int) (tea.Model, tea.Cmd) {
	ctx, cancel := m.dbContext()
	defer cancel()

	if err := m.app.ProjectService.DeleteProject(ctx, id); err != nil {
		return m.withError("delete project", err), nil
	}

	// The deleted project may have been the filtered one; reset the
	// filter rather than pointing it at a ghost
	if m.filters.ProjectID == id {
		m.filters = views.Filters{Status: m.filters.Status}
		m.projectOption = 0
	}

	m = m.reload()
	return m.setNotice(fmt.Sprintf("Project %d deleted", id))
}

// withError records a failed operation for the footer and the log
func (m Model) withError(operation string, err error) Model {
	slog.Error("tui operation failed", "operation", operation, "error", err)
	m.err = err
	return m
}
