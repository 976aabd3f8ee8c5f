package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tarea-dev/tarea/internal/models"
	"github.com/tarea-dev/tarea/internal/views"
)

// View renders the whole screen. Required by tea.Model.
func (m Model) View() string {
	w := m.width
	if w <= 0 {
		w = 100
	}
	h := m.height
	if h <= 0 {
		h = 30
	}

	switch m.mode {
	case modeHelp:
		return m.overlay(m.helpView(), w, h)
	case modeProjectForm, modeTaskForm:
		return m.overlay(m.formView(), w, h)
	case modeConfirm:
		return m.overlay(m.confirmView(), w, h)
	}

	header := m.headerView(w)
	projectBar := "Project: " + views.RenderOptions(views.ProjectOptions(m.projects, true), m.projectOption, m.styles)
	statusBar := "Status:  " + views.RenderOptions(statusFilterOptions(), m.statusOption, m.styles)

	// Three lines above the panes, one footer line below, two border rows
	paneHeight := h - 6
	if paneHeight < 4 {
		paneHeight = 4
	}

	leftWidth := w / 3
	if leftWidth < 20 {
		leftWidth = 20
	}
	rightWidth := w - leftWidth
	if rightWidth < 20 {
		rightWidth = 20
	}

	left := m.projectPane(leftWidth-2, paneHeight)
	right := m.taskPane(rightWidth-2, paneHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		projectBar,
		statusBar,
		body,
		m.footerView(),
	)
}

// headerView renders the title line with the connection indicator on
// the right edge
func (m Model) headerView(w int) string {
	title := m.styles.Header.Render("Tarea")

	conn := m.styles.Subtle.Render("○ offline")
	if m.connected() {
		conn = m.styles.ID.Render("● live")
	}

	gap := w - lipgloss.Width(title) - lipgloss.Width(conn)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + conn
}

// projectPane renders the left pane
func (m Model) projectPane(width, height int) string {
	rows := views.ProjectList(m.projects)
	body := renderListPane(
		views.RenderProjectList(rows, m.styles),
		len(rows),
		m.selectedProject,
		height-1,
		m.focus == focusProjects,
	)

	content := m.styles.Header.Render("Projects") + "\n" + body
	return m.paneStyle(m.focus == focusProjects).Width(width).Height(height).Render(content)
}

// taskPane renders the right pane
func (m Model) taskPane(width, height int) string {
	rows := m.visibleTasks()
	body := renderListPane(
		views.RenderTaskList(rows, m.styles),
		len(rows),
		m.selectedTask,
		height-1,
		m.focus == focusTasks,
	)

	content := m.styles.Header.Render("Tasks") + "\n" + body
	return m.paneStyle(m.focus == focusTasks).Width(width).Height(height).Render(content)
}

// footerView renders one line: errors beat notices beat the hint
func (m Model) footerView() string {
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.ColorScheme.ErrorFg))
		return errStyle.Render("Error: " + m.err.Error())
	}
	if m.notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.ColorScheme.InfoFg))
		return noticeStyle.Render(m.notice)
	}
	return m.styles.Subtle.Render(fmt.Sprintf("%s help  %s quit", m.keys.ShowHelp, m.keys.Quit))
}

// helpView lists the active key bindings
func (m Model) helpView() string {
	k := m.keys
	bindings := []struct {
		key    string
		action string
	}{
		{k.NextItem + "/" + k.PrevItem, "move selection"},
		{k.FocusProjects + "/" + k.FocusTasks, "focus projects / tasks"},
		{k.CycleProject, "cycle project filter"},
		{k.CycleStatus, "cycle status filter"},
		{k.AdvanceTask, "advance task"},
		{k.AddTask, "new task"},
		{k.AddProject, "new project"},
		{k.DeleteTask, "delete task"},
		{k.DeleteProject, "delete project (cascades)"},
		{k.Refresh, "refresh"},
		{k.Quit, "quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Keys"))
	b.WriteString("\n\n")
	for _, binding := range bindings {
		b.WriteString("  ")
		b.WriteString(m.styles.ID.Render(fmt.Sprintf("%-8s", binding.key)))
		b.WriteString("  ")
		b.WriteString(m.styles.Normal.Render(binding.action))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.styles.Subtle.Render(fmt.Sprintf("press %s to close", k.ShowHelp)))

	return m.paneStyle(true).Padding(1, 2).Render(b.String())
}

// formView renders the open create form
func (m Model) formView() string {
	title := "New project"
	if m.mode == modeTaskForm {
		title = "New task"
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.form.input.View())
	b.WriteByte('\n')

	if m.mode == modeTaskForm {
		b.WriteString("\nProject: ")
		b.WriteString(views.RenderOptions(m.form.projectOpts, m.form.projectIdx, m.styles))
		b.WriteString("\n")
		b.WriteString(m.styles.Subtle.Render("tab to switch project"))
		b.WriteByte('\n')
	}

	if m.form.errText != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.ColorScheme.ErrorFg))
		b.WriteByte('\n')
		b.WriteString(errStyle.Render(m.form.errText))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.styles.Subtle.Render(fmt.Sprintf("enter save, %s cancel", m.keys.CancelForm)))

	return m.paneStyle(true).Padding(1, 2).Render(b.String())
}

// confirmView renders the pending destructive action prompt
func (m Model) confirmView() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Confirm"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Normal.Render(m.confirm.prompt))

	return m.paneStyle(true).Padding(1, 2).Render(b.String())
}

// overlay centers a box on the screen
func (m Model) overlay(box string, w, h int) string {
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}

// paneStyle returns the bordered pane style, highlighted when active
func (m Model) paneStyle(active bool) lipgloss.Style {
	st := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if active {
		return st.BorderForeground(lipgloss.Color(m.cfg.ColorScheme.SelectedBorder))
	}
	return st.BorderForeground(lipgloss.Color(m.cfg.ColorScheme.PaneBorder))
}

// statusFilterOptions builds the status bar options, "All" first
func statusFilterOptions() []views.Option {
	opts := make([]views.Option, 0, len(models.Statuses)+1)
	opts = append(opts, views.Option{Value: "", Label: views.AllLabel})
	for _, s := range models.Statuses {
		opts = append(opts, views.Option{Value: s.String(), Label: s.String()})
	}
	return opts
}

// renderListPane adds the selection marker to a rendered list and
// scrolls it so the selection stays visible
func renderListPane(body string, rowCount, selected, maxRows int, active bool) string {
	lines := strings.Split(body, "\n")
	for i := range lines {
		marker := "  "
		if active && rowCount > 0 && i == selected {
			marker = "▸ "
		}
		lines[i] = marker + lines[i]
	}
	return strings.Join(scrollWindow(lines, selected, maxRows), "\n")
}

// scrollWindow slices lines down to max entries, keeping selected in view
func scrollWindow(lines []string, selected, max int) []string {
	if max <= 0 || len(lines) <= max {
		return lines
	}

	start := 0
	if selected >= max {
		start = selected - max + 1
	}
	if start+max > len(lines) {
		start = len(lines) - max
	}
	return lines[start : start+max]
}
