package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tarea-dev/tarea/internal/config/colors"
	"github.com/tarea-dev/tarea/internal/models"
)

// Styles holds the lipgloss styles used to render view models
type Styles struct {
	Header lipgloss.Style
	ID     lipgloss.Style
	Normal lipgloss.Style
	Subtle lipgloss.Style
	Orphan lipgloss.Style

	todo  lipgloss.Style
	doing lipgloss.Style
	done  lipgloss.Style
}

// NewStyles builds render styles from a color scheme
func NewStyles(scheme colors.ColorScheme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Title)),
		ID:     lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Accent)),
		Normal: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Normal)),
		Subtle: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Subtle)),
		Orphan: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(scheme.WarningFg)),
		todo:   lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.StatusTodo)),
		doing:  lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.StatusDoing)),
		done:   lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.StatusDone)),
	}
}

// StatusStyle returns the style for a task status. Statuses outside the
// known cycle render muted.
func (s Styles) StatusStyle(status models.Status) lipgloss.Style {
	switch status {
	case models.StatusTodo:
		return s.todo
	case models.StatusDoing:
		return s.doing
	case models.StatusDone:
		return s.done
	default:
		return s.Subtle
	}
}

// RenderProjectList renders project rows as one line per project
func RenderProjectList(rows []ProjectRow, st Styles) string {
	if len(rows) == 0 {
		return st.Subtle.Render("No projects found")
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(st.ID.Render(fmt.Sprintf("[%d]", row.ID)))
		b.WriteByte(' ')
		b.WriteString(st.Normal.Render(row.Name))
		b.WriteByte(' ')
		b.WriteString(st.Subtle.Render(row.CreatedAt.Format("2006-01-02")))
	}
	return b.String()
}

// RenderTaskList renders task rows as one line per task: id, status badge,
// title, then the owning project's name. Orphans get the warning style.
func RenderTaskList(rows []TaskRow, st Styles) string {
	if len(rows) == 0 {
		return st.Subtle.Render("No tasks found")
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}

		projectStyle := st.Subtle
		if row.ProjectName == UnknownProject {
			projectStyle = st.Orphan
		}

		b.WriteString(st.ID.Render(fmt.Sprintf("[%d]", row.ID)))
		b.WriteByte(' ')
		b.WriteString(st.StatusStyle(row.Status).Render(fmt.Sprintf("%-5s", row.Status)))
		b.WriteByte(' ')
		b.WriteString(st.Normal.Render(row.Title))
		b.WriteByte(' ')
		b.WriteString(projectStyle.Render("(" + row.ProjectName + ")"))
	}
	return b.String()
}

// RenderOptions renders selector options on one line with the selected
// entry highlighted; used by the TUI filter bar
func RenderOptions(opts []Option, selected int, st Styles) string {
	if len(opts) == 0 {
		return ""
	}

	parts := make([]string, 0, len(opts))
	for i, opt := range opts {
		if i == selected {
			parts = append(parts, st.Header.Render("["+opt.Label+"]"))
		} else {
			parts = append(parts, st.Subtle.Render(" "+opt.Label+" "))
		}
	}
	return strings.Join(parts, " ")
}
