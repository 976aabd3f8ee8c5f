package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	projectservice "github.com/tarea-dev/tarea/internal/services/project"
	taskservice "github.com/tarea-dev/tarea/internal/services/task"
	"github.com/tarea-dev/tarea/internal/views"
)

// formState drives the inline create forms. The task form additionally
// carries the selectable target projects; tab cycles through them.
type formState struct {
	input       textinput.Model
	projectOpts []views.Option
	projectIdx  int
	errText     string
}

// openProjectForm switches to the new-project form
func (m Model) openProjectForm() (tea.Model, tea.Cmd) {
	input := textinput.New()
	input.Placeholder = "Project name"
	input.CharLimit = 100
	input.Width = 40
	input.Focus()

	m.form = formState{input: input}
	m.mode = modeProjectForm
	return m, textinput.Blink
}

// openTaskForm switches to the new-task form. The target project
// defaults to the active filter, then the project under the cursor.
func (m Model) openTaskForm() (tea.Model, tea.Cmd) {
	if len(m.projects) == 0 {
		return m.setNotice("Create a project first")
	}

	input := textinput.New()
	input.Placeholder = "Task title"
	input.CharLimit = 255
	input.Width = 40
	input.Focus()

	opts := views.ProjectOptions(m.projects, false)

	m.form = formState{
		input:       input,
		projectOpts: opts,
		projectIdx:  m.defaultProjectIndex(opts),
	}
	m.mode = modeTaskForm
	return m, textinput.Blink
}

// defaultProjectIndex picks the form's initial project option
func (m Model) defaultProjectIndex(opts []views.Option) int {
	targetID := m.filters.ProjectID
	if targetID == 0 {
		if p, ok := m.selectedProjectRow(); ok {
			targetID = p.ID
		}
	}

	want := strconv.Itoa(targetID)
	for i, opt := range opts {
		if opt.Value == want {
			return i
		}
	}
	return 0
}

// updateForm handles keys while a form is open
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.keys.CancelForm:
		m.mode = modeNormal
		return m, nil

	case "enter", m.keys.SaveForm:
		return m.submitForm()

	case "tab", "shift+tab":
		if m.mode == modeTaskForm && len(m.form.projectOpts) > 0 {
			delta := 1
			if msg.String() == "shift+tab" {
				delta = len(m.form.projectOpts) - 1
			}
			m.form.projectIdx = (m.form.projectIdx + delta) % len(m.form.projectOpts)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form.input, cmd = m.form.input.Update(msg)
	return m, cmd
}

// submitForm hands the form contents to the service layer. Validation
// failures keep the form open with the service's message; the input is
// submitted untouched so trimming stays a service concern.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	ctx, cancel := m.dbContext()
	defer cancel()

	if m.mode == modeProjectForm {
		project, err := m.app.ProjectService.CreateProject(ctx, projectservice.CreateProjectRequest{
			Name: m.form.input.Value(),
		})
		if err != nil {
			m.form.errText = err.Error()
			return m, nil
		}

		m.mode = modeNormal
		m = m.reload()
		m = m.selectProject(project.ID)
		return m.setNotice(fmt.Sprintf("Project '%s' created", project.Name))
	}

	projectID := 0
	if len(m.form.projectOpts) > 0 {
		projectID, _ = strconv.Atoi(m.form.projectOpts[m.form.projectIdx].Value)
	}

	task, err := m.app.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		ProjectID: projectID,
		Title:     m.form.input.Value(),
	})
	if err != nil {
		m.form.errText = err.Error()
		return m, nil
	}

	m.mode = modeNormal
	m = m.reload()
	return m.setNotice(fmt.Sprintf("Task %d created", task.ID))
}

// selectProject moves the project cursor to the given id if present
func (m Model) selectProject(id int) Model {
	for i, p := range m.projects {
		if p.ID == id {
			m.selectedProject = i
			break
		}
	}
	return m
}
