// Package views builds display-ready view models from domain models.
//
// Every function here is a pure projection: (domain state, filters) in,
// view model out. Nothing in this package touches the database or the
// terminal, which keeps the projections independently testable.
//
// Example usage:
//
//	rows := views.TaskList(projects, tasks, views.Filters{Status: models.StatusTodo})
//	opts := views.ProjectOptions(projects, true)
package views

import (
	"strconv"
	"time"

	"github.com/tarea-dev/tarea/internal/models"
)

// UnknownProject labels tasks whose owning project no longer exists
const UnknownProject = "Unknown"

// AllLabel labels the selector option that clears the project filter
const AllLabel = "All"

// ProjectRow is one line of the project list
type ProjectRow struct {
	ID        int
	Name      string
	CreatedAt time.Time
}

// Option is a (value, label) pair for selector population.
// The "All" sentinel carries an empty value.
type Option struct {
	Value string
	Label string
}

// TaskRow is one line of the task list, annotated with the name of the
// owning project
type TaskRow struct {
	ID          int
	ProjectID   int
	Title       string
	Status      models.Status
	ProjectName string
	CreatedAt   time.Time
}

// Filters narrows the task list. Zero values mean "no filter": project id
// 0 matches every project and the empty status matches every status. Both
// conditions combine with AND.
type Filters struct {
	ProjectID int
	Status    models.Status
}

// Matches reports whether a task passes both filters
func (f Filters) Matches(task *models.Task) bool {
	if f.ProjectID != 0 && task.ProjectID != f.ProjectID {
		return false
	}
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	return true
}

// ProjectList converts domain projects into display rows, preserving order
func ProjectList(projects []*models.Project) []ProjectRow {
	rows := make([]ProjectRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, ProjectRow{
			ID:        p.ID,
			Name:      p.Name,
			CreatedAt: p.CreatedAt,
		})
	}
	return rows
}

// ProjectOptions builds selector options from projects. When withAll is
// set, the "All" sentinel is prepended with an empty value; the filter
// selector wants it, the task creation form must not.
func ProjectOptions(projects []*models.Project, withAll bool) []Option {
	opts := make([]Option, 0, len(projects)+1)
	if withAll {
		opts = append(opts, Option{Value: "", Label: AllLabel})
	}
	for _, p := range projects {
		opts = append(opts, Option{Value: strconv.Itoa(p.ID), Label: p.Name})
	}
	return opts
}

// TaskList filters tasks and annotates each surviving row with its
// project's name. Tasks whose project is missing are labeled
// UnknownProject rather than dropped.
func TaskList(projects []*models.Project, tasks []*models.Task, filters Filters) []TaskRow {
	names := make(map[int]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		if !filters.Matches(t) {
			continue
		}
		name, ok := names[t.ProjectID]
		if !ok {
			name = UnknownProject
		}
		rows = append(rows, TaskRow{
			ID:          t.ID,
			ProjectID:   t.ProjectID,
			Title:       t.Title,
			Status:      t.Status,
			ProjectName: name,
			CreatedAt:   t.CreatedAt,
		})
	}
	return rows
}
