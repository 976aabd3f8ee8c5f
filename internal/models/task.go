package models

import "time"

// Task represents a single unit of work belonging to a project
type Task struct {
	ID        int
	ProjectID int
	Title     string
	Status    Status
	CreatedAt time.Time
}
