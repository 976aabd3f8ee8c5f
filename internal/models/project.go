package models

import "time"

// Project represents a container for tasks
// Projects are the top-level organizational unit in Tarea
type Project struct {
	ID        int
	Name      string
	CreatedAt time.Time
}
