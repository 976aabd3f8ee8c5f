//go:build ignore
// +build ignore

// Helper script to seed the database with sample projects and tasks.
// Run with: go run add_test_data.go

package main

import (
	"context"
	"log"

	"github.com/tarea-dev/tarea/internal/database"
	"github.com/tarea-dev/tarea/internal/models"
)

func main() {
	ctx := context.Background()

	db, err := database.InitDB(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	seed := map[string][]struct {
		title  string
		status models.Status
	}{
		"Backend": {
			{"Fix auth bug", models.StatusTodo},
			{"Refactor repository layer", models.StatusDoing},
			{"Update deps", models.StatusTodo},
		},
		"Frontend": {
			{"Add tests", models.StatusDoing},
			{"Review PR #42", models.StatusTodo},
		},
		"Ops": {
			{"Deploy v1.0", models.StatusDone},
			{"Hotfix prod", models.StatusDone},
		},
	}

	for name, tasks := range seed {
		project, err := repo.CreateProject(ctx, name)
		if err != nil {
			log.Printf("Error creating project '%s': %v", name, err)
			continue
		}
		log.Printf("Created project: %s (ID %d)", project.Name, project.ID)

		for _, task := range tasks {
			if _, err := repo.CreateTask(ctx, project.ID, task.title, task.status); err != nil {
				log.Printf("Error creating task '%s': %v", task.title, err)
				continue
			}
			log.Printf("Created task: %s", task.title)
		}
	}

	log.Println("Test data added successfully!")
}
