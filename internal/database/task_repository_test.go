package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/tarea-dev/tarea/internal/models"
)

func TestTaskRepo_Create(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	defer db.Close()
	repo := &TaskRepo{db: db}

	projectID := createTestProject(t, db, "Inbox")

	task, err := repo.Create(context.Background(), projectID, "Write release notes", models.StatusTodo)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	if task.ID == 0 {
		t.Error("Expected task to be assigned a non-zero ID")
	}
	if task.ProjectID != projectID {
		t.Errorf("Expected project ID %d, got %d", projectID, task.ProjectID)
	}
	if task.Title != "Write release notes" {
		t.Errorf("Expected title 'Write release notes', got '%s'", task.Title)
	}
	if task.Status != models.StatusTodo {
		t.Errorf("Expected status %q, got %q", models.StatusTodo, task.Status)
	}
	if task.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set by the database")
	}
}

func TestTaskRepo_Create_IDsNotReused(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	defer db.Close()
	repo := &TaskRepo{db: db}

	projectID := createTestProject(t, db, "Inbox")

	if _, err := repo.Create(context.Background(), projectID, "First", models.StatusTodo); err != nil {
		t.Fatalf("Failed to create first task: %v", err)
	}
	second, err := repo.Create(context.Background(), projectID, "Second", models.StatusTodo)
	if err != nil {
		t.Fatalf("Failed to create second task: %v", err)
	}

	if err := repo.Delete(context.Background(), second.ID); err != nil {
		t.Fatalf("Failed to delete task: %v", err)
	}

	// AUTOINCREMENT keeps ids monotonic even after the newest row is deleted
	third, err := repo.Create(context.Background(), projectID, "Third", models.StatusTodo)
	if err != nil {
		t.Fatalf("Failed to create third task: %v", err)
	}
	if third.ID <= second.ID {
		t.Errorf("Expected id greater than %d after delete, got %d", second.ID, third.ID)
	}
}

func TestTaskRepo_Put_ReplacesByID(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	defer db.Close()
	repo := &TaskRepo{db: db}

	projectID := createTestProject(t, db, "Inbox")
	task, err := repo.Create(context.Background(), projectID, "Ship it", models.StatusTodo)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	task.Status = models.StatusDoing
	if err := repo.Put(context.Background(), task); err != nil {
		t.Fatalf("Failed to put task: %v", err)
	}

	updated, err := repo.GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("Failed to get task after put: %v", err)
	}
	if updated.Status != models.StatusDoing {
		t.Errorf("Expected status %q after put, got %q", models.StatusDoing, updated.Status)
	}
	if updated.Title != "Ship it" {
		t.Errorf("Expected title unchanged, got '%s'", updated.Title)
	}
	if updated.ProjectID != projectID {
		t.Errorf("Expected project ID unchanged, got %d", updated.ProjectID)
	}

	// Put must not create a second row
	if got := countRows(t, db, "tasks"); got != 1 {
		t.Errorf("Expected 1 task after put, got %d", got)
	}
}

func TestTaskRepo_Put_RequiresID(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	defer db.Close()
	repo := &TaskRepo{db: db}

	err := repo.Put(context.Background(), &models.Task{
		ProjectID: 1,
		Title:     "No id",
		Status:    models.StatusTodo,
	})
	if err == nil {
		t.Fatal("Expected error putting task without id, got nil")
	}
	if got := countRows(t, db, "tasks"); got != 0 {
		t.Errorf("Expected no rows after rejected put, got %d", got)
	}
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	defer db.Close()
	repo := &TaskRepo{db: db}

	_, err := repo.GetByID(context.Background(), 999)
	if err == nil {
		t.Fatal("Expected error for missing task, got nil")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected wrapped sql.ErrNoRows, got %v", err)
	}
}

func TestTaskRepo_GetAll_EmptyIsNotNil(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	defer db.Close()
	repo := &TaskRepo{db: db}

	tasks, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("Failed to get all tasks: %v", err)
	}
	if tasks == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(tasks) != 0 {
		t.Fatalf("Expected 0 tasks, got %d", len(tasks))
	}
}

func TestTaskRepo_GetByProject(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	defer db.Close()
	repo := &TaskRepo{db: db}

	backend := createTestProject(t, db, "Backend")
	frontend := createTestProject(t, db, "Frontend")
	createTestTask(t, db, backend, "API docs", models.StatusTodo)
	createTestTask(t, db, backend, "Rate limiting", models.StatusDoing)
	createTestTask(t, db, frontend, "Navbar", models.StatusTodo)

	tasks, err := repo.GetByProject(context.Background(), backend)
	if err != nil {
		t.Fatalf("Failed to get tasks by project: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.ProjectID != backend {
			t.Errorf("Expected project ID %d, got %d", backend, task.ProjectID)
		}
	}

	// No matches yields an empty, non-nil slice
	tasks, err = repo.GetByProject(context.Background(), 999)
	if err != nil {
		t.Fatalf("Failed to get tasks for missing project: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("Expected empty slice for missing project, got %v", tasks)
	}
}

func TestTaskRepo_GetByStatus(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	defer db.Close()
	repo := &TaskRepo{db: db}

	projectID := createTestProject(t, db, "Inbox")
	createTestTask(t, db, projectID, "One", models.StatusTodo)
	createTestTask(t, db, projectID, "Two", models.StatusDone)
	createTestTask(t, db, projectID, "Three", models.StatusDone)

	tasks, err := repo.GetByStatus(context.Background(), models.StatusDone)
	if err != nil {
		t.Fatalf("Failed to get tasks by status: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 done tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.Status != models.StatusDone {
			t.Errorf("Expected status %q, got %q", models.StatusDone, task.Status)
		}
	}

	tasks, err = repo.GetByStatus(context.Background(), models.StatusDoing)
	if err != nil {
		t.Fatalf("Failed to get tasks by status: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Expected 0 doing tasks, got %d", len(tasks))
	}
}

func TestTaskRepo_Delete(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	defer db.Close()
	repo := &TaskRepo{db: db}

	projectID := createTestProject(t, db, "Inbox")
	taskID := createTestTask(t, db, projectID, "Remove me", models.StatusTodo)
	keptID := createTestTask(t, db, projectID, "Keep me", models.StatusTodo)

	if err := repo.Delete(context.Background(), taskID); err != nil {
		t.Fatalf("Failed to delete task: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), taskID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected deleted task to be gone, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), keptID); err != nil {
		t.Errorf("Expected other task to survive, got %v", err)
	}

	// Deleting a task that does not exist is not an error
	if err := repo.Delete(context.Background(), 424242); err != nil {
		t.Errorf("Expected no error deleting nonexistent task, got %v", err)
	}
}

func TestTaskRepo_CountByProject(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	defer db.Close()
	repo := &TaskRepo{db: db}

	projectID := createTestProject(t, db, "Inbox")
	otherID := createTestProject(t, db, "Other")
	createTestTask(t, db, projectID, "One", models.StatusTodo)
	createTestTask(t, db, projectID, "Two", models.StatusDoing)
	createTestTask(t, db, otherID, "Three", models.StatusTodo)

	count, err := repo.CountByProject(context.Background(), projectID)
	if err != nil {
		t.Fatalf("Failed to count tasks: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 tasks, got %d", count)
	}

	count, err = repo.CountByProject(context.Background(), 999)
	if err != nil {
		t.Fatalf("Failed to count tasks for missing project: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 tasks for missing project, got %d", count)
	}
}
