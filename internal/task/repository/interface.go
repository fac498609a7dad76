package repository

import (
	"context"

	"github.com/lutfiEmre/todolist/internal/task/models"
)

// TaskRepository defines task storage operations. Every write replaces the
// whole task collection.
type TaskRepository interface {
	// List returns tasks in storage order, restricted to status when non-nil.
	List(ctx context.Context, status *models.Status) ([]*models.Task, error)
	// Create appends a fully-formed task; no field is assigned here.
	Create(ctx context.Context, task *models.Task) error
	// PatchByID merges patch into the task with id. Returns a not found error when absent.
	PatchByID(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	// DeleteByID removes the task with id. Absent ids are not an error.
	DeleteByID(ctx context.Context, id int64) error
	// ReorderColumn applies new order values to the tasks of status found in entries.
	ReorderColumn(ctx context.Context, status models.Status, entries []models.OrderEntry) error
}

// CommentRepository defines comment storage operations.
type CommentRepository interface {
	ListByTask(ctx context.Context, taskID int64) ([]*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
}
