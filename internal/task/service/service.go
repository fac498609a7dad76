// Package service holds the board's business logic: server-side defaults for
// new records and change notifications on the event bus.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/common/config"
	apperrors "github.com/lutfiEmre/todolist/internal/common/errors"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/events/bus"
	"github.com/lutfiEmre/todolist/internal/task/models"
	"github.com/lutfiEmre/todolist/internal/task/repository"
)

// Service provides task and comment business logic
type Service struct {
	tasks         repository.TaskRepository
	comments      repository.CommentRepository
	eventBus      bus.EventBus
	logger        *logger.Logger
	defaultAuthor string
}

// NewService creates a new task service
func NewService(repos *repository.Repositories, eventBus bus.EventBus, log *logger.Logger, cfg config.BoardConfig) *Service {
	author := strings.TrimSpace(cfg.DefaultAuthor)
	if author == "" {
		author = "Current User"
	}
	return &Service{
		tasks:         repos.Tasks,
		comments:      repos.Comments,
		eventBus:      eventBus,
		logger:        log.WithFields(zap.String("component", "task-service")),
		defaultAuthor: author,
	}
}

// ListTasks returns the tasks in storage order, filtered to status when non-nil.
// An unknown status yields an empty list.
func (s *Service) ListTasks(ctx context.Context, status *models.Status) ([]*models.Task, error) {
	if status != nil && !status.Valid() {
		return []*models.Task{}, nil
	}
	return s.tasks.List(ctx, status)
}

// CreateTask stores task as given, assigning an id when it has none and
// placing it in todo when no status is set.
func (s *Service) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	created := *task
	if created.ID == 0 {
		created.ID = models.NewID()
	}
	if created.Status == "" {
		created.Status = models.StatusTodo
	}
	if !created.Status.Valid() {
		return nil, apperrors.ValidationError("status", "must be one of todo, doing, inreview, done")
	}

	if err := s.tasks.Create(ctx, &created); err != nil {
		return nil, apperrors.Wrap(err, "failed to create task")
	}

	s.logger.Info("task created",
		zap.Int64("task_id", created.ID),
		zap.String("status", string(created.Status)))
	s.publishTaskEvent(ctx, eventTaskCreated, &created)
	return &created, nil
}

// PatchTask merges patch into the task with id.
func (s *Service) PatchTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.ValidationError("status", "must be one of todo, doing, inreview, done")
	}

	task, err := s.tasks.PatchByID(ctx, id, patch)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to update task")
	}

	s.logger.Debug("task updated", zap.Int64("task_id", id))
	s.publishTaskEvent(ctx, eventTaskUpdated, task)
	return task, nil
}

// DeleteTask removes the task with id. Deleting an absent task succeeds.
// Comments of the task are left in place.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if err := s.tasks.DeleteByID(ctx, id); err != nil {
		return apperrors.Wrap(err, "failed to delete task")
	}

	s.logger.Info("task deleted", zap.Int64("task_id", id))
	s.publish(ctx, eventTaskDeleted, map[string]interface{}{"id": id})
	return nil
}

// ReorderColumn applies the order values in entries to the tasks of status.
func (s *Service) ReorderColumn(ctx context.Context, status models.Status, entries []models.OrderEntry) error {
	if !status.Valid() {
		return apperrors.ValidationError("status", "must be one of todo, doing, inreview, done")
	}
	if err := s.tasks.ReorderColumn(ctx, status, entries); err != nil {
		return apperrors.Wrap(err, "failed to reorder column")
	}

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	s.logger.Debug("column reordered", zap.String("status", string(status)), zap.Int("count", len(entries)))
	s.publish(ctx, eventTaskReordered, map[string]interface{}{
		"status": string(status),
		"ids":    ids,
	})
	return nil
}

// ListComments returns the comments of taskID in storage order.
func (s *Service) ListComments(ctx context.Context, taskID int64) ([]*models.Comment, error) {
	return s.comments.ListByTask(ctx, taskID)
}

// CreateComment stores comment, filling id, date and author when missing.
// The task it refers to is not checked.
func (s *Service) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	created := *comment
	if created.ID == 0 {
		created.ID = models.NewID()
	}
	if created.Date == "" {
		created.Date = models.Today()
	}
	if strings.TrimSpace(created.Author) == "" {
		created.Author = s.defaultAuthor
	}

	if err := s.comments.Create(ctx, &created); err != nil {
		return nil, apperrors.Wrap(err, "failed to create comment")
	}

	s.logger.Debug("comment created", zap.Int64("task_id", created.TaskID), zap.Int64("comment_id", created.ID))
	s.publish(ctx, eventCommentCreated, map[string]interface{}{
		"id":      created.ID,
		"taskId":  created.TaskID,
		"author":  created.Author,
		"message": created.Message,
		"date":    created.Date,
	})
	return &created, nil
}
