package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/events"
	"github.com/lutfiEmre/todolist/internal/events/bus"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

const (
	eventTaskCreated    = events.TaskCreated
	eventTaskUpdated    = events.TaskUpdated
	eventTaskDeleted    = events.TaskDeleted
	eventTaskReordered  = events.TaskReordered
	eventCommentCreated = events.CommentCreated
)

func taskEventData(task *models.Task) map[string]interface{} {
	return map[string]interface{}{
		"id":             task.ID,
		"category":       task.Category,
		"name":           task.Name,
		"successPercent": task.SuccessPercent,
		"importance":     task.Importance,
		"timeline":       task.Timeline,
		"status":         string(task.Status),
		"order":          task.Order,
	}
}

func (s *Service) publishTaskEvent(ctx context.Context, eventType string, task *models.Task) {
	s.publish(ctx, eventType, taskEventData(task))
}

// publish never fails the caller; the write it reports has already happened.
func (s *Service) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventBus == nil {
		return
	}
	event := bus.NewEvent(eventType, events.Source, data)
	if err := s.eventBus.Publish(ctx, eventType, event); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
