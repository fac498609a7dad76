package repository

import (
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/store"
)

// Repositories bundles the repositories sharing one record store.
type Repositories struct {
	Tasks    TaskRepository
	Comments CommentRepository
}

// Provide creates the task and comment repositories over s.
func Provide(s store.Store, log *logger.Logger) *Repositories {
	return &Repositories{
		Tasks:    NewTaskStore(s, log),
		Comments: NewCommentStore(s, log),
	}
}
