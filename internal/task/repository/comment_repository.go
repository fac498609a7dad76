package repository

import (
	"context"
	"sync"

	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/store"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

// CommentStore implements CommentRepository on top of the record store.
// Comments are append-only and never checked against existing tasks.
type CommentStore struct {
	comments *store.Collection[models.Comment]
	mu       sync.Mutex
}

var _ CommentRepository = (*CommentStore)(nil)

func NewCommentStore(s store.Store, log *logger.Logger) *CommentStore {
	return &CommentStore{comments: store.NewCollection[models.Comment](s, store.ResourceComments, log)}
}

func (r *CommentStore) ListByTask(ctx context.Context, taskID int64) ([]*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := r.comments.Load(ctx)
	result := make([]*models.Comment, 0)
	for i := range all {
		if all[i].TaskID == taskID {
			result = append(result, &all[i])
		}
	}
	return result, nil
}

func (r *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.comments.Load(ctx)
	return r.comments.Save(ctx, append(all, *comment))
}
