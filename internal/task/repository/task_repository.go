package repository

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/lutfiEmre/todolist/internal/common/errors"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/store"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

// TaskStore implements TaskRepository on top of the record store.
type TaskStore struct {
	tasks  *store.Collection[models.Task]
	mu     sync.Mutex // serialises read-modify-write cycles in this process
	logger *logger.Logger
}

var _ TaskRepository = (*TaskStore)(nil)

// NewTaskStore creates a task repository over the tasks resource of s.
func NewTaskStore(s store.Store, log *logger.Logger) *TaskStore {
	return &TaskStore{
		tasks:  store.NewCollection[models.Task](s, store.ResourceTasks, log),
		logger: log.WithFields(zap.String("component", "task-repository")),
	}
}

func (r *TaskStore) List(ctx context.Context, status *models.Status) ([]*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := r.tasks.Load(ctx)
	result := make([]*models.Task, 0, len(all))
	for i := range all {
		if status != nil && all[i].Status != *status {
			continue
		}
		result = append(result, &all[i])
	}
	return result, nil
}

func (r *TaskStore) Create(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.tasks.Load(ctx)
	all = append(all, *task)
	return r.tasks.Save(ctx, all)
}

func (r *TaskStore) PatchByID(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.tasks.Load(ctx)
	idx := indexOfTask(all, id)
	if idx < 0 {
		return nil, apperrors.NotFound("task", id)
	}

	patch.Apply(&all[idx])
	if err := r.tasks.Save(ctx, all); err != nil {
		return nil, err
	}
	updated := all[idx]
	return &updated, nil
}

func (r *TaskStore) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.tasks.Load(ctx)
	idx := indexOfTask(all, id)
	if idx < 0 {
		r.logger.Debug("delete of unknown task ignored", zap.Int64("task_id", id))
		return nil
	}
	all = append(all[:idx], all[idx+1:]...)
	return r.tasks.Save(ctx, all)
}

// ReorderColumn writes the other columns first, in storage order, followed by
// this column's tasks stable-sorted by their (possibly updated) order.
// Tasks of status missing from entries keep their order value.
func (r *TaskStore) ReorderColumn(ctx context.Context, status models.Status, entries []models.OrderEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID := make(map[int64]int, len(entries))
	for _, e := range entries {
		byID[e.ID] = e.Order
	}

	all := r.tasks.Load(ctx)
	other := make([]models.Task, 0, len(all))
	column := make([]models.Task, 0, len(entries))
	for _, t := range all {
		if t.Status != status {
			other = append(other, t)
			continue
		}
		if order, ok := byID[t.ID]; ok {
			t.Order = order
		}
		column = append(column, t)
	}
	sort.SliceStable(column, func(i, j int) bool { return column[i].Order < column[j].Order })

	return r.tasks.Save(ctx, append(other, column...))
}

func indexOfTask(tasks []models.Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
