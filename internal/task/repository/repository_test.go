package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lutfiEmre/todolist/internal/common/errors"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/store"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

// countingStore records writes per resource.
type countingStore struct {
	*store.MemoryStore
	mu     sync.Mutex
	writes map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: store.NewMemoryStore(), writes: map[string]int{}}
}

func (s *countingStore) Write(ctx context.Context, resource string, doc []byte) error {
	s.mu.Lock()
	s.writes[resource]++
	s.mu.Unlock()
	return s.MemoryStore.Write(ctx, resource, doc)
}

func (s *countingStore) writeCount(resource string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[resource]
}

func createTestRepos(t *testing.T) (*TaskStore, *CommentStore, *countingStore) {
	t.Helper()
	s := newCountingStore()
	log := logger.NewNop()
	return NewTaskStore(s, log), NewCommentStore(s, log), s
}

func task(id int64, status models.Status, order int) *models.Task {
	return &models.Task{
		ID: id, Category: "Work", Name: "task", SuccessPercent: 10,
		Importance: 3, Timeline: "3 days", Status: status, Order: order,
	}
}

func seed(t *testing.T, repo *TaskStore, tasks ...*models.Task) {
	t.Helper()
	for _, tk := range tasks {
		require.NoError(t, repo.Create(context.Background(), tk))
	}
}

func ids(tasks []*models.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestTaskStore_CreateThenListByStatus(t *testing.T) {
	repo, _, _ := createTestRepos(t)
	ctx := context.Background()

	created := &models.Task{ID: 1700000000000, Category: "Design", Name: "Logo", SuccessPercent: 55, Importance: 4, Timeline: "6 days", Status: models.StatusInReview, Order: 0}
	seed(t, repo, task(1, models.StatusTodo, 0), created)

	status := models.StatusInReview
	got, err := repo.List(ctx, &status)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *created, *got[0])
}

func TestTaskStore_ListUnfilteredKeepsInsertionOrder(t *testing.T) {
	repo, _, _ := createTestRepos(t)
	seed(t, repo, task(3, models.StatusDone, 5), task(1, models.StatusTodo, 1), task(2, models.StatusTodo, 0))

	got, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids(got))
}

func TestTaskStore_PatchByID(t *testing.T) {
	repo, _, _ := createTestRepos(t)
	ctx := context.Background()
	seed(t, repo, task(1, models.StatusTodo, 0))

	updated, err := repo.PatchByID(ctx, 1, models.TaskPatch{Status: models.Ptr(models.StatusDoing)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDoing, updated.Status)
	assert.Equal(t, "Work", updated.Category, "omitted fields are untouched")

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDoing, all[0].Status)
}

func TestTaskStore_PatchMissingIsNotFoundAndDoesNotWrite(t *testing.T) {
	repo, _, s := createTestRepos(t)
	seed(t, repo, task(1, models.StatusTodo, 0))
	before := s.writeCount(store.ResourceTasks)

	_, err := repo.PatchByID(context.Background(), 99, models.TaskPatch{Name: models.Ptr("x")})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, before, s.writeCount(store.ResourceTasks))
}

func TestTaskStore_DeleteByID(t *testing.T) {
	repo, _, s := createTestRepos(t)
	ctx := context.Background()
	seed(t, repo, task(1, models.StatusTodo, 0), task(2, models.StatusTodo, 1))

	require.NoError(t, repo.DeleteByID(ctx, 1))
	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(all))

	before := s.writeCount(store.ResourceTasks)
	require.NoError(t, repo.DeleteByID(ctx, 12345), "missing id is not an error")
	assert.Equal(t, before, s.writeCount(store.ResourceTasks), "collection is not rewritten")
}

func TestTaskStore_ReorderColumn(t *testing.T) {
	repo, _, _ := createTestRepos(t)
	ctx := context.Background()
	seed(t, repo,
		task(1, models.StatusTodo, 0),
		task(10, models.StatusDoing, 0),
		task(2, models.StatusTodo, 1),
		task(3, models.StatusTodo, 2),
		task(20, models.StatusDone, 0),
	)

	err := repo.ReorderColumn(ctx, models.StatusTodo, []models.OrderEntry{{ID: 2, Order: 0}, {ID: 1, Order: 1}})
	require.NoError(t, err)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	// other statuses first in storage order, then the column sorted by order
	assert.Equal(t, []int64{10, 20, 2, 1, 3}, ids(all))

	orders := map[int64]int{}
	for _, tk := range all {
		orders[tk.ID] = tk.Order
	}
	assert.Equal(t, 0, orders[2])
	assert.Equal(t, 1, orders[1])
	assert.Equal(t, 2, orders[3], "task absent from the mapping keeps its order")
	assert.Equal(t, 0, orders[10])
}

func TestTaskStore_ReorderIgnoresOtherStatuses(t *testing.T) {
	repo, _, _ := createTestRepos(t)
	ctx := context.Background()
	seed(t, repo, task(1, models.StatusTodo, 0), task(2, models.StatusDoing, 7))

	require.NoError(t, repo.ReorderColumn(ctx, models.StatusTodo, []models.OrderEntry{{ID: 2, Order: 0}, {ID: 1, Order: 4}}))

	doing := models.StatusDoing
	got, err := repo.List(ctx, &doing)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Order)
}

func TestTaskStore_ConcurrentCreatesAreNotLost(t *testing.T) {
	repo, _, _ := createTestRepos(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, task(id, models.StatusTodo, 0)))
		}(int64(i))
	}
	wg.Wait()

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func TestCommentStore(t *testing.T) {
	_, comments, _ := createTestRepos(t)
	ctx := context.Background()

	require.NoError(t, comments.Create(ctx, &models.Comment{ID: 1, TaskID: 7, Author: "a", Message: "first", Date: "2025-01-01"}))
	require.NoError(t, comments.Create(ctx, &models.Comment{ID: 2, TaskID: 8, Author: "b", Message: "other", Date: "2025-01-01"}))
	require.NoError(t, comments.Create(ctx, &models.Comment{ID: 3, TaskID: 7, Author: "c", Message: "second", Date: "2024-12-31"}))
	require.NoError(t, comments.Create(ctx, &models.Comment{ID: 4, TaskID: 404, Author: "d", Message: "orphan", Date: "2025-01-01"}))

	got, err := comments.ListByTask(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, "second", got[1].Message, "storage order, not date order")

	none, err := comments.ListByTask(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProvide(t *testing.T) {
	repos := Provide(store.NewMemoryStore(), logger.NewNop())
	assert.IsType(t, &TaskStore{}, repos.Tasks)
	assert.IsType(t, &CommentStore{}, repos.Comments)
}
