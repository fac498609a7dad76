package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutfiEmre/todolist/internal/board"
	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/store"
	"github.com/lutfiEmre/todolist/internal/task/handlers"
	"github.com/lutfiEmre/todolist/internal/task/models"
	"github.com/lutfiEmre/todolist/internal/task/repository"
	"github.com/lutfiEmre/todolist/internal/task/service"
)

var _ board.Persister = (*Client)(nil)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	svc := service.NewService(repository.Provide(store.NewMemoryStore(), log), nil, log, config.BoardConfig{})

	router := gin.New()
	handlers.RegisterTaskRoutes(router, svc, log)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return New(config.ClientConfig{BaseURL: srv.URL + "/", Timeout: 5}, log)
}

func TestClient_TaskRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	task := models.Task{ID: 42, Category: "Work", Name: "Report", Importance: 3, Timeline: "2 days", Status: models.StatusTodo}
	created, err := c.CreateTask(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, task, *created)

	todo, err := c.ListTasks(ctx, models.StatusTodo)
	require.NoError(t, err)
	require.Len(t, todo, 1)
	assert.Equal(t, task, todo[0])

	doing, err := c.ListTasks(ctx, models.StatusDoing)
	require.NoError(t, err)
	assert.Empty(t, doing)

	patched, err := c.PatchTask(ctx, 42, models.TaskPatch{Status: models.Ptr(models.StatusDoing), Order: models.Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDoing, patched.Status)
	assert.Equal(t, "Report", patched.Name)

	require.NoError(t, c.DeleteTask(ctx, 42))
	require.NoError(t, c.DeleteTask(ctx, 42))

	all, err := c.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestClient_PatchMissingIsNotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.PatchTask(context.Background(), 7, models.TaskPatch{Name: models.Ptr("x")})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Task not found", apiErr.Message)
}

func TestClient_ReorderColumn(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for i, id := range []int64{1, 2, 3} {
		_, err := c.CreateTask(ctx, models.Task{ID: id, Name: "t", Importance: 1, Status: models.StatusTodo, Order: i})
		require.NoError(t, err)
	}

	err := c.ReorderColumn(ctx, models.StatusTodo, []models.OrderEntry{{ID: 3, Order: 0}, {ID: 1, Order: 1}, {ID: 2, Order: 2}})
	require.NoError(t, err)

	tasks, err := c.ListTasks(ctx, models.StatusTodo)
	require.NoError(t, err)
	orders := map[int64]int{}
	for _, task := range tasks {
		orders[task.ID] = task.Order
	}
	assert.Equal(t, map[int64]int{3: 0, 1: 1, 2: 2}, orders)
}

func TestClient_Comments(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateComment(ctx, models.Comment{ID: 5, TaskID: 42, Author: "Ada", Message: "hello", Date: "2026-10-18"})
	require.NoError(t, err)

	comments, err := c.ListComments(ctx, 42)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "hello", comments[0].Message)

	none, err := c.ListComments(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestClient_DecodesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to save task"}`))
	}))
	defer srv.Close()

	c := New(config.ClientConfig{BaseURL: srv.URL, Timeout: 1}, logger.NewNop())
	err := c.DeleteTask(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "failed to save task", apiErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestClient_RequestsRespectContext(t *testing.T) {
	c := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTasks(ctx, models.StatusTodo)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_DrivesViewModel(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	_, err := c.CreateTask(ctx, models.Task{ID: 1, Name: "A", Importance: 1, Status: models.StatusTodo, Order: 0})
	require.NoError(t, err)

	vm := board.NewViewModel(c, logger.NewNop())
	require.NoError(t, vm.Load(ctx))

	vm.Move(board.Gesture{Source: board.CardRef{Column: models.StatusTodo, TaskID: 1}, Dest: models.StatusDone})
	vm.Wait()

	done, err := c.ListTasks(ctx, models.StatusDone)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, 0, done[0].Order)
}
