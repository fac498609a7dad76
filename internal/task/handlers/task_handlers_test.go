package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/events/bus"
	"github.com/lutfiEmre/todolist/internal/store"
	"github.com/lutfiEmre/todolist/internal/task/models"
	"github.com/lutfiEmre/todolist/internal/task/repository"
	"github.com/lutfiEmre/todolist/internal/task/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failingWrites struct{ *store.MemoryStore }

func (failingWrites) Write(context.Context, string, []byte) error { return errors.New("read-only filesystem") }

func newTestRouter(t *testing.T, s store.Store) *gin.Engine {
	t.Helper()
	log := logger.NewNop()
	svc := service.NewService(repository.Provide(s, log), bus.NewMemoryEventBus(log), log, config.BoardConfig{DefaultAuthor: "Current User"})
	router := gin.New()
	RegisterTaskRoutes(router, svc, log)
	return router
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCreateAndListTasks(t *testing.T) {
	router := newTestRouter(t, store.NewMemoryStore())

	w := do(t, router, http.MethodPost, "/api/tasks",
		`{"id":1700000000000,"category":"Design","name":"Logo","successPercent":55,"importance":4,"timeline":"6 days","status":"inreview","order":0}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[models.Task](t, w)
	assert.Equal(t, int64(1700000000000), created.ID)

	w = do(t, router, http.MethodPost, "/api/tasks", `{"name":"Other","importance":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodGet, "/api/tasks?status=inreview", "")
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeBody[[]models.Task](t, w)
	require.Len(t, tasks, 1)
	assert.Equal(t, created, tasks[0])

	w = do(t, router, http.MethodGet, "/api/tasks", "")
	assert.Len(t, decodeBody[[]models.Task](t, w), 2)
}

func TestListTasks_UnknownStatusIsEmpty(t *testing.T) {
	router := newTestRouter(t, store.NewMemoryStore())
	do(t, router, http.MethodPost, "/api/tasks", `{"name":"a"}`)

	w := do(t, router, http.MethodGet, "/api/tasks?status=archived", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListTasks_EmptyStoreIsEmptyArray(t *testing.T) {
	router := newTestRouter(t, store.NewMemoryStore())
	w := do(t, router, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateTask_SchemaViolation(t *testing.T) {
	router := newTestRouter(t, store.NewMemoryStore())

	for _, body := range []string{
		`{"name":"x","successPercent":150}`,
		`{"name":"x","importance":9}`,
		`{"name":"x","status":"later"}`,
		`not json`,
	} {
		w := do(t, router, http.MethodPost, "/api/tasks", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.NotEmpty(t, decodeBody[map[string]string](t, w)["error"])
	}
}

func TestPatchTask(t *testing.T) {
	router := newTestRouter(t, store.NewMemoryStore())
	do(t, router, http.MethodPost, "/api/tasks", `{"id":5,"name":"Plan","successPercent":50,"status":"doing"}`)

	w := do(t, router, http.MethodPatch, "/api/tasks?id=5", `{"successPercent":60}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	task := decodeBody[models.Task](t, w)
	assert.Equal(t, 60, task.SuccessPercent)
	assert.Equal(t, "Plan", task.Name)
	assert.Equal(t, models.StatusDoing, task.Status)

	// PUT is accepted as an alias.
	w = do(t, router, http.MethodPut, "/api/tasks?id=5", `{"status":"done","order":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusDone, decodeBody[models.Task](t, w).Status)
}

func TestPatchTask_Errors(t *testing.T) {
	router := newTestRouter(t, store.NewMemoryStore())

	w := do(t, router, http.MethodPatch, "/api/tasks", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPatch, "/api/tasks?id=abc", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPatch, "/api/tasks?id=404", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Task not found"}`, w.Body.String())
}

func TestDeleteTask(t *testing.T) {
	router := newTestRouter(t, store.NewMemoryStore())
	do(t, router, http.MethodPost, "/api/tasks", `{"id":8,"name":"Gone"}`)

	w := do(t, router, http.MethodDelete, "/api/tasks?id=8", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = do(t, router, http.MethodDelete, "/api/tasks?id=8", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = do(t, router, http.MethodDelete, "/api/tasks", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReorderColumn(t *testing.T) {
	router := newTestRouter(t, store.NewMemoryStore())
	do(t, router, http.MethodPost, "/api/tasks", `{"id":1,"name":"a","status":"todo","order":0}`)
	do(t, router, http.MethodPost, "/api/tasks", `{"id":2,"name":"b","status":"todo","order":1}`)
	do(t, router, http.MethodPost, "/api/tasks", `{"id":3,"name":"c","status":"done","order":0}`)

	w := do(t, router, http.MethodPut, "/api/tasks/order", `{"status":"todo","orderedIds":[{"id":2,"order":0},{"id":1,"order":1}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/api/tasks", "")
	tasks := decodeBody[[]models.Task](t, w)
	require.Len(t, tasks, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})

	w = do(t, router, http.MethodPut, "/api/tasks/order", `{"orderedIds":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComments(t *testing.T) {
	router := newTestRouter(t, store.NewMemoryStore())

	w := do(t, router, http.MethodPost, "/api/tasks/comments", `{"taskId":11,"message":"first"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	c := decodeBody[models.Comment](t, w)
	assert.Equal(t, "Current User", c.Author)
	assert.Equal(t, models.Today(), c.Date)

	do(t, router, http.MethodPost, "/api/tasks/comments", `{"taskId":12,"message":"elsewhere"}`)

	w = do(t, router, http.MethodGet, "/api/tasks/comments?taskId=11", "")
	require.Equal(t, http.StatusOK, w.Code)
	comments := decodeBody[[]models.Comment](t, w)
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Message)

	for _, target := range []string{"/api/tasks/comments", "/api/tasks/comments?taskId=abc"} {
		w = do(t, router, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	}

	w = do(t, router, http.MethodPost, "/api/tasks/comments", `{"message":"no task"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWriteFailureIs500(t *testing.T) {
	router := newTestRouter(t, failingWrites{store.NewMemoryStore()})

	w := do(t, router, http.MethodPost, "/api/tasks", `{"name":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, decodeBody[map[string]string](t, w)["error"])
}
