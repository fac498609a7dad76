package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/events/bus"
	"github.com/lutfiEmre/todolist/internal/store"
	"github.com/lutfiEmre/todolist/internal/task/models"
	"github.com/lutfiEmre/todolist/internal/task/repository"
	taskservice "github.com/lutfiEmre/todolist/internal/task/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMemory},
		Logging: config.LoggingConfig{Level: "error"},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logger.NewNop()
	svc := taskservice.NewService(repository.Provide(store.NewMemoryStore(), log), bus.NewMemoryEventBus(log), log, config.BoardConfig{})
	return buildRouter(testConfig(), log, svc, nil)
}

func TestRouter_Health(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"taskboard"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/tasks", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestRouter_KeepsRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_ServesBoardAPI(t *testing.T) {
	router := newTestRouter(t)

	body := `{"id":5,"name":"Logo","importance":2,"status":"doing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks?status=doing", nil))
	assert.Contains(t, w.Body.String(), `"name":"Logo"`)
}

func TestProvideStore_Seeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tasks:\n  - id: 1\n    name: Seeded\n    importance: 1\n    status: done\n"), 0o600))

	ctx := context.Background()
	log := logger.NewNop()
	s, cleanup, err := provideStore(ctx, testConfig(), log, path)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	done := models.StatusDone
	tasks, err := repository.Provide(s, log).Tasks.List(ctx, &done)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Seeded", tasks[0].Name)
}

func TestProvideStore_MissingSeedFails(t *testing.T) {
	_, _, err := provideStore(context.Background(), testConfig(), logger.NewNop(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestProvideEventBus_DefaultsToMemory(t *testing.T) {
	eventBus, cleanup, err := provideEventBus(testConfig(), logger.NewNop())
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	_, ok := eventBus.(*bus.MemoryEventBus)
	assert.True(t, ok)
}
