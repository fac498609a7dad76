package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/store"
	"github.com/lutfiEmre/todolist/internal/task/models"
	"github.com/lutfiEmre/todolist/internal/task/repository"
)

const sample = `
tasks:
  - id: 1
    category: Design
    name: Logo
    successPercent: 40
    importance: 3
    timeline: 4 days
    status: doing
    order: 0
  - category: Ops
    name: Backups
    importance: 5
    timeline: 1 days
comments:
  - id: 10
    taskId: 1
    author: Ada
    message: first sketch is up
    date: "2026-10-18"
`

func TestParse(t *testing.T) {
	b, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, b.Tasks, 2)
	assert.Equal(t, models.StatusDoing, b.Tasks[0].Status)
	assert.Equal(t, 40, b.Tasks[0].SuccessPercent)
	assert.NotZero(t, b.Tasks[1].ID)
	assert.Equal(t, models.StatusTodo, b.Tasks[1].Status)

	require.Len(t, b.Comments, 1)
	assert.Equal(t, int64(1), b.Comments[0].TaskID)
	assert.Equal(t, "2026-10-18", b.Comments[0].Date)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "tasks:\n  - id: 1\n    colour: red\n"},
		{"invalid status", "tasks:\n  - id: 1\n    importance: 1\n    status: archived\n"},
		{"duplicate id", "tasks:\n  - id: 1\n    importance: 1\n  - id: 1\n    importance: 1\n"},
		{"percent above range", "tasks:\n  - id: 1\n    importance: 1\n    successPercent: 150\n"},
		{"importance out of range", "tasks:\n  - id: 1\n    importance: 9\n"},
		{"missing importance", "tasks:\n  - id: 1\n    name: x\n"},
		{"negative order", "tasks:\n  - id: 1\n    importance: 1\n    order: -3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
			assert.Nil(t, b)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	b, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, b.Tasks)
	assert.Empty(t, b.Comments)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()
	s := store.NewMemoryStore()

	b, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.NoError(t, Import(ctx, s, b, log))

	repos := repository.Provide(s, log)
	doing := models.StatusDoing
	tasks, err := repos.Tasks.List(ctx, &doing)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Logo", tasks[0].Name)

	comments, err := repos.Comments.ListByTask(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	assert.ErrorIs(t, Import(ctx, s, b, log), ErrNotEmpty)
}

func TestImport_KeepsCorruptDocument(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	corrupt := []byte(`[{"id":1,"name":"half written"`)
	require.NoError(t, s.Write(ctx, store.ResourceTasks, corrupt))

	b, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	assert.ErrorIs(t, Import(ctx, s, b, logger.NewNop()), ErrNotEmpty)

	doc, err := s.Read(ctx, store.ResourceTasks)
	require.NoError(t, err)
	assert.Equal(t, corrupt, doc)
}

func TestImport_EmptyArrayCountsAsEmpty(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Write(ctx, store.ResourceTasks, []byte("[]\n")))

	b, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.NoError(t, Import(ctx, s, b, logger.NewNop()))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	b, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, b.Tasks, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
