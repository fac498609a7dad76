// Package seed imports a board described in YAML into an empty record store.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/store"
	"github.com/lutfiEmre/todolist/internal/task/dto"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

// ErrNotEmpty is returned when the store already holds tasks or comments.
var ErrNotEmpty = errors.New("store already holds board data")

// Board is the layout of a seed file:
//
//	tasks:
//	  - id: 1
//	    category: Design
//	    name: Logo
//	    successPercent: 40
//	    importance: 3
//	    timeline: 4 days
//	    status: doing
//	    order: 0
//	comments:
//	  - id: 10
//	    taskId: 1
//	    author: Ada
//	    message: first sketch is up
//	    date: "2026-10-18"
type Board struct {
	Tasks    []models.Task    `yaml:"tasks"`
	Comments []models.Comment `yaml:"comments"`
}

// Parse decodes and checks a seed document. Missing ids are assigned and a
// missing status defaults to todo. Tasks must satisfy the same bounds the
// HTTP API enforces.
func Parse(r io.Reader) (*Board, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var b Board
	if err := dec.Decode(&b); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[int64]bool, len(b.Tasks))
	for i := range b.Tasks {
		t := &b.Tasks[i]
		if t.ID == 0 {
			t.ID = models.NewID()
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("task %d: duplicate id", t.ID)
		}
		seen[t.ID] = true
		if t.Status == "" {
			t.Status = models.StatusTodo
		}
		if !t.Status.Valid() {
			return nil, fmt.Errorf("task %d: invalid status %q", t.ID, t.Status)
		}
		if err := dto.ValidateTask(t); err != nil {
			return nil, fmt.Errorf("task %d: %w", t.ID, err)
		}
	}
	for i := range b.Comments {
		c := &b.Comments[i]
		if c.ID == 0 {
			c.ID = models.NewID()
		}
		if c.Date == "" {
			c.Date = models.Today()
		}
	}
	return &b, nil
}

// LoadFile parses the seed file at path.
func LoadFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Import writes b into s. It refuses to touch a store that already has data,
// including a document that no longer decodes.
func Import(ctx context.Context, s store.Store, b *Board, log *logger.Logger) error {
	for _, resource := range []string{store.ResourceTasks, store.ResourceComments} {
		used, err := hasData(ctx, s, resource)
		if err != nil {
			return fmt.Errorf("check %s: %w", resource, err)
		}
		if used {
			return ErrNotEmpty
		}
	}

	tasks := store.NewCollection[models.Task](s, store.ResourceTasks, log)
	comments := store.NewCollection[models.Comment](s, store.ResourceComments, log)

	if err := tasks.Save(ctx, b.Tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	if err := comments.Save(ctx, b.Comments); err != nil {
		return fmt.Errorf("save comments: %w", err)
	}

	log.Info("board seeded",
		zap.Int("tasks", len(b.Tasks)),
		zap.Int("comments", len(b.Comments)))
	return nil
}

// hasData reports whether the raw resource document holds anything besides
// an empty array.
func hasData(ctx context.Context, s store.Store, resource string) (bool, error) {
	doc, err := s.Read(ctx, resource)
	if err != nil {
		return false, err
	}
	doc = bytes.TrimSpace(doc)
	switch string(doc) {
	case "", "[]", "null":
		return false, nil
	}
	return true, nil
}
