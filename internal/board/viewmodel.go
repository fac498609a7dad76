package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

var (
	ErrDragInProgress  = errors.New("a card is already being dragged")
	ErrNotDragging     = errors.New("no card is being dragged")
	ErrUnknownCard     = errors.New("card not on the board")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	ErrEmptyComment    = errors.New("comment message is empty")
)

// Persister is the remote side of the board.
type Persister interface {
	ListTasks(ctx context.Context, status models.Status) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	PatchTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ReorderColumn(ctx context.Context, status models.Status, entries []models.OrderEntry) error
	ListComments(ctx context.Context, taskID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)
}

// ErrorHandler is told about background writes that failed.
type ErrorHandler func(op string, err error)

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithAuthor sets the author of comments written from this board.
func WithAuthor(author string) Option {
	return func(vm *ViewModel) {
		if strings.TrimSpace(author) != "" {
			vm.author = author
		}
	}
}

// WithErrorHandler registers a callback for failed background writes.
func WithErrorHandler(h ErrorHandler) Option {
	return func(vm *ViewModel) { vm.onError = h }
}

// WithIDSource replaces the id generator for new tasks and comments.
func WithIDSource(next func() int64) Option {
	return func(vm *ViewModel) { vm.newID = next }
}

// ViewModel is the optimistic board state shown to the user. Every change is
// applied in memory first and persisted in the background; a failed write is
// logged and reported, never rolled back.
type ViewModel struct {
	mu            sync.Mutex
	board         *Board
	comments      map[int64][]models.Comment
	dragging      *CardRef
	pendingDelete *CardRef

	persist  Persister
	logger   *logger.Logger
	author   string
	onError  ErrorHandler
	newID    func() int64
	inflight sync.WaitGroup
}

// NewViewModel creates an empty board backed by p.
func NewViewModel(p Persister, log *logger.Logger, opts ...Option) *ViewModel {
	vm := &ViewModel{
		board:    NewBoard(nil),
		comments: make(map[int64][]models.Comment),
		persist:  p,
		logger:   log.WithFields(zap.String("component", "board-viewmodel")),
		author:   "Current User",
		newID:    models.NewID,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Load fetches the four columns concurrently and replaces the board. Columns
// that fail to load come back empty; the first failure is returned.
func (vm *ViewModel) Load(ctx context.Context) error {
	results := make([][]models.Task, len(models.AllStatuses))

	var g errgroup.Group
	g.SetLimit(len(models.AllStatuses))
	for i, status := range models.AllStatuses {
		i, status := i, status
		g.Go(func() error {
			tasks, err := vm.persist.ListTasks(ctx, status)
			if err != nil {
				vm.logger.Error("failed to load column", zap.String("status", string(status)), zap.Error(err))
				return fmt.Errorf("load %s: %w", status, err)
			}
			results[i] = tasks
			return nil
		})
	}
	err := g.Wait()

	var all []models.Task
	for _, tasks := range results {
		all = append(all, tasks...)
	}

	vm.mu.Lock()
	vm.board = NewBoard(all)
	vm.dragging = nil
	vm.pendingDelete = nil
	vm.mu.Unlock()
	return err
}

// Column returns the tasks of s in display order.
func (vm *ViewModel) Column(s models.Status) []models.Task {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.board.Column(s)
}

// Snapshot returns every column.
func (vm *ViewModel) Snapshot() map[models.Status][]models.Task {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.board.Snapshot()
}

// Find looks up the card ref points at.
func (vm *ViewModel) Find(ref CardRef) (models.Task, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	t, _, ok := vm.board.Find(ref)
	return t, ok
}

// BeginDrag picks up ref. Only one card can be dragged at a time.
func (vm *ViewModel) BeginDrag(ref CardRef) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.dragging != nil {
		return ErrDragInProgress
	}
	if _, _, ok := vm.board.Find(ref); !ok {
		return ErrUnknownCard
	}
	vm.dragging = &ref
	return nil
}

// Dragging returns the card being dragged, if any.
func (vm *ViewModel) Dragging() (CardRef, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.dragging == nil {
		return CardRef{}, false
	}
	return *vm.dragging, true
}

// CancelDrag puts the dragged card back where it was.
func (vm *ViewModel) CancelDrag() {
	vm.mu.Lock()
	vm.dragging = nil
	vm.mu.Unlock()
}

// Drop ends the drag on column dest before anchor (nil for the end of the column).
func (vm *ViewModel) Drop(dest models.Status, anchor *int64) (Plan, error) {
	vm.mu.Lock()
	if vm.dragging == nil {
		vm.mu.Unlock()
		return Plan{}, ErrNotDragging
	}
	g := Gesture{Source: *vm.dragging, Dest: dest, Anchor: anchor}
	vm.dragging = nil
	plan := vm.board.Move(g)
	vm.mu.Unlock()

	vm.persistPlan("move", plan)
	return plan, nil
}

// Move applies g right away and persists it in the background.
func (vm *ViewModel) Move(g Gesture) Plan {
	vm.mu.Lock()
	plan := vm.board.Move(g)
	vm.mu.Unlock()

	vm.persistPlan("move", plan)
	return plan
}

// IncrementPercent changes the task's percent by delta and persists it in the background.
func (vm *ViewModel) IncrementPercent(ref CardRef, delta int) Plan {
	vm.mu.Lock()
	plan := vm.board.IncrementPercent(ref, delta)
	vm.mu.Unlock()

	vm.persistPlan("increment-percent", plan)
	return plan
}

// RequestDelete asks for confirmation before ref is deleted.
func (vm *ViewModel) RequestDelete(ref CardRef) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if _, _, ok := vm.board.Find(ref); !ok {
		return ErrUnknownCard
	}
	vm.pendingDelete = &ref
	return nil
}

// PendingDelete returns the card awaiting delete confirmation.
func (vm *ViewModel) PendingDelete() (CardRef, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.pendingDelete == nil {
		return CardRef{}, false
	}
	return *vm.pendingDelete, true
}

// CancelDelete leaves the card on the board.
func (vm *ViewModel) CancelDelete() {
	vm.mu.Lock()
	vm.pendingDelete = nil
	vm.mu.Unlock()
}

// ConfirmDelete removes the pending card and deletes it in the background.
func (vm *ViewModel) ConfirmDelete() (models.Task, error) {
	vm.mu.Lock()
	if vm.pendingDelete == nil {
		vm.mu.Unlock()
		return models.Task{}, ErrNoPendingDelete
	}
	ref := *vm.pendingDelete
	vm.pendingDelete = nil
	task, ok := vm.board.Remove(ref)
	vm.mu.Unlock()
	if !ok {
		return models.Task{}, ErrUnknownCard
	}

	vm.background("delete", func(ctx context.Context) {
		if err := vm.persist.DeleteTask(ctx, ref.TaskID); err != nil {
			vm.report(ctx, "delete task", err)
		}
	})
	return task, nil
}

// CreateTask adds the task described by d to the head of status and waits for
// the server to store it. The initial comment, if any, is sent without waiting.
// A failed save is returned; the card stays on the board.
func (vm *ViewModel) CreateTask(ctx context.Context, d Draft, status models.Status) (models.Task, error) {
	if err := d.Validate(); err != nil {
		return models.Task{}, err
	}
	if !status.Valid() {
		return models.Task{}, fmt.Errorf("invalid status %q", status)
	}

	task := d.ToTask(vm.newID(), status)
	vm.mu.Lock()
	vm.board.Insert(task)
	vm.mu.Unlock()

	if msg := strings.TrimSpace(d.InitialComment); msg != "" {
		comment := models.Comment{
			ID:      vm.newID(),
			TaskID:  task.ID,
			Author:  vm.author,
			Message: d.InitialComment,
			Date:    models.Today(),
		}
		vm.background("initial-comment", func(ctx context.Context) {
			if _, err := vm.persist.CreateComment(ctx, comment); err != nil {
				vm.report(ctx, "create comment", err)
			}
		})
	}

	if _, err := vm.persist.CreateTask(ctx, task); err != nil {
		vm.logger.Error("failed to save task", zap.Int64("task_id", task.ID), zap.Error(err))
		return task, fmt.Errorf("task could not be saved: %w", err)
	}
	vm.logger.Debug("task saved", zap.Int64("task_id", task.ID))
	return task, nil
}

// Comments fetches the comments of taskID and caches them.
func (vm *ViewModel) Comments(ctx context.Context, taskID int64) ([]models.Comment, error) {
	comments, err := vm.persist.ListComments(ctx, taskID)
	if err != nil {
		vm.logger.Error("failed to load comments", zap.Int64("task_id", taskID), zap.Error(err))
		return vm.CachedComments(taskID), err
	}
	vm.mu.Lock()
	vm.comments[taskID] = append([]models.Comment(nil), comments...)
	vm.mu.Unlock()
	return comments, nil
}

// CachedComments returns the comments last seen for taskID.
func (vm *ViewModel) CachedComments(taskID int64) []models.Comment {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]models.Comment(nil), vm.comments[taskID]...)
}

// AddComment appends a comment to taskID locally and saves it in the background.
func (vm *ViewModel) AddComment(taskID int64, message string) (models.Comment, error) {
	if strings.TrimSpace(message) == "" {
		return models.Comment{}, ErrEmptyComment
	}
	comment := models.Comment{
		ID:      vm.newID(),
		TaskID:  taskID,
		Author:  vm.author,
		Message: message,
		Date:    models.Today(),
	}

	vm.mu.Lock()
	vm.comments[taskID] = append(vm.comments[taskID], comment)
	vm.mu.Unlock()

	vm.background("add-comment", func(ctx context.Context) {
		if _, err := vm.persist.CreateComment(ctx, comment); err != nil {
			vm.report(ctx, "create comment", err)
		}
	})
	return comment, nil
}

// Wait blocks until every background write has finished.
func (vm *ViewModel) Wait() {
	vm.inflight.Wait()
}

// persistPlan sends the writes of one gesture in order: the task patch
// first so the server sees the new column, then the column orders.
func (vm *ViewModel) persistPlan(op string, plan Plan) {
	if plan.Empty() {
		return
	}
	vm.background(op, func(ctx context.Context) {
		if plan.Patch != nil {
			if _, err := vm.persist.PatchTask(ctx, plan.TaskID, *plan.Patch); err != nil {
				vm.report(ctx, "patch task", err)
			}
		}
		for _, co := range plan.Orders {
			if err := vm.persist.ReorderColumn(ctx, co.Status, co.Entries); err != nil {
				vm.report(ctx, "reorder "+string(co.Status), err)
			}
		}
	})
}

func (vm *ViewModel) background(op string, fn func(ctx context.Context)) {
	ctx := context.WithValue(context.Background(), logger.GestureIDKey, uuid.New().String())
	vm.logger.WithContext(ctx).Debug("persisting", zap.String("op", op))

	vm.inflight.Add(1)
	go func() {
		defer vm.inflight.Done()
		fn(ctx)
	}()
}

func (vm *ViewModel) report(ctx context.Context, op string, err error) {
	vm.logger.WithContext(ctx).Error("background write failed; board may differ from storage",
		zap.String("op", op),
		zap.Error(err))
	if vm.onError != nil {
		vm.onError(op, err)
	}
}
