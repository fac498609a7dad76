// Package board holds the client-side model of the Kanban board: the
// reordering engine, the optimistic view-model and the new-task draft.
package board

import (
	"sort"

	"github.com/lutfiEmre/todolist/internal/task/models"
)

// Board is four ordered columns of tasks. Columns are sorted by order once,
// in NewBoard; afterwards every mutation keeps positions and order in step.
type Board struct {
	columns map[models.Status][]models.Task
}

// Gesture is a drag of Source onto column Dest. Anchor is the id of the task
// at the insertion point, or nil for an empty column or a drop past the end.
type Gesture struct {
	Source CardRef
	Dest   models.Status
	Anchor *int64
}

// ColumnOrder is the order write for one column.
type ColumnOrder struct {
	Status  models.Status
	Entries []models.OrderEntry
}

// Plan lists the writes needed to persist one board transition.
type Plan struct {
	TaskID int64
	Patch  *models.TaskPatch
	Orders []ColumnOrder
}

// Empty reports whether the plan needs no writes.
func (p Plan) Empty() bool {
	return p.Patch == nil && len(p.Orders) == 0
}

// NewBoard partitions tasks by status and sorts each column by order.
// Tasks with an unknown status are dropped.
func NewBoard(tasks []models.Task) *Board {
	b := &Board{columns: make(map[models.Status][]models.Task, len(models.AllStatuses))}
	for _, s := range models.AllStatuses {
		b.columns[s] = []models.Task{}
	}
	for _, t := range tasks {
		if !t.Status.Valid() {
			continue
		}
		b.columns[t.Status] = append(b.columns[t.Status], t)
	}
	for _, s := range models.AllStatuses {
		col := b.columns[s]
		sort.SliceStable(col, func(i, j int) bool { return col[i].Order < col[j].Order })
	}
	return b
}

// Column returns a copy of the tasks of s in display order.
func (b *Board) Column(s models.Status) []models.Task {
	return append([]models.Task(nil), b.columns[s]...)
}

// Len returns the number of tasks in s.
func (b *Board) Len(s models.Status) int {
	return len(b.columns[s])
}

// Find returns the task ref points at and its index in the column.
func (b *Board) Find(ref CardRef) (models.Task, int, bool) {
	idx := indexOf(b.columns[ref.Column], ref.TaskID)
	if idx < 0 {
		return models.Task{}, -1, false
	}
	return b.columns[ref.Column][idx], idx, true
}

// Snapshot returns a copy of every column.
func (b *Board) Snapshot() map[models.Status][]models.Task {
	out := make(map[models.Status][]models.Task, len(b.columns))
	for s := range b.columns {
		out[s] = b.Column(s)
	}
	return out
}

// Move applies a drag gesture and returns the writes that persist it.
// Dropping a card onto itself changes nothing.
func (b *Board) Move(g Gesture) Plan {
	if !g.Dest.Valid() {
		return Plan{}
	}
	if g.Source.Column == g.Dest && g.Anchor != nil && *g.Anchor == g.Source.TaskID {
		return Plan{}
	}
	if _, _, ok := b.Find(g.Source); !ok {
		return Plan{}
	}
	return b.relocate(g.Source, g.Dest, func(dest []models.Task) int {
		if g.Anchor != nil {
			if idx := indexOf(dest, *g.Anchor); idx >= 0 {
				return idx
			}
		}
		return len(dest)
	})
}

// IncrementPercent adds delta to the task's successPercent, clamped to
// [0, 100]. Reaching 100 moves the task to the head of done.
func (b *Board) IncrementPercent(ref CardRef, delta int) Plan {
	task, idx, ok := b.Find(ref)
	if !ok {
		return Plan{}
	}
	next := clamp(task.SuccessPercent+delta, 0, 100)
	if next == task.SuccessPercent {
		return Plan{}
	}
	b.columns[ref.Column][idx].SuccessPercent = next

	if next < 100 {
		return Plan{TaskID: ref.TaskID, Patch: &models.TaskPatch{SuccessPercent: models.Ptr(next)}}
	}

	plan := b.relocate(ref, models.StatusDone, func([]models.Task) int { return 0 })
	if plan.Patch == nil {
		plan.Patch = &models.TaskPatch{}
	}
	plan.Patch.SuccessPercent = models.Ptr(next)
	return plan
}

// Insert puts a new task at the head of its column. Existing order values are left alone.
func (b *Board) Insert(t models.Task) {
	if !t.Status.Valid() {
		return
	}
	b.columns[t.Status] = append([]models.Task{t}, b.columns[t.Status]...)
}

// Remove drops the task ref points at. Remaining order values are left alone.
func (b *Board) Remove(ref CardRef) (models.Task, bool) {
	task, idx, ok := b.Find(ref)
	if !ok {
		return models.Task{}, false
	}
	col := b.columns[ref.Column]
	b.columns[ref.Column] = append(col[:idx:idx], col[idx+1:]...)
	return task, true
}

// relocate removes the task at src, inserts it into dest at the index chosen
// by at (computed after removal), re-derives order for the touched columns and
// builds the matching plan.
func (b *Board) relocate(src CardRef, dest models.Status, at func([]models.Task) int) Plan {
	moved, ok := b.Remove(src)
	if !ok {
		return Plan{}
	}
	moved.Status = dest

	target := b.columns[dest]
	idx := at(target)
	if idx > len(target) {
		idx = len(target)
	}
	inserted := make([]models.Task, 0, len(target)+1)
	inserted = append(inserted, target[:idx]...)
	inserted = append(inserted, moved)
	inserted = append(inserted, target[idx:]...)
	b.columns[dest] = inserted

	plan := Plan{TaskID: src.TaskID}
	plan.Orders = append(plan.Orders, b.rederive(dest))
	if src.Column != dest {
		plan.Orders = append(plan.Orders, b.rederive(src.Column))
		plan.Patch = &models.TaskPatch{
			Status: models.Ptr(dest),
			Order:  models.Ptr(idx),
		}
	}
	return plan
}

// rederive sets order to the position of every task in s.
func (b *Board) rederive(s models.Status) ColumnOrder {
	col := b.columns[s]
	entries := make([]models.OrderEntry, len(col))
	for i := range col {
		col[i].Order = i
		entries[i] = models.OrderEntry{ID: col[i].ID, Order: i}
	}
	return ColumnOrder{Status: s, Entries: entries}
}

func indexOf(tasks []models.Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
