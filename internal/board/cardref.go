package board

import (
	"fmt"

	"github.com/lutfiEmre/todolist/internal/task/models"
)

// CardRef identifies a card on the board by the column it sits in and its task id.
type CardRef struct {
	Column models.Status
	TaskID int64
}

// RefOf returns the reference of t in its current column.
func RefOf(t models.Task) CardRef {
	return CardRef{Column: t.Status, TaskID: t.ID}
}

func (r CardRef) String() string {
	return fmt.Sprintf("%s/%d", r.Column, r.TaskID)
}

// IsZero reports whether r refers to nothing.
func (r CardRef) IsZero() bool {
	return r.Column == "" && r.TaskID == 0
}
