package models

import (
	"fmt"
	"sync"
	"time"
)

// Status is the column a task lives in.
type Status string

const (
	StatusTodo     Status = "todo"
	StatusDoing    Status = "doing"
	StatusInReview Status = "inreview"
	StatusDone     Status = "done"
)

// AllStatuses lists the board columns in display order.
var AllStatuses = []Status{StatusTodo, StatusDoing, StatusInReview, StatusDone}

var statusTitles = map[Status]string{
	StatusTodo:     "Todo",
	StatusDoing:    "Doing",
	StatusInReview: "In Review",
	StatusDone:     "Done",
}

// Valid reports whether s is one of the four board columns.
func (s Status) Valid() bool {
	_, ok := statusTitles[s]
	return ok
}

// Title returns the column heading.
func (s Status) Title() string {
	if t, ok := statusTitles[s]; ok {
		return t
	}
	return string(s)
}

// Index returns the display position of the column, or -1.
func (s Status) Index() int {
	for i, st := range AllStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStatus converts a raw value into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q", raw)
	}
	return s, nil
}

// Task is a card on the board.
type Task struct {
	ID             int64  `json:"id" yaml:"id"`
	Category       string `json:"category" yaml:"category"`
	Name           string `json:"name" yaml:"name"`
	SuccessPercent int    `json:"successPercent" yaml:"successPercent"`
	Importance     int    `json:"importance" yaml:"importance"`
	Timeline       string `json:"timeline" yaml:"timeline"`
	Status         Status `json:"status" yaml:"status"`
	Order          int    `json:"order" yaml:"order"`
}

// Comment is a note attached to a task. TaskID is a weak reference.
type Comment struct {
	ID      int64  `json:"id" yaml:"id"`
	TaskID  int64  `json:"taskId" yaml:"taskId"`
	Author  string `json:"author" yaml:"author"`
	Message string `json:"message" yaml:"message"`
	Date    string `json:"date" yaml:"date"`
}

// TaskPatch holds the fields of a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Category       *string `json:"category,omitempty"`
	Name           *string `json:"name,omitempty"`
	SuccessPercent *int    `json:"successPercent,omitempty"`
	Importance     *int    `json:"importance,omitempty"`
	Timeline       *string `json:"timeline,omitempty"`
	Status         *Status `json:"status,omitempty"`
	Order          *int    `json:"order,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Category == nil && p.Name == nil && p.SuccessPercent == nil &&
		p.Importance == nil && p.Timeline == nil && p.Status == nil && p.Order == nil
}

// Apply merges the patch into t. Every supplied field replaces the prior value.
func (p TaskPatch) Apply(t *Task) {
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.SuccessPercent != nil {
		t.SuccessPercent = *p.SuccessPercent
	}
	if p.Importance != nil {
		t.Importance = *p.Importance
	}
	if p.Timeline != nil {
		t.Timeline = *p.Timeline
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
}

// OrderEntry assigns an order value to a task id.
type OrderEntry struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

// DateLayout is the day-granularity format used for comment dates.
const DateLayout = "2006-01-02"

// Today returns the current local date as a comment date string.
func Today() string {
	return time.Now().Format(DateLayout)
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a timestamp-derived identifier (Unix milliseconds), bumped
// so that ids handed out by one process are strictly increasing.
func NewID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
