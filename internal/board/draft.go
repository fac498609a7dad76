package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/lutfiEmre/todolist/internal/common/errors"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

// Draft is the new-task form. Numeric fields are nil until they hold a number.
type Draft struct {
	Category       string
	Name           string
	SuccessPercent *int
	Importance     *int
	TimelineDays   *int
	InitialComment string
}

// Validate returns every rule the draft breaks, joined, or nil.
func (d Draft) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Category) == "" {
		errs = append(errs, apperrors.ValidationError("category", "is required"))
	}
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, apperrors.ValidationError("name", "is required"))
	}
	if d.SuccessPercent == nil || *d.SuccessPercent < 0 || *d.SuccessPercent > 100 {
		errs = append(errs, apperrors.ValidationError("successPercent", "must be between 0 and 100"))
	}
	if d.Importance == nil || *d.Importance < 1 || *d.Importance > 5 {
		errs = append(errs, apperrors.ValidationError("importance", "must be between 1 and 5"))
	}
	if d.TimelineDays == nil || *d.TimelineDays < 1 {
		errs = append(errs, apperrors.ValidationError("timeline", "must be at least 1 day"))
	}
	return errors.Join(errs...)
}

// Valid reports whether the draft can be submitted.
func (d Draft) Valid() bool {
	return d.Validate() == nil
}

// ToTask builds the task a valid draft describes, at the head of status.
func (d Draft) ToTask(id int64, status models.Status) models.Task {
	t := models.Task{
		ID:       id,
		Category: d.Category,
		Name:     d.Name,
		Status:   status,
		Order:    0,
	}
	if d.SuccessPercent != nil {
		t.SuccessPercent = *d.SuccessPercent
	}
	if d.Importance != nil {
		t.Importance = *d.Importance
	}
	if d.TimelineDays != nil {
		t.Timeline = fmt.Sprintf("%d days", *d.TimelineDays)
	}
	return t
}

// ParseDraftInput builds a draft from raw text fields. Numbers that do not parse stay nil.
func ParseDraftInput(category, name, percent, importance, timeline, comment string) Draft {
	return Draft{
		Category:       category,
		Name:           name,
		SuccessPercent: parseInt(percent),
		Importance:     parseInt(importance),
		TimelineDays:   parseInt(timeline),
		InitialComment: comment,
	}
}

func parseInt(raw string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}
