package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lutfiEmre/todolist/internal/board"
	apperrors "github.com/lutfiEmre/todolist/internal/common/errors"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

// submitDraftMsg is sent when the form is submitted with a valid draft.
type submitDraftMsg struct {
	draft  board.Draft
	status models.Status
}

// closeOverlayMsg closes whatever overlay is open.
type closeOverlayMsg struct{}

const (
	fieldCategory = iota
	fieldName
	fieldPercent
	fieldImportance
	fieldTimeline
	fieldComment
	fieldSubmit
)

var fieldLabels = []string{"Category", "Name", "% Complete", "Importance (1-5)", "Timeline (days)", "First comment"}

// fieldKeys maps form fields to the field names validation errors carry.
var fieldKeys = []string{"category", "name", "successPercent", "importance", "timeline", ""}

// taskForm collects a Draft for a new task in status.
type taskForm struct {
	status models.Status
	inputs []textinput.Model
	focus  int
	styles *Styles
}

func newTaskForm(status models.Status, s *Styles) *taskForm {
	placeholders := []string{"Design", "Landing page", "0", "3", "5", "optional"}
	inputs := make([]textinput.Model, len(fieldLabels))
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		ti.Width = 40
		ti.Prompt = "> "
		inputs[i] = ti
	}
	for _, i := range []int{fieldPercent, fieldImportance, fieldTimeline} {
		inputs[i].CharLimit = 4
	}
	inputs[fieldCategory].Focus()

	return &taskForm{status: status, inputs: inputs, styles: s}
}

// Draft parses the current input.
func (f *taskForm) Draft() board.Draft {
	return board.ParseDraftInput(
		f.inputs[fieldCategory].Value(),
		f.inputs[fieldName].Value(),
		f.inputs[fieldPercent].Value(),
		f.inputs[fieldImportance].Value(),
		f.inputs[fieldTimeline].Value(),
		f.inputs[fieldComment].Value(),
	)
}

// CanSubmit reports whether the submit button is enabled.
func (f *taskForm) CanSubmit() bool {
	return f.Draft().Valid()
}

func (f *taskForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldSubmit + 1) % (fieldSubmit + 1)
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *taskForm) submit() tea.Cmd {
	if !f.CanSubmit() {
		return nil
	}
	msg := submitDraftMsg{draft: f.Draft(), status: f.status}
	return func() tea.Msg { return msg }
}

func (f *taskForm) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return func() tea.Msg { return closeOverlayMsg{} }
		case "ctrl+s":
			return f.submit()
		case "tab", "down":
			return f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f.setFocus(f.focus - 1)
		case "enter":
			if f.focus == fieldSubmit {
				return f.submit()
			}
			return f.setFocus(f.focus + 1)
		}
	}

	if f.focus == fieldSubmit {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// fieldErrors maps field names to the first message validation reported.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	for _, e := range errs {
		var appErr *apperrors.AppError
		if errors.As(e, &appErr) && appErr.Field != "" {
			if _, seen := out[appErr.Field]; !seen {
				out[appErr.Field] = appErr.Message
			}
		}
	}
	return out
}

func (f *taskForm) View() string {
	s := f.styles
	var b strings.Builder
	b.WriteString(s.OverlayTitle.Render("New task in " + f.status.Title()))
	b.WriteString("\n")

	problems := fieldErrors(f.Draft().Validate())
	for i, input := range f.inputs {
		label := s.Label
		if i == f.focus {
			label = s.LabelFocused
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
		if msg, ok := problems[fieldKeys[i]]; ok && strings.TrimSpace(input.Value()) != "" {
			b.WriteString(s.FieldError.Render(msg))
			b.WriteString("\n")
		}
	}

	button := s.ButtonDisabled
	if f.CanSubmit() {
		button = s.Button
		if f.focus == fieldSubmit {
			button = s.ButtonActive
		}
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, button.Render("Add"), "  ", s.StatusHint.Render("tab: next • ctrl+s: add • esc: cancel")))
	return s.Overlay.Render(b.String())
}
