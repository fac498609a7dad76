package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lutfiEmre/todolist/internal/task/models"
)

// confirmDeleteMsg carries the answer of the delete dialog.
type confirmDeleteMsg struct {
	confirmed bool
}

// confirmDialog asks before a task is deleted. No is selected by default.
type confirmDialog struct {
	task     models.Task
	selected bool
	styles   *Styles
}

func newConfirmDialog(task models.Task, s *Styles) *confirmDialog {
	return &confirmDialog{task: task, styles: s}
}

func answer(confirmed bool) tea.Cmd {
	return func() tea.Msg { return confirmDeleteMsg{confirmed: confirmed} }
}

func (d *confirmDialog) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "y", "Y":
		return answer(true)
	case "n", "N", "esc":
		return answer(false)
	case "enter":
		return answer(d.selected)
	case "left", "h":
		d.selected = false
	case "right", "l", "tab":
		d.selected = true
	}
	return nil
}

func (d *confirmDialog) View() string {
	s := d.styles
	var b strings.Builder
	b.WriteString(s.OverlayTitle.Render("Delete task"))
	b.WriteString("\n")
	b.WriteString("Delete \"" + d.task.Name + "\"? This cannot be undone.")
	b.WriteString("\n\n")

	yes, no := s.Button, s.ButtonActive
	if d.selected {
		yes, no = s.ButtonActive, s.Button
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("[Y] Yes"), "  ", no.Render("[N] No")))
	return s.Overlay.Render(b.String())
}
