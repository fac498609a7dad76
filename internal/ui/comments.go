package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lutfiEmre/todolist/internal/task/models"
)

// addCommentMsg asks the model to add message to the panel's task.
type addCommentMsg struct {
	taskID  int64
	message string
}

// commentsPanel lists the comments of one task and takes new ones.
type commentsPanel struct {
	task     models.Task
	comments []models.Comment
	loading  bool
	input    textinput.Model
	styles   *Styles
}

func newCommentsPanel(task models.Task, cached []models.Comment, s *Styles) *commentsPanel {
	ti := textinput.New()
	ti.Placeholder = "Write a comment..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Width = 50
	ti.Focus()

	return &commentsPanel{task: task, comments: cached, loading: true, input: ti, styles: s}
}

func (p *commentsPanel) setComments(comments []models.Comment) {
	p.comments = comments
	p.loading = false
}

func (p *commentsPanel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return func() tea.Msg { return closeOverlayMsg{} }
		case tea.KeyEnter:
			text := p.input.Value()
			if strings.TrimSpace(text) == "" {
				return nil
			}
			p.input.SetValue("")
			out := addCommentMsg{taskID: p.task.ID, message: text}
			return func() tea.Msg { return out }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *commentsPanel) View() string {
	s := p.styles
	var b strings.Builder
	b.WriteString(s.OverlayTitle.Render("Comments · " + p.task.Name))
	b.WriteString("\n")

	switch {
	case len(p.comments) == 0 && p.loading:
		b.WriteString(s.CardMeta.Render("loading..."))
		b.WriteString("\n")
	case len(p.comments) == 0:
		b.WriteString(s.CardMeta.Render("No comments yet."))
		b.WriteString("\n")
	}
	for _, c := range p.comments {
		b.WriteString(s.Label.Render(fmt.Sprintf("%s · %s", c.Author, c.Date)))
		b.WriteString("\n")
		b.WriteString(c.Message)
		b.WriteString("\n\n")
	}

	b.WriteString(p.input.View())
	b.WriteString("\n")
	b.WriteString(s.StatusHint.Render("enter: add • esc: close"))
	return s.Overlay.Render(b.String())
}
