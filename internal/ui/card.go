package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lutfiEmre/todolist/internal/common/stringutil"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

const barWidth = 10

// percentBar draws successPercent as a filled track, e.g. "████░░░░░░ 40%".
func percentBar(percent, width int, color lipgloss.Color) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	fill := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	track := lipgloss.NewStyle().Foreground(Track).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s%s %d%%", fill, track, percent)
}

type cardState int

const (
	cardNormal cardState = iota
	cardCursor
	cardDragging
)

func renderCard(task models.Task, state cardState, width int, s *Styles) string {
	style := s.Card
	switch state {
	case cardCursor:
		style = s.CardActive
	case cardDragging:
		style = s.CardDragging
	}
	inner := width - 4
	if inner < 4 {
		inner = 4
	}

	pill := s.Pill(task.Importance).Render(stringutil.TruncateStringWithEllipsis(task.Category, inner-2))
	title := s.CardTitle.Render(stringutil.TruncateStringWithEllipsis(task.Name, inner))
	bar := percentBar(task.SuccessPercent, min(barWidth, inner-5), ImportanceColor(task.Importance))
	meta := s.CardMeta.Render(stringutil.TruncateStringWithEllipsis(fmt.Sprintf("Importance: %d  %s", task.Importance, task.Timeline), inner))

	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, pill, title, bar, meta))
}

// columnView is what renderColumn needs to draw one column.
type columnView struct {
	status     models.Status
	tasks      []models.Task
	active     bool
	cursor     int
	dragging   *int64
	dropTarget bool
}

func renderColumn(col columnView, width int, s *Styles) string {
	headerStyle := s.ColumnHeader
	if col.active {
		headerStyle = s.ColumnHeaderActive
	}
	header := headerStyle.Render(fmt.Sprintf("%s (%d)", col.status.Title(), len(col.tasks)))

	var cards []string
	for i, task := range col.tasks {
		if col.dropTarget && i == col.cursor {
			cards = append(cards, s.DropSlot.Render("▸ drop here"))
		}
		state := cardNormal
		switch {
		case col.dragging != nil && *col.dragging == task.ID:
			state = cardDragging
		case col.active && !col.dropTarget && i == col.cursor:
			state = cardCursor
		}
		cards = append(cards, renderCard(task, state, width-4, s))
	}
	if col.dropTarget && col.cursor >= len(col.tasks) {
		cards = append(cards, s.DropSlot.Render("▸ drop here"))
	}

	body := strings.Join(cards, "\n")
	if body == "" {
		body = s.CardMeta.Render("empty")
	}

	style := s.Column
	if col.dropTarget {
		style = s.ColumnDropTarget
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, style.Width(width-2).Render(body))
}
