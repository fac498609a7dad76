// Package ui is the terminal Kanban board.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/board"
	"github.com/lutfiEmre/todolist/internal/common/constants"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/task/models"
)

const (
	percentStep    = 10
	minColumnWidth = 24
)

type mode int

const (
	modeBoard mode = iota
	modeDrag
	modeForm
	modeConfirm
	modeComments
)

type writeFailure struct {
	op  string
	err error
}

type loadedMsg struct{ err error }

type writeFailedMsg writeFailure

type taskSavedMsg struct {
	task models.Task
	err  error
}

type commentsLoadedMsg struct {
	taskID   int64
	comments []models.Comment
	err      error
}

// Model is the Bubble Tea model of the board.
type Model struct {
	vm       *board.ViewModel
	logger   *logger.Logger
	styles   *Styles
	failures chan writeFailure

	col, row int
	mode     mode
	loading  bool

	form     *taskForm
	confirm  *confirmDialog
	comments *commentsPanel

	status    string
	statusErr bool

	width, height int
}

// New creates the board UI on top of p. Comments are written as author.
func New(p board.Persister, log *logger.Logger, author string) Model {
	failures := make(chan writeFailure, 32)
	log = log.WithFields(zap.String("component", "tui"))

	vm := board.NewViewModel(p, log,
		board.WithAuthor(author),
		board.WithErrorHandler(func(op string, err error) {
			select {
			case failures <- writeFailure{op: op, err: err}:
			default:
			}
		}),
	)

	return Model{
		vm:       vm,
		logger:   log,
		styles:   NewStyles(),
		failures: failures,
		loading:  true,
	}
}

// Wait blocks until the writes started by the board have finished.
func (m Model) Wait() {
	m.vm.Wait()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitForFailure())
}

func (m Model) loadCmd() tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()
		return loadedMsg{err: vm.Load(ctx)}
	}
}

func (m Model) waitForFailure() tea.Cmd {
	failures := m.failures
	return func() tea.Msg {
		return writeFailedMsg(<-failures)
	}
}

func (m Model) createTaskCmd(d board.Draft, status models.Status) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()
		task, err := vm.CreateTask(ctx, d, status)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m Model) loadCommentsCmd(taskID int64) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()
		comments, err := vm.Comments(ctx, taskID)
		return commentsLoadedMsg{taskID: taskID, comments: comments, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError("Could not load the whole board: " + msg.err.Error())
		} else {
			m.setInfo("Board loaded")
		}
		m.clampCursor()
		return m, nil

	case writeFailedMsg:
		m.setError(fmt.Sprintf("Saving failed (%s): %v. Press r to reload.", msg.op, msg.err))
		return m, m.waitForFailure()

	case taskSavedMsg:
		if msg.err != nil {
			m.setError("Task could not be saved: " + msg.err.Error())
		} else {
			m.setInfo("Task added")
		}
		return m, nil

	case commentsLoadedMsg:
		if m.comments != nil && m.comments.task.ID == msg.taskID {
			m.comments.setComments(msg.comments)
		}
		if msg.err != nil {
			m.setError("Could not load comments: " + msg.err.Error())
		}
		return m, nil

	case submitDraftMsg:
		m.closeOverlays()
		m.col = msg.status.Index()
		m.row = 0
		return m, m.createTaskCmd(msg.draft, msg.status)

	case closeOverlayMsg:
		m.closeOverlays()
		return m, nil

	case confirmDeleteMsg:
		m.closeOverlays()
		if !msg.confirmed {
			m.vm.CancelDelete()
			return m, nil
		}
		task, err := m.vm.ConfirmDelete()
		if err != nil {
			m.setError(err.Error())
		} else {
			m.setInfo("Deleted " + task.Name)
		}
		m.clampCursor()
		return m, nil

	case addCommentMsg:
		if _, err := m.vm.AddComment(msg.taskID, msg.message); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		if m.comments != nil && m.comments.task.ID == msg.taskID {
			m.comments.comments = m.vm.CachedComments(msg.taskID)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m.updateOverlay(msg)
}

// updateOverlay forwards non-key messages, such as cursor blinks, to the open overlay.
func (m Model) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m, m.form.Update(msg)
	case modeComments:
		return m, m.comments.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m, m.form.Update(msg)
	case modeConfirm:
		return m, m.confirm.Update(msg)
	case modeComments:
		return m, m.comments.Update(msg)
	case modeDrag:
		return m.handleDragKey(msg)
	}
	return m.handleBoardKey(msg)
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "left":
		m.moveColumn(-1, false)
	case "l", "right":
		m.moveColumn(1, false)
	case "k", "up":
		m.moveRow(-1, false)
	case "j", "down":
		m.moveRow(1, false)

	case " ", "space":
		task, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		if err := m.vm.BeginDrag(board.RefOf(task)); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.mode = modeDrag
		m.setInfo("Moving " + task.Name + ": choose a spot, space to drop, esc to cancel")

	case "+", "=":
		m.incrementPercent(percentStep)
	case "-", "_":
		m.incrementPercent(-percentStep)

	case "n":
		m.form = newTaskForm(m.currentStatus(), m.styles)
		m.mode = modeForm
		return m, textinput.Blink

	case "d":
		task, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		if err := m.vm.RequestDelete(board.RefOf(task)); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.confirm = newConfirmDialog(task, m.styles)
		m.mode = modeConfirm

	case "c":
		task, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		m.comments = newCommentsPanel(task, m.vm.CachedComments(task.ID), m.styles)
		m.mode = modeComments
		return m, tea.Batch(textinput.Blink, m.loadCommentsCmd(task.ID))

	case "r":
		m.loading = true
		m.setInfo("Reloading...")
		return m, m.loadCmd()
	}
	return m, nil
}

func (m Model) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.moveColumn(-1, true)
	case "l", "right":
		m.moveColumn(1, true)
	case "k", "up":
		m.moveRow(-1, true)
	case "j", "down":
		m.moveRow(1, true)

	case "esc":
		ref, _ := m.vm.Dragging()
		m.vm.CancelDrag()
		m.mode = modeBoard
		m.follow(ref.TaskID)
		m.setInfo("Move cancelled")

	case " ", "space", "enter":
		ref, _ := m.vm.Dragging()
		dest := m.currentStatus()
		var anchor *int64
		if tasks := m.vm.Column(dest); m.row < len(tasks) {
			id := tasks[m.row].ID
			anchor = &id
		}
		m.mode = modeBoard
		if _, err := m.vm.Drop(dest, anchor); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.follow(ref.TaskID)
		m.clearStatus()
	}
	return m, nil
}

func (m *Model) incrementPercent(delta int) {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	m.vm.IncrementPercent(board.RefOf(task), delta)
	m.follow(task.ID)
}

// follow puts the cursor on the task with id, wherever it is now.
func (m *Model) follow(id int64) {
	for ci, status := range models.AllStatuses {
		for ri, t := range m.vm.Column(status) {
			if t.ID == id {
				m.col, m.row = ci, ri
				return
			}
		}
	}
	m.clampCursor()
}

func (m *Model) moveColumn(delta int, dragging bool) {
	m.col += delta
	if m.col < 0 {
		m.col = 0
	}
	if m.col >= len(models.AllStatuses) {
		m.col = len(models.AllStatuses) - 1
	}
	m.clampRow(dragging)
}

func (m *Model) moveRow(delta int, dragging bool) {
	m.row += delta
	m.clampRow(dragging)
}

// clampRow keeps the cursor on a card. While dragging the slot after the
// last card is also allowed.
func (m *Model) clampRow(dragging bool) {
	limit := len(m.vm.Column(m.currentStatus())) - 1
	if dragging {
		limit++
	}
	if m.row > limit {
		m.row = limit
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *Model) clampCursor() {
	m.clampRow(m.mode == modeDrag)
}

func (m Model) currentStatus() models.Status {
	return models.AllStatuses[m.col]
}

func (m Model) currentTask() (models.Task, bool) {
	tasks := m.vm.Column(m.currentStatus())
	if m.row < 0 || m.row >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.row], true
}

func (m *Model) closeOverlays() {
	m.mode = modeBoard
	m.form = nil
	m.confirm = nil
	m.comments = nil
}

func (m *Model) setError(s string) {
	m.logger.Warn("board error shown", zap.String("message", s))
	m.status, m.statusErr = s, true
}

func (m *Model) setInfo(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) clearStatus() {
	m.status, m.statusErr = "", false
}

func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = 4 * 30
	}

	var overlay string
	switch m.mode {
	case modeForm:
		overlay = m.form.View()
	case modeConfirm:
		overlay = m.confirm.View()
	case modeComments:
		overlay = m.comments.View()
	}

	body := m.renderBoard(width)
	if overlay != "" {
		height := m.height - 1
		if height < lipgloss.Height(overlay) {
			height = lipgloss.Height(overlay)
		}
		body = lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar(width))
}

func (m Model) renderBoard(width int) string {
	if m.loading {
		return m.styles.StatusHint.Render("Loading board...")
	}

	colWidth := width / len(models.AllStatuses)
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	var dragging *int64
	if ref, ok := m.vm.Dragging(); ok {
		id := ref.TaskID
		dragging = &id
	}

	columns := make([]string, 0, len(models.AllStatuses))
	for i, status := range models.AllStatuses {
		active := i == m.col
		columns = append(columns, renderColumn(columnView{
			status:     status,
			tasks:      m.vm.Column(status),
			active:     active,
			cursor:     m.row,
			dragging:   dragging,
			dropTarget: active && m.mode == modeDrag,
		}, colWidth, m.styles))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) renderStatusBar(width int) string {
	if m.status != "" {
		style := m.styles.StatusBar
		if m.statusErr {
			style = m.styles.StatusError
		}
		return style.Width(width).Render(m.status)
	}
	hints := []string{"←→↑↓ move", "space drag", "+/- percent", "n new", "d delete", "c comments", "r reload", "q quit"}
	return m.styles.StatusBar.Width(width).Render(m.styles.StatusHint.Render(strings.Join(hints, " • ")))
}
