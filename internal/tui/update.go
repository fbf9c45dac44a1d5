package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/examprep/internal/focus"
	"github.com/existflow/examprep/internal/logger"
	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/store"
)

// clockMsg is sent every minute to follow day rollover
type clockMsg time.Time

// timerTickMsg is one second of the focus timer. gen is the timer
// generation that scheduled it; ticks from an older generation are dropped.
type timerTickMsg struct {
	gen int
}

// Init initializes the model with a clock tick
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockCmd()}
	if m.mode == ModeOnboarding {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

func clockCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func timerCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clockMsg:
		if today := m.sess.Today(); today != m.today {
			if m.day == m.today {
				m.day = today
			}
			m.today = today
			m.clampCursor()
		}
		return m, clockCmd()

	case timerTickMsg:
		return m.handleTimerTick(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// Handle mode-specific input
		switch m.mode {
		case ModeOnboarding, ModeAddTask, ModeEditTask:
			return m.updateInput(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		// Normal mode key handling
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleTimerTick advances the timer and credits focus time
func (m Model) handleTimerTick(msg timerTickMsg) (tea.Model, tea.Cmd) {
	mode := m.timer.Mode()
	acc, ok := m.timer.Tick(msg.gen)
	if ok {
		m.sess.AccrueTime(context.Background(), acc.TaskID, acc.Seconds)
	}

	if m.timer.Mode() != mode {
		if mode == focus.ModeFocus {
			m.message = "Focus session complete! Time for a break."
		} else {
			m.message = "Break is over. Back to work!"
		}
		logger.Info("Timer phase finished", logger.F("mode", mode))
		return m, nil
	}

	if m.timer.Active() && msg.gen == m.timer.Generation() {
		return m, timerCmd(msg.gen)
	}
	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		m.timer.Pause()
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		m.switchTab(msg.String())

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.DayBack):
		m.shiftDay(-1)

	case key.Matches(msg, keys.DayFwd):
		m.shiftDay(1)

	case key.Matches(msg, keys.Today):
		m.day = m.today
		m.cursor = 0

	case key.Matches(msg, keys.Add):
		return m.startAddTask()

	case key.Matches(msg, keys.Edit):
		return m.startEditTask()

	case key.Matches(msg, keys.Done), key.Matches(msg, keys.Enter):
		m.handleToggleDone()

	case key.Matches(msg, keys.Delete):
		m.handleDelete()

	case key.Matches(msg, keys.MoveUp):
		m.handleMoveWithinDay(-1)

	case key.Matches(msg, keys.MoveDown):
		m.handleMoveWithinDay(1)

	case key.Matches(msg, keys.PrevDay):
		m.handleMoveToDay(-1)

	case key.Matches(msg, keys.NextDay):
		m.handleMoveToDay(1)

	case key.Matches(msg, keys.Timer):
		return m.handleTimerToggle()

	case key.Matches(msg, keys.Reset):
		m.timer.Reset()
		m.message = "Timer reset"

	case key.Matches(msg, keys.Switch):
		m.timer.SwitchMode()
		m.message = fmt.Sprintf("Switched to %s", modeLabel(m.timer.Mode()))

	case key.Matches(msg, keys.Select):
		m.handleSelectForTimer()

	case key.Matches(msg, keys.Theme):
		m.handleCycleTheme()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) switchTab(k string) {
	switch k {
	case "1", "2", "3", "4":
		m.tab = Tab(k[0] - '1')
	default:
		m.tab = (m.tab + 1) % Tab(len(tabNames))
	}
	m.cursor = 0
}

func (m *Model) shiftDay(n int) {
	if day, err := model.AddDays(m.day, n); err == nil {
		m.day = day
		m.cursor = 0
	}
}

func (m Model) startAddTask() (tea.Model, tea.Cmd) {
	cmd := m.startInput(ModeAddTask, "", "SUBJECT task text, e.g. MATH Logarithms")
	return m, cmd
}

func (m Model) startEditTask() (tea.Model, tea.Cmd) {
	t, ok := m.currentTask()
	if !ok {
		return m, nil
	}
	cmd := m.startInput(ModeEditTask, t.Subject+" "+t.Text, "SUBJECT task text")
	return m, cmd
}

func (m *Model) startInput(mode Mode, value, placeholder string) tea.Cmd {
	m.mode = mode
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.input.CursorEnd()
	return textinput.Blink
}

func (m *Model) handleToggleDone() {
	t, ok := m.currentTask()
	if !ok {
		return
	}
	before := m.sess.Streak().Count
	if m.sess.ToggleComplete(context.Background(), t.ID) {
		m.message = fmt.Sprintf("Done: %s", t.Text)
		if after := m.sess.Streak().Count; after != before {
			m.message = fmt.Sprintf("Done! Streak: %d day(s)", after)
		}
	} else {
		m.message = fmt.Sprintf("Reopened: %s", t.Text)
	}
}

func (m *Model) handleDelete() {
	t, ok := m.currentTask()
	if !ok {
		return
	}
	if m.opts.ConfirmDelete {
		m.mode = ModeConfirmDelete
		m.message = fmt.Sprintf("Delete \"%s\"? (y/N)", truncate(t.Text, 40))
		return
	}
	m.deleteCurrent()
}

func (m *Model) deleteCurrent() {
	t, ok := m.currentTask()
	if !ok {
		return
	}
	if t.ID == m.timer.TaskID() {
		m.timer.Pause()
		m.timer.Select(0)
	}
	m.sess.DeleteTask(context.Background(), t.ID)
	m.message = fmt.Sprintf("Deleted: %s", t.Text)
	m.clampCursor()
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	switch msg.String() {
	case "y", "Y":
		m.deleteCurrent()
	default:
		m.message = "Cancelled"
	}
	return m, nil
}

// handleMoveWithinDay swaps the task with its neighbour in the same day
func (m *Model) handleMoveWithinDay(delta int) {
	t, ok := m.currentTask()
	if !ok {
		return
	}
	idx, n := m.groupIndex(t)
	dest := idx + delta
	if idx < 0 || dest < 0 || dest >= n {
		return
	}
	if err := m.sess.Reorder(context.Background(), t.Date, idx, dest, t.Date); err != nil {
		m.message = errorText(err)
		return
	}
	m.focusTask(t.ID)
}

// handleMoveToDay moves the task to the end of the previous or next day
func (m *Model) handleMoveToDay(delta int) {
	t, ok := m.currentTask()
	if !ok {
		return
	}
	target, err := model.AddDays(t.Date, delta)
	if err != nil {
		m.message = fmt.Sprintf("Move failed: %v", err)
		return
	}
	idx, _ := m.groupIndex(t)
	_, destLen := m.groupIndex(model.Task{Date: target})
	if err := m.sess.Reorder(context.Background(), t.Date, idx, destLen, target); err != nil {
		m.message = errorText(err)
		return
	}
	m.message = fmt.Sprintf("Moved to %s", target)
	m.focusTask(t.ID)
}

func (m Model) handleTimerToggle() (tea.Model, tea.Cmd) {
	if m.timer.TaskID() == 0 {
		if t, ok := m.currentTask(); ok && m.timer.Mode() == focus.ModeFocus {
			m.timer.Select(t.ID)
		}
	}
	gen, running := m.timer.Toggle()
	if !running {
		m.message = "Timer paused"
		return m, nil
	}
	m.message = fmt.Sprintf("%s started", modeLabel(m.timer.Mode()))
	return m, timerCmd(gen)
}

func (m *Model) handleSelectForTimer() {
	t, ok := m.currentTask()
	if !ok {
		return
	}
	// Time only accrues while focusing
	m.timer.SetMode(focus.ModeFocus)
	m.timer.Select(t.ID)
	m.message = fmt.Sprintf("Timing: %s", t.Text)
}

func (m *Model) handleCycleTheme() {
	next := m.sess.Theme().Next()
	if err := m.sess.SetTheme(context.Background(), next); err != nil {
		m.message = fmt.Sprintf("Theme error: %v", err)
		return
	}
	m.styles = NewStyles(next)
	m.message = fmt.Sprintf("Theme: %s", next)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		if m.mode == ModeOnboarding {
			return m, tea.Quit
		}
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			if m.mode != ModeOnboarding {
				m.mode = ModeNormal
			}
			return m, nil
		}

		switch m.mode {
		case ModeOnboarding:
			if err := m.sess.SetUsername(context.Background(), value); err != nil {
				m.message = err.Error()
				return m, nil
			}
			m.message = fmt.Sprintf("Welcome, %s!", m.sess.Username())

		case ModeAddTask:
			subject, text, ok := splitSubject(value)
			if !ok {
				m.message = "Format: SUBJECT task text"
				return m, nil
			}
			day := m.day
			if m.tab == TabAll || m.tab == TabSubjects {
				if cur, ok := m.currentTask(); ok {
					day = cur.Date
				}
			}
			t := m.sess.CreateTask(context.Background(), model.TaskFields{Date: day, Subject: subject, Text: text})
			m.message = fmt.Sprintf("Added: %s", t.Text)
			m.focusTask(t.ID)

		case ModeEditTask:
			t, ok := m.currentTask()
			if !ok {
				break
			}
			subject, text, ok := splitSubject(value)
			if !ok {
				m.message = "Format: SUBJECT task text"
				return m, nil
			}
			fields := t.Fields()
			fields.Subject, fields.Text = subject, text
			m.sess.UpdateTask(context.Background(), t.ID, fields)
			m.message = fmt.Sprintf("Updated: %s", text)
			m.focusTask(t.ID)
		}

		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func modeLabel(mode focus.Mode) string {
	if mode == focus.ModeBreak {
		return "Break"
	}
	return "Focus"
}

// errorText renders store errors for the status bar
func errorText(err error) string {
	if errors.Is(err, store.ErrIndexOutOfRange) {
		return "Nothing to move"
	}
	return fmt.Sprintf("Move failed: %v", err)
}
