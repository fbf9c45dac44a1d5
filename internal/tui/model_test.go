package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/examprep/internal/app"
	"github.com/existflow/examprep/internal/focus"
	"github.com/existflow/examprep/internal/kv"
	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/persist"
	"github.com/existflow/examprep/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, username string) *app.Session {
	t.Helper()
	ctx := context.Background()
	mem := kv.NewMemory()
	a := persist.New(mem)
	require.NoError(t, a.SaveTasks(ctx, []model.Task{
		{ID: 1, Date: "2025-06-02", Subject: "MATH", Text: "Limits"},
		{ID: 2, Date: "2025-06-02", Subject: "ENG", Text: "Essay"},
		{ID: 3, Date: "2025-06-03", Subject: "MATH", Text: "Series"},
	}))
	require.NoError(t, a.SaveUsername(ctx, username))

	sess, err := app.Open(ctx, mem, streak.NewFakeClock(time.Date(2025, 6, 2, 12, 0, 0, 0, time.Local)))
	require.NoError(t, err)
	return sess
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestOnboarding(t *testing.T) {
	sess := newSession(t, "")
	m := NewModel(sess, Options{})
	require.Equal(t, ModeOnboarding, m.mode)

	// Empty names are not accepted
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeOnboarding, m.mode)

	m.input.SetValue("Ann")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "Ann", sess.Username())
}

func TestAddAndToggle(t *testing.T) {
	sess := newSession(t, "Ann")
	m := NewModel(sess, Options{})
	require.Equal(t, ModeNormal, m.mode)
	require.Len(t, m.rows(), 2)

	m, _ = send(t, m, runes("a"))
	require.Equal(t, ModeAddTask, m.mode)
	m.input.SetValue("bio Cells")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, m.mode)

	rows := m.rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "BIO", rows[2].Subject)
	assert.Equal(t, 2, m.cursor)

	m, _ = send(t, m, runes("x"))
	assert.True(t, sess.IsCompleted(rows[2].ID))
	assert.Equal(t, 1, sess.Streak().Count)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	sess := newSession(t, "Ann")
	m := NewModel(sess, Options{ConfirmDelete: true})

	m, _ = send(t, m, runes("d"))
	require.Equal(t, ModeConfirmDelete, m.mode)
	m, _ = send(t, m, runes("n"))
	assert.Len(t, sess.Tasks(), 3)

	m, _ = send(t, m, runes("d"))
	m, _ = send(t, m, runes("y"))
	assert.Len(t, sess.Tasks(), 2)
	_, ok := sess.Task(1)
	assert.False(t, ok)
}

func TestMoveKeys(t *testing.T) {
	sess := newSession(t, "Ann")
	m := NewModel(sess, Options{})

	m, _ = send(t, m, runes("J"))
	assert.Equal(t, int64(1), m.rows()[1].ID)
	assert.Equal(t, 1, m.cursor)

	m, _ = send(t, m, runes(">"))
	moved, _ := sess.Task(1)
	assert.Equal(t, "2025-06-03", moved.Date)
	assert.Len(t, m.rows(), 1)
}

func TestTimerAccruesToCurrentTask(t *testing.T) {
	sess := newSession(t, "Ann")
	m := NewModel(sess, Options{FocusMinutes: 1, BreakMinutes: 1})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	require.NotNil(t, cmd)
	require.True(t, m.timer.Active())
	assert.Equal(t, int64(1), m.timer.TaskID())

	gen := m.timer.Generation()
	m, cmd = send(t, m, timerTickMsg{gen: gen})
	assert.NotNil(t, cmd, "running timer schedules the next tick")
	got, _ := sess.Task(1)
	assert.Equal(t, int64(1), got.TimeSpent)

	// Pausing makes the in-flight tick stale
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m, cmd = send(t, m, timerTickMsg{gen: gen})
	assert.Nil(t, cmd)
	got, _ = sess.Task(1)
	assert.Equal(t, int64(1), got.TimeSpent)
}

func TestSelectForTimerReturnsToFocus(t *testing.T) {
	sess := newSession(t, "Ann")
	m := NewModel(sess, Options{})

	m, _ = send(t, m, runes("m"))
	require.Equal(t, focus.ModeBreak, m.timer.Mode())

	m, _ = send(t, m, runes("t"))
	assert.Equal(t, focus.ModeFocus, m.timer.Mode())
	assert.Equal(t, int64(1), m.timer.TaskID())
}

func TestSubjectsTabMarksToday(t *testing.T) {
	sess := newSession(t, "Ann")
	m := NewModel(sess, Options{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = send(t, m, runes("3"))

	var today, later string
	for _, line := range strings.Split(m.View(), "\n") {
		switch {
		case strings.Contains(line, "Limits"):
			today = line
		case strings.Contains(line, "Series"):
			later = line
		}
	}
	assert.Contains(t, today, "(today)")
	assert.NotContains(t, later, "(today)")
}

func TestTabsAndView(t *testing.T) {
	sess := newSession(t, "Ann")
	m := NewModel(sess, Options{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Contains(t, m.View(), "Limits")

	m, _ = send(t, m, runes("2"))
	assert.Equal(t, TabAll, m.tab)
	assert.Len(t, m.rows(), 3)

	m, _ = send(t, m, runes("3"))
	assert.Equal(t, TabSubjects, m.tab)
	assert.Equal(t, "ENG", m.rows()[0].Subject)

	m, _ = send(t, m, runes("4"))
	assert.Equal(t, TabTimer, m.tab)
	assert.NotEmpty(t, m.View())

	m, _ = send(t, m, runes("T"))
	assert.Equal(t, model.DefaultTheme.Next(), sess.Theme())
}

func TestSplitSubject(t *testing.T) {
	subject, text, ok := splitSubject("  math  Logarithms ")
	require.True(t, ok)
	assert.Equal(t, "MATH", subject)
	assert.Equal(t, "Logarithms", text)

	_, _, ok = splitSubject("MATH")
	assert.False(t, ok)
}
