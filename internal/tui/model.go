package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/examprep/internal/app"
	"github.com/existflow/examprep/internal/focus"
	"github.com/existflow/examprep/internal/logger"
	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/views"
)

// Tab represents which screen is shown
type Tab int

const (
	TabToday Tab = iota
	TabAll
	TabSubjects
	TabTimer
)

var tabNames = []string{"Today", "All", "Subjects", "Timer"}

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeOnboarding
	ModeAddTask
	ModeEditTask
	ModeConfirmDelete
	ModeHelp
)

// Options are the settings the TUI takes from config
type Options struct {
	FocusMinutes  int
	BreakMinutes  int
	ConfirmDelete bool
}

// Model is the main TUI model
type Model struct {
	sess  *app.Session
	timer *focus.Timer
	opts  Options

	// UI state
	width  int
	height int
	tab    Tab
	mode   Mode
	cursor int
	day    string // Day shown on the Today and Timer tabs
	today  string
	styles Styles

	// Input
	input textinput.Model
	help  help.Model

	message string
}

// NewModel creates a new TUI model
func NewModel(sess *app.Session, opts Options) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		sess:   sess,
		timer:  focus.New(time.Duration(opts.FocusMinutes)*time.Minute, time.Duration(opts.BreakMinutes)*time.Minute),
		opts:   opts,
		tab:    TabToday,
		mode:   ModeNormal,
		day:    sess.Today(),
		today:  sess.Today(),
		styles: NewStyles(sess.Theme()),
		input:  ti,
		help:   help.New(),
	}

	if sess.NeedsOnboarding() {
		m.startInput(ModeOnboarding, "", "Your name")
	}

	logger.Debug("TUI model initialized",
		logger.F("tasks", len(sess.Tasks())),
		logger.F("onboarding", m.mode == ModeOnboarding))
	return m
}

// rows returns the tasks listed on the current tab, in display order
func (m *Model) rows() []model.Task {
	tasks := m.sess.Tasks()
	switch m.tab {
	case TabAll:
		var out []model.Task
		for _, g := range views.DateGroups(tasks) {
			out = append(out, g.Tasks...)
		}
		return out
	case TabSubjects:
		groups := views.BySubject(tasks)
		var out []model.Task
		for _, s := range views.SortedSubjects(tasks) {
			out = append(out, groups[s]...)
		}
		return out
	default:
		return views.SelectedDay(tasks, m.day)
	}
}

func (m *Model) currentTask() (model.Task, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return model.Task{}, false
	}
	return rows[m.cursor], true
}

// clampCursor keeps the cursor inside the current rows
func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// focusTask moves the cursor onto the task with id, if it is listed
func (m *Model) focusTask(id int64) {
	for i, t := range m.rows() {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

// groupIndex returns the position of a task within its date group
func (m *Model) groupIndex(t model.Task) (int, int) {
	group := views.SelectedDay(m.sess.Tasks(), t.Date)
	for i, g := range group {
		if g.ID == t.ID {
			return i, len(group)
		}
	}
	return -1, len(group)
}
