package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/examprep/internal/focus"
	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/views"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	tabs := m.renderTabs()
	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(tabs) - lipgloss.Height(statusBar)

	var body string
	switch m.tab {
	case TabAll:
		body = m.renderAll()
	case TabSubjects:
		body = m.renderSubjects()
	case TabTimer:
		body = m.renderTimer()
	default:
		body = m.renderToday()
	}

	// Modals replace the body
	switch m.mode {
	case ModeOnboarding, ModeAddTask, ModeEditTask:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			m.renderModal(), lipgloss.WithWhitespaceChars(" "))
	case ModeHelp:
		body = m.renderHelp()
	}

	body = m.styles.Body.Width(m.width).Height(max(bodyHeight, 0)).MaxHeight(max(bodyHeight, 0)).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, statusBar)
}

func (m Model) renderHeader() string {
	left := m.styles.Header.Render("ExamPrep")
	if name := m.sess.Username(); name != "" {
		left += m.styles.Help.Render("· Hi, " + name)
	}

	stats := views.Progress(m.sess.Tasks(), m.sess.IsCompleted)
	right := fmt.Sprintf("%d%% done  🔥 %d  %s ", stats.Percent, m.sess.Streak().Count, m.today)
	right = m.styles.Help.Render(right)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	return left + repeat(" ", gap) + right
}

func (m Model) renderTabs() string {
	var parts []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			parts = append(parts, m.styles.TabActive.Render(label))
		} else {
			parts = append(parts, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) dayTitle(date string) string {
	label := date
	if t, err := model.ParseDate(date); err == nil {
		label = t.Format("Monday, Jan 2")
	}
	switch {
	case date == m.today:
		label += " · today"
	case date < m.today:
		label += " · past"
	}
	return label
}

func (m Model) renderToday() string {
	tasks := m.rows()
	var s string

	stats := views.Progress(tasks, m.sess.IsCompleted)
	header := fmt.Sprintf("%s (%d/%d)", m.dayTitle(m.day), stats.Completed, stats.Total)
	s += m.styles.DayHeader.Render(header) + "\n"
	s += m.styles.Help.Render(progressBar(fracOf(stats), 30)) + "\n\n"

	if len(tasks) == 0 {
		s += m.styles.Help.Render("  Nothing planned. Press 'a' to add a task, [ ] to browse days.")
	}
	for i, t := range tasks {
		s += m.renderTask(i, t) + "\n"
	}
	return s
}

func (m Model) renderAll() string {
	var s string
	row := 0
	for _, g := range views.DateGroups(m.sess.Tasks()) {
		s += m.styles.DayHeader.Render(m.dayTitle(g.Date)) + "\n"
		for _, t := range g.Tasks {
			s += m.renderTask(row, t) + "\n"
			row++
		}
		s += "\n"
	}
	if row == 0 {
		s += m.styles.Help.Render("  No tasks. Press 'a' to add one.")
	}
	return m.scroll(s)
}

func (m Model) renderSubjects() string {
	tasks := m.sess.Tasks()
	groups := views.BySubject(tasks)
	progress := views.SubjectProgress(tasks, m.sess.IsCompleted)
	spent := views.TimeBySubject(tasks)

	var s string
	row := 0
	for _, subject := range views.SortedSubjects(tasks) {
		p := progress[subject]
		s += fmt.Sprintf("%s %s %3d%%  %s\n",
			SubjectBadge(subject), m.styles.Help.Render(progressBar(fracOf(p), 20)), p.Percent,
			m.styles.Help.Render("⏱ "+focus.FormatSpent(spent[subject])))
		for _, t := range groups[subject] {
			s += m.renderTask(row, t) + "\n"
			row++
		}
		s += "\n"
	}
	return m.scroll(s)
}

func (m Model) renderTimer() string {
	color := m.styles.Palette.Timer
	if m.timer.Mode() == focus.ModeBreak {
		color = m.styles.Palette.Break
	}
	clock := m.styles.Clock.
		Foreground(color).
		BorderForeground(color).
		Render(focus.Format(m.timer.Remaining()))

	state := "paused"
	if m.timer.Active() {
		state = "running"
	}
	info := fmt.Sprintf("%s · %s", modeLabel(m.timer.Mode()), state)
	info += "\n" + progressBar(1-m.timer.Progress(), 30)

	task := "No task selected. Press 't' on a task to time it."
	if t, ok := m.sess.Task(m.timer.TaskID()); ok {
		task = fmt.Sprintf("Timing: [%s] %s · %s spent", t.Subject, t.Text, focus.FormatSpent(t.TimeSpent))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Center, clock, "  ", info)
	s := top + "\n\n" + m.styles.Help.Render(task) + "\n\n"
	s += m.styles.Help.Render("space start/pause · r reset · m focus/break · t select") + "\n\n"

	s += m.styles.DayHeader.Render(m.dayTitle(m.day)) + "\n"
	for i, t := range m.rows() {
		s += m.renderTask(i, t) + "\n"
	}
	return s
}

func (m Model) renderTask(row int, t model.Task) string {
	cursor := "  "
	style := m.styles.Item
	if row == m.cursor {
		cursor = "❯ "
		style = m.styles.ItemSelected
	}

	icon := "[ ]"
	done := m.sess.IsCompleted(t.ID)
	switch {
	case done:
		icon = "[x]"
		style = m.styles.ItemDone
	case t.IsOverdue(m.today):
		icon = "[!]"
		if row != m.cursor {
			style = m.styles.ItemOverdue
		}
	}

	timing := ""
	if t.ID == m.timer.TaskID() {
		timing = " ⏱"
	}
	if m.tab == TabSubjects && !done && t.IsToday(m.today) {
		timing += " (today)"
	}
	spent := ""
	if t.TimeSpent > 0 {
		spent = focus.FormatSpent(t.TimeSpent)
	}

	width := m.width - 30
	if width < 10 {
		width = 10
	}
	text := padRight(truncate(t.Text+timing, width), width)
	return style.Render(cursor+icon) + " " + SubjectBadge(t.Subject) + style.Render(" "+text) + " " + m.styles.Help.Render(spent)
}

// scroll keeps the cursor row in view for long lists
func (m Model) scroll(s string) string {
	lines := strings.Split(s, "\n")
	visible := m.height - 8
	if visible <= 0 || len(lines) <= visible {
		return s
	}
	cursorLine := 0
	for i, l := range lines {
		if strings.Contains(l, "❯") {
			cursorLine = i
			break
		}
	}
	start := cursorLine - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > len(lines) {
		start = len(lines) - visible
	}
	return strings.Join(lines[start:start+visible], "\n")
}

func (m Model) renderStatusBar() string {
	text := m.help.ShortHelpView(keys.ShortHelp())
	if m.message != "" {
		text = m.message
	}
	if m.timer.Active() {
		clock := fmt.Sprintf("%s %s", modeLabel(m.timer.Mode()), focus.Format(m.timer.Remaining()))
		avail := m.width - lipgloss.Width(text) - len(clock) - 2
		text += repeat(" ", max(avail, 1)) + clock
	}
	return m.styles.StatusBar.Width(m.width).Render(text)
}

func (m Model) renderModal() string {
	title := "Add Task"
	switch m.mode {
	case ModeOnboarding:
		title = "Welcome to ExamPrep! What's your name?"
	case ModeEditTask:
		title = "Edit Task"
	case ModeAddTask:
		title = fmt.Sprintf("Add Task to: %s", m.dayTitle(m.day))
		if m.tab == TabAll || m.tab == TabSubjects {
			if t, ok := m.currentTask(); ok {
				title = fmt.Sprintf("Add Task to: %s", m.dayTitle(t.Date))
			}
		}
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	if m.message != "" {
		content += m.styles.ItemOverdue.Render(m.message) + "\n"
	}
	hint := "Enter:save  Esc:cancel"
	if m.mode == ModeOnboarding {
		hint = "Enter:continue  Esc:quit"
	}
	content += m.styles.Help.Render(hint)

	return m.styles.Modal.Render(content)
}

func (m Model) renderHelp() string {
	title := m.styles.Header.Render("Keyboard shortcuts")
	full := m.help
	full.ShowAll = true
	return title + "\n\n" + full.View(keys) + "\n\n" + m.styles.Help.Render("Press any key to close")
}

func fracOf(s views.Stats) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}
