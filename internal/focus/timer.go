package focus

import (
	"fmt"
	"time"
)

// Mode is the current timer phase
type Mode int

const (
	ModeFocus Mode = iota
	ModeBreak
)

// String returns the display name of the mode
func (m Mode) String() string {
	if m == ModeBreak {
		return "break"
	}
	return "focus"
}

// Default phase lengths
const (
	DefaultFocus = 25 * time.Minute
	DefaultBreak = 5 * time.Minute
)

// Accrual is one second of focus time to credit to a task
type Accrual struct {
	TaskID  int64
	Seconds int64
}

// Timer is a Pomodoro countdown driven by an external once-a-second tick.
// It owns no goroutine: the caller delivers ticks, tagged with the generation
// returned by Start, and Tick ignores any tick from an older generation.
// After Pause, Reset or SwitchMode return, no further accrual can happen
// until the next Start.
type Timer struct {
	focusSecs int64
	breakSecs int64

	mode      Mode
	remaining int64
	active    bool
	taskID    int64
	gen       int
}

// New creates a timer in focus mode. Non-positive durations use the defaults.
func New(focusLen, breakLen time.Duration) *Timer {
	if focusLen <= 0 {
		focusLen = DefaultFocus
	}
	if breakLen <= 0 {
		breakLen = DefaultBreak
	}
	t := &Timer{
		focusSecs: int64(focusLen / time.Second),
		breakSecs: int64(breakLen / time.Second),
		mode:      ModeFocus,
	}
	t.remaining = t.focusSecs
	return t
}

// Start activates the countdown and returns the generation ticks must carry
func (t *Timer) Start() int {
	if !t.active {
		t.active = true
		t.gen++
	}
	return t.gen
}

// Pause stops the countdown, keeping the remaining time
func (t *Timer) Pause() {
	if t.active {
		t.active = false
		t.gen++
	}
}

// Toggle starts a paused timer or pauses a running one.
// Returns the generation and whether the timer is now running.
func (t *Timer) Toggle() (int, bool) {
	if t.active {
		t.Pause()
		return t.gen, false
	}
	return t.Start(), true
}

// Reset stops the countdown and restores the full length of the current mode
func (t *Timer) Reset() {
	t.Pause()
	t.remaining = t.phaseLength(t.mode)
}

// SwitchMode stops the countdown and flips between focus and break
func (t *Timer) SwitchMode() {
	t.Pause()
	t.setMode(t.other())
}

// SetMode stops the countdown and selects a mode explicitly
func (t *Timer) SetMode(m Mode) {
	if m == t.mode {
		return
	}
	t.SwitchMode()
}

// Select chooses the task that receives focus time; 0 means none
func (t *Timer) Select(taskID int64) {
	t.taskID = taskID
}

// Tick advances the countdown by one second if gen is current and the timer
// is running. While focusing on a selected task it returns one second to
// accrue. When a phase runs out the timer stops and flips to the other mode.
func (t *Timer) Tick(gen int) (Accrual, bool) {
	if !t.active || gen != t.gen || t.remaining <= 0 {
		return Accrual{}, false
	}

	t.remaining--
	var acc Accrual
	accrued := false
	if t.mode == ModeFocus && t.taskID != 0 {
		acc = Accrual{TaskID: t.taskID, Seconds: 1}
		accrued = true
	}

	if t.remaining == 0 {
		t.Pause()
		t.setMode(t.other())
	}
	return acc, accrued
}

func (t *Timer) setMode(m Mode) {
	t.mode = m
	t.remaining = t.phaseLength(m)
}

func (t *Timer) other() Mode {
	if t.mode == ModeFocus {
		return ModeBreak
	}
	return ModeFocus
}

func (t *Timer) phaseLength(m Mode) int64 {
	if m == ModeBreak {
		return t.breakSecs
	}
	return t.focusSecs
}

// Mode returns the current phase
func (t *Timer) Mode() Mode { return t.mode }

// Remaining returns the seconds left in the current phase
func (t *Timer) Remaining() int64 { return t.remaining }

// Active reports whether the countdown is running
func (t *Timer) Active() bool { return t.active }

// TaskID returns the selected task, 0 if none
func (t *Timer) TaskID() int64 { return t.taskID }

// Generation returns the current tick generation
func (t *Timer) Generation() int { return t.gen }

// Progress returns the fraction of the phase still remaining, 1 at start
func (t *Timer) Progress() float64 {
	total := t.phaseLength(t.mode)
	if total == 0 {
		return 0
	}
	return float64(t.remaining) / float64(total)
}

// Format renders seconds as MM:SS
func Format(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatSpent renders accumulated time as "1h 05m" or "12m"
func FormatSpent(seconds int64) string {
	if seconds <= 0 {
		return "0m"
	}
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	if m == 0 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm", m)
}
