package streak

import (
	"github.com/existflow/examprep/internal/model"
)

// State is the persisted streak pair
type State struct {
	Count    int    `json:"count"`
	LastDate string `json:"lastDate"` // Local day of the last counted completion, "" if none
}

// Tracker derives the daily completion streak.
// Only the first completion of a calendar day moves it.
type Tracker struct {
	clock Clock
	state State
}

// New creates a tracker with an empty streak
func New(clock Clock) *Tracker {
	if clock == nil {
		clock = RealClock{}
	}
	return &Tracker{clock: clock}
}

// Restore loads a persisted streak and validates it against today.
// A last date that is neither today nor yesterday breaks the streak: the
// count drops to 0 while the last date is kept until the next advance.
// Returns the effective count and whether it was reset.
func (t *Tracker) Restore(count int, lastDate string) (int, bool) {
	if count < 0 {
		count = 0
	}
	t.state = State{Count: count, LastDate: lastDate}

	now := t.clock.Now()
	if lastDate == model.Today(now) || lastDate == model.Yesterday(now) {
		return t.state.Count, false
	}

	reset := t.state.Count != 0
	t.state.Count = 0
	return 0, reset
}

// Advance records a completion event for today.
// Returns true if the streak state changed.
func (t *Tracker) Advance() bool {
	now := t.clock.Now()
	today := model.Today(now)

	switch t.state.LastDate {
	case today:
		return false
	case model.Yesterday(now):
		t.state.Count++
	default:
		t.state.Count = 1
	}
	t.state.LastDate = today
	return true
}

// Count returns the current streak length in days
func (t *Tracker) Count() int {
	return t.state.Count
}

// LastDate returns the day of the last counted completion
func (t *Tracker) LastDate() string {
	return t.state.LastDate
}

// State returns a copy of the streak pair
func (t *Tracker) State() State {
	return t.state
}

// Reset clears the streak entirely
func (t *Tracker) Reset() {
	t.state = State{}
}

// Today returns the tracker's notion of the current local day
func (t *Tracker) Today() string {
	return model.Today(t.clock.Now())
}
