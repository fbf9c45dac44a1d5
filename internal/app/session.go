package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/existflow/examprep/internal/kv"
	"github.com/existflow/examprep/internal/logger"
	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/persist"
	"github.com/existflow/examprep/internal/store"
	"github.com/existflow/examprep/internal/streak"
)

// ErrEmptyUsername is returned when setting a blank username
var ErrEmptyUsername = errors.New("username is required")

// Session is the single owner of the in-memory state. Every mutation is
// applied in memory first and then written to durable storage, one key at a
// time. Write failures are logged and do not undo the in-memory change.
type Session struct {
	mu       sync.Mutex
	kv       kv.Store
	adapter  *persist.Adapter
	clock    streak.Clock
	streak   *streak.Tracker
	store    *store.Store
	theme    model.Theme
	username string
}

// Open loads durable state from kv and builds the session
func Open(ctx context.Context, kvStore kv.Store, clock streak.Clock) (*Session, error) {
	if kvStore == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if clock == nil {
		clock = streak.RealClock{}
	}
	s := &Session{
		kv:      kvStore,
		adapter: persist.New(kvStore),
		clock:   clock,
	}
	s.load(ctx)
	return s, nil
}

// load is the init routine shared by Open and Reset
func (s *Session) load(ctx context.Context) {
	st := s.adapter.Load(ctx)

	s.streak = streak.New(s.clock)
	if _, reset := s.streak.Restore(st.Streak.Count, st.Streak.LastDate); reset {
		logger.Info("Streak broken by inactivity",
			logger.F("count", st.Streak.Count),
			logger.F("last_date", st.Streak.LastDate))
		if err := s.adapter.SaveStreak(ctx, s.streak.State()); err != nil {
			logger.Warn("Failed to persist streak reset", logger.F("error", err))
		}
	}

	s.store = store.New(st.Tasks, st.Completed, s.streak)
	s.theme = st.Theme
	s.username = st.Username

	logger.Debug("Session loaded",
		logger.F("tasks", s.store.Len()),
		logger.F("completed", len(st.Completed)),
		logger.F("streak", s.streak.Count()))
}

// Close closes the underlying storage
func (s *Session) Close() error {
	return s.kv.Close()
}

// persist writes the given keys from the current state, logging failures
func (s *Session) persist(ctx context.Context, keys ...string) {
	if err := s.adapter.Save(ctx, s.state(), keys...); err != nil {
		logger.Error("Failed to persist state", logger.F("keys", strings.Join(keys, ",")), logger.F("error", err))
	}
}

func (s *Session) state() persist.State {
	return persist.State{
		Tasks:     s.store.Tasks(),
		Completed: s.store.CompletedIDs(),
		Streak:    s.streak.State(),
		Theme:     s.theme,
		Username:  s.username,
	}
}

// CreateTask adds a task at the end of the schedule
func (s *Session) CreateTask(ctx context.Context, fields model.TaskFields) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.store.Create(model.NewTask(fields.Date, fields.Subject, fields.Text))
	logger.Debug("Task created", logger.F("id", t.ID), logger.F("date", t.Date))
	s.persist(ctx, persist.KeyTasks, persist.KeyCompleted)
	return t
}

// UpdateTask replaces date, subject and text. Returns false for an unknown id.
func (s *Session) UpdateTask(ctx context.Context, id int64, fields model.TaskFields) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Update(id, fields) {
		return false
	}
	logger.Debug("Task updated", logger.F("id", id))
	s.persist(ctx, persist.KeyTasks)
	return true
}

// DeleteTask removes a task. Returns false for an unknown id.
func (s *Session) DeleteTask(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Delete(id) {
		return false
	}
	logger.Debug("Task deleted", logger.F("id", id))
	s.persist(ctx, persist.KeyTasks)
	return true
}

// ToggleComplete flips completion and returns the new state.
// The first completion of a day advances the streak.
func (s *Session) ToggleComplete(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.streak.State()
	done := s.store.ToggleComplete(id)
	logger.Debug("Task toggled", logger.F("id", id), logger.F("done", done))

	keys := []string{persist.KeyCompleted}
	if s.streak.State() != before {
		keys = append(keys, persist.KeyStreakCount, persist.KeyStreakLastDate)
	}
	s.persist(ctx, keys...)
	return done
}

// AccrueTime credits seconds of focus time to a task
func (s *Session) AccrueTime(ctx context.Context, id int64, seconds int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.AccrueTime(id, seconds) {
		return false
	}
	s.persist(ctx, persist.KeyTasks)
	return true
}

// Reorder moves a task inside or across date groups
func (s *Session) Reorder(ctx context.Context, groupKey string, sourceIndex, destinationIndex int, targetGroupKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.ValidDate(targetGroupKey) {
		return fmt.Errorf("target day: %w", model.ErrInvalidDate)
	}
	if err := s.store.Reorder(groupKey, sourceIndex, destinationIndex, targetGroupKey); err != nil {
		return err
	}
	logger.Debug("Task moved",
		logger.F("from", fmt.Sprintf("%s[%d]", groupKey, sourceIndex)),
		logger.F("to", fmt.Sprintf("%s[%d]", targetGroupKey, destinationIndex)))
	s.persist(ctx, persist.KeyTasks)
	return nil
}

// ShiftAllDates moves the whole schedule by deltaDays
func (s *Session) ShiftAllDates(ctx context.Context, deltaDays int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.ShiftAllDates(deltaDays)
	logger.Info("Schedule shifted", logger.F("days", deltaDays))
	s.persist(ctx, persist.KeyTasks)
	return err
}

// AnchorToToday shifts the schedule so its first day is today.
// Returns the number of days shifted.
func (s *Session) AnchorToToday(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delta, err := s.store.AnchorTo(s.streak.Today())
	if delta == 0 {
		return 0, err
	}
	logger.Info("Schedule anchored to today", logger.F("days", delta))
	s.persist(ctx, persist.KeyTasks)
	return delta, err
}

// SetTheme changes the theme preference
func (s *Session) SetTheme(ctx context.Context, theme model.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidTheme, theme)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme
	s.persist(ctx, persist.KeyTheme)
	return nil
}

// SetUsername completes onboarding or renames the user
func (s *Session) SetUsername(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyUsername
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = name
	s.persist(ctx, persist.KeyUsername)
	return nil
}

// Import applies every valid field of a backup document, both durably and in
// memory. Rejected fields are listed in the result and leave state untouched.
func (s *Session) Import(ctx context.Context, doc []byte) (persist.ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.adapter.ImportSnapshot(ctx, doc)
	if err != nil && res.Status == persist.ImportInvalid {
		return res, err
	}

	var tasks []model.Task
	var completed []int64
	if res.Has(persist.FieldTasks) {
		tasks = res.Tasks
	}
	if res.Has(persist.FieldCompletedIDs) {
		completed = res.Completed
	}
	s.store.Replace(tasks, completed)
	if res.Has(persist.FieldTheme) {
		s.theme = res.Theme
	}
	if res.Has(persist.FieldUsername) {
		s.username = res.Username
	}

	logger.Info("Backup imported",
		logger.F("status", res.Status),
		logger.F("applied", strings.Join(res.Applied, ",")),
		logger.F("rejected", len(res.Rejected)))
	return res, err
}

// Reset wipes durable storage and reloads, leaving the default schedule and
// a pending onboarding
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.adapter.ResetAll(ctx); err != nil {
		return err
	}
	s.load(ctx)
	logger.Info("All data reset")
	return nil
}

// Export serialises the current state as a backup document
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return persist.ExportSnapshot(s.state(), s.clock.Now())
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() persist.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// Tasks returns a copy of the ordered task list
func (s *Session) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Tasks()
}

// Task returns one task by id
func (s *Session) Task(id int64) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(id)
}

// Completed returns the sorted completed ids
func (s *Session) Completed() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.CompletedIDs()
}

// IsCompleted reports whether id is marked done
func (s *Session) IsCompleted(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.IsCompleted(id)
}

// Streak returns the streak state
func (s *Session) Streak() streak.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streak.State()
}

// Theme returns the theme preference
func (s *Session) Theme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Username returns the configured name, empty before onboarding
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// NeedsOnboarding reports whether no username has been set yet
func (s *Session) NeedsOnboarding() bool {
	return s.Username() == ""
}

// Today returns the current local day as YYYY-MM-DD
func (s *Session) Today() string {
	return model.Today(s.clock.Now())
}

// Now returns the session clock's current time
func (s *Session) Now() time.Time {
	return s.clock.Now()
}
