package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/existflow/examprep/internal/kv"
	"github.com/existflow/examprep/internal/logger"
	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/streak"
)

// Durable keys, each read and written independently
const (
	KeyTasks          = "tasks"
	KeyCompleted      = "completed"
	KeyStreakCount    = "streak_count"
	KeyStreakLastDate = "streak_last_date"
	KeyTheme          = "theme"
	KeyUsername       = "username"
)

// AllKeys lists every durable key
func AllKeys() []string {
	return []string{KeyTasks, KeyCompleted, KeyStreakCount, KeyStreakLastDate, KeyTheme, KeyUsername}
}

// State is everything the adapter persists
type State struct {
	Tasks     []model.Task
	Completed []int64
	Streak    streak.State
	Theme     model.Theme
	Username  string
}

// DefaultState is the first-run state
func DefaultState() State {
	return State{
		Tasks:     model.DefaultSchedule(),
		Completed: []int64{},
		Theme:     model.DefaultTheme,
	}
}

// Adapter maps State onto a kv.Store
type Adapter struct {
	kv kv.Store
}

// New creates an adapter over store
func New(store kv.Store) *Adapter {
	return &Adapter{kv: store}
}

// Load reads every key independently. Missing or malformed keys fall back to
// their defaults; parse failures are logged and never returned.
func (a *Adapter) Load(ctx context.Context) State {
	st := DefaultState()

	if raw, ok := a.read(ctx, KeyTasks); ok {
		tasks, err := DecodeTasks([]byte(raw))
		if err != nil {
			logger.Warn("Stored tasks are malformed, using default schedule", logger.F("error", err))
		} else {
			st.Tasks = tasks
		}
	}

	if raw, ok := a.read(ctx, KeyCompleted); ok {
		ids, err := DecodeIDs([]byte(raw))
		if err != nil {
			logger.Warn("Stored completions are malformed, starting empty", logger.F("error", err))
		} else {
			st.Completed = ids
		}
	}

	if raw, ok := a.read(ctx, KeyStreakCount); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			logger.Warn("Stored streak is malformed, using 0", logger.F("value", raw))
		} else {
			st.Streak.Count = n
		}
	}

	if raw, ok := a.read(ctx, KeyStreakLastDate); ok {
		st.Streak.LastDate = raw
	}

	if raw, ok := a.read(ctx, KeyTheme); ok {
		if th, err := model.ParseTheme(raw); err == nil {
			st.Theme = th
		} else {
			logger.Warn("Stored theme is unknown, using default", logger.F("value", raw))
		}
	}

	if raw, ok := a.read(ctx, KeyUsername); ok {
		st.Username = raw
	}

	return st
}

// read returns the raw value; read errors other than a missing key are logged
func (a *Adapter) read(ctx context.Context, key string) (string, bool) {
	raw, err := a.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Warn("Failed to read key, using default", logger.F("key", key), logger.F("error", err))
		}
		return "", false
	}
	return raw, true
}

// SaveTasks writes the task collection. An empty collection is never
// written, so a transient empty state can't overwrite good data.
func (a *Adapter) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}
	return a.kv.Set(ctx, KeyTasks, string(data))
}

// SaveCompleted writes the completed id list
func (a *Adapter) SaveCompleted(ctx context.Context, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal completions: %w", err)
	}
	return a.kv.Set(ctx, KeyCompleted, string(data))
}

// SaveStreak writes the streak count and, when set, its last date
func (a *Adapter) SaveStreak(ctx context.Context, s streak.State) error {
	if err := a.kv.Set(ctx, KeyStreakCount, strconv.Itoa(s.Count)); err != nil {
		return err
	}
	if s.LastDate == "" {
		return nil
	}
	return a.kv.Set(ctx, KeyStreakLastDate, s.LastDate)
}

// SaveTheme writes the theme preference
func (a *Adapter) SaveTheme(ctx context.Context, theme model.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidTheme, theme)
	}
	return a.kv.Set(ctx, KeyTheme, string(theme))
}

// SaveUsername writes the username; an empty name is not written
func (a *Adapter) SaveUsername(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	return a.kv.Set(ctx, KeyUsername, name)
}

// Save writes the given keys of st (all keys when none are given).
// Each key is written independently; failures are joined.
func (a *Adapter) Save(ctx context.Context, st State, keys ...string) error {
	if len(keys) == 0 {
		keys = AllKeys()
	}
	var errs []error
	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true

		var err error
		switch k {
		case KeyTasks:
			err = a.SaveTasks(ctx, st.Tasks)
		case KeyCompleted:
			err = a.SaveCompleted(ctx, st.Completed)
		case KeyStreakCount, KeyStreakLastDate:
			// Both streak keys are written together
			seen[KeyStreakCount], seen[KeyStreakLastDate] = true, true
			err = a.SaveStreak(ctx, st.Streak)
		case KeyTheme:
			err = a.SaveTheme(ctx, st.Theme)
		case KeyUsername:
			err = a.SaveUsername(ctx, st.Username)
		default:
			err = fmt.Errorf("unknown key: %s", k)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// ResetAll clears every durable key
func (a *Adapter) ResetAll(ctx context.Context) error {
	if err := a.kv.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}
