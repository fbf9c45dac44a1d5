package store

import (
	"errors"
	"sort"
	"time"

	"github.com/existflow/examprep/internal/model"
)

var (
	// ErrNotFound is returned when no task has the given id
	ErrNotFound = errors.New("task not found")
	// ErrIndexOutOfRange is returned by Reorder for a bad source position
	ErrIndexOutOfRange = errors.New("task index out of range")
	// ErrEmptySchedule is returned when anchoring a schedule with no tasks
	ErrEmptySchedule = errors.New("schedule has no tasks")
	// ErrAlreadyAnchored is returned when the schedule already starts on the target day
	ErrAlreadyAnchored = errors.New("schedule already starts on that day")
)

// Advancer is notified on every not-complete to complete transition
type Advancer interface {
	Advance() bool
}

// IDFunc returns a candidate id for a new task
type IDFunc func() int64

// Store owns the ordered task collection and the completed set.
// It is not safe for concurrent use; callers serialise access.
type Store struct {
	tasks     []model.Task
	completed map[int64]struct{}
	advancer  Advancer
	nextID    IDFunc
	lastID    int64
}

// New creates a store from loaded state. advancer may be nil.
func New(tasks []model.Task, completed []int64, advancer Advancer) *Store {
	s := &Store{
		tasks:     model.CloneTasks(tasks),
		completed: make(map[int64]struct{}, len(completed)),
		advancer:  advancer,
		nextID:    func() int64 { return time.Now().UnixMilli() },
	}
	if s.tasks == nil {
		s.tasks = []model.Task{}
	}
	for _, id := range completed {
		s.completed[id] = struct{}{}
	}
	return s
}

// SetIDFunc replaces the id generator (millisecond clock by default)
func (s *Store) SetIDFunc(fn IDFunc) {
	if fn != nil {
		s.nextID = fn
	}
}

// Tasks returns a copy of the collection in persisted order
func (s *Store) Tasks() []model.Task {
	return model.CloneTasks(s.tasks)
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with the given id
func (s *Store) Get(id int64) (model.Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// CompletedIDs returns the completed set in ascending id order
func (s *Store) CompletedIDs() []int64 {
	ids := make([]int64, 0, len(s.completed))
	for id := range s.completed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsCompleted reports whether id is in the completed set
func (s *Store) IsCompleted(id int64) bool {
	_, ok := s.completed[id]
	return ok
}

// Create appends a task, assigning a fresh id when ID is 0.
// TimeSpent always starts at 0.
func (s *Store) Create(task model.Task) model.Task {
	if task.ID == 0 || s.indexOf(task.ID) >= 0 {
		task.ID = s.freshID()
	} else if task.ID > s.lastID {
		s.lastID = task.ID
	}
	task.TimeSpent = 0

	// A new task never inherits a completion left behind by a deleted one
	delete(s.completed, task.ID)

	s.tasks = append(s.tasks, task)
	return task
}

// Update replaces date, subject and text of a task, keeping id and time spent.
// Returns false if the id is unknown.
func (s *Store) Update(id int64, fields model.TaskFields) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Date = fields.Date
	s.tasks[i].Subject = fields.Subject
	s.tasks[i].Text = fields.Text
	return true
}

// Delete removes a task from the collection. The completed set is left as is.
// Returns false if the id is unknown.
func (s *Store) Delete(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true
}

// ToggleComplete flips completion of id and returns the new membership.
// Completing advances the streak once; un-completing never touches it.
func (s *Store) ToggleComplete(id int64) bool {
	if _, ok := s.completed[id]; ok {
		delete(s.completed, id)
		return false
	}
	s.completed[id] = struct{}{}
	if s.advancer != nil {
		s.advancer.Advance()
	}
	return true
}

// AccrueTime adds seconds to a task's time spent.
// Returns false if the id is unknown or seconds is not positive.
func (s *Store) AccrueTime(id int64, seconds int64) bool {
	if seconds <= 0 {
		return false
	}
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].TimeSpent += seconds
	return true
}

// Replace swaps the collection and completed set wholesale (import, reset)
func (s *Store) Replace(tasks []model.Task, completed []int64) {
	if tasks != nil {
		s.tasks = model.CloneTasks(tasks)
		for _, t := range s.tasks {
			if t.ID > s.lastID {
				s.lastID = t.ID
			}
		}
	}
	if completed != nil {
		s.completed = make(map[int64]struct{}, len(completed))
		for _, id := range completed {
			s.completed[id] = struct{}{}
		}
	}
}

func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// freshID never hands out an id twice in a process and never collides with a live task
func (s *Store) freshID() int64 {
	id := s.nextID()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for s.indexOf(id) >= 0 {
		id++
	}
	s.lastID = id
	return id
}
