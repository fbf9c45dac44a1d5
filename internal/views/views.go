// Package views computes read-only projections of the task collection.
// Nothing here is persisted; every view is rebuilt from the current tasks.
package views

import (
	"math"
	"sort"

	"github.com/existflow/examprep/internal/model"
)

// ByDate groups tasks by date, keeping collection order inside each group
func ByDate(tasks []model.Task) map[string][]model.Task {
	groups := make(map[string][]model.Task)
	for _, t := range tasks {
		groups[t.Date] = append(groups[t.Date], t)
	}
	return groups
}

// BySubject groups tasks by subject, keeping collection order inside each group
func BySubject(tasks []model.Task) map[string][]model.Task {
	groups := make(map[string][]model.Task)
	for _, t := range tasks {
		groups[t.Subject] = append(groups[t.Subject], t)
	}
	return groups
}

// SelectedDay returns the tasks scheduled on date, in collection order
func SelectedDay(tasks []model.Task, date string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// SortedDateKeys returns the distinct dates, ascending
func SortedDateKeys(tasks []model.Task) []string {
	return sortedKeys(tasks, func(t model.Task) string { return t.Date })
}

// SortedSubjects returns the distinct subjects, ascending
func SortedSubjects(tasks []model.Task) []string {
	return sortedKeys(tasks, func(t model.Task) string { return t.Subject })
}

func sortedKeys(tasks []model.Task, key func(model.Task) string) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, t := range tasks {
		k := key(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DateGroup is one day of the schedule
type DateGroup struct {
	Date  string       `json:"date"`
	Tasks []model.Task `json:"tasks"`
}

// DateGroups returns ByDate as a slice ordered by SortedDateKeys
func DateGroups(tasks []model.Task) []DateGroup {
	byDate := ByDate(tasks)
	keys := SortedDateKeys(tasks)
	out := make([]DateGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, DateGroup{Date: k, Tasks: byDate[k]})
	}
	return out
}

// Stats summarises completion over a set of tasks
type Stats struct {
	Total     int   `json:"total"`
	Completed int   `json:"completed"`
	Percent   int   `json:"percent"`
	TimeSpent int64 `json:"timeSpent"`
}

// Progress counts completed tasks among the live ones.
// Stale completed ids of deleted tasks are not counted.
func Progress(tasks []model.Task, isCompleted func(int64) bool) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		st.TimeSpent += t.TimeSpent
		if isCompleted(t.ID) {
			st.Completed++
		}
	}
	if st.Total > 0 {
		st.Percent = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// SubjectProgress returns Progress for every subject
func SubjectProgress(tasks []model.Task, isCompleted func(int64) bool) map[string]Stats {
	out := make(map[string]Stats)
	for subject, group := range BySubject(tasks) {
		out[subject] = Progress(group, isCompleted)
	}
	return out
}

// TimeBySubject sums time spent per subject in seconds
func TimeBySubject(tasks []model.Task) map[string]int64 {
	out := make(map[string]int64)
	for _, t := range tasks {
		out[t.Subject] += t.TimeSpent
	}
	return out
}
