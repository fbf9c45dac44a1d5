package store

import (
	"fmt"
	"sort"

	"github.com/existflow/examprep/internal/model"
)

// Reorder moves the task at sourceIndex of the groupKey date group to
// destinationIndex of the targetGroupKey group. Moving across groups rewrites
// the task's date. The flat list is rebuilt day by day in ascending date
// order, which becomes the persisted order.
func (s *Store) Reorder(groupKey string, sourceIndex, destinationIndex int, targetGroupKey string) error {
	groups, keys := s.partition()

	source := groups[groupKey]
	if sourceIndex < 0 || sourceIndex >= len(source) {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, groupKey, sourceIndex)
	}

	moved := source[sourceIndex]
	groups[groupKey] = append(source[:sourceIndex:sourceIndex], source[sourceIndex+1:]...)

	if targetGroupKey != groupKey {
		moved.Date = targetGroupKey
		if _, ok := groups[targetGroupKey]; !ok {
			keys = append(keys, targetGroupKey)
			sort.Strings(keys)
		}
	}

	dest := groups[targetGroupKey]
	if destinationIndex < 0 {
		destinationIndex = 0
	}
	if destinationIndex > len(dest) {
		destinationIndex = len(dest)
	}
	out := make([]model.Task, 0, len(dest)+1)
	out = append(out, dest[:destinationIndex]...)
	out = append(out, moved)
	out = append(out, dest[destinationIndex:]...)
	groups[targetGroupKey] = out

	flat := make([]model.Task, 0, len(s.tasks))
	for _, k := range keys {
		flat = append(flat, groups[k]...)
	}
	s.tasks = flat
	return nil
}

// partition splits the collection into date groups, keeping intra-group order
func (s *Store) partition() (map[string][]model.Task, []string) {
	groups := make(map[string][]model.Task)
	var keys []string
	for _, t := range s.tasks {
		if _, ok := groups[t.Date]; !ok {
			keys = append(keys, t.Date)
		}
		groups[t.Date] = append(groups[t.Date], t)
	}
	sort.Strings(keys)
	return groups, keys
}

// ShiftAllDates moves every task by deltaDays, preserving order and all
// other fields. Tasks whose date does not parse are left untouched.
func (s *Store) ShiftAllDates(deltaDays int) error {
	if deltaDays == 0 {
		return nil
	}
	var firstErr error
	for i := range s.tasks {
		shifted, err := model.AddDays(s.tasks[i].Date, deltaDays)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("task %d: %w", s.tasks[i].ID, err)
			}
			continue
		}
		s.tasks[i].Date = shifted
	}
	return firstErr
}

// EarliestDate returns the first valid date in the schedule
func (s *Store) EarliestDate() (string, bool) {
	earliest := ""
	for _, t := range s.tasks {
		if !model.ValidDate(t.Date) {
			continue
		}
		if earliest == "" || t.Date < earliest {
			earliest = t.Date
		}
	}
	return earliest, earliest != ""
}

// AnchorTo shifts the whole schedule so its earliest date becomes day.
// Returns the number of days shifted.
func (s *Store) AnchorTo(day string) (int, error) {
	earliest, ok := s.EarliestDate()
	if !ok {
		return 0, ErrEmptySchedule
	}
	delta, err := model.DaysBetween(earliest, day)
	if err != nil {
		return 0, err
	}
	if delta == 0 {
		return 0, ErrAlreadyAnchored
	}
	if err := s.ShiftAllDates(delta); err != nil {
		return delta, err
	}
	return delta, nil
}
