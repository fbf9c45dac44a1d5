package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/examprep/internal/model"
)

// ErrInvalidSnapshot is returned when an import document is not a JSON object
var ErrInvalidSnapshot = errors.New("invalid backup file")

// Snapshot document fields
const (
	FieldTasks        = "tasks"
	FieldCompletedIDs = "completedIds"
	FieldTheme        = "theme"
	FieldUsername     = "username"
)

// ImportStatus classifies an import document
type ImportStatus int

const (
	// ImportInvalid means nothing in the document could be applied
	ImportInvalid ImportStatus = iota
	// ImportPartial means some fields were applied and some rejected
	ImportPartial
	// ImportValid means every field present was applied
	ImportValid
)

func (s ImportStatus) String() string {
	switch s {
	case ImportValid:
		return "valid"
	case ImportPartial:
		return "partial"
	default:
		return "invalid"
	}
}

// ImportResult describes what an import document contributes.
// Only the fields named in Applied carry data.
type ImportResult struct {
	Status    ImportStatus
	Applied   []string
	Rejected  map[string]string // field -> reason
	Tasks     []model.Task
	Completed []int64
	Theme     model.Theme
	Username  string
	Timestamp int64
}

// Has reports whether field was applied
func (r ImportResult) Has(field string) bool {
	for _, f := range r.Applied {
		if f == field {
			return true
		}
	}
	return false
}

// rawTask mirrors Task with pointers so missing and mistyped fields can be told apart
type rawTask struct {
	ID        *int64  `json:"id"`
	Date      *string `json:"date"`
	Subject   *string `json:"subject"`
	Text      *string `json:"text"`
	TimeSpent *int64  `json:"timeSpent"`
}

// DecodeTasks parses and validates a JSON array of tasks. Every element must
// carry an integer id, a YYYY-MM-DD date, and string subject and text;
// timeSpent is optional and defaults to 0. Ids must be unique.
func DecodeTasks(data []byte) ([]model.Task, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("tasks must be an array: %w", err)
	}
	if elems == nil {
		return nil, errors.New("tasks must be an array")
	}

	tasks := make([]model.Task, 0, len(elems))
	seen := make(map[int64]bool, len(elems))
	for i, el := range elems {
		var rt rawTask
		if err := json.Unmarshal(el, &rt); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		switch {
		case rt.ID == nil:
			return nil, fmt.Errorf("task %d: missing id", i)
		case rt.Date == nil || !model.ValidDate(*rt.Date):
			return nil, fmt.Errorf("task %d: missing or invalid date", i)
		case rt.Subject == nil:
			return nil, fmt.Errorf("task %d: missing subject", i)
		case rt.Text == nil:
			return nil, fmt.Errorf("task %d: missing text", i)
		case rt.TimeSpent != nil && *rt.TimeSpent < 0:
			return nil, fmt.Errorf("task %d: negative timeSpent", i)
		case seen[*rt.ID]:
			return nil, fmt.Errorf("task %d: duplicate id %d", i, *rt.ID)
		}
		seen[*rt.ID] = true

		t := model.Task{
			ID:      *rt.ID,
			Date:    *rt.Date,
			Subject: *rt.Subject,
			Text:    *rt.Text,
		}
		if rt.TimeSpent != nil {
			t.TimeSpent = *rt.TimeSpent
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// DecodeIDs parses a JSON array of integer ids
func DecodeIDs(data []byte) ([]int64, error) {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("completed ids must be an integer array: %w", err)
	}
	if ids == nil {
		return nil, errors.New("completed ids must be an integer array")
	}
	return ids, nil
}

// ExportSnapshot serialises the full state as an indented JSON document
func ExportSnapshot(st State, now time.Time) ([]byte, error) {
	snap := model.BackupSnapshot{
		Tasks:        model.CloneTasks(st.Tasks),
		CompletedIDs: append([]int64{}, st.Completed...),
		Theme:        st.Theme,
		Username:     st.Username,
		Timestamp:    now.UnixMilli(),
	}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// ParseSnapshot validates each top-level field of an import document on its
// own. Absent fields and an empty username are ignored, malformed fields are
// rejected, and the rest are returned for applying. Only a document that is not a JSON object at
// all yields an error.
func ParseSnapshot(doc []byte) (ImportResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(doc), &fields); err != nil || fields == nil {
		return ImportResult{}, ErrInvalidSnapshot
	}

	res := ImportResult{Rejected: make(map[string]string)}
	reject := func(field string, reason string) { res.Rejected[field] = reason }

	if raw, ok := fields[FieldTasks]; ok {
		if tasks, err := DecodeTasks(raw); err != nil {
			reject(FieldTasks, err.Error())
		} else {
			res.Tasks = tasks
			res.Applied = append(res.Applied, FieldTasks)
		}
	}

	if raw, ok := fields[FieldCompletedIDs]; ok {
		if ids, err := DecodeIDs(raw); err != nil {
			reject(FieldCompletedIDs, err.Error())
		} else {
			res.Completed = ids
			res.Applied = append(res.Applied, FieldCompletedIDs)
		}
	}

	if raw, ok := fields[FieldTheme]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			reject(FieldTheme, "theme must be a string")
		} else if th, err := model.ParseTheme(s); err != nil {
			reject(FieldTheme, err.Error())
		} else {
			res.Theme = th
			res.Applied = append(res.Applied, FieldTheme)
		}
	}

	if raw, ok := fields[FieldUsername]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			reject(FieldUsername, "username must be a string")
		} else if s != "" {
			res.Username = s
			res.Applied = append(res.Applied, FieldUsername)
		}
	}

	if raw, ok := fields["timestamp"]; ok {
		_ = json.Unmarshal(raw, &res.Timestamp)
	}

	switch {
	case len(res.Applied) == 0:
		res.Status = ImportInvalid
	case len(res.Rejected) > 0:
		res.Status = ImportPartial
	default:
		res.Status = ImportValid
	}
	return res, nil
}

// ImportSnapshot parses doc and writes every applicable field to durable
// storage. In-memory state is the caller's to update from the result.
// An empty task list is applied but not written, like any other save.
func (a *Adapter) ImportSnapshot(ctx context.Context, doc []byte) (ImportResult, error) {
	res, err := ParseSnapshot(doc)
	if err != nil {
		return res, err
	}

	var errs []error
	if res.Has(FieldTasks) {
		errs = append(errs, a.SaveTasks(ctx, res.Tasks))
	}
	if res.Has(FieldCompletedIDs) {
		errs = append(errs, a.SaveCompleted(ctx, res.Completed))
	}
	if res.Has(FieldTheme) {
		errs = append(errs, a.SaveTheme(ctx, res.Theme))
	}
	if res.Has(FieldUsername) {
		errs = append(errs, a.SaveUsername(ctx, res.Username))
	}
	if err := errors.Join(errs...); err != nil {
		return res, fmt.Errorf("failed to store imported data: %w", err)
	}
	return res, nil
}

// SnapshotFileName is the suggested download name for an export
func SnapshotFileName(now time.Time) string {
	return fmt.Sprintf("examprep_backup_%s.json", model.Today(now))
}
