package model

// Task represents a single study item on the schedule
type Task struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD, local calendar day
	Subject   string `json:"subject"`
	Text      string `json:"text"`
	TimeSpent int64  `json:"timeSpent"` // Seconds accrued by the focus timer
}

// TaskFields holds the user-editable part of a task
type TaskFields struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// NewTask creates a task with no id; the store assigns one on create
func NewTask(date, subject, text string) Task {
	return Task{
		Date:    date,
		Subject: subject,
		Text:    text,
	}
}

// Fields returns the editable fields of the task
func (t Task) Fields() TaskFields {
	return TaskFields{Date: t.Date, Subject: t.Subject, Text: t.Text}
}

// IsToday returns true if the task is scheduled for the given day
func (t Task) IsToday(today string) bool {
	return t.Date == today
}

// IsOverdue returns true if the task date is before the given day.
// ISO dates compare lexicographically in chronological order.
func (t Task) IsOverdue(today string) bool {
	return t.Date != "" && t.Date < today
}

// CloneTasks returns a copy of the slice so callers can't alias store state
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
