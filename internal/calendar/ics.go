package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/examprep/internal/model"
)

const icsDateLayout = "20060102"

// FileName is the suggested download name for the exported plan
const FileName = "examprep_plan.ics"

// Options controls the reminder attached to each event
type Options struct {
	ReminderHour int    // Hours after the start of the day, 0-23
	ReminderText string // Alarm description
}

// DefaultOptions reminds at 09:00 on the day of each task
func DefaultOptions() Options {
	return Options{
		ReminderHour: 9,
		ReminderText: "Time to study for the exam!",
	}
}

// Build renders the schedule as an iCalendar document with one all-day
// event per task and a same-day display alarm. Tasks with an invalid date
// are skipped.
func Build(tasks []model.Task, now time.Time, opts Options) string {
	if opts.ReminderHour < 0 || opts.ReminderHour > 23 {
		opts.ReminderHour = DefaultOptions().ReminderHour
	}
	if strings.TrimSpace(opts.ReminderText) == "" {
		opts.ReminderText = DefaultOptions().ReminderText
	}
	stamp := now.UTC().Format("20060102T150405Z")

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//examprep//Exam Plan//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}

	for _, t := range tasks {
		day, err := model.ParseDate(t.Date)
		if err != nil {
			continue
		}
		dateStr := day.Format(icsDateLayout)
		summary := fmt.Sprintf("[%s] %s", t.Subject, t.Text)

		lines = append(lines,
			"BEGIN:VEVENT",
			fmt.Sprintf("UID:%d-%s@examprep", t.ID, dateStr),
			"DTSTAMP:"+stamp,
			"DTSTART;VALUE=DATE:"+dateStr,
			"DTEND;VALUE=DATE:"+day.AddDate(0, 0, 1).Format(icsDateLayout),
			"SUMMARY:"+escapeICSText(summary),
			"BEGIN:VALARM",
			"ACTION:DISPLAY",
			"DESCRIPTION:"+escapeICSText(opts.ReminderText),
			fmt.Sprintf("TRIGGER:PT%dH", opts.ReminderHour),
			"END:VALARM",
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR", "")
	return strings.Join(lines, "\r\n")
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
