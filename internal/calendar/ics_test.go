package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/existflow/examprep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: 11, Date: "2025-06-02", Subject: "MATH", Text: "Limits, derivatives; practice"},
		{ID: 12, Date: "bad", Subject: "ENG", Text: "skipped"},
		{ID: 13, Date: "2025-06-30", Subject: "ENG", Text: "Essay"},
	}

	out := Build(tasks, now, DefaultOptions())

	require.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	require.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n")

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:11-20250602@examprep")
	assert.Contains(t, out, "DTSTAMP:20250601T083000Z")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250602")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250603")
	assert.Contains(t, out, `SUMMARY:[MATH] Limits\, derivatives\; practice`)
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250701")
	assert.Contains(t, out, "TRIGGER:PT9H")
	assert.NotContains(t, out, "skipped")
}

func TestBuildOptions(t *testing.T) {
	tasks := []model.Task{{ID: 1, Date: "2025-06-02", Subject: "A", Text: "x"}}

	out := Build(tasks, time.Now(), Options{ReminderHour: 7, ReminderText: "Go"})
	assert.Contains(t, out, "TRIGGER:PT7H")
	assert.Contains(t, out, "DESCRIPTION:Go\r\n")

	out = Build(tasks, time.Now(), Options{ReminderHour: 30})
	assert.Contains(t, out, "TRIGGER:PT9H")
	assert.Contains(t, out, "DESCRIPTION:"+DefaultOptions().ReminderText)
}

func TestBuildEmpty(t *testing.T) {
	out := Build(nil, time.Now(), DefaultOptions())
	assert.NotContains(t, out, "VEVENT")
	assert.Contains(t, out, "VERSION:2.0")
}

func TestEscapeICSText(t *testing.T) {
	assert.Equal(t, `a\\b\;c\,d\ne`, escapeICSText("a\\b;c,d\ne"))
}
