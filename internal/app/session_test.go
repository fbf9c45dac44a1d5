package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/existflow/examprep/internal/kv"
	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/persist"
	"github.com/existflow/examprep/internal/store"
	"github.com/existflow/examprep/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

var seed = []model.Task{
	{ID: 1, Date: "2025-06-02", Subject: "MATH", Text: "Limits"},
	{ID: 2, Date: "2025-06-02", Subject: "ENG", Text: "Essay"},
	{ID: 3, Date: "2025-06-03", Subject: "MATH", Text: "Series"},
}

func seeded(t *testing.T, now time.Time) (*Session, *kv.Memory, *streak.FakeClock) {
	t.Helper()
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, persist.New(mem).SaveTasks(ctx, seed))

	clock := streak.NewFakeClock(now)
	sess, err := Open(ctx, mem, clock)
	require.NoError(t, err)
	return sess, mem, clock
}

// reopen loads a fresh session over the same storage
func reopen(t *testing.T, mem *kv.Memory, clock streak.Clock) *Session {
	t.Helper()
	sess, err := Open(context.Background(), mem, clock)
	require.NoError(t, err)
	return sess
}

func TestOpenRequiresStorage(t *testing.T) {
	_, err := Open(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestFirstRun(t *testing.T) {
	sess, err := Open(context.Background(), kv.NewMemory(), streak.NewFakeClock(day(2025, 6, 2)))
	require.NoError(t, err)

	assert.Equal(t, model.DefaultSchedule(), sess.Tasks())
	assert.Empty(t, sess.Completed())
	assert.Equal(t, model.DefaultTheme, sess.Theme())
	assert.True(t, sess.NeedsOnboarding())
	assert.Equal(t, "2025-06-02", sess.Today())
}

func TestMutationsPersist(t *testing.T) {
	ctx := context.Background()
	sess, mem, clock := seeded(t, day(2025, 6, 2))

	created := sess.CreateTask(ctx, model.TaskFields{Date: "2025-06-04", Subject: "BIO", Text: "Cells"})
	assert.NotZero(t, created.ID)

	require.True(t, sess.UpdateTask(ctx, 1, model.TaskFields{Date: "2025-06-02", Subject: "MATH", Text: "Limits II"}))
	assert.False(t, sess.UpdateTask(ctx, 999, model.TaskFields{}))

	require.True(t, sess.DeleteTask(ctx, 2))
	assert.False(t, sess.DeleteTask(ctx, 2))

	require.True(t, sess.AccrueTime(ctx, 3, 90))
	assert.False(t, sess.AccrueTime(ctx, 999, 1))

	require.NoError(t, sess.SetTheme(ctx, model.ThemeMidnight))
	assert.ErrorIs(t, sess.SetTheme(ctx, "neon"), model.ErrInvalidTheme)
	require.NoError(t, sess.SetUsername(ctx, "  Ann  "))
	assert.ErrorIs(t, sess.SetUsername(ctx, "   "), ErrEmptyUsername)

	again := reopen(t, mem, clock)
	assert.Equal(t, sess.Tasks(), again.Tasks())
	got, ok := again.Task(3)
	require.True(t, ok)
	assert.Equal(t, int64(90), got.TimeSpent)
	assert.Equal(t, model.ThemeMidnight, again.Theme())
	assert.Equal(t, "Ann", again.Username())
	assert.False(t, again.NeedsOnboarding())
}

func TestToggleAdvancesStreak(t *testing.T) {
	ctx := context.Background()
	sess, mem, clock := seeded(t, day(2025, 6, 2))

	assert.True(t, sess.ToggleComplete(ctx, 1))
	assert.True(t, sess.ToggleComplete(ctx, 2))
	assert.Equal(t, streak.State{Count: 1, LastDate: "2025-06-02"}, sess.Streak())

	// Undo does not roll the streak back
	assert.False(t, sess.ToggleComplete(ctx, 2))
	assert.Equal(t, 1, sess.Streak().Count)

	clock.AddDays(1)
	assert.True(t, sess.ToggleComplete(ctx, 3))
	assert.Equal(t, streak.State{Count: 2, LastDate: "2025-06-03"}, sess.Streak())

	again := reopen(t, mem, clock)
	assert.Equal(t, []int64{1, 3}, again.Completed())
	assert.Equal(t, 2, again.Streak().Count)
}

func TestStreakGapResetsOnOpen(t *testing.T) {
	ctx := context.Background()
	sess, mem, clock := seeded(t, day(2025, 6, 2))
	sess.ToggleComplete(ctx, 1)
	clock.AddDays(1)
	sess.ToggleComplete(ctx, 2)
	require.Equal(t, 2, sess.Streak().Count)

	clock.AddDays(2)
	again := reopen(t, mem, clock)
	assert.Equal(t, streak.State{Count: 0, LastDate: "2025-06-03"}, again.Streak())

	raw, err := mem.Get(ctx, persist.KeyStreakCount)
	require.NoError(t, err)
	assert.Equal(t, "0", raw)
}

func TestReorderValidatesTargetDay(t *testing.T) {
	ctx := context.Background()
	sess, _, _ := seeded(t, day(2025, 6, 2))

	assert.ErrorIs(t, sess.Reorder(ctx, "2025-06-02", 0, 0, "tomorrow"), model.ErrInvalidDate)
	assert.ErrorIs(t, sess.Reorder(ctx, "2025-06-02", 5, 0, "2025-06-02"), store.ErrIndexOutOfRange)

	require.NoError(t, sess.Reorder(ctx, "2025-06-02", 0, 1, "2025-06-02"))
	tasks := sess.Tasks()
	assert.Equal(t, int64(2), tasks[0].ID)
	assert.Equal(t, int64(1), tasks[1].ID)
}

func TestShiftAndAnchor(t *testing.T) {
	ctx := context.Background()
	sess, mem, clock := seeded(t, day(2025, 6, 10))

	require.NoError(t, sess.ShiftAllDates(ctx, 5))
	assert.Equal(t, "2025-06-07", sess.Tasks()[0].Date)

	delta, err := sess.AnchorToToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, delta)
	assert.Equal(t, "2025-06-10", sess.Tasks()[0].Date)
	assert.Equal(t, "2025-06-11", sess.Tasks()[2].Date)

	delta, err = sess.AnchorToToday(ctx)
	assert.ErrorIs(t, err, store.ErrAlreadyAnchored)
	assert.Zero(t, delta)

	assert.Equal(t, "2025-06-10", reopen(t, mem, clock).Tasks()[0].Date)
}

func TestImportThemeOnlyKeepsTasks(t *testing.T) {
	ctx := context.Background()
	sess, mem, clock := seeded(t, day(2025, 6, 2))
	before := sess.Tasks()

	res, err := sess.Import(ctx, []byte(`{"theme":"dark"}`))
	require.NoError(t, err)
	assert.Equal(t, persist.ImportValid, res.Status)
	assert.Equal(t, before, sess.Tasks())
	assert.Equal(t, model.ThemeDark, sess.Theme())

	again := reopen(t, mem, clock)
	assert.Equal(t, before, again.Tasks())
	assert.Equal(t, model.ThemeDark, again.Theme())
}

func TestImportPartialAndInvalid(t *testing.T) {
	ctx := context.Background()
	sess, _, _ := seeded(t, day(2025, 6, 2))
	before := sess.Tasks()

	res, err := sess.Import(ctx, []byte(`{"tasks": "nope", "completedIds": [3], "username": "Bo"}`))
	require.NoError(t, err)
	assert.Equal(t, persist.ImportPartial, res.Status)
	assert.Equal(t, before, sess.Tasks())
	assert.Equal(t, []int64{3}, sess.Completed())
	assert.Equal(t, "Bo", sess.Username())

	_, err = sess.Import(ctx, []byte("not json"))
	assert.ErrorIs(t, err, persist.ErrInvalidSnapshot)
	assert.Equal(t, "Bo", sess.Username())
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _, _ := seeded(t, day(2025, 6, 2))
	src.ToggleComplete(ctx, 2)
	require.NoError(t, src.SetUsername(ctx, "Ann"))

	doc, err := src.Export()
	require.NoError(t, err)

	var snap model.BackupSnapshot
	require.NoError(t, json.Unmarshal(doc, &snap))
	assert.Equal(t, day(2025, 6, 2).UnixMilli(), snap.Timestamp)

	dst, err := Open(ctx, kv.NewMemory(), streak.NewFakeClock(day(2025, 6, 2)))
	require.NoError(t, err)
	res, err := dst.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, persist.ImportValid, res.Status)

	assert.Equal(t, src.Tasks(), dst.Tasks())
	assert.Equal(t, src.Completed(), dst.Completed())
	assert.Equal(t, "Ann", dst.Username())
}

func TestExportImportEmptySchedule(t *testing.T) {
	ctx := context.Background()
	src, _, _ := seeded(t, day(2025, 6, 2))
	for _, task := range seed {
		require.True(t, src.DeleteTask(ctx, task.ID))
	}
	require.Empty(t, src.Tasks())

	doc, err := src.Export()
	require.NoError(t, err)

	dst, err := Open(ctx, kv.NewMemory(), streak.NewFakeClock(day(2025, 6, 2)))
	require.NoError(t, err)
	require.NotEmpty(t, dst.Tasks())

	res, err := dst.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, persist.ImportValid, res.Status)
	assert.Empty(t, res.Rejected)
	assert.Empty(t, dst.Tasks())
	assert.True(t, dst.NeedsOnboarding())
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	sess, mem, _ := seeded(t, day(2025, 6, 2))
	sess.ToggleComplete(ctx, 1)
	require.NoError(t, sess.SetUsername(ctx, "Ann"))

	require.NoError(t, sess.Reset(ctx))
	assert.Equal(t, model.DefaultSchedule(), sess.Tasks())
	assert.Empty(t, sess.Completed())
	assert.Equal(t, streak.State{}, sess.Streak())
	assert.True(t, sess.NeedsOnboarding())
	assert.Empty(t, mem.Keys())
}
