package persist

import (
	"context"
	"testing"

	"github.com/existflow/examprep/internal/kv"
	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	a := New(kv.NewMemory())
	st := a.Load(context.Background())

	assert.Equal(t, model.DefaultSchedule(), st.Tasks)
	assert.Empty(t, st.Completed)
	assert.Equal(t, streak.State{}, st.Streak)
	assert.Equal(t, model.DefaultTheme, st.Theme)
	assert.Empty(t, st.Username)
}

func TestLoadFallsBackPerKey(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, KeyTasks, `{"not":"an array"}`))
	require.NoError(t, mem.Set(ctx, KeyCompleted, `[1,"two"]`))
	require.NoError(t, mem.Set(ctx, KeyStreakCount, "many"))
	require.NoError(t, mem.Set(ctx, KeyStreakLastDate, "2025-06-01"))
	require.NoError(t, mem.Set(ctx, KeyTheme, "neon"))
	require.NoError(t, mem.Set(ctx, KeyUsername, "Ann"))

	st := New(mem).Load(ctx)
	assert.Equal(t, model.DefaultSchedule(), st.Tasks)
	assert.Empty(t, st.Completed)
	assert.Equal(t, streak.State{Count: 0, LastDate: "2025-06-01"}, st.Streak)
	assert.Equal(t, model.DefaultTheme, st.Theme)
	assert.Equal(t, "Ann", st.Username)
}

func TestLoadRejectsMalformedTaskElement(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, KeyTasks,
		`[{"id":1,"date":"2025-06-02","subject":"MATH","text":"ok"},{"id":"2","date":"2025-06-02","subject":"MATH","text":"bad id"}]`))

	st := New(mem).Load(ctx)
	assert.Equal(t, model.DefaultSchedule(), st.Tasks)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	a := New(mem)

	want := State{
		Tasks: []model.Task{
			{ID: 7, Date: "2025-06-02", Subject: "MATH", Text: "x", TimeSpent: 42},
			{ID: 8, Date: "2025-06-03", Subject: "ENG", Text: "y"},
		},
		Completed: []int64{7},
		Streak:    streak.State{Count: 2, LastDate: "2025-06-02"},
		Theme:     model.ThemeMidnight,
		Username:  "Ann",
	}
	require.NoError(t, a.Save(ctx, want))
	assert.Equal(t, want, a.Load(ctx))
}

func TestSaveNeverWritesEmptyTasks(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	a := New(mem)

	require.NoError(t, a.SaveTasks(ctx, []model.Task{{ID: 1, Date: "2025-06-02", Subject: "MATH", Text: "keep"}}))
	require.NoError(t, a.SaveTasks(ctx, nil))
	require.NoError(t, a.Save(ctx, State{Tasks: []model.Task{}}, KeyTasks))

	st := a.Load(ctx)
	require.Len(t, st.Tasks, 1)
	assert.Equal(t, "keep", st.Tasks[0].Text)
}

func TestSaveSelectedKeys(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	a := New(mem)

	st := DefaultState()
	st.Streak = streak.State{Count: 1, LastDate: "2025-06-02"}
	require.NoError(t, a.Save(ctx, st, KeyStreakCount))

	assert.ElementsMatch(t, []string{KeyStreakCount, KeyStreakLastDate}, mem.Keys())

	err := a.Save(ctx, st, "bogus")
	assert.Error(t, err)
}

func TestSaveThemeValidates(t *testing.T) {
	a := New(kv.NewMemory())
	assert.ErrorIs(t, a.SaveTheme(context.Background(), model.Theme("neon")), model.ErrInvalidTheme)
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	a := New(mem)
	require.NoError(t, a.Save(ctx, State{
		Tasks:    model.DefaultSchedule(),
		Theme:    model.ThemeDark,
		Username: "Ann",
	}))

	require.NoError(t, a.ResetAll(ctx))
	assert.Empty(t, mem.Keys())
	assert.Equal(t, DefaultState(), a.Load(ctx))
}
