package persist

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/existflow/examprep/internal/kv"
	"github.com/existflow/examprep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)

	src := State{
		Tasks: []model.Task{
			{ID: 1, Date: "2025-06-02", Subject: "MATH", Text: "a, b; c", TimeSpent: 300},
			{ID: 2, Date: "2025-06-03", Subject: "ENG", Text: "d"},
		},
		Completed: []int64{1},
		Theme:     model.ThemeDark,
		Username:  "Ann",
	}
	doc, err := ExportSnapshot(src, now)
	require.NoError(t, err)

	var snap model.BackupSnapshot
	require.NoError(t, json.Unmarshal(doc, &snap))
	assert.Equal(t, now.UnixMilli(), snap.Timestamp)

	a := New(kv.NewMemory())
	res, err := a.ImportSnapshot(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, ImportValid, res.Status)
	assert.ElementsMatch(t, []string{FieldTasks, FieldCompletedIDs, FieldTheme, FieldUsername}, res.Applied)
	assert.Equal(t, now.UnixMilli(), res.Timestamp)

	got := a.Load(ctx)
	assert.Equal(t, src.Tasks, got.Tasks)
	assert.Equal(t, src.Completed, got.Completed)
	assert.Equal(t, src.Theme, got.Theme)
	assert.Equal(t, src.Username, got.Username)
}

func TestImportThemeOnly(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	a := New(mem)
	require.NoError(t, a.SaveTasks(ctx, []model.Task{{ID: 5, Date: "2025-06-02", Subject: "MATH", Text: "keep"}}))

	res, err := a.ImportSnapshot(ctx, []byte(`{"theme":"dark"}`))
	require.NoError(t, err)
	assert.Equal(t, ImportValid, res.Status)
	assert.Equal(t, []string{FieldTheme}, res.Applied)

	st := a.Load(ctx)
	assert.Equal(t, model.ThemeDark, st.Theme)
	require.Len(t, st.Tasks, 1)
	assert.Equal(t, int64(5), st.Tasks[0].ID)
}

func TestParseSnapshotPartial(t *testing.T) {
	res, err := ParseSnapshot([]byte(`{
		"tasks": [{"id": 1, "date": "June 2", "subject": "MATH", "text": "x"}],
		"completedIds": [1, 2],
		"theme": "neon",
		"username": "Ann"
	}`))
	require.NoError(t, err)
	assert.Equal(t, ImportPartial, res.Status)
	assert.ElementsMatch(t, []string{FieldCompletedIDs, FieldUsername}, res.Applied)
	assert.Contains(t, res.Rejected, FieldTasks)
	assert.Contains(t, res.Rejected, FieldTheme)
	assert.True(t, res.Has(FieldUsername))
	assert.False(t, res.Has(FieldTasks))
}

func TestParseSnapshotRejections(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"padded date", `{"tasks": [{"id": 1, "date": " 2025-06-02", "subject": "A", "text": "x"}]}`, FieldTasks},
		{"tasks not array", `{"tasks": {"id": 1}}`, FieldTasks},
		{"missing text", `{"tasks": [{"id": 1, "date": "2025-06-02", "subject": "MATH"}]}`, FieldTasks},
		{"duplicate ids", `{"tasks": [{"id": 1, "date": "2025-06-02", "subject": "A", "text": "x"}, {"id": 1, "date": "2025-06-02", "subject": "A", "text": "y"}]}`, FieldTasks},
		{"negative time", `{"tasks": [{"id": 1, "date": "2025-06-02", "subject": "A", "text": "x", "timeSpent": -1}]}`, FieldTasks},
		{"string ids", `{"completedIds": ["1"]}`, FieldCompletedIDs},
		{"theme number", `{"theme": 3}`, FieldTheme},
		{"username number", `{"username": 7}`, FieldUsername},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseSnapshot([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, ImportInvalid, res.Status)
			assert.Contains(t, res.Rejected, tt.field)
			assert.Empty(t, res.Applied)
		})
	}
}

func TestParseSnapshotEmptyFields(t *testing.T) {
	res, err := ParseSnapshot([]byte(`{"tasks": [], "completedIds": [], "theme": "light", "username": ""}`))
	require.NoError(t, err)
	assert.Equal(t, ImportValid, res.Status)
	assert.Empty(t, res.Rejected)
	assert.ElementsMatch(t, []string{FieldTasks, FieldCompletedIDs, FieldTheme}, res.Applied)
	assert.NotNil(t, res.Tasks)
	assert.Empty(t, res.Tasks)
	assert.False(t, res.Has(FieldUsername))
}

func TestImportEmptyTasksKeepsStoredList(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	a := New(mem)
	require.NoError(t, a.SaveTasks(ctx, []model.Task{{ID: 5, Date: "2025-06-02", Subject: "MATH", Text: "keep"}}))

	res, err := a.ImportSnapshot(ctx, []byte(`{"tasks": []}`))
	require.NoError(t, err)
	assert.True(t, res.Has(FieldTasks))

	st := a.Load(ctx)
	require.Len(t, st.Tasks, 1)
	assert.Equal(t, int64(5), st.Tasks[0].ID)
}

func TestParseSnapshotNotJSON(t *testing.T) {
	for _, doc := range []string{"", "not json", "[1,2,3]", "null"} {
		_, err := ParseSnapshot([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalidSnapshot, doc)
	}
}

func TestImportInvalidLeavesStorage(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	a := New(mem)

	_, err := a.ImportSnapshot(ctx, []byte("{broken"))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Empty(t, mem.Keys())
}

func TestSnapshotFileName(t *testing.T) {
	now := time.Date(2025, 6, 8, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "examprep_backup_2025-06-08.json", SnapshotFileName(now))
}
