package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticklist/internal/task"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "ticklist.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func sampleCollection() []task.Task {
	due := task.Date{Year: 2024, Month: time.January, Day: 1}
	return []task.Task{
		{
			ID:        "b3c1",
			Text:      `Quote "this", and, commas`,
			Priority:  task.PriorityHigh,
			DueDate:   &due,
			CreatedAt: time.Date(2024, time.January, 3, 10, 11, 12, 123456789, time.UTC),
		},
		{
			ID:        "1704067200000",
			Text:      "Walk dog",
			Completed: true,
			Priority:  task.PriorityLow,
			CreatedAt: time.Date(2023, time.December, 30, 8, 0, 0, 0, time.UTC),
		},
	}
}

func TestOpen_requires_path(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}

func TestKV_get_set(t *testing.T) {
	s, _ := openTestStore(t)

	_, found, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set("k", "first"))
	require.NoError(t, s.Set("k", "second"))

	v, found, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", v)
}

func TestLoadTasks_first_launch(t *testing.T) {
	s, _ := openTestStore(t)

	tasks, found, err := s.LoadTasks()

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, tasks)
}

func TestTasks_round_trip(t *testing.T) {
	tests := []struct {
		name  string
		tasks []task.Task
	}{
		{name: "empty", tasks: []task.Task{}},
		{name: "ordered collection", tasks: sampleCollection()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := openTestStore(t)

			require.NoError(t, s.SaveTasks(tt.tasks))
			first, found, err := s.LoadTasks()
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, tt.tasks, first)

			require.NoError(t, s.SaveTasks(first))
			second, _, err := s.LoadTasks()
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestSaveTasks_nil_is_empty_list(t *testing.T) {
	s, _ := openTestStore(t)

	require.NoError(t, s.SaveTasks(nil))

	raw, found, err := s.Get(KeyTasks)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", raw)
}

func TestLoadTasks_corrupt_value(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.Set(KeyTasks, "{not json"))

	_, _, err := s.LoadTasks()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode tasks")
}

func TestDarkMode(t *testing.T) {
	s, _ := openTestStore(t)

	dark, err := s.LoadDarkMode()
	require.NoError(t, err)
	assert.False(t, dark)

	require.NoError(t, s.SaveDarkMode(true))
	raw, _, err := s.Get(KeyDarkMode)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)

	dark, err = s.LoadDarkMode()
	require.NoError(t, err)
	assert.True(t, dark)
}

func TestStore_persists_across_reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticklist.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveTasks(sampleCollection()))
	require.NoError(t, s.SaveDarkMode(true))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	tasks, found, err := s.LoadTasks()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sampleCollection(), tasks)

	dark, err := s.LoadDarkMode()
	require.NoError(t, err)
	assert.True(t, dark)
}

func TestOpen_second_instance_is_locked(t *testing.T) {
	_, path := openTestStore(t)

	_, err := Open(path)

	assert.ErrorIs(t, err, ErrLocked)
}

func TestStore_backs_task_store(t *testing.T) {
	s, _ := openTestStore(t)

	ts, err := task.NewStore(s)
	require.NoError(t, err)
	added, err := ts.Add("Buy milk", task.PriorityLow, nil)
	require.NoError(t, err)

	reloaded, err := task.NewStore(s)
	require.NoError(t, err)
	got, ok := reloaded.Get(added.ID)
	require.True(t, ok)
	assert.Equal(t, added, got)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:memdb?mode=memory", sqliteDSN("file:memdb?mode=memory"))

	dsn := sqliteDSN("/tmp/x/ticklist.db")
	assert.Contains(t, dsn, "file:///tmp/x/ticklist.db")
	assert.Contains(t, dsn, "mode=rwc")
}
