package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticklist/internal/task"
)

func TestForEvent(t *testing.T) {
	tests := []struct {
		ev      task.Event
		level   Level
		message string
	}{
		{task.Event{Kind: task.EventAdded}, LevelSuccess, "Task added successfully"},
		{task.Event{Kind: task.EventToggled, Task: task.Task{Completed: true}}, LevelSuccess, "Task completed"},
		{task.Event{Kind: task.EventToggled}, LevelInfo, "Task marked as active"},
		{task.Event{Kind: task.EventUpdated}, LevelSuccess, "Task updated"},
		{task.Event{Kind: task.EventDeleted}, LevelWarning, "Task deleted"},
		{task.Event{Kind: task.EventCleared}, LevelSuccess, "Completed tasks cleared"},
		{task.Event{Kind: task.EventArchived}, LevelSuccess, "Completed tasks archived"},
	}
	for _, tt := range tests {
		t.Run(string(tt.ev.Kind), func(t *testing.T) {
			level, msg := ForEvent(tt.ev)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.message, msg)
		})
	}
}

type memPersister struct{}

func (memPersister) LoadTasks() ([]task.Task, bool, error) { return nil, true, nil }
func (memPersister) SaveTasks([]task.Task) error          { return nil }

func TestListener_prints_store_events(t *testing.T) {
	store, err := task.NewStore(memPersister{})
	require.NoError(t, err)
	var buf bytes.Buffer
	store.Subscribe(Listener(Printer{W: &buf}))

	added, err := store.Add("Buy milk", task.PriorityLow, nil)
	require.NoError(t, err)
	_, err = store.Toggle(added.ID)
	require.NoError(t, err)

	assert.Equal(t, "success: Task added successfully\nsuccess: Task completed\n", buf.String())
}
