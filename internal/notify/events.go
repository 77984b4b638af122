package notify

import "ticklist/internal/task"

// ForEvent returns the message shown after a store mutation.
func ForEvent(ev task.Event) (Level, string) {
	switch ev.Kind {
	case task.EventAdded:
		return LevelSuccess, "Task added successfully"
	case task.EventToggled:
		if ev.Task.Completed {
			return LevelSuccess, "Task completed"
		}
		return LevelInfo, "Task marked as active"
	case task.EventUpdated:
		return LevelSuccess, "Task updated"
	case task.EventDeleted:
		return LevelWarning, "Task deleted"
	case task.EventCleared:
		return LevelSuccess, "Completed tasks cleared"
	case task.EventArchived:
		return LevelSuccess, "Completed tasks archived"
	default:
		return LevelInfo, string(ev.Kind)
	}
}

// Listener adapts n into a task store listener.
func Listener(n Notifier) task.Listener {
	return func(ev task.Event, _ []task.Task) {
		n.Notify(ForEvent(ev))
	}
}
