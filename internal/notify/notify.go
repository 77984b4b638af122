// Package notify holds transient user-facing messages: a stacking,
// self-expiring Center for the TUI and a line Printer for commands.
package notify

import (
	"fmt"
	"io"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single message shown to the user.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Notifier accepts user-facing messages.
type Notifier interface {
	Notify(level Level, message string)
}

// Printer writes notifications as "level: message" lines. Commands use it
// in place of the toast stack.
type Printer struct {
	W io.Writer
}

func (p Printer) Notify(level Level, message string) {
	_, _ = fmt.Fprintf(p.W, "%s: %s\n", level, message)
}
