package task

import (
	"fmt"
	"strings"
)

// Mode selects which tasks the list shows.
type Mode string

const (
	ModeAll       Mode = "all"
	ModeCompleted Mode = "completed"
	ModeActive    Mode = "active"
	ModeToday     Mode = "today"
	ModeOverdue   Mode = "overdue"
)

func Modes() []Mode {
	return []Mode{ModeAll, ModeCompleted, ModeActive, ModeToday, ModeOverdue}
}

func ParseMode(v string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: filter %q must be one of all, completed, active, today, overdue", ErrValidation, v)
}

func (m Mode) Label() string {
	return Priority(m).Label()
}

func (m Mode) Next() Mode {
	return m.shift(1)
}

func (m Mode) Prev() Mode {
	return m.shift(-1)
}

func (m Mode) shift(by int) Mode {
	modes := Modes()
	for i, known := range modes {
		if m == known {
			n := len(modes)
			return modes[((i+by)%n+n)%n]
		}
	}
	return ModeAll
}

// Matches reports whether t belongs in mode on the given day. Unknown modes
// match everything.
func (m Mode) Matches(t Task, today Date) bool {
	switch m {
	case ModeCompleted:
		return t.Completed
	case ModeActive:
		return !t.Completed
	case ModeToday:
		return t.DueOn(today)
	case ModeOverdue:
		return t.Overdue(today)
	default:
		return true
	}
}

// Filter returns the tasks that match both mode and the case-insensitive
// search term, in their original order. The input is not modified.
func Filter(tasks []Task, mode Mode, search string, today Date) []Task {
	term := strings.ToLower(search)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if term != "" && !strings.Contains(strings.ToLower(t.Text), term) {
			continue
		}
		if !mode.Matches(t, today) {
			continue
		}
		out = append(out, t)
	}
	return out
}
