package task

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns the capitalized priority name used in badges and exports.
func (p Priority) Label() string {
	if p == "" {
		return ""
	}
	s := string(p)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

func (p Priority) Prev() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

func ParsePriority(v string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(v)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: priority %q must be one of low, medium, high", ErrValidation, v)
	}
	return p, nil
}

// Task is a single to-do item. The JSON field names are the persisted
// record format.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	DueDate   *Date     `json:"dueDate"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t Task) HasDue() bool {
	return t.DueDate != nil
}

// Overdue reports whether an active task was due strictly before today.
func (t Task) Overdue(today Date) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(today)
}

func (t Task) DueOn(day Date) bool {
	return t.DueDate != nil && *t.DueDate == day
}

func (t Task) StatusLabel() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.DueDate != nil {
			d := *t.DueDate
			t.DueDate = &d
		}
		out[i] = t
	}
	return out
}
