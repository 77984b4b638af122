package task

import "time"

// SampleTasks returns the starter collection shown on first launch: one
// high priority task due today, one completed task with no due date and
// one low priority task due tomorrow.
func SampleTasks(now time.Time, newID func() string) []Task {
	today := Today(now)
	tomorrow := today.AddDays(1)
	created := now.UTC()

	return []Task{
		{
			ID:        newID(),
			Text:      "Complete project presentation",
			Priority:  PriorityHigh,
			DueDate:   &today,
			CreatedAt: created,
		},
		{
			ID:        newID(),
			Text:      "Morning workout session",
			Priority:  PriorityMedium,
			Completed: true,
			CreatedAt: created,
		},
		{
			ID:        newID(),
			Text:      "Read 30 pages of new book",
			Priority:  PriorityLow,
			DueDate:   &tomorrow,
			CreatedAt: created,
		},
	}
}
