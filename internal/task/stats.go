package task

import "math"

type Stats struct {
	Total     int
	Completed int
	Active    int
	Overdue   int
	// Percent is round(Completed/Total*100), 0 for an empty collection.
	Percent int
}

func Summarize(tasks []Task, today Date) Stats {
	var st Stats
	st.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
		if t.Overdue(today) {
			st.Overdue++
		}
	}
	st.Active = st.Total - st.Completed
	if st.Total > 0 {
		st.Percent = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}
