package task

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Persister is the durable side of the store. LoadTasks reports found=false
// when the collection has never been written.
type Persister interface {
	LoadTasks() (tasks []Task, found bool, err error)
	SaveTasks(tasks []Task) error
}

type EventKind string

const (
	EventAdded    EventKind = "added"
	EventToggled  EventKind = "toggled"
	EventUpdated  EventKind = "updated"
	EventDeleted  EventKind = "deleted"
	EventCleared  EventKind = "cleared"
	EventArchived EventKind = "archived"
)

// Event describes a mutation that has been applied in memory. Task is the
// affected task for single-task events; Count is the number of tasks
// removed by a clear.
type Event struct {
	Kind  EventKind
	Task  Task
	Count int
}

// Listener is called after every applied mutation with the settled
// collection.
type Listener func(ev Event, tasks []Task)

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithSamples seeds the sample tasks when the persister has never stored a
// collection.
func WithSamples(enabled bool) Option {
	return func(s *Store) { s.seed = enabled }
}

// Store owns the ordered task collection. Every mutation replaces the
// collection wholesale under the lock, persists it, then notifies listeners.
type Store struct {
	mu        sync.RWMutex
	tasks     []Task
	persist   Persister
	listeners []Listener

	now   func() time.Time
	newID func() string
	log   zerolog.Logger
	seed  bool
}

// NewStore loads the persisted collection. A load failure is returned
// as-is since there is no safe state to start from.
func NewStore(p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persist: p,
		now:     time.Now,
		newID:   uuid.NewString,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, found, err := p.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	s.tasks = tasks
	if s.tasks == nil {
		s.tasks = []Task{}
	}

	if !found && s.seed {
		s.tasks = SampleTasks(s.now(), s.newID)
		if err := s.persist.SaveTasks(s.tasks); err != nil {
			return s, &PersistenceError{Op: "seed", Err: err}
		}
		s.log.Debug().Int("count", len(s.tasks)).Msg("seeded sample tasks")
	}

	return s, nil
}

// Tasks returns a snapshot of the collection that the caller may keep.
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return cloneTasks(s.tasks[i : i+1])[0], true
}

func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) Add(text string, priority Priority, due *Date) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, fmt.Errorf("%w: task cannot be empty", ErrValidation)
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return Task{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
	}

	t := Task{
		Text:      text,
		Priority:  priority,
		CreatedAt: s.now().UTC(),
	}
	if due != nil {
		d := *due
		t.DueDate = &d
	}

	err := s.mutate("add", func(tasks []Task) ([]Task, Event, error) {
		t.ID = s.uniqueID(tasks)
		next := make([]Task, 0, len(tasks)+1)
		next = append(next, t)
		next = append(next, tasks...)
		return next, Event{Kind: EventAdded, Task: t}, nil
	})
	if err != nil && !isPersistence(err) {
		return Task{}, err
	}
	return t, err
}

// Toggle flips the completion flag of the task with id.
func (s *Store) Toggle(id string) (Task, error) {
	var out Task
	err := s.mutate("toggle", func(tasks []Task) ([]Task, Event, error) {
		i := indexIn(tasks, id)
		if i < 0 {
			return nil, Event{}, fmt.Errorf("toggle %q: %w", id, ErrNotFound)
		}
		next := cloneTasks(tasks)
		next[i].Completed = !next[i].Completed
		out = next[i]
		return next, Event{Kind: EventToggled, Task: out}, nil
	})
	return out, err
}

// UpdateText replaces the text of a task. Text that is empty after trimming
// is discarded without error and reported as changed=false.
func (s *Store) UpdateText(id, text string) (bool, error) {
	text = strings.TrimSpace(text)
	changed := false
	err := s.mutate("update", func(tasks []Task) ([]Task, Event, error) {
		i := indexIn(tasks, id)
		if i < 0 {
			return nil, Event{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
		}
		if text == "" {
			return nil, Event{}, nil
		}
		next := cloneTasks(tasks)
		next[i].Text = text
		changed = true
		return next, Event{Kind: EventUpdated, Task: next[i]}, nil
	})
	return changed, err
}

func (s *Store) Delete(id string) error {
	return s.mutate("delete", func(tasks []Task) ([]Task, Event, error) {
		i := indexIn(tasks, id)
		if i < 0 {
			return nil, Event{}, fmt.Errorf("delete %q: %w", id, ErrNotFound)
		}
		removed := tasks[i]
		next := make([]Task, 0, len(tasks)-1)
		next = append(next, tasks[:i]...)
		next = append(next, tasks[i+1:]...)
		return next, Event{Kind: EventDeleted, Task: removed}, nil
	})
}

// ClearCompleted removes every completed task and returns how many were
// removed.
func (s *Store) ClearCompleted() (int, error) {
	removed := 0
	err := s.mutate("clear", func(tasks []Task) ([]Task, Event, error) {
		next := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Completed {
				removed++
				continue
			}
			next = append(next, t)
		}
		return next, Event{Kind: EventCleared, Count: removed}, nil
	})
	return removed, err
}

// ArchiveCompleted moves completed tasks after active ones, keeping the
// relative order inside each group.
func (s *Store) ArchiveCompleted() error {
	return s.mutate("archive", func(tasks []Task) ([]Task, Event, error) {
		next := make([]Task, 0, len(tasks))
		var done []Task
		for _, t := range tasks {
			if t.Completed {
				done = append(done, t)
				continue
			}
			next = append(next, t)
		}
		next = append(next, done...)
		return next, Event{Kind: EventArchived, Count: len(done)}, nil
	})
}

// mutate applies fn to the current collection. fn returning a nil slice
// with a nil error means nothing changed. The new collection is swapped in
// before persisting so a failed write still leaves a consistent state.
func (s *Store) mutate(op string, fn func([]Task) ([]Task, Event, error)) error {
	s.mu.Lock()
	next, ev, err := fn(s.tasks)
	if err != nil || next == nil {
		s.mu.Unlock()
		return err
	}
	s.tasks = next
	snapshot := cloneTasks(next)
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)

	var perr error
	if err := s.persist.SaveTasks(next); err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("failed to persist tasks")
		perr = &PersistenceError{Op: op, Err: err}
	}
	s.mu.Unlock()

	s.log.Debug().Str("op", op).Str("id", ev.Task.ID).Int("count", len(snapshot)).Msg("tasks mutated")

	for _, l := range listeners {
		l(ev, snapshot)
	}
	return perr
}

func (s *Store) uniqueID(tasks []Task) string {
	for {
		id := s.newID()
		if indexIn(tasks, id) < 0 {
			return id
		}
	}
}

func (s *Store) indexOf(id string) int {
	return indexIn(s.tasks, id)
}

func indexIn(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func isPersistence(err error) bool {
	var perr *PersistenceError
	return errors.As(err, &perr)
}
