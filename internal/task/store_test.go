package task

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	tasks   []Task
	found   bool
	saves   int
	saveErr error
	loadErr error
}

func (m *memPersister) LoadTasks() ([]Task, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	return cloneTasks(m.tasks), m.found, nil
}

func (m *memPersister) SaveTasks(tasks []Task) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tasks = cloneTasks(tasks)
	m.found = true
	return nil
}

var fixedNow = time.Date(2024, time.January, 5, 9, 30, 0, 0, time.UTC)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, p *memPersister) *Store {
	t.Helper()
	if p == nil {
		p = &memPersister{found: true}
	}
	s, err := NewStore(p, WithClock(func() time.Time { return fixedNow }), WithIDFunc(counterIDs()))
	require.NoError(t, err)
	return s
}

func date(t *testing.T, v string) *Date {
	t.Helper()
	d, err := ParseDate(v)
	require.NoError(t, err)
	return &d
}

func TestStore_Add_prepends_and_persists(t *testing.T) {
	p := &memPersister{found: true}
	s := newTestStore(t, p)

	first, err := s.Add("  Buy milk ", PriorityLow, date(t, "2024-01-01"))
	require.NoError(t, err)
	second, err := s.Add("Walk dog", PriorityHigh, nil)
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", first.Text)
	assert.False(t, first.Completed)
	assert.Equal(t, fixedNow, first.CreatedAt)
	assert.Equal(t, "2024-01-01", first.DueDate.String())
	assert.Nil(t, second.DueDate)

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)
	assert.Equal(t, tasks, p.tasks)
	assert.Equal(t, 2, p.saves)
}

func TestStore_Add_defaults_priority(t *testing.T) {
	s := newTestStore(t, nil)

	got, err := s.Add("No priority", "", nil)
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, got.Priority)
}

func TestStore_Add_rejects_empty_text(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		p := &memPersister{found: true}
		s := newTestStore(t, p)

		_, err := s.Add(text, PriorityLow, nil)

		require.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, s.Tasks())
		assert.Zero(t, p.saves)
	}
}

func TestStore_Add_rejects_unknown_priority(t *testing.T) {
	s := newTestStore(t, nil)

	_, err := s.Add("task", Priority("urgent"), nil)

	require.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, s.Len())
}

func TestStore_Add_ids_are_unique(t *testing.T) {
	s, err := NewStore(&memPersister{found: true})
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := range 50 {
		got, err := s.Add(fmt.Sprintf("task %d", i), PriorityMedium, nil)
		require.NoError(t, err)
		assert.False(t, seen[got.ID], "duplicate id %s", got.ID)
		seen[got.ID] = true
	}
}

func TestStore_Add_skips_colliding_ids(t *testing.T) {
	ids := []string{"a", "a", "b"}
	next := 0
	s, err := NewStore(&memPersister{found: true}, WithIDFunc(func() string {
		id := ids[next]
		next++
		return id
	}))
	require.NoError(t, err)

	first, err := s.Add("one", PriorityLow, nil)
	require.NoError(t, err)
	second, err := s.Add("two", PriorityLow, nil)
	require.NoError(t, err)

	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)
}

func TestStore_Toggle_is_its_own_inverse(t *testing.T) {
	s := newTestStore(t, nil)
	added, err := s.Add("Buy milk", PriorityLow, nil)
	require.NoError(t, err)
	before := s.Tasks()

	toggled, err := s.Toggle(added.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	_, err = s.Toggle(added.ID)
	require.NoError(t, err)
	assert.Equal(t, before, s.Tasks())
}

func TestStore_missing_id_is_safe(t *testing.T) {
	p := &memPersister{found: true}
	s := newTestStore(t, p)
	_, err := s.Add("keep me", PriorityLow, nil)
	require.NoError(t, err)
	before := s.Tasks()
	saves := p.saves

	_, err = s.Toggle("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdateText("nope", "text")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("nope"), ErrNotFound)

	assert.Equal(t, before, s.Tasks())
	assert.Equal(t, saves, p.saves)
}

func TestStore_UpdateText(t *testing.T) {
	s := newTestStore(t, nil)
	added, err := s.Add("Buy milk", PriorityLow, nil)
	require.NoError(t, err)

	changed, err := s.UpdateText(added.ID, "  Buy oat milk  ")
	require.NoError(t, err)
	assert.True(t, changed)

	got, ok := s.Get(added.ID)
	require.True(t, ok)
	assert.Equal(t, "Buy oat milk", got.Text)
}

func TestStore_UpdateText_discards_empty(t *testing.T) {
	p := &memPersister{found: true}
	s := newTestStore(t, p)
	added, err := s.Add("Buy milk", PriorityLow, nil)
	require.NoError(t, err)
	saves := p.saves

	changed, err := s.UpdateText(added.ID, "   ")

	require.NoError(t, err)
	assert.False(t, changed)
	got, _ := s.Get(added.ID)
	assert.Equal(t, "Buy milk", got.Text)
	assert.Equal(t, saves, p.saves)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t, nil)
	a, _ := s.Add("a", PriorityLow, nil)
	b, _ := s.Add("b", PriorityLow, nil)

	require.NoError(t, s.Delete(a.ID))

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)
}

func TestStore_ClearCompleted(t *testing.T) {
	s := newTestStore(t, nil)
	a, _ := s.Add("a", PriorityLow, nil)
	b, _ := s.Add("b", PriorityLow, nil)
	c, _ := s.Add("c", PriorityLow, nil)
	_, _ = s.Toggle(a.ID)
	_, _ = s.Toggle(c.ID)

	n, err := s.ClearCompleted()

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)
}

func TestStore_ArchiveCompleted_is_stable_and_idempotent(t *testing.T) {
	s := newTestStore(t, nil)
	for _, text := range []string{"e", "d", "c", "b", "a"} {
		_, err := s.Add(text, PriorityLow, nil)
		require.NoError(t, err)
	}
	// order is now a b c d e; complete a and c
	for _, tk := range s.Tasks() {
		if tk.Text == "a" || tk.Text == "c" {
			_, err := s.Toggle(tk.ID)
			require.NoError(t, err)
		}
	}

	require.NoError(t, s.ArchiveCompleted())
	once := s.Tasks()
	require.NoError(t, s.ArchiveCompleted())
	twice := s.Tasks()

	texts := make([]string, len(once))
	for i, tk := range once {
		texts[i] = tk.Text
	}
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, texts)
	assert.Equal(t, once, twice)
}

func TestStore_persistence_failure_keeps_memory_state(t *testing.T) {
	boom := errors.New("quota exceeded")
	p := &memPersister{found: true}
	s := newTestStore(t, p)
	p.saveErr = boom

	added, err := s.Add("Buy milk", PriorityLow, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, boom)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "add", perr.Op)

	assert.NotEmpty(t, added.ID)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Subscribe_receives_settled_snapshot(t *testing.T) {
	s := newTestStore(t, nil)

	var events []Event
	var lens []int
	s.Subscribe(func(ev Event, tasks []Task) {
		events = append(events, ev)
		lens = append(lens, len(tasks))
	})

	a, _ := s.Add("a", PriorityLow, nil)
	_, _ = s.Toggle(a.ID)
	_, _ = s.ClearCompleted()
	_, _ = s.Toggle("missing")

	require.Len(t, events, 3)
	assert.Equal(t, EventAdded, events[0].Kind)
	assert.Equal(t, EventToggled, events[1].Kind)
	assert.True(t, events[1].Task.Completed)
	assert.Equal(t, EventCleared, events[2].Kind)
	assert.Equal(t, 1, events[2].Count)
	assert.Equal(t, []int{1, 1, 0}, lens)
}

func TestStore_Tasks_returns_copy(t *testing.T) {
	s := newTestStore(t, nil)
	_, _ = s.Add("a", PriorityLow, date(t, "2024-01-01"))

	snap := s.Tasks()
	snap[0].Text = "changed"
	snap[0].DueDate.Day = 9

	got := s.Tasks()
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, 1, got[0].DueDate.Day)
}

func TestNewStore_seeds_samples_on_first_launch(t *testing.T) {
	p := &memPersister{}
	s, err := NewStore(p, WithSamples(true), WithClock(func() time.Time { return fixedNow }), WithIDFunc(counterIDs()))
	require.NoError(t, err)

	tasks := s.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, PriorityHigh, tasks[0].Priority)
	assert.True(t, tasks[1].Completed)
	assert.True(t, p.found)
}

func TestNewStore_does_not_seed_saved_empty_collection(t *testing.T) {
	p := &memPersister{found: true}
	s, err := NewStore(p, WithSamples(true))
	require.NoError(t, err)
	assert.Zero(t, s.Len())
	assert.Zero(t, p.saves)
}

func TestNewStore_load_error(t *testing.T) {
	_, err := NewStore(&memPersister{loadErr: errors.New("disk gone")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestScenario_buy_milk(t *testing.T) {
	s := newTestStore(t, nil)
	today := DateOf(fixedNow)

	milk, err := s.Add("Buy milk", PriorityLow, date(t, "2024-01-01"))
	require.NoError(t, err)

	overdue := Filter(s.Tasks(), ModeOverdue, "", today)
	require.Len(t, overdue, 1)
	assert.Equal(t, milk.ID, overdue[0].ID)

	n, err := s.ClearCompleted()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, s.Len())

	_, err = s.Toggle(milk.ID)
	require.NoError(t, err)
	n, err = s.ClearCompleted()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, s.Len())
}
