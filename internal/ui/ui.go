package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"ticklist/internal/config"
	"ticklist/internal/export"
	"ticklist/internal/notify"
	"ticklist/internal/task"
)

const toastTickInterval = 100 * time.Millisecond

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeConfirmDelete
)

// ThemeStore persists the dark mode flag.
type ThemeStore interface {
	LoadDarkMode() (bool, error)
	SaveDarkMode(dark bool) error
}

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

type Model struct {
	store  *task.Store
	themes ThemeStore
	cfg    config.Config
	log    zerolog.Logger
	toasts *notify.Center
	now    func() time.Time

	visible    []task.Task
	stats      task.Stats
	filter     task.Mode
	search     textinput.Model
	cursor     int
	mode       mode
	form       *addForm
	row        rowEditor
	pendingDel *task.Task
	dark       bool
	styles     styles
}

func Run(store *task.Store, themes ThemeStore, cfg config.Config, logger zerolog.Logger) error {
	m := New(store, themes, cfg, logger)
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

// New builds the model and subscribes it to store events so every applied
// mutation raises a toast.
func New(store *task.Store, themes ThemeStore, cfg config.Config, logger zerolog.Logger) Model {
	si := textinput.New()
	si.Placeholder = "Search tasks"
	si.Prompt = "/ "
	si.CharLimit = 128
	si.Width = 40

	dark, err := themes.LoadDarkMode()
	if err != nil {
		logger.Warn().Err(err).Msg("load theme")
	}

	center := notify.NewCenter(cfg.ToastTTL())
	store.Subscribe(notify.Listener(center))

	m := Model{
		store:  store,
		themes: themes,
		cfg:    cfg,
		log:    logger,
		toasts: center,
		now:    time.Now,
		filter: cfg.Filter(),
		search: si,
		row:    newRowEditor(),
		dark:   dark,
		styles: newStyles(dark),
	}
	m.refresh("")
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasActive() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil
	case tea.WindowSizeMsg:
		w := max(msg.Width-20, 20)
		m.search.Width = w
		m.row.input.Width = w
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)
	}
	return m, tea.Batch(cmd, m.toastTick())
}

// toastTick starts the expiry timer when toasts are alive and none is
// scheduled yet.
func (m Model) toastTick() tea.Cmd {
	if !m.toasts.HasActive() || m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	case modeSearch:
		return m.updateSearchMode(key, msg)
	case modeConfirmDelete:
		return m.updateDeleteConfirm(key)
	default:
		return m.updateListMode(key)
	}
}

func (m Model) updateListMode(key string) (Model, tea.Cmd) {
	keys := m.cfg.Keys
	switch key {
	case keys.Quit:
		return m, tea.Quit
	case keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
	case keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.visible))
	case keys.Add:
		due := ""
		if m.cfg.DefaultDueToday {
			due = m.today().String()
		}
		m.form = newAddForm(m.cfg.Priority(), due)
		m.mode = modeAdd
	case keys.Toggle:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		_, err := m.store.Toggle(t.ID)
		m.reportErr("toggle", err)
		m.refresh(t.ID)
	case keys.Delete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if !m.cfg.ConfirmDelete {
			m.reportErr("delete", m.store.Delete(t.ID))
			m.refresh("")
			return m, nil
		}
		m.pendingDel = &t
		m.mode = modeConfirmDelete
	case keys.Edit:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		return m, m.row.start(t)
	case keys.Search:
		m.mode = modeSearch
		return m, m.search.Focus()
	case keys.NextFilter:
		m.setFilter(m.filter.Next())
	case keys.PrevFilter:
		m.setFilter(m.filter.Prev())
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(key)
		m.setFilter(task.Modes()[n-1])
	case keys.ClearCompleted:
		_, err := m.store.ClearCompleted()
		m.reportErr("clear completed", err)
		m.refresh("")
	case keys.Archive:
		m.reportErr("archive completed", m.store.ArchiveCompleted())
		m.refresh(m.selectedID())
	case keys.Theme:
		m.toggleTheme()
	case keys.Export:
		m.exportTasks()
	case keys.Dismiss:
		m.toasts.Dismiss()
	case keys.Cancel:
		m.toasts.DismissAll()
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.form = nil
		m.mode = modeList
		return m, nil
	case "tab":
		return m, m.form.move(1)
	case "shift+tab":
		return m, m.form.move(-1)
	case m.cfg.Keys.Confirm:
		text, priority, due, err := m.form.values(m.today())
		if err != nil {
			m.toasts.Notify(notify.LevelError, "Due date must be YYYY-MM-DD")
			return m, nil
		}
		added, err := m.store.Add(text, priority, due)
		if errors.Is(err, task.ErrValidation) {
			m.toasts.Notify(notify.LevelError, "Task cannot be empty")
			return m, nil
		}
		m.reportErr("add", err)
		m.form = nil
		m.mode = modeList
		m.refresh(added.ID)
		return m, nil
	default:
		return m, m.form.update(msg)
	}
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		id, _ := m.row.finish(false)
		m.mode = modeList
		m.refresh(id)
		return m, nil
	case m.cfg.Keys.Confirm:
		m.commitEdit()
		return m, nil
	case "up", "down", "tab", "shift+tab":
		m.commitEdit()
		if key == "up" || key == "shift+tab" {
			m.cursor = clampCursor(m.cursor-1, len(m.visible))
		} else {
			m.cursor = clampCursor(m.cursor+1, len(m.visible))
		}
		return m, nil
	default:
		return m, m.row.update(msg)
	}
}

// commitEdit leaves edit mode. Empty text is dropped without touching the
// store.
func (m *Model) commitEdit() {
	id, text := m.row.finish(true)
	m.mode = modeList
	if id != "" && text != "" {
		if t, ok := m.store.Get(id); !ok || t.Text != text {
			_, err := m.store.UpdateText(id, text)
			m.reportErr("edit", err)
		}
	}
	m.refresh(id)
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.search.SetValue("")
		m.search.Blur()
		m.mode = modeList
		m.refresh(m.selectedID())
		return m, nil
	case m.cfg.Keys.Confirm:
		m.search.Blur()
		m.mode = modeList
		return m, nil
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.refresh(m.selectedID())
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if m.pendingDel != nil {
			m.reportErr("delete", m.store.Delete(m.pendingDel.ID))
		}
		m.pendingDel = nil
		m.mode = modeList
		m.refresh("")
	case "n", "N", m.cfg.Keys.Cancel:
		m.pendingDel = nil
		m.mode = modeList
	}
	return m, nil
}

func (m *Model) setFilter(f task.Mode) {
	m.filter = f
	m.refresh(m.selectedID())
}

func (m *Model) toggleTheme() {
	m.dark = !m.dark
	m.styles = newStyles(m.dark)
	if err := m.themes.SaveDarkMode(m.dark); err != nil {
		m.log.Warn().Err(err).Msg("save theme")
		m.toasts.Notify(notify.LevelWarning, "Theme could not be saved")
		return
	}
	if m.dark {
		m.toasts.Notify(notify.LevelInfo, "Dark mode on")
	} else {
		m.toasts.Notify(notify.LevelInfo, "Light mode on")
	}
}

func (m *Model) exportTasks() {
	format := m.cfg.Format()
	path, err := export.ToFile(m.cfg.ExportDir, m.store.Tasks(), format, m.now())
	if err != nil {
		m.log.Error().Err(err).Str("format", string(format)).Msg("export")
		m.toasts.Notify(notify.LevelError, "Export failed")
		return
	}
	m.log.Info().Str("path", path).Msg("exported tasks")
	m.toasts.Notify(notify.LevelSuccess, fmt.Sprintf("Tasks exported to %s (%s)", strings.ToUpper(string(format)), path))
}

// reportErr turns a store error into a toast. Missing ids are ignored since
// the row is already gone.
func (m *Model) reportErr(action string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, task.ErrNotFound):
		m.log.Debug().Err(err).Str("action", action).Msg("task vanished")
	case errors.Is(err, task.ErrPersistence):
		m.toasts.Notify(notify.LevelWarning, "Changes could not be saved")
	default:
		m.log.Error().Err(err).Str("action", action).Msg("task action failed")
		m.toasts.Notify(notify.LevelError, fmt.Sprintf("%s failed", action))
	}
}

// refresh recomputes the visible rows and stats from the store, keeping the
// cursor on selectID when it is still visible.
func (m *Model) refresh(selectID string) {
	today := m.today()
	all := m.store.Tasks()
	m.stats = task.Summarize(all, today)
	m.visible = task.Filter(all, m.filter, m.search.Value(), today)
	if selectID != "" {
		for i, t := range m.visible {
			if t.ID == selectID {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m Model) selected() (task.Task, bool) {
	if len(m.visible) == 0 {
		return task.Task{}, false
	}
	return m.visible[clampCursor(m.cursor, len(m.visible))], true
}

func (m Model) selectedID() string {
	t, _ := m.selected()
	return t.ID
}

func (m Model) today() task.Date {
	return task.Today(m.now())
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
