package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"ticklist/internal/config"
	"ticklist/internal/notify"
	"ticklist/internal/task"
)

const barWidth = 20

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(m.styles.Muted.Render(m.emptyMessage()))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n---\n")

	switch m.mode {
	case modeAdd:
		b.WriteString("New task (tab to move, enter to add, esc to cancel)\n\n")
		b.WriteString(m.form.view(m.styles))
	case modeConfirmDelete:
		if m.pendingDel != nil {
			b.WriteString(fmt.Sprintf("Delete %q? y/n", m.pendingDel.Text))
		}
	default:
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render(renderHelp(m.mode, m.cfg.Keys)))
	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}
	return b.String()
}

func (m Model) renderHeader() string {
	theme := "light"
	if m.dark {
		theme = "dark"
	}
	return m.styles.Title.Render("ticklist") + "  " + m.styles.Muted.Render(theme)
}

func (m Model) renderStats() string {
	s := m.stats
	line := fmt.Sprintf("Total %d  Completed %d  Active %d  Overdue %d", s.Total, s.Completed, s.Active, s.Overdue)
	return line + "\n" + m.renderProgress(s.Percent)
}

func (m Model) renderProgress(percent int) string {
	filled := percent * barWidth / 100
	bar := m.styles.BarFill.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %d%%", bar, percent)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(task.Modes()))
	for i, mode := range task.Modes() {
		label := fmt.Sprintf("%d %s", i+1, mode.Label())
		if mode == m.filter {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
			continue
		}
		tabs = append(tabs, m.styles.Tab.Render(label))
	}
	return strings.Join(tabs, " ")
}

func (m Model) emptyMessage() string {
	switch {
	case m.search.Value() != "":
		return fmt.Sprintf("No tasks match %q.", m.search.Value())
	case m.filter != task.ModeAll:
		return fmt.Sprintf("No %s tasks.", strings.ToLower(m.filter.Label()))
	default:
		return fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add)
	}
}

func (m Model) renderTaskList() string {
	today := m.today()
	var b strings.Builder
	for i, t := range m.visible {
		cursor := " "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render(">")
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		var text string
		switch {
		case m.row.editing(t.ID):
			text = m.row.view()
		case t.Completed:
			text = m.styles.Done.Render(t.Text)
		case t.Overdue(today):
			text = m.styles.Overdue.Render(t.Text)
		default:
			text = m.styles.Text.Render(t.Text)
		}

		body := fmt.Sprintf("%s %s %s", cursor, checkbox, text)
		if badge := m.dueBadge(t, today); badge != "" {
			body += "  " + badge
		}
		body += " " + m.styles.Priority[string(t.Priority)].Render(t.Priority.Label())

		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) dueBadge(t task.Task, today task.Date) string {
	if !t.HasDue() {
		return ""
	}
	label := t.DueDate.Time(time.Local).Format("Jan 2")
	if t.Overdue(today) {
		return m.styles.Overdue.Render(label)
	}
	return m.styles.Due.Render(label)
}

func (m Model) renderDetail() string {
	t, ok := m.selected()
	if !ok {
		return "No task selected"
	}
	due := "no due date"
	if t.HasDue() {
		due = "due " + t.DueDate.String()
	}
	return m.styles.Muted.Render(fmt.Sprintf("%s • %s • %s priority • %s • created %s",
		t.Text, t.StatusLabel(), t.Priority.Label(), due, humanize.RelTime(t.CreatedAt, m.now(), "ago", "from now")))
}

func (m Model) renderToasts() string {
	active := m.toasts.Active()
	if len(active) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(active))
	for _, t := range active {
		rendered = append(rendered, m.renderToast(t))
	}
	return strings.Join(rendered, "\n")
}

func (m Model) renderToast(t notify.Toast) string {
	style := m.styles.ToastInfo
	switch t.Level {
	case notify.LevelSuccess:
		style = m.styles.ToastSuccess
	case notify.LevelWarning:
		style = m.styles.ToastWarning
	case notify.LevelError:
		style = m.styles.ToastError
	}
	return style.Render(t.Message)
}

func renderHelp(md mode, k config.Keymap) string {
	switch md {
	case modeEdit:
		return fmt.Sprintf("%s save • up/down/tab save and move • %s cancel", k.Confirm, k.Cancel)
	case modeSearch:
		return fmt.Sprintf("type to filter • %s keep • %s clear", k.Confirm, k.Cancel)
	case modeAdd, modeConfirmDelete:
		return ""
	}
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s edit • %s delete • %s search • 1-5/%s/%s filter • %s clear done • %s archive • %s theme • %s export • %s/%s dismiss • %s quit",
		k.Up, k.Down, k.Add, keyLabel(k.Toggle), k.Edit, k.Delete, k.Search, k.NextFilter, k.PrevFilter,
		k.ClearCompleted, k.Archive, k.Theme, k.Export, k.Dismiss, k.Cancel, k.Quit)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
