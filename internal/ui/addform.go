package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ticklist/internal/task"
)

type addField int

const (
	fieldText addField = iota
	fieldPriority
	fieldDue
)

func addFields() []string {
	return []string{"task", "priority", "due (YYYY-MM-DD)"}
}

// addForm holds the add-task inputs. Priority is a selector cycled with
// left/right or space; the other fields are text inputs.
type addForm struct {
	text     textinput.Model
	due      textinput.Model
	priority task.Priority
	index    int
}

func newAddForm(priority task.Priority, due string) *addForm {
	text := textinput.New()
	text.Placeholder = "What needs to be done?"
	text.CharLimit = 256
	text.Width = 40

	dueInput := textinput.New()
	dueInput.Placeholder = "YYYY-MM-DD, today, tomorrow or empty"
	dueInput.CharLimit = 10
	dueInput.Width = 20
	dueInput.SetValue(due)

	f := &addForm{text: text, due: dueInput, priority: priority}
	f.text.Focus()
	return f
}

func (f *addForm) field() addField {
	return addField(f.index)
}

func (f *addForm) move(by int) tea.Cmd {
	f.index = wrapIndex(f.index+by, len(addFields()))
	f.text.Blur()
	f.due.Blur()
	switch f.field() {
	case fieldText:
		return f.text.Focus()
	case fieldDue:
		return f.due.Focus()
	}
	return nil
}

func (f *addForm) update(msg tea.KeyMsg) tea.Cmd {
	switch f.field() {
	case fieldPriority:
		switch msg.String() {
		case "left", "h":
			f.priority = f.priority.Prev()
		case "right", "l", " ":
			f.priority = f.priority.Next()
		}
		return nil
	case fieldDue:
		var cmd tea.Cmd
		f.due, cmd = f.due.Update(msg)
		return cmd
	default:
		var cmd tea.Cmd
		f.text, cmd = f.text.Update(msg)
		return cmd
	}
}

// values returns the form contents ready for Store.Add. Text emptiness is
// left to the store.
func (f *addForm) values(today task.Date) (string, task.Priority, *task.Date, error) {
	due, err := task.ParseDue(f.due.Value(), today)
	if err != nil {
		return "", "", nil, err
	}
	return f.text.Value(), f.priority, due, nil
}

func (f *addForm) view(s styles) string {
	values := []string{f.text.View(), f.renderPriority(s), f.due.View()}
	var b strings.Builder
	for i, name := range addFields() {
		label := s.Field.Render(fmt.Sprintf("%-17s", name))
		prefix := " "
		if i == f.index {
			prefix = ">"
			label = s.ActiveField.Render(fmt.Sprintf("%-17s", name))
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", prefix, label, values[i]))
	}
	return b.String()
}

func (f *addForm) renderPriority(s styles) string {
	parts := make([]string, 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		if p == f.priority {
			parts = append(parts, s.Priority[string(p)].Render("["+p.Label()+"]"))
			continue
		}
		parts = append(parts, s.Muted.Render(" "+p.Label()+" "))
	}
	return strings.Join(parts, " ")
}
