package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ticklist/internal/task"
)

type rowState int

const (
	rowDisplay rowState = iota
	rowEditing
)

// rowEditor is the inline editor for a single row. A row is either shown as
// text or as the input, never both: editing(id) decides which.
type rowEditor struct {
	state  rowState
	taskID string
	input  textinput.Model
}

func newRowEditor() rowEditor {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = ""
	return rowEditor{input: ti}
}

// start moves a row into editing. It is a no-op when a row is already being
// edited.
func (r *rowEditor) start(t task.Task) tea.Cmd {
	if r.state == rowEditing {
		return nil
	}
	r.state = rowEditing
	r.taskID = t.ID
	r.input.SetValue(t.Text)
	r.input.CursorEnd()
	return r.input.Focus()
}

// finish returns the row to display. When commit is true the trimmed input
// is returned for saving; an empty result means discard.
func (r *rowEditor) finish(commit bool) (id, text string) {
	if r.state != rowEditing {
		return "", ""
	}
	id = r.taskID
	if commit {
		text = strings.TrimSpace(r.input.Value())
	}
	r.state = rowDisplay
	r.taskID = ""
	r.input.Blur()
	r.input.SetValue("")
	return id, text
}

func (r rowEditor) editing(id string) bool {
	return r.state == rowEditing && r.taskID == id
}

func (r *rowEditor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return cmd
}

func (r rowEditor) view() string {
	return r.input.View()
}
