package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ticklist/internal/task"
)

func TestRowEditor_transitions(t *testing.T) {
	r := newRowEditor()
	first := task.Task{ID: "1", Text: "Buy milk"}
	second := task.Task{ID: "2", Text: "Walk dog"}

	assert.Equal(t, rowDisplay, r.state)
	id, text := r.finish(true)
	assert.Empty(t, id, "finish in display state is a no-op")
	assert.Empty(t, text)

	r.start(first)
	assert.True(t, r.editing("1"))
	assert.False(t, r.editing("2"))
	assert.Equal(t, "Buy milk", r.input.Value())

	r.start(second)
	assert.True(t, r.editing("1"), "start while editing keeps the current row")

	r.input.SetValue("  Buy oat milk ")
	id, text = r.finish(true)
	assert.Equal(t, "1", id)
	assert.Equal(t, "Buy oat milk", text)
	assert.Equal(t, rowDisplay, r.state)
	assert.Equal(t, "", r.input.Value())

	r.start(second)
	id, text = r.finish(false)
	assert.Equal(t, "2", id)
	assert.Empty(t, text)
	assert.False(t, r.editing("2"))
}

func TestWrapIndex(t *testing.T) {
	assert.Equal(t, 0, wrapIndex(3, 3))
	assert.Equal(t, 2, wrapIndex(-1, 3))
	assert.Equal(t, 0, wrapIndex(5, 0))
}
