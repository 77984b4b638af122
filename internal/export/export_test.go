package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ticklist/internal/task"
)

func exportTasks() []task.Task {
	due := task.Date{Year: 2024, Month: time.January, Day: 1}
	return []task.Task{
		{
			ID:        "1",
			Text:      `Buy milk, eggs and "bread"`,
			Priority:  task.PriorityLow,
			DueDate:   &due,
			CreatedAt: time.Date(2024, time.January, 5, 14, 3, 9, 0, time.UTC),
		},
		{
			ID:        "2",
			Text:      "Walk dog",
			Completed: true,
			Priority:  task.PriorityHigh,
			CreatedAt: time.Date(2024, time.January, 4, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(exportTasks(), time.UTC)

	require.Len(t, rows, 2)
	assert.Equal(t, Row{
		Task:      `Buy milk, eggs and "bread"`,
		Status:    "Pending",
		Priority:  "Low",
		DueDate:   "2024-01-01",
		CreatedAt: "1/5/2024, 2:03:09 PM",
	}, rows[0])
	assert.Equal(t, "Completed", rows[1].Status)
	assert.Equal(t, "High", rows[1].Priority)
	assert.Equal(t, NoDueDate, rows[1].DueDate)
}

func TestWrite_CSV_quotes_embedded_delimiters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportTasks(), FormatCSV, time.UTC))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Task,Status,Priority,Due Date,Created At", lines[0])
	assert.Equal(t, `"Buy milk, eggs and ""bread""",Pending,Low,2024-01-01,"1/5/2024, 2:03:09 PM"`, lines[1])

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, `Buy milk, eggs and "bread"`, records[1][0])
	assert.Len(t, records[1], len(Header))
}

func TestWrite_CSV_empty_is_header_only(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, FormatCSV, time.UTC))
	assert.Equal(t, "Task,Status,Priority,Due Date,Created At\n", buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportTasks(), FormatJSON, time.UTC))

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Walk dog", rows[1]["Task"])
	assert.Equal(t, NoDueDate, rows[1]["Due Date"])
}

func TestWrite_JSON_empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []task.Task{}, FormatJSON, time.UTC))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportTasks(), FormatYAML, time.UTC))

	var rows []Row
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, Rows(exportTasks(), time.UTC), rows)
}

func TestWrite_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exportTasks(), FormatPDF, time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, Write(&buf, nil, FormatPDF, time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWrite_unknown_format(t *testing.T) {
	err := Write(&bytes.Buffer{}, nil, Format("xlsx"), time.UTC)
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"csv": FormatCSV, " JSON ": FormatJSON, "yml": FormatYAML, "pdf": FormatPDF}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, time.January, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "tasks_2024-01-05.csv", Filename(now, FormatCSV))
	assert.Equal(t, "tasks_2024-01-05.pdf", Filename(now, FormatPDF))
	assert.Equal(t, "tasks_2024-01-05.csv", Filename(now, ""))
}

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)

	path, err := ToFile(dir, exportTasks(), FormatCSV, now)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tasks_2024-01-05.csv"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Task,Status"))
}

func TestToFile_unwritable_dir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := ToFile(file, exportTasks(), FormatCSV, time.Now())

	require.Error(t, err)
}
