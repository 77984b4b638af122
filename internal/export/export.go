package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"ticklist/internal/task"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatPDF  Format = "pdf"
)

const (
	NoDueDate     = "No due date"
	createdLayout = "1/2/2006, 3:04:05 PM"
)

// Header is the column order of every export.
var Header = []string{"Task", "Status", "Priority", "Due Date", "Created At"}

func ParseFormat(v string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(v)))
	switch f {
	case FormatCSV, FormatJSON, FormatYAML, FormatPDF:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (csv, json, yaml, pdf)", v)
}

// Row is one exported task.
type Row struct {
	Task      string `json:"Task" yaml:"Task"`
	Status    string `json:"Status" yaml:"Status"`
	Priority  string `json:"Priority" yaml:"Priority"`
	DueDate   string `json:"Due Date" yaml:"Due Date"`
	CreatedAt string `json:"Created At" yaml:"Created At"`
}

func (r Row) Fields() []string {
	return []string{r.Task, r.Status, r.Priority, r.DueDate, r.CreatedAt}
}

// Rows converts the full collection into export rows, rendering creation
// times in loc.
func Rows(tasks []task.Task, loc *time.Location) []Row {
	if loc == nil {
		loc = time.Local
	}
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		due := NoDueDate
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		rows = append(rows, Row{
			Task:      t.Text,
			Status:    t.StatusLabel(),
			Priority:  t.Priority.Label(),
			DueDate:   due,
			CreatedAt: t.CreatedAt.In(loc).Format(createdLayout),
		})
	}
	return rows
}

// Write renders tasks in format. An empty collection still produces a valid
// artifact: a header-only CSV, an empty JSON or YAML list, or a PDF with just
// the table header.
func Write(w io.Writer, tasks []task.Task, format Format, loc *time.Location) error {
	rows := Rows(tasks, loc)
	switch format {
	case FormatCSV, "":
		return writeCSV(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case FormatPDF:
		return writePDF(w, rows)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, rows []Row) error {
	widths := []float64{78, 22, 20, 26, 44}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 9)
	for i, h := range Header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		for i, f := range r.Fields() {
			pdf.CellFormat(widths[i], 6, tr(truncate(pdf, f, widths[i]-2)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

func (f Format) Ext() string {
	if f == "" {
		return string(FormatCSV)
	}
	return string(f)
}

// Filename is tasks_YYYY-MM-DD.<ext> for the calendar day of now.
func Filename(now time.Time, format Format) string {
	return fmt.Sprintf("tasks_%s.%s", task.DateOf(now).String(), format.Ext())
}

// ToFile writes the export into dir and returns the file path. The file is
// rendered in memory first so a failed render never leaves a partial file.
func ToFile(dir string, tasks []task.Task, format Format, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, tasks, format, now.Location()); err != nil {
		return "", fmt.Errorf("render %s: %w", format.Ext(), err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(now, format))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
