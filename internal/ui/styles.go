package ui

import "github.com/charmbracelet/lipgloss"

// palette defines the semantic colors of one theme.
type palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	lightPalette = palette{
		Primary:    lipgloss.Color("#4f46e5"),
		Foreground: lipgloss.Color("#1f2937"),
		Muted:      lipgloss.Color("#6b7280"),
		Surface:    lipgloss.Color("#e5e7eb"),
		Success:    lipgloss.Color("#059669"),
		Warning:    lipgloss.Color("#d97706"),
		Error:      lipgloss.Color("#dc2626"),
	}
	darkPalette = palette{
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	}
)

type styles struct {
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Cursor      lipgloss.Style
	Text        lipgloss.Style
	Done        lipgloss.Style
	Overdue     lipgloss.Style
	Due         lipgloss.Style
	BarFill     lipgloss.Style
	BarEmpty    lipgloss.Style
	Field       lipgloss.Style
	ActiveField lipgloss.Style
	Priority    map[string]lipgloss.Style

	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	toast := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())

	return styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Muted:       lipgloss.NewStyle().Foreground(p.Muted),
		Tab:         lipgloss.NewStyle().Padding(0, 1).Foreground(p.Muted),
		ActiveTab:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(p.Foreground).Background(p.Surface),
		Cursor:      lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Text:        lipgloss.NewStyle().Foreground(p.Foreground),
		Done:        lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Overdue:     lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		Due:         lipgloss.NewStyle().Foreground(p.Muted),
		BarFill:     lipgloss.NewStyle().Foreground(p.Success),
		BarEmpty:    lipgloss.NewStyle().Foreground(p.Surface),
		Field:       lipgloss.NewStyle().Foreground(p.Muted),
		ActiveField: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Priority: map[string]lipgloss.Style{
			"low":    badge.Foreground(p.Success),
			"medium": badge.Foreground(p.Warning),
			"high":   badge.Foreground(p.Error),
		},

		ToastInfo:    toast.BorderForeground(p.Primary),
		ToastSuccess: toast.BorderForeground(p.Success),
		ToastWarning: toast.BorderForeground(p.Warning),
		ToastError:   toast.BorderForeground(p.Error),
	}
}
