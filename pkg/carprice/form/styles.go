package form

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style of the form.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Button   lipgloss.Style
	Active   lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
	Error    lipgloss.Style
	Box      lipgloss.Style
	Muted    lipgloss.Color
	Primary  lipgloss.Color
}

// DefaultTheme is the default form theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#7c3aed"),
	Muted:   lipgloss.Color("#737373"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#a78bfa")),
	Label: lipgloss.NewStyle().
		Width(30).
		Foreground(lipgloss.Color("#e5e5e5")),
	Focused: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7c3aed")),
	Button: lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#404040")),
	Active: lipgloss.NewStyle().
		Padding(0, 2).
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#7c3aed")),
	Success: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Info: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(1, 2),
}
