package tui

import "github.com/charmbracelet/lipgloss"

// Color palette and styles for the what-if estimator.
var (
	ColorPrimary = lipgloss.Color("39")  // blue
	ColorAccent  = lipgloss.Color("170") // magenta
	ColorSuccess = lipgloss.Color("42")  // green
	ColorWarning = lipgloss.Color("214") // orange
	ColorDanger  = lipgloss.Color("196") // red
	ColorMuted   = lipgloss.Color("241") // gray

	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	SelectedFieldStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	FieldValueStyle = lipgloss.NewStyle()

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	StaleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

// BandStyle picks a color for a risk band.
func BandStyle(band string) lipgloss.Style {
	switch band {
	case "low":
		return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	case "moderate":
		return lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	case "high":
		return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	}
}
