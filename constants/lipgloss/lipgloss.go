package lipgloss

import "github.com/charmbracelet/lipgloss"

var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF"))
	Gray    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
	Info    = lipgloss.NewStyle().Foreground(lipgloss.Color("#87D7FF")).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5FAFFF")).
			Padding(0, 1)

	// Heading styles indexed by heading level.
	H1 = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#AF87FF"))
	H2 = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87AFFF"))
	H3 = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87D7D7"))

	SuccessBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("#005F00")).Background(lipgloss.Color("#AFFFAF")).Padding(0, 1)
	FailedBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("#870000")).Background(lipgloss.Color("#FFAFAF")).Padding(0, 1)

	JavaScriptBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("#875F00")).Background(lipgloss.Color("#FFFFAF")).Padding(0, 1)
	TypeScriptBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("#00005F")).Background(lipgloss.Color("#AFD7FF")).Padding(0, 1)
	UnknownBadge    = lipgloss.NewStyle().Foreground(lipgloss.Color("#303030")).Background(lipgloss.Color("#D0D0D0")).Padding(0, 1)
)

// Heading returns the style for a markdown heading level.
func Heading(level int) lipgloss.Style {
	switch level {
	case 1:
		return H1
	case 2:
		return H2
	default:
		return H3
	}
}
