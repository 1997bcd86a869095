package panel

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen = lipgloss.Color("#10B981")
	colorRed   = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
	colorLCD   = lipgloss.Color("#A3E635")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	lcdStyle = lipgloss.NewStyle().
			Foreground(colorLCD).
			Background(lipgloss.Color("#1F2937")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	greenOnStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	redOnStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	offStyle     = lipgloss.NewStyle().Foreground(colorMuted)

	keyStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true).
			MarginTop(1)
)
