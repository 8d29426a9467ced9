package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorBorder   lipgloss.Color = "#585b70"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorPeach    lipgloss.Color = "#fab387"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerAppStyle = lipgloss.NewStyle().Foreground(colorAccent).Background(colorMantle).Bold(true).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Background(colorMantle).
				Foreground(colorOverlay1).
				Padding(0, 1)
	busyTabStyle = inactiveTabStyle.Foreground(colorPeach)

	statusBarStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorError)
	footerStyle       = lipgloss.NewStyle()
	footerKeyStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	footerDescStyle   = lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)

	titleStyle   = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	spinnerStyle = lipgloss.NewStyle().Foreground(colorPeach)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorMantle).
			Background(colorAccent).
			Bold(true).
			Padding(0, 1)
	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(colorOverlay1).
				Background(colorSurface0).
				Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(colorMantle).
			Background(colorAccent).
			Padding(0, 1)
	botBubbleStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 1)
	chartStyle = lipgloss.NewStyle().Foreground(colorPeach)
)

// button renders an action control, greyed out while disabled.
func button(label string, disabled bool) string {
	if disabled {
		return buttonDisabledStyle.Render(label)
	}
	return buttonStyle.Render(label)
}
