package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderChrome draws the two bottom lines of the screen: the status line and
// the key help of the active widget, each exactly width cells wide.
func renderChrome(width int, status string, isErr bool, bindings []key.Binding) string {
	width = max(1, width)

	msg := strings.TrimSpace(status)
	if msg == "" {
		msg = "Ready"
	}
	style := statusBarStyle
	if isErr {
		style = statusErrBarStyle
	}
	return fitLine(style.Background(colorSurface0), width, msg) + "\n" +
		fitLine(footerStyle.Background(colorMantle), width, helpLine(bindings))
}

func helpLine(bindings []key.Binding) string {
	gap := lipgloss.NewStyle().Background(colorMantle)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if !b.Enabled() || h.Key == "" {
			continue
		}
		parts = append(parts, footerKeyStyle.Render(h.Key)+gap.Render(" ")+footerDescStyle.Render(h.Desc))
	}
	if len(parts) == 0 {
		return footerDescStyle.Render("No shortcuts")
	}
	return strings.Join(parts, gap.Render("  "))
}

// fitLine flattens s to a single line, cut with an ellipsis when it does not
// fit; the style pads it out to width.
func fitLine(style lipgloss.Style, width int, s string) string {
	s = ansi.Truncate(strings.ReplaceAll(s, "\n", " "), width, "…")
	return style.Width(width).MaxWidth(width).Render(s)
}
