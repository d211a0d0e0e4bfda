package render

import "github.com/charmbracelet/lipgloss"

// Theme represents a color theme
var CurrentTheme = struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Danger    lipgloss.Color
	Border    lipgloss.Color
}{
	Primary:   lipgloss.Color("#2f81f7"),
	Text:      lipgloss.Color("#ffffff"),
	TextMuted: lipgloss.Color("#808080"),
	Danger:    lipgloss.Color("#f85149"),
	Border:    lipgloss.Color("#444444"),
}

// SetTheme sets the current theme
func SetTheme(colors struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Danger    lipgloss.Color
	Border    lipgloss.Color
}) {
	CurrentTheme = colors
}
