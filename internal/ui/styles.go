package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, jump names, links
// - Muted (gray): Secondary info, counts

var (
	// Accent style for jump names, links, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)

// SetAccentColor overrides the accent color from config. Accepts ANSI
// color codes ("0" to "255") or hex colors ("#RRGGBB").
func SetAccentColor(color string) {
	if color == "" {
		return
	}
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
