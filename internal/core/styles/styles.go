// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorAccent     color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	SuccessStyle       lipgloss.Style
	WarningStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
	MutedStyle         lipgloss.Style
	MatchPathStyle     lipgloss.Style
	MatchLineStyle     lipgloss.Style

	// Editor styles.
	TextStyle        lipgloss.Style
	CursorStyle      lipgloss.Style
	GutterStyle      lipgloss.Style
	StatusLineStyle  lipgloss.Style
	StatusMsgStyle   lipgloss.Style
	ModeNormalStyle  lipgloss.Style
	ModeInsertStyle  lipgloss.Style
	InfoBoxStyle     lipgloss.Style
	InfoBoxTitle     lipgloss.Style
	InfoBoxKeyStyle  lipgloss.Style
	InfoBoxDescStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorAccent = p.Accent
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MatchPathStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	MatchLineStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	TextStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	CursorStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorForeground)
	GutterStyle = lipgloss.NewStyle().
		Foreground(ColorAccent)

	StatusLineStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface)
	StatusMsgStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ModeNormalStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	ModeInsertStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSuccess).
		Bold(true).
		Padding(0, 1)

	InfoBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
	InfoBoxTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
	InfoBoxKeyStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	InfoBoxDescStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
