package ui

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Timer state colors
const (
	ColorRunning Color = "2" // Green - actively tracking
	ColorPaused  Color = "3" // Yellow - paused
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
)

// State symbols
const (
	SymbolRunning = "●"
	SymbolPaused  = "◐"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	TotalStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Padding(1, 0, 0, 0)

	RunningIconStyle = lipgloss.NewStyle().
				Foreground(ColorRunning)

	PausedIconStyle = lipgloss.NewStyle().
			Foreground(ColorPaused)

	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)
)
