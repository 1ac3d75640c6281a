package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette defines the colors used across the editor widgets.
type Palette struct {
	Text        lipgloss.Color
	Placeholder lipgloss.Color
	ReadBg      lipgloss.Color
	EditBorder  lipgloss.Color
	ButtonHover lipgloss.Color
	Divider     lipgloss.Color
	Pen         lipgloss.Color
	Success     lipgloss.Color
	Danger      lipgloss.Color
	Warning     lipgloss.Color
	Muted       lipgloss.Color
}

// DefaultPalette returns the default palette.
func DefaultPalette() Palette {
	return Palette{
		Text:        lipgloss.Color("#4A4A4A"),
		Placeholder: lipgloss.Color("#B0B0B0"),
		ReadBg:      lipgloss.Color("#F8F8F8"),
		EditBorder:  lipgloss.Color("#D2E9C4"),
		ButtonHover: lipgloss.Color("#DEDEDE"),
		Divider:     lipgloss.Color("#D6D6D6"),
		Pen:         lipgloss.Color("#E4E4E4"),
		Success:     lipgloss.Color("#2AA876"),
		Danger:      lipgloss.Color("#D9534F"),
		Warning:     lipgloss.Color("#F0AD4E"),
		Muted:       lipgloss.Color("#6C757D"),
	}
}
