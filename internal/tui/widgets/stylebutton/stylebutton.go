package stylebutton

import (
	"github.com/charmbracelet/lipgloss"

	"draftinput/internal/richtext"
	"draftinput/internal/tui/util"
)

// Width is the rendered width of a button cell.
const Width = 3

// Button is a single inline style toggle. It holds no state of its own.
type Button struct {
	Active   bool
	Style    richtext.InlineStyle
	OnToggle func(richtext.InlineStyle)
	NoColor  bool
}

// Press fires the toggle. Callers route mouse presses (not releases) here so
// the selection is still intact when the style is applied.
func (b Button) Press() {
	if b.OnToggle != nil {
		b.OnToggle(b.Style)
	}
}

func (b Button) View() string {
	g := Glyph(b.Style)
	if b.NoColor {
		if b.Active {
			return "[" + g + "]"
		}
		return " " + g + " "
	}
	return buttonStyle(b.Style, b.Active).Render(" " + g + " ")
}

// Glyph is the icon for a style.
func Glyph(st richtext.InlineStyle) string {
	switch st {
	case richtext.Bold:
		return "B"
	case richtext.Italic:
		return "I"
	default:
		return "U"
	}
}

func buttonStyle(st richtext.InlineStyle, active bool) lipgloss.Style {
	p := util.DefaultPalette()
	s := lipgloss.NewStyle().Foreground(p.Text)
	switch st {
	case richtext.Bold:
		s = s.Bold(true)
	case richtext.Italic:
		s = s.Italic(true)
	default:
		s = s.Underline(true)
	}
	if active {
		s = s.Background(p.ButtonHover)
	}
	return s
}
