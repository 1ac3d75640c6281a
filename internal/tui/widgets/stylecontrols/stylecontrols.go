package stylecontrols

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"draftinput/internal/richtext"
	"draftinput/internal/tui/util"
	"draftinput/internal/tui/widgets/spacer"
	"draftinput/internal/tui/widgets/stylebutton"
)

// leadWidth is the spacer drawn before the buttons outside the default bar.
const leadWidth = 1

// gap separates adjacent buttons.
const gap = 1

// Controls renders one toggle button per inline style in toolbar order.
type Controls struct {
	Active             richtext.StyleSet
	OnToggle           func(richtext.InlineStyle)
	DefaultControlsBar bool
	Width              int
	NoColor            bool
}

type segment struct {
	start, end int
	button     *stylebutton.Button
}

func (c Controls) segments() []segment {
	var segs []segment
	x := 0
	if !c.DefaultControlsBar {
		segs = append(segs, segment{start: x, end: x + leadWidth})
		x += leadWidth
	}
	for i, st := range richtext.InlineStyles {
		if i > 0 {
			segs = append(segs, segment{start: x, end: x + gap})
			x += gap
		}
		b := stylebutton.Button{
			Active:   c.Active.Has(st),
			Style:    st,
			OnToggle: c.OnToggle,
			NoColor:  c.NoColor,
		}
		segs = append(segs, segment{start: x, end: x + stylebutton.Width, button: &b})
		x += stylebutton.Width
	}
	// trailing spacer fills the rest of the row
	end := c.Width
	if end < x {
		end = x
	}
	return append(segs, segment{start: x, end: end})
}

// Height is the number of rows View renders.
func (c Controls) Height() int {
	if c.DefaultControlsBar {
		return 1
	}
	return 2
}

func (c Controls) View() string {
	var b strings.Builder
	for _, s := range c.segments() {
		if s.button != nil {
			b.WriteString(s.button.View())
			continue
		}
		b.WriteString(spacer.New(s.end - s.start).View())
	}
	row := b.String()
	if c.DefaultControlsBar {
		return row
	}
	w := lipgloss.Width(row)
	line := strings.Repeat("─", w)
	if !c.NoColor {
		line = lipgloss.NewStyle().Foreground(util.DefaultPalette().Divider).Render(line)
	}
	return row + "\n" + line
}

// Press routes a press at column x of the button row. It reports whether the
// press landed on the row; presses on spacers are swallowed.
func (c Controls) Press(x int) bool {
	for _, s := range c.segments() {
		if x < s.start || x >= s.end {
			continue
		}
		if s.button != nil {
			s.button.Press()
			return true
		}
		return spacer.Spacer{Width: s.end - s.start}.Press()
	}
	return false
}
