package editorinput

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"draftinput/internal/richtext"
	"draftinput/internal/tui/state"
	"draftinput/internal/tui/util"
	"draftinput/internal/tui/widgets/stylecontrols"
)

const (
	minEditRows = 5
	maxEditRows = 19

	// frame is the border plus horizontal padding on each side of a boxed view.
	frame = 2

	penGlyph = "✎"

	saveLabel   = "[ Save ]"
	sepLabel    = " │ "
	cancelLabel = "[ Cancel ]"
)

// Columns of the Save/Cancel row, which starts with one space.
var (
	saveStart   = 1
	saveEnd     = saveStart + len(saveLabel)
	cancelStart = saveEnd + runewidth.StringWidth(sepLabel)
	cancelEnd   = cancelStart + len(cancelLabel)
)

func (m Model) noColor() bool { return util.NoColor(m.opt.NoColor) }

// textWidth is the number of cells available to text on a row.
func (m Model) textWidth() int {
	if m.Mode() == state.ModeDefaultInline {
		return m.opt.Width
	}
	return m.opt.Width - 2*frame
}

func (m Model) controls(onToggle func(richtext.InlineStyle)) stylecontrols.Controls {
	return stylecontrols.Controls{
		Active:             m.state.CurrentInlineStyle(),
		OnToggle:           onToggle,
		DefaultControlsBar: m.Mode() == state.ModeDefaultInline && m.opt.DefaultControlsBar,
		Width:              m.textWidth(),
		NoColor:            m.noColor(),
	}
}

func (m Model) baseStyle() lipgloss.Style {
	if m.noColor() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(util.DefaultPalette().Text)
}

func cellStyle(base lipgloss.Style, set richtext.StyleSet, reverse bool) lipgloss.Style {
	s := base
	if set.Has(richtext.Bold) {
		s = s.Bold(true)
	}
	if set.Has(richtext.Italic) {
		s = s.Italic(true)
	}
	if set.Has(richtext.Underline) {
		s = s.Underline(true)
	}
	if reverse {
		s = s.Reverse(true)
	}
	return s
}

// renderRows draws rows padded to width, with the selection and, when
// drawCaret is set, the caret in reverse video.
func (m Model) renderRows(rows []visualRow, width int, base lipgloss.Style, drawCaret bool) []string {
	selStart, selEnd := m.state.Selection().Range()
	caret := m.state.Caret()
	out := make([]string, len(rows))
	for i, r := range rows {
		var b strings.Builder
		used := 0
		var run []rune
		var runSet richtext.StyleSet
		runRev := false
		flush := func() {
			if len(run) == 0 {
				return
			}
			b.WriteString(cellStyle(base, runSet, runRev).Render(string(run)))
			run = run[:0]
		}
		for j, c := range r.cells {
			off := r.start + j
			rev := (off >= selStart && off < selEnd) || (drawCaret && off == caret)
			if len(run) > 0 && (c.Style != runSet || rev != runRev) {
				flush()
			}
			runSet, runRev = c.Style, rev
			run = append(run, c.Rune)
			used += runewidth.RuneWidth(c.Rune)
		}
		flush()
		if drawCaret && r.last && caret == r.start+len(r.cells) && used < width {
			b.WriteString(base.Reverse(true).Render(" "))
			used++
		}
		if used < width {
			b.WriteString(base.Render(strings.Repeat(" ", width-used)))
		}
		out[i] = b.String()
	}
	return out
}

// editLines are the viewport lines of the edit view, padded on both sides.
func (m Model) editLines(rows []visualRow) []string {
	base := m.baseStyle()
	lines := m.renderRows(rows, m.textWidth(), base, m.focused && !m.session.Loading)
	for i, l := range lines {
		lines[i] = " " + l + " "
	}
	return lines
}

// syncViewport sizes the edit viewport to the content and, when follow is
// set, scrolls it so the caret row is visible.
func (m *Model) syncViewport(follow bool) {
	rows := layoutRows(m.state, m.textWidth())
	h := clampInt(len(rows), minEditRows, maxEditRows)
	m.viewport.Width = m.opt.Width - frame
	m.viewport.Height = h
	m.viewport.SetContent(strings.Join(m.editLines(rows), "\n"))
	if !follow {
		return
	}
	cr := caretRowOf(rows, m.state.Caret())
	switch {
	case cr < m.viewport.YOffset:
		m.viewport.SetYOffset(cr)
	case cr >= m.viewport.YOffset+h:
		m.viewport.SetYOffset(cr - h + 1)
	}
}

// Height is the number of rows View renders.
func (m Model) Height() int {
	rows := layoutRows(m.state, m.textWidth())
	switch m.Mode() {
	case state.ModeDefaultInline:
		return m.controls(nil).Height() + len(rows)
	case state.ModeEdit:
		return 2 + m.controls(nil).Height() + clampInt(len(rows), minEditRows, maxEditRows) + 1
	default:
		return 2 + len(rows)
	}
}

func (m Model) View() string {
	switch m.Mode() {
	case state.ModeDefaultInline:
		return m.viewInline()
	case state.ModeEdit:
		return m.viewEdit()
	default:
		return m.viewDisplay()
	}
}

func (m Model) viewInline() string {
	rows := layoutRows(m.state, m.textWidth())
	body := m.renderRows(rows, m.textWidth(), m.baseStyle(), m.focused)
	return m.controls(nil).View() + "\n" + strings.Join(body, "\n")
}

func (m Model) viewDisplay() string {
	p := util.DefaultPalette()
	w := m.textWidth()
	base := m.baseStyle()
	if !m.noColor() {
		base = base.Background(p.ReadBg)
	}

	var rows []string
	if m.Value() == "" {
		ph := runewidth.Truncate(m.opt.Placeholder, w, "…")
		phStyle := base
		if !m.noColor() {
			phStyle = phStyle.Foreground(p.Placeholder)
		}
		rows = []string{phStyle.Render(ph) + base.Render(strings.Repeat(" ", w-runewidth.StringWidth(ph)))}
	} else {
		rows = m.renderRows(layoutRows(m.state, w), w, base, false)
	}

	pen := base.Render(penGlyph)
	if !m.noColor() {
		pen = lipgloss.NewStyle().Foreground(p.Text).Background(p.Pen).Render(penGlyph)
	}
	for i := range rows {
		right := base.Render(" ")
		if i == 0 && m.Mode() == state.ModeDisplay {
			right = pen
		}
		rows[i] = base.Render(" ") + rows[i] + right
	}
	return lipgloss.NewStyle().Border(lipgloss.HiddenBorder()).Render(strings.Join(rows, "\n"))
}

func (m Model) viewEdit() string {
	p := util.DefaultPalette()
	w := m.textWidth()

	var inner []string
	for _, line := range strings.Split(m.controls(nil).View(), "\n") {
		if pad := w - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		inner = append(inner, " "+line+" ")
	}
	vp := m.viewport
	vp.SetContent(strings.Join(m.editLines(layoutRows(m.state, w)), "\n"))
	inner = append(inner, vp.View())

	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	if !m.noColor() {
		box = box.BorderForeground(p.EditBorder)
	}
	return box.Render(strings.Join(inner, "\n")) + "\n" + m.buttonsRow()
}

func (m Model) buttonsRow() string {
	p := util.DefaultPalette()
	save := lipgloss.NewStyle().Bold(true)
	sep := lipgloss.NewStyle()
	cancel := lipgloss.NewStyle()
	if !m.noColor() {
		save = save.Foreground(p.Success)
		sep = sep.Foreground(p.Divider)
		cancel = cancel.Foreground(p.Danger)
	}
	if m.session.Loading {
		cancel = cancel.Faint(true)
	}
	row := " " + save.Render(saveLabel) + sep.Render(sepLabel) + cancel.Render(cancelLabel)
	if m.session.Loading {
		row += "  " + m.spinner.View() + " Saving…"
	}
	return row
}
