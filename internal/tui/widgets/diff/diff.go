package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"draftinput/internal/tui/state"
)

var (
	delLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	addLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	delChar = delLine.Underline(true)
	addChar = addLine.Underline(true)
	faint   = lipgloss.NewStyle().Faint(true)
)

type DiffView struct {
	NoColor bool
}

func NewDiffView(noColor bool) DiffView { return DiffView{NoColor: noColor} }

// View renders the pending changes between the saved and the current plain
// text. Unchanged lines are faint, changed lines carry intraline highlights.
func (v DiffView) View(s state.UIState, saved, current string) string {
	if saved == current {
		return "No pending changes\n"
	}
	if s.View == state.SideBySide {
		return v.sideBySide(saved, current, s)
	}
	return v.unified(saved, current)
}

func (v DiffView) render(st lipgloss.Style, text string) string {
	if v.NoColor {
		return text
	}
	return st.Render(text)
}

// lineDiffs pairs saved and current lines using a line-mode diff so inserted
// or removed paragraphs do not shift every following pair.
func lineDiffs(saved, current string) []dmp.Diff {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(saved, current)
	diffs := d.DiffMain(a, b, false)
	return d.DiffCharsToLines(diffs, lines)
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// charSpans renders the intraline changes of a line pair.
func (v DiffView) charSpans(before, after string) (string, string) {
	d := dmp.New()
	diffs := d.DiffMain(before, after, false)
	diffs = d.DiffCleanupSemantic(diffs)
	var l, r strings.Builder
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			l.WriteString(v.render(delChar, df.Text))
		case dmp.DiffInsert:
			r.WriteString(v.render(addChar, df.Text))
		case dmp.DiffEqual:
			l.WriteString(v.render(delLine, df.Text))
			r.WriteString(v.render(addLine, df.Text))
		}
	}
	return l.String(), r.String()
}

// pairs walks a line diff and yields aligned (before, after) rows. Deleted
// runs followed by inserted runs are paired line by line.
func pairs(saved, current string) [][2]*string {
	var out [][2]*string
	diffs := lineDiffs(saved, current)
	for i := 0; i < len(diffs); i++ {
		df := diffs[i]
		switch df.Type {
		case dmp.DiffEqual:
			for _, l := range splitLines(df.Text) {
				l := l
				out = append(out, [2]*string{&l, &l})
			}
		case dmp.DiffDelete:
			dels := splitLines(df.Text)
			var ins []string
			if i+1 < len(diffs) && diffs[i+1].Type == dmp.DiffInsert {
				ins = splitLines(diffs[i+1].Text)
				i++
			}
			n := len(dels)
			if len(ins) > n {
				n = len(ins)
			}
			for j := 0; j < n; j++ {
				var p [2]*string
				if j < len(dels) {
					p[0] = &dels[j]
				}
				if j < len(ins) {
					p[1] = &ins[j]
				}
				out = append(out, p)
			}
		case dmp.DiffInsert:
			for _, l := range splitLines(df.Text) {
				l := l
				out = append(out, [2]*string{nil, &l})
			}
		}
	}
	return out
}

func (v DiffView) unified(saved, current string) string {
	var b strings.Builder
	b.WriteString("SAVED vs CURRENT (Unified)\n")
	for _, p := range pairs(saved, current) {
		switch {
		case p[0] != nil && p[1] != nil && *p[0] == *p[1]:
			fmt.Fprintf(&b, "  %s\n", v.render(faint, *p[0]))
		case p[0] != nil && p[1] != nil:
			l, r := v.charSpans(*p[0], *p[1])
			fmt.Fprintf(&b, "%s%s\n", v.render(delLine, "- "), l)
			fmt.Fprintf(&b, "%s%s\n", v.render(addLine, "+ "), r)
		case p[0] != nil:
			fmt.Fprintf(&b, "%s%s\n", v.render(delLine, "- "), v.render(delLine, *p[0]))
		default:
			fmt.Fprintf(&b, "%s%s\n", v.render(addLine, "+ "), v.render(addLine, *p[1]))
		}
	}
	return b.String()
}

func (v DiffView) sideBySide(saved, current string, s state.UIState) string {
	const sep = " │ "
	var b strings.Builder
	b.WriteString("SAVED │ CURRENT\n")
	// Compute column width from total width if provided
	colWidth := 40
	if s.Width > 0 {
		colWidth = (s.Width - len(sep)) / 2
		if colWidth < 10 {
			colWidth = 10
		}
	}
	for _, p := range pairs(saved, current) {
		var l, r string
		switch {
		case p[0] != nil && p[1] != nil && *p[0] == *p[1]:
			l = v.render(faint, clip(*p[0], colWidth))
			r = v.render(faint, clip(*p[1], colWidth))
		case p[0] != nil && p[1] != nil:
			l, r = v.charSpans(clip(*p[0], colWidth), clip(*p[1], colWidth))
		case p[0] != nil:
			l = v.render(delLine, clip(*p[0], colWidth))
		default:
			r = v.render(addLine, clip(*p[1], colWidth))
		}
		fmt.Fprintf(&b, "%s%s%s\n", pad(l, colWidth), sep, r)
	}
	return b.String()
}

func clip(s string, width int) string {
	return runewidth.Truncate(s, width, "")
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
