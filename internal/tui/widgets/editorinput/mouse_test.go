package editorinput

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"draftinput/internal/richtext"
	"draftinput/internal/tui/state"
)

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestPressOnBoldButtonTogglesSelection(t *testing.T) {
	m := editing(t, Options{Content: doc("hello")})
	m.state = m.state.Select(richtext.Selection{Anchor: 0, Focus: 5})
	// border 0, padding 1, lead spacer 2, bold button 3-5
	m, _ = m.Update(press(frame+2, 1))
	if !m.State().CurrentInlineStyle().Has(richtext.Bold) {
		t.Fatalf("bold not applied")
	}
	if sel := m.State().Selection(); sel.Anchor != 0 || sel.Focus != 5 {
		t.Fatalf("selection lost: %+v", sel)
	}
}

func TestPressOnSpacerChangesNothing(t *testing.T) {
	m := editing(t, Options{Content: doc("hello")})
	before := m.State()
	m, _ = m.Update(press(frame, 1))
	if m.State().CurrentInlineStyle() != before.CurrentInlineStyle() || m.State().Caret() != before.Caret() {
		t.Fatalf("spacer press changed state")
	}
}

func TestPressPlacesCaret(t *testing.T) {
	m := editing(t, Options{Content: doc("hello world")})
	_, textY, _ := m.textOrigin()
	m, _ = m.Update(press(frame+3, textY))
	if m.State().Caret() != 3 {
		t.Fatalf("caret = %d", m.State().Caret())
	}
	m, _ = m.Update(tea.MouseMsg{X: frame + 7, Y: textY, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: frame + 7, Y: textY, Action: tea.MouseActionRelease})
	if sel := m.State().Selection(); sel.Anchor != 3 || sel.Focus != 7 {
		t.Fatalf("drag selection = %+v", sel)
	}
}

func TestPressSaveAndCancelButtons(t *testing.T) {
	h := func(_ *richtext.Document, ok, _ func()) { ok() }
	m := editing(t, Options{Content: doc("a"), OnChange: h})
	y := m.Height() - 1
	m, cmd := m.Update(press(saveStart, y))
	if cmd == nil || !m.Loading() {
		t.Fatalf("save press did not start a save")
	}
	m = feed(m, cmd)
	if m.Mode() != state.ModeDisplay {
		t.Fatalf("mode = %s", m.Mode())
	}

	m, _ = m.Update(press(2, 1))
	m = typeRunes(m, "zz")
	m, _ = m.Update(press(cancelStart, m.Height()-1))
	if m.Mode() != state.ModeDisplay || m.Value() != "a" {
		t.Fatalf("cancel press: mode=%s value=%q", m.Mode(), m.Value())
	}
}

func TestEditViewHeightBounds(t *testing.T) {
	m := editing(t, Options{})
	if got := m.viewport.Height; got != minEditRows {
		t.Fatalf("empty edit height = %d", got)
	}
	for i := 0; i < 40; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	if got := m.viewport.Height; got != maxEditRows {
		t.Fatalf("tall edit height = %d", got)
	}
	if got := len(strings.Split(m.View(), "\n")); got != m.Height() {
		t.Fatalf("view rows %d != Height %d", got, m.Height())
	}
	// caret row stays visible
	if m.viewport.YOffset == 0 {
		t.Fatalf("viewport did not follow the caret")
	}
}

func TestDefaultInlineControlsBar(t *testing.T) {
	m := New(Options{DefaultInput: true, DefaultControlsBar: true, NoColor: true})
	m.Focus()
	m, _ = m.Update(press(1, 0)) // bold button at 0-2
	m = typeRunes(m, "hi")
	d := m.Document()
	if r := d.Blocks[0].InlineStyleRanges; len(r) != 1 || r[0].Style != richtext.Bold {
		t.Fatalf("typed text not bold: %+v", r)
	}
	if strings.Contains(strings.Split(m.View(), "\n")[1], "─") {
		t.Fatalf("default controls bar should not draw a divider")
	}
}
