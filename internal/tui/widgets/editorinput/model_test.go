package editorinput

import (
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"draftinput/internal/richtext"
	"draftinput/internal/tui/state"
)

type fakeClipboard struct {
	text    string
	written string
}

func (c *fakeClipboard) ReadText() (string, error) { return c.text, nil }
func (c *fakeClipboard) WriteText(s string) error  { c.written = s; return nil }

func doc(text string) *richtext.Document {
	return &richtext.Document{Blocks: []richtext.Block{{Key: "k0", Text: text}}}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect executes cmd and every command nested in a batch.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func feed(m Model, cmd tea.Cmd) Model {
	for _, msg := range collect(cmd) {
		m, _ = m.Update(msg)
	}
	return m
}

func typeRunes(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

func editing(t *testing.T, opt Options) Model {
	t.Helper()
	opt.NoColor = true
	m := New(opt)
	m.Focus()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Mode() != state.ModeEdit {
		t.Fatalf("expected edit mode, got %s", m.Mode())
	}
	return m
}

func TestNilContentShowsPlaceholder(t *testing.T) {
	m := New(Options{NoColor: true})
	if m.Mode() != state.ModeDisplay {
		t.Fatalf("mode = %s", m.Mode())
	}
	if v := m.View(); !strings.Contains(v, DefaultPlaceholder) {
		t.Fatalf("placeholder missing:\n%s", v)
	}
	if !strings.Contains(m.View(), penGlyph) {
		t.Fatalf("pen affordance missing")
	}
}

func TestReadOnlyIgnoresClicksAndKeys(t *testing.T) {
	m := New(Options{Content: doc("fixed"), ReadOnly: true, NoColor: true})
	m.Focus()
	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Mode() != state.ModeReadOnly || m.Editing() {
		t.Fatalf("read-only widget entered edit")
	}
	if strings.Contains(m.View(), penGlyph) {
		t.Fatalf("read-only view should not offer the pen")
	}
}

func TestClickEntersEditWithCaretAtEnd(t *testing.T) {
	m := New(Options{Content: doc("hello"), NoColor: true})
	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Mode() != state.ModeEdit || !m.Focused() {
		t.Fatalf("expected focused edit mode, got %s", m.Mode())
	}
	if m.State().Caret() != 5 {
		t.Fatalf("caret = %d, want 5", m.State().Caret())
	}
	v := m.View()
	if !strings.Contains(v, saveLabel) || !strings.Contains(v, cancelLabel) {
		t.Fatalf("edit view missing buttons:\n%s", v)
	}
}

func TestTypedInputClampedToMax(t *testing.T) {
	m := editing(t, Options{})
	m = typeRunes(m, strings.Repeat("a", 1001))
	if m.Len() != 1000 {
		t.Fatalf("len = %d, want 1000", m.Len())
	}
}

func TestTypedInputNeverExceedsMax(t *testing.T) {
	m := editing(t, Options{Content: doc("abc"), MaxLength: 5})
	m = typeRunes(m, "defgh")
	if m.Value() != "abcde" {
		t.Fatalf("value = %q", m.Value())
	}
	// an event that would overflow is rejected whole
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(runes("xyz"))
	if m.Value() != "abc" || !m.Truncated() {
		t.Fatalf("value = %q truncated=%v", m.Value(), m.Truncated())
	}
	if m.State().Caret() != 3 {
		t.Fatalf("caret = %d, want 3", m.State().Caret())
	}
}

func TestInsertAtLimitKeepsText(t *testing.T) {
	m := editing(t, Options{Content: doc("abcde"), MaxLength: 5})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m = typeRunes(m, "X")
	if m.Value() != "abcde" {
		t.Fatalf("insert at start dropped text: %q", m.Value())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Value() != "abcde" {
		t.Fatalf("split at start dropped text: %q", m.Value())
	}
	m.state = m.state.Select(richtext.Selection{Anchor: 2, Focus: 2})
	m = typeRunes(m, "Y")
	if m.Value() != "abcde" || m.State().Caret() != 2 {
		t.Fatalf("mid insert: value=%q caret=%d", m.Value(), m.State().Caret())
	}
	// rejected edits leave no undo step; the cut version sits on redo
	if m.State().CanUndo() || !m.State().CanRedo() {
		t.Fatalf("undo=%v redo=%v", m.State().CanUndo(), m.State().CanRedo())
	}
}

func TestPasteClampedToRemaining(t *testing.T) {
	m := editing(t, Options{Content: doc("abcdefg"), MaxLength: 10})
	if got := m.HandlePaste("hello"); got != Handled {
		t.Fatalf("paste result = %s", got)
	}
	if m.Value() != "abcdefghel" {
		t.Fatalf("value = %q", m.Value())
	}
}

func TestPasteClampedMidText(t *testing.T) {
	m := editing(t, Options{Content: doc("abcdefg"), MaxLength: 10})
	m.state = m.state.Select(richtext.Selection{Anchor: 2, Focus: 2})
	if got := m.HandlePaste("hello"); got != Handled {
		t.Fatalf("paste result = %s", got)
	}
	if m.Value() != "abhelcdefg" || m.State().Caret() != 5 || !m.Truncated() {
		t.Fatalf("value=%q caret=%d truncated=%v", m.Value(), m.State().Caret(), m.Truncated())
	}
}

func TestPasteIgnoredWhenNotEditable(t *testing.T) {
	ro := New(Options{Content: doc("fixed"), ReadOnly: true, NoColor: true})
	if got := ro.HandlePaste("ZZ"); got != NotHandled || ro.Value() != "fixed" {
		t.Fatalf("read-only paste = %s, value %q", got, ro.Value())
	}
	disp := New(Options{Content: doc("fixed"), NoColor: true})
	if got := disp.HandlePaste("ZZ"); got != NotHandled || disp.Value() != "fixed" {
		t.Fatalf("display paste = %s, value %q", got, disp.Value())
	}

	m := editing(t, Options{Content: doc("abc"), OnChange: func(*richtext.Document, func(), func()) {}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.Loading() {
		t.Fatalf("expected loading")
	}
	if got := m.HandlePaste("ZZ"); got != NotHandled || m.Value() != "abc" {
		t.Fatalf("paste while loading = %s, value %q", got, m.Value())
	}
}

func TestPasteRefreshesViewport(t *testing.T) {
	m := editing(t, Options{Content: doc("a"), Width: 30})
	m.HandlePaste(strings.Repeat("word ", 40))
	if !strings.Contains(m.viewport.View(), "word") {
		t.Fatalf("viewport not refreshed:\n%s", m.viewport.View())
	}
	if m.viewport.YOffset == 0 {
		t.Fatalf("viewport should follow the caret to the last row")
	}
}

func TestPasteNotHandled(t *testing.T) {
	m := editing(t, Options{Content: doc("abcdef"), MaxLength: 10})
	if got := m.HandlePaste(""); got != NotHandled {
		t.Fatalf("empty paste = %s", got)
	}
	m.state = m.state.Select(richtext.Selection{Anchor: 1, Focus: 3})
	if got := m.HandlePaste("zz"); got != NotHandled {
		t.Fatalf("range paste = %s", got)
	}
	if m.Value() != "abcdef" {
		t.Fatalf("not-handled paste changed text: %q", m.Value())
	}
}

func TestBracketedPasteOverRangeFallsThrough(t *testing.T) {
	m := editing(t, Options{Content: doc("abcdef"), MaxLength: 8})
	m.state = m.state.Select(richtext.Selection{Anchor: 1, Focus: 3})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("WX"), Paste: true})
	if m.Value() != "aWXdef" {
		t.Fatalf("value = %q", m.Value())
	}
	// a replacement that would overflow is rejected
	m.state = m.state.Select(richtext.Selection{Anchor: 1, Focus: 3})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("WXYZ!"), Paste: true})
	if m.Value() != "aWXdef" || !m.Truncated() {
		t.Fatalf("value = %q truncated=%v", m.Value(), m.Truncated())
	}
}

func TestClipboardPaste(t *testing.T) {
	clip := &fakeClipboard{text: "12345"}
	m := editing(t, Options{Content: doc("ab"), MaxLength: 5, Clipboard: clip})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if m.Value() != "ab123" {
		t.Fatalf("value = %q", m.Value())
	}
	m.state = m.state.Select(richtext.Selection{Anchor: 0, Focus: 2})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}, Alt: true})
	if clip.written != "ab" {
		t.Fatalf("copied %q", clip.written)
	}
}

func TestDoubleToggleKeepsActiveStyles(t *testing.T) {
	m := editing(t, Options{Content: doc("hello")})
	for _, st := range richtext.InlineStyles {
		before := m.State().CurrentInlineStyle()
		m.ToggleInlineStyle(st)
		m.ToggleInlineStyle(st)
		if after := m.State().CurrentInlineStyle(); after != before {
			t.Fatalf("%s: %v -> %v", st, before, after)
		}
	}
}

func TestSaveWhileLoadingIsIgnored(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	h := func(_ *richtext.Document, ok, _ func()) {
		mu.Lock()
		calls++
		mu.Unlock()
		ok()
	}
	m := editing(t, Options{Content: doc("hi"), OnChange: h})
	m, first := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if first == nil || !m.Loading() {
		t.Fatalf("save did not start")
	}
	m, second := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if second != nil {
		t.Fatalf("second save returned a command")
	}
	if cmd := m.Blur(); cmd != nil {
		t.Fatalf("blur while loading started another save")
	}
	m = feed(m, first)
	if calls != 1 {
		t.Fatalf("handler called %d times", calls)
	}
	if m.Loading() || m.Mode() != state.ModeDisplay {
		t.Fatalf("expected display after success, loading=%v mode=%s", m.Loading(), m.Mode())
	}
}

func TestSaveErrorKeepsEditedText(t *testing.T) {
	h := func(_ *richtext.Document, _, fail func()) { fail() }
	m := editing(t, Options{Content: doc("draft"), OnChange: h})
	m = typeRunes(m, "ed")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = feed(m, cmd)
	if m.Mode() != state.ModeDisplay || m.Loading() {
		t.Fatalf("mode=%s loading=%v", m.Mode(), m.Loading())
	}
	if m.Value() != "drafted" || !strings.Contains(m.View(), "drafted") {
		t.Fatalf("edited text lost: %q", m.Value())
	}
}

func TestSaveSendsNilForBlankText(t *testing.T) {
	var got *richtext.Document
	called := false
	h := func(d *richtext.Document, ok, _ func()) { got, called = d, true; ok() }
	m := editing(t, Options{Content: doc("  "), OnChange: h})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	feed(m, cmd)
	if !called || got != nil {
		t.Fatalf("expected nil document, called=%v doc=%+v", called, got)
	}
}

func TestFirstContinuationWins(t *testing.T) {
	h := func(_ *richtext.Document, ok, fail func()) { fail(); ok(); fail() }
	msg := runChange(h, 7, 3, nil)()
	res, isResult := msg.(saveResultMsg)
	if !isResult || res.ok || res.id != 7 || res.token != 3 {
		t.Fatalf("result = %+v", msg)
	}
}

func TestCancelRestoresOriginal(t *testing.T) {
	m := editing(t, Options{Content: doc("original")})
	m = typeRunes(m, " changed")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Mode() != state.ModeDisplay {
		t.Fatalf("mode = %s", m.Mode())
	}
	if m.Value() != "original" {
		t.Fatalf("value = %q", m.Value())
	}
}

func TestCancelDisabledWhileLoading(t *testing.T) {
	h := func(_ *richtext.Document, ok, _ func()) {}
	m := editing(t, Options{Content: doc("x"), OnChange: h})
	m = typeRunes(m, "y")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m.cancel()
	if !m.Loading() || m.Value() != "xy" {
		t.Fatalf("cancel applied while loading")
	}
}

func TestStaleSaveResultDiscarded(t *testing.T) {
	h := func(_ *richtext.Document, ok, _ func()) { ok() }
	m := editing(t, Options{Content: doc("a"), OnChange: h})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m.SetContent(doc("from server"))
	m.Focus()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = feed(m, cmd)
	if m.Mode() != state.ModeEdit {
		t.Fatalf("stale result left edit mode")
	}
	if m.Value() != "from server" {
		t.Fatalf("value = %q", m.Value())
	}
}

func TestResultForOtherWidgetIgnored(t *testing.T) {
	m := editing(t, Options{OnChange: func(_ *richtext.Document, _, _ func()) {}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.Update(saveResultMsg{id: m.id + 1, token: m.session.Token, ok: true})
	if !m.Loading() {
		t.Fatalf("foreign result resolved the save")
	}
}

func TestDefaultInlineCommitsOnBlur(t *testing.T) {
	var got *richtext.Document
	h := func(d *richtext.Document, ok, _ func()) { got = d }
	m := New(Options{DefaultInput: true, MaxLength: 4, OnChange: h, NoColor: true})
	if m.Mode() != state.ModeDefaultInline {
		t.Fatalf("mode = %s", m.Mode())
	}
	m.Focus()
	m = typeRunes(m, "abcdef")
	if m.Value() != "abcd" {
		t.Fatalf("value = %q", m.Value())
	}
	if strings.Contains(m.View(), saveLabel) {
		t.Fatalf("default input should not render Save")
	}
	m, cmd := m.Update(tea.BlurMsg{})
	m = feed(m, cmd)
	if got == nil || got.PlainText() != "abcd" {
		t.Fatalf("blur did not commit: %+v", got)
	}
	if m.Loading() {
		t.Fatalf("default input should never load")
	}
}

func TestBlurInEditModeSaves(t *testing.T) {
	called := false
	h := func(_ *richtext.Document, ok, _ func()) { called = true; ok() }
	m := editing(t, Options{Content: doc("x"), OnChange: h})
	// press outside the widget
	m, cmd := m.Update(tea.MouseMsg{X: 500, Y: 500, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = feed(m, cmd)
	if !called || m.Mode() != state.ModeDisplay {
		t.Fatalf("blur save: called=%v mode=%s", called, m.Mode())
	}
}

func TestInvalidContentFallsBackToEmpty(t *testing.T) {
	var logged []string
	bad := &richtext.Document{Blocks: []richtext.Block{{Key: "k", Text: "ab", InlineStyleRanges: []richtext.StyleRange{{Offset: 1, Length: 9, Style: richtext.Bold}}}}}
	m := New(Options{Content: bad, Logf: func(f string, a ...any) { logged = append(logged, f) }})
	if m.Value() != "" || len(logged) == 0 {
		t.Fatalf("value=%q logged=%v", m.Value(), logged)
	}
}
