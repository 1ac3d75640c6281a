package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"draftinput/internal/config"
	"draftinput/internal/richtext"
	"draftinput/internal/store"
	"draftinput/internal/tui/state"
)

type fakeDocs struct {
	mu   sync.Mutex
	docs map[string]*richtext.Document
	err  error
}

func (f *fakeDocs) Get(_ context.Context, id string) (*richtext.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return d, nil
}

func (f *fakeDocs) Save(_ context.Context, id string, doc *richtext.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.docs[id] = doc
	return nil
}

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

func step(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm, cmd
}

func typeText(t *testing.T, m model, text string) model {
	for _, r := range text {
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func newTestModel(t *testing.T, docs *fakeDocs, ed config.EditorConfig) model {
	t.Helper()
	ed.NoColor = true
	m, err := newModel(context.Background(), Options{ID: "note", Docs: docs, Editor: ed})
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	return m
}

func textDoc(s string) *richtext.Document {
	return &richtext.Document{Blocks: []richtext.Block{{Key: "k0", Text: s}}}
}

// save presses ctrl+s, resolves the widget's save and the persist event.
func save(t *testing.T, m model) model {
	t.Helper()
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	for _, msg := range collect(cmd) {
		m, _ = step(t, m, msg)
	}
	ev := <-m.events
	m, _ = step(t, m, ev)
	return m
}

func TestEditSavePersists(t *testing.T) {
	docs := &fakeDocs{docs: map[string]*richtext.Document{"note": textDoc("hello")}}
	m := newTestModel(t, docs, config.EditorConfig{MaxLength: 50})
	if m.ui.Mode != state.ModeDisplay {
		t.Fatalf("mode = %s", m.ui.Mode)
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.ui.Mode != state.ModeEdit {
		t.Fatalf("expected edit mode, got %s", m.ui.Mode)
	}
	m = typeText(t, m, " world")
	if v := m.View(); !strings.Contains(v, "[Edited]") || !strings.Contains(v, "11/50") {
		t.Fatalf("expected edited tag and length:\n%s", v)
	}

	m = save(t, m)
	if m.ui.Mode != state.ModeDisplay || m.ui.Loading {
		t.Fatalf("expected display after save, got %s loading=%v", m.ui.Mode, m.ui.Loading)
	}
	if got := docs.docs["note"].PlainText(); got != "hello world" {
		t.Fatalf("stored = %q", got)
	}
	if m.saved != "hello world" || strings.Contains(m.View(), "[Edited]") {
		t.Fatalf("saved text not tracked: %q", m.saved)
	}
	if m.ui.Notice != "Saved" {
		t.Fatalf("notice = %q", m.ui.Notice)
	}
}

func TestSaveFailureKeepsEdits(t *testing.T) {
	docs := &fakeDocs{docs: map[string]*richtext.Document{}, err: errors.New("disk full")}
	m := newTestModel(t, docs, config.EditorConfig{})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "draft")
	m = save(t, m)
	if m.input.Value() != "draft" {
		t.Fatalf("edits lost: %q", m.input.Value())
	}
	if !strings.Contains(m.ui.Notice, "disk full") {
		t.Fatalf("notice = %q", m.ui.Notice)
	}
	if m.saved != "" {
		t.Fatalf("saved = %q", m.saved)
	}
}

func TestDiffAndHelpToggles(t *testing.T) {
	docs := &fakeDocs{docs: map[string]*richtext.Document{"note": textDoc("a")}}
	m := newTestModel(t, docs, config.EditorConfig{})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "b")
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if v := m.View(); !strings.Contains(v, "SAVED vs CURRENT (Unified)") || !strings.Contains(v, "+ ab") {
		t.Fatalf("diff not shown:\n%s", v)
	}
	// "?" is text while editing
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if m.ui.ShowHelp || m.input.Value() != "ab?" {
		t.Fatalf("? should be typed, help=%v value=%q", m.ui.ShowHelp, m.input.Value())
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if v := m.View(); !strings.Contains(v, "Help (Mode: edit)") {
		t.Fatalf("help not shown:\n%s", v)
	}
}

func TestMouseIsTranslatedPastHeader(t *testing.T) {
	docs := &fakeDocs{docs: map[string]*richtext.Document{"note": textDoc("hello")}}
	m := newTestModel(t, docs, config.EditorConfig{})
	m, _ = step(t, m, tea.MouseMsg{X: 3, Y: headerHeight + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.ui.Mode != state.ModeEdit {
		t.Fatalf("click on display text should start editing, got %s", m.ui.Mode)
	}
}

func TestDefaultInlineFlushOnQuit(t *testing.T) {
	docs := &fakeDocs{docs: map[string]*richtext.Document{}}
	m := newTestModel(t, docs, config.EditorConfig{DefaultInput: true})
	m = typeText(t, m, "inline")
	if _, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("expected quit")
	}
	if err := m.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := docs.docs["note"].PlainText(); got != "inline" {
		t.Fatalf("stored = %q", got)
	}
}
