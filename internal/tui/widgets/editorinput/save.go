package editorinput

import (
	tea "github.com/charmbracelet/bubbletea"

	"draftinput/internal/richtext"
	"draftinput/internal/tui/state"
)

// saveResultMsg carries the outcome of a save attempt back to the widget
// that started it.
type saveResultMsg struct {
	id    int
	token uint64
	ok    bool
}

// saveWithLoading starts a guarded save from edit mode. It returns nil when a
// save is already loading.
func (m *Model) saveWithLoading() tea.Cmd {
	if m.Mode() != state.ModeEdit {
		return nil
	}
	next, token, ok := state.BeginSave(m.session)
	if !ok {
		return nil
	}
	m.session = next

	var doc *richtext.Document
	if !m.trimmedEmpty() {
		doc = m.engine.Document(m.state)
	}
	m.logf("editorinput: save %d started (%d chars)", token, m.Len())
	return tea.Batch(m.spinner.Tick, runChange(m.opt.OnChange, m.id, token, doc))
}

// runChange invokes the handler and waits for its first continuation. A
// handler that never resolves keeps the command, and the loading state,
// pending.
func runChange(h ChangeHandler, id int, token uint64, doc *richtext.Document) tea.Cmd {
	return func() tea.Msg {
		if h == nil {
			return saveResultMsg{id: id, token: token, ok: true}
		}
		done := make(chan bool, 1)
		resolve := func(ok bool) func() {
			return func() {
				select {
				case done <- ok:
				default:
				}
			}
		}
		h(doc, resolve(true), resolve(false))
		return saveResultMsg{id: id, token: token, ok: <-done}
	}
}

// commit reports the current document without loading or waiting.
func (m *Model) commit() tea.Cmd {
	h := m.opt.OnChange
	if h == nil {
		return nil
	}
	doc := m.engine.Document(m.state)
	return func() tea.Msg {
		h(doc, noop, noop)
		return nil
	}
}

func noop() {}
