// Package editorinput is a rich-text input for Bubble Tea programs: inline
// bold/italic/underline controls, a click-to-edit display mode, an edit mode
// with Save and Cancel, and length clamping for typed and pasted text.
//
// The host feeds it messages through Update and renders View. Mouse
// coordinates must be relative to the widget's top-left corner; a press
// outside the widget blurs it.
package editorinput

import (
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"draftinput/internal/richtext"
	"draftinput/internal/tui/state"
	"draftinput/internal/tui/util"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// PasteResult reports whether the widget consumed a paste.
type PasteResult int

const (
	NotHandled PasteResult = iota
	Handled
)

func (r PasteResult) String() string {
	if r == Handled {
		return "handled"
	}
	return "not-handled"
}

// Model is the editor input component.
type Model struct {
	id  int
	opt Options

	engine Engine
	keys   KeyMap
	logf   func(string, ...any)

	content  *richtext.Document
	state    richtext.State
	session  state.Session
	focused  bool
	dragging bool
	// truncated is set when the most recent edit was clamped.
	truncated bool

	spinner  spinner.Model
	viewport viewport.Model
}

// New builds a widget showing opt.Content. An invalid document is logged and
// replaced by empty content.
func New(opt Options) Model {
	opt = opt.withDefaults()
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(util.DefaultPalette().EditBorder)),
	)
	m := Model{
		id:       nextID(),
		opt:      opt,
		engine:   opt.Engine,
		keys:     *opt.KeyMap,
		logf:     opt.Logf,
		content:  opt.Content,
		spinner:  sp,
		viewport: viewport.New(opt.Width-2, minEditRows),
	}
	m.viewport.MouseWheelEnabled = true
	m.state = m.rebuild()
	m.syncViewport(true)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// rebuild creates a fresh state from the original content.
func (m Model) rebuild() richtext.State {
	s, err := m.engine.FromDocument(m.content)
	if err != nil {
		m.logf("editorinput: invalid content, starting empty: %v", err)
		return m.engine.Empty()
	}
	return s
}

// SetContent replaces the original content and discards local edits. A save
// still in flight is superseded and its result ignored.
func (m *Model) SetContent(doc *richtext.Document) {
	m.content = doc
	m.state = m.rebuild()
	m.session = state.Supersede(m.session)
	m.truncated = false
	m.dragging = false
	m.syncViewport(true)
}

// SetWidth resizes the widget.
func (m *Model) SetWidth(w int) {
	if w < minWidth {
		w = minWidth
	}
	m.opt.Width = w
	m.syncViewport(true)
}

// Mode is the view the widget currently renders.
func (m Model) Mode() state.Mode {
	return state.ResolveMode(m.opt.DefaultInput, m.opt.ReadOnly, m.session.Editing)
}

func (m Model) Focused() bool   { return m.focused }
func (m Model) Loading() bool   { return m.session.Loading }
func (m Model) Editing() bool   { return m.session.Editing }
func (m Model) Truncated() bool { return m.truncated }
func (m Model) MaxLength() int  { return m.opt.MaxLength }
func (m Model) Width() int      { return m.opt.Width }

// State is the current editor state.
func (m Model) State() richtext.State { return m.state }

// Value is the current plain text.
func (m Model) Value() string { return m.engine.PlainText(m.state) }

// Len is the current plain-text length in runes.
func (m Model) Len() int { return util.RuneLen(m.Value()) }

// Document serializes the current state.
func (m Model) Document() *richtext.Document { return m.engine.Document(m.state) }

// Content is the original content last set through New or SetContent.
func (m Model) Content() *richtext.Document { return m.content }

// Focus gives the widget keyboard input.
func (m *Model) Focus() {
	m.focused = true
	m.syncViewport(true)
}

// Blur removes keyboard focus and commits: default-inline inputs report the
// document fire-and-forget, edit mode starts a guarded save.
func (m *Model) Blur() tea.Cmd {
	if !m.focused {
		return nil
	}
	m.focused = false
	m.dragging = false
	var cmd tea.Cmd
	switch m.Mode() {
	case state.ModeDefaultInline:
		cmd = m.commit()
	case state.ModeEdit:
		cmd = m.saveWithLoading()
	}
	m.syncViewport(false)
	return cmd
}

// Update handles messages addressed to this widget.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveResultMsg:
		if msg.id != m.id {
			return m, nil
		}
		next, ok := state.Resolve(m.session, msg.token)
		if !ok {
			m.logf("editorinput: dropping stale save result (token %d, latest %d)", msg.token, m.session.Token)
			return m, nil
		}
		m.session = next
		if !msg.ok {
			m.logf("editorinput: save failed, keeping unsaved edits")
		}
		m.transitionToDisplay()
		return m, nil

	case spinner.TickMsg:
		if !m.session.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.BlurMsg:
		cmd := m.Blur()
		return m, cmd

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.Mode() {
	case state.ModeReadOnly:
		return m, nil

	case state.ModeDisplay:
		if key.Matches(msg, m.keys.Edit) {
			m.beginEdit()
		}
		return m, nil

	case state.ModeEdit:
		if m.session.Loading {
			// input is covered by the loading overlay
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Save):
			cmd := m.saveWithLoading()
			return m, cmd
		case key.Matches(msg, m.keys.Cancel):
			m.cancel()
			return m, nil
		}
	}

	switch {
	case msg.Paste:
		m.paste(string(msg.Runes))
	case key.Matches(msg, m.keys.Paste):
		text, err := m.opt.Clipboard.ReadText()
		if err != nil {
			m.logf("editorinput: read clipboard: %v", err)
			text = ""
		}
		m.paste(text)
	case key.Matches(msg, m.keys.Copy):
		if sel := m.selectedText(); sel != "" {
			if err := m.opt.Clipboard.WriteText(sel); err != nil {
				m.logf("editorinput: write clipboard: %v", err)
			}
		}
	default:
		if next, ok := m.engine.HandleKey(m.state, msg); ok {
			m.changeState(next)
		}
	}
	m.syncViewport(true)
	return m, nil
}

// changeState accepts a proposed state from the engine. A proposal longer
// than MaxLength is rejected and the current content stays.
func (m *Model) changeState(proposed richtext.State) {
	if util.RuneLen(m.engine.PlainText(proposed)) <= m.opt.MaxLength {
		m.state = proposed
		m.truncated = false
		return
	}
	m.state = m.engine.Truncate(m.state, proposed, m.opt.MaxLength)
	m.truncated = true
}

// HandlePaste inserts text at a collapsed caret, cut to the room left under
// MaxLength. Empty payloads, range selections and inputs that are not
// editable (read-only, display, saving) are not handled.
func (m *Model) HandlePaste(text string) PasteResult {
	if !m.editable() || text == "" || !m.state.Collapsed() {
		return NotHandled
	}
	room := util.Remaining(m.Len(), m.opt.MaxLength)
	insert := util.HardTruncate(text, room)
	m.state = m.engine.InsertText(m.state, insert)
	m.truncated = util.RuneLen(insert) < util.RuneLen(text)
	m.syncViewport(true)
	return Handled
}

// paste runs HandlePaste and falls back to replacing the selection. An
// over-limit replacement is rejected like typed input.
func (m *Model) paste(text string) {
	if !m.editable() || m.HandlePaste(text) == Handled || text == "" {
		return
	}
	m.changeState(m.engine.InsertText(m.state, text))
}

// ToggleInlineStyle toggles st over the selection or at the caret.
func (m *Model) ToggleInlineStyle(st richtext.InlineStyle) {
	if !m.editable() {
		return
	}
	m.state = m.engine.ToggleInlineStyle(m.state, st)
	m.syncViewport(true)
}

func (m Model) editable() bool {
	switch m.Mode() {
	case state.ModeDefaultInline:
		return true
	case state.ModeEdit:
		return !m.session.Loading
	}
	return false
}

func (m Model) selectedText() string {
	start, end := m.state.Selection().Range()
	runes := []rune(m.Value())
	if start >= end || end > len(runes) {
		return ""
	}
	return string(runes[start:end])
}

func (m *Model) beginEdit() {
	if m.Mode() != state.ModeDisplay {
		return
	}
	m.session = state.BeginEdit(m.session)
	m.state = m.engine.MoveToEnd(m.state)
	m.focused = true
	m.truncated = false
	m.syncViewport(true)
}

// cancel restores the original content and leaves edit mode. It does
// nothing while a save is loading.
func (m *Model) cancel() {
	next, ok := state.Cancel(m.session)
	if !ok {
		return
	}
	m.session = next
	m.state = m.rebuild()
	m.truncated = false
	m.transitionToDisplay()
}

// transitionToDisplay is the single exit from edit mode for save success,
// save failure and cancel.
func (m *Model) transitionToDisplay() {
	m.session = state.ToDisplay(m.session)
	m.dragging = false
	m.viewport.SetYOffset(0)
}

func (m Model) trimmedEmpty() bool {
	return strings.TrimSpace(m.Value()) == ""
}
