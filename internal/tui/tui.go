package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"draftinput/internal/config"
	"draftinput/internal/richtext"
	"draftinput/internal/store"
	"draftinput/internal/tui/state"
	"draftinput/internal/tui/util"
	"draftinput/internal/tui/views/documents"
	"draftinput/internal/tui/views/keys"
	"draftinput/internal/tui/widgets/diff"
	"draftinput/internal/tui/widgets/editorinput"
	"draftinput/internal/tui/widgets/helpoverlay"
	"draftinput/internal/tui/widgets/statusbar"
)

// Documents is the persistence the editor host needs.
type Documents interface {
	Get(ctx context.Context, id string) (*richtext.Document, error)
	Save(ctx context.Context, id string, doc *richtext.Document) error
}

// Options configures Run.
type Options struct {
	ID        string
	Docs      Documents
	Editor    config.EditorConfig
	Clipboard editorinput.Clipboard
	Logf      func(format string, args ...any)
}

// Run opens a full-screen editor bound to one stored document and blocks
// until the user quits or ctx is cancelled.
func Run(ctx context.Context, opt Options) error {
	m, err := newModel(ctx, opt)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if fm, ok := final.(model); ok {
		return fm.flush()
	}
	return nil
}

// headerHeight is the number of rows above the editor widget.
const headerHeight = 2

// persistMsg reports the outcome of a store write started by the change handler.
type persistMsg struct {
	doc *richtext.Document
	err error
}

func waitPersist(ch <-chan persistMsg) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ev
	}
}

type hostKeys struct {
	Diff key.Binding
	View key.Binding
	Help key.Binding
	Quit key.Binding
}

func defaultHostKeys() hostKeys {
	return hostKeys{
		Diff: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "pending changes")),
		View: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "unified/side-by-side")),
		Help: key.NewBinding(key.WithKeys("f1", "?"), key.WithHelp("f1/?", "help")),
		Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k hostKeys) bindings() helpoverlay.Bindings {
	return helpoverlay.Bindings{k.Diff, k.View, k.Help, k.Quit}
}

type model struct {
	ctx  context.Context
	opt  Options
	logf func(format string, args ...any)

	input  editorinput.Model
	keys   hostKeys
	widget editorinput.KeyMap

	// saved is the plain text of the last persisted document.
	saved  string
	events chan persistMsg

	ui state.UIState
}

func newModel(ctx context.Context, opt Options) (model, error) {
	logf := opt.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	doc, err := opt.Docs.Get(ctx, opt.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return model{}, fmt.Errorf("load %s: %w", opt.ID, err)
	}
	m := model{
		ctx:    ctx,
		opt:    opt,
		logf:   logf,
		keys:   defaultHostKeys(),
		widget: editorinput.DefaultKeyMap(),
		saved:  doc.PlainText(),
		events: make(chan persistMsg, 8),
		ui:     state.UIState{MinCol: 20},
	}
	m.input = editorinput.New(editorinput.Options{
		Content:            doc,
		OnChange:           m.persist,
		ReadOnly:           opt.Editor.ReadOnly,
		DefaultInput:       opt.Editor.DefaultInput,
		DefaultControlsBar: opt.Editor.DefaultControlsBar,
		MaxLength:          opt.Editor.MaxLength,
		Placeholder:        opt.Editor.Placeholder,
		Width:              opt.Editor.Width,
		NoColor:            opt.Editor.NoColor,
		Clipboard:          opt.Clipboard,
		KeyMap:             &m.widget,
		Logf:               logf,
	})
	m.input.Focus()
	m.sync()
	return m, nil
}

// persist is the editor's change handler. It writes synchronously; the
// widget already runs handlers off the update loop.
func (m model) persist(doc *richtext.Document, onSuccess, onError func()) {
	err := m.opt.Docs.Save(m.ctx, m.opt.ID, doc)
	if err != nil {
		m.logf("save %s: %v", m.opt.ID, err)
		m.events <- persistMsg{err: err}
		onError()
		return
	}
	m.logf("saved %s (%d chars)", m.opt.ID, util.RuneLen(doc.PlainText()))
	m.events <- persistMsg{doc: doc}
	onSuccess()
}

// flush writes pending default-inline edits, which have no explicit save.
func (m model) flush() error {
	if m.input.Mode() != state.ModeDefaultInline || m.input.Value() == m.saved {
		return nil
	}
	var doc *richtext.Document
	if strings.TrimSpace(m.input.Value()) != "" {
		doc = m.input.Document()
	}
	if err := m.opt.Docs.Save(context.Background(), m.opt.ID, doc); err != nil {
		return fmt.Errorf("save %s: %w", m.opt.ID, err)
	}
	return nil
}

func (m model) Init() tea.Cmd { return waitPersist(m.events) }

// sync mirrors widget state into the status bar state.
func (m *model) sync() {
	m.ui.Mode = m.input.Mode()
	m.ui.Loading = m.input.Loading()
	m.ui.Length = m.input.Len()
	m.ui.Limit = m.input.MaxLength()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch v := msg.(type) {
	case tea.KeyMsg:
		if c, ok := m.updateKey(v); ok {
			m.sync()
			return m, c
		}
		m.ui.Notice = ""
	case tea.MouseMsg:
		v.Y -= headerHeight
		msg = v
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, v.Width)
		w := m.opt.Editor.Width
		if w <= 0 || w > v.Width-2 {
			w = v.Width - 2
		}
		m.input.SetWidth(w)
		return m, nil
	case persistMsg:
		m.onPersist(v)
		m.sync()
		return m, waitPersist(m.events)
	}
	m.input, cmd = m.input.Update(msg)
	m.sync()
	return m, cmd
}

// updateKey handles host bindings. It reports false for keys the editor
// should receive.
func (m *model) updateKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	typing := m.input.Focused() && (m.ui.Mode == state.ModeEdit || m.ui.Mode == state.ModeDefaultInline)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Diff):
		m.ui = state.ToggleDiff(m.ui)
		return nil, true
	case key.Matches(msg, m.keys.View):
		m.ui = state.ToggleView(m.ui)
		m.ui = state.Resize(m.ui, m.ui.Width)
		return nil, true
	case msg.String() == "?" && typing:
		return nil, false
	case key.Matches(msg, m.keys.Help):
		m.ui = state.ToggleHelp(m.ui)
		return nil, true
	case msg.Type == tea.KeyTab && !m.input.Focused():
		m.input.Focus()
		return nil, true
	}
	return nil, false
}

func (m *model) onPersist(ev persistMsg) {
	if ev.err != nil {
		m.ui = state.SetNotice(m.ui, "Save failed: "+ev.err.Error())
		return
	}
	m.saved = ev.doc.PlainText()
	m.ui = state.SetNotice(m.ui, "Saved")
	// Default-inline inputs keep their live state; replacing it would move
	// the caret under the user.
	if m.input.Mode() == state.ModeDefaultInline {
		return
	}
	if !m.input.Editing() || m.input.Loading() {
		m.input.SetContent(ev.doc)
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	noColor := util.NoColor(m.opt.Editor.NoColor)
	var b strings.Builder
	title := "draftinput · " + m.opt.ID
	if noColor {
		b.WriteString(title + "\n\n")
	} else {
		b.WriteString(titleStyle.Render(title) + "\n\n")
	}
	b.WriteString(m.input.View() + "\n")
	b.WriteString(documents.RenderTags(m.saved, m.input.Value(), m.input.MaxLength(), m.input.Truncated(), noColor) + "\n")
	status := statusbar.NewStatusBar().View(m.ui)
	if !noColor {
		status = faintStyle.Render(status)
	}
	b.WriteString(status + "\n")
	if m.ui.ShowDiff {
		b.WriteString("\n" + diff.NewDiffView(noColor).View(m.ui, m.saved, m.input.Value()))
	}
	if m.ui.ShowHelp {
		b.WriteString("\n" + keys.RenderHelp(m.ui, m.widget, richtext.DefaultKeyMap(), m.keys.bindings()))
	}
	return b.String()
}
