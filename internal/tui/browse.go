package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"draftinput/internal/richtext"
	"draftinput/internal/store"
	"draftinput/internal/tui/views/actions"
	"draftinput/internal/tui/views/documents"
	"draftinput/internal/tui/widgets/editorinput"
)

// Library is the store surface the browser needs.
type Library interface {
	Documents
	List(ctx context.Context) ([]store.Summary, error)
	Delete(ctx context.Context, id string) error
}

// BrowseOptions configures Browse.
type BrowseOptions struct {
	Library   Library
	ExportDir string
	NoColor   bool
	Logs      <-chan string
	Logf      func(format string, args ...any)
}

type browseModel struct {
	ctx  context.Context
	opt  BrowseOptions
	logf func(format string, args ...any)

	all    []store.Summary
	items  []store.Summary // filtered view of all
	sel    int
	action int
	chosen string
	status string
	width  int
	now    func() time.Time

	preview editorinput.Model

	// new document id prompt
	naming  bool
	nameBuf string

	// search state
	searching bool
	searchBuf string

	showLogs  bool
	logs      []string
	logOffset int
}

type logMsg string

func waitLog(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return logMsg(s)
	}
}

// Browse lists stored documents and returns the id the user chose to open,
// or "" when they quit.
func Browse(ctx context.Context, opt BrowseOptions) (string, error) {
	m, err := newBrowseModel(ctx, opt)
	if err != nil {
		return "", err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if fm, ok := final.(browseModel); ok {
		return fm.chosen, nil
	}
	return "", nil
}

func newBrowseModel(ctx context.Context, opt BrowseOptions) (browseModel, error) {
	logf := opt.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	m := browseModel{ctx: ctx, opt: opt, logf: logf, now: time.Now, width: 80}
	if err := m.reload(); err != nil {
		return browseModel{}, err
	}
	return m, nil
}

func (m *browseModel) reload() error {
	all, err := m.opt.Library.List(m.ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	m.all = all
	m.applySearch()
	return nil
}

func (m browseModel) Init() tea.Cmd {
	if m.opt.Logs != nil {
		return waitLog(m.opt.Logs)
	}
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		if m.naming {
			return m.updateName(v)
		}
		if m.searching {
			return m.updateSearch(v)
		}
		switch strings.ToLower(v.String()) {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			if m.showLogs {
				if m.logOffset > 0 {
					m.logOffset--
				}
			} else if m.sel < len(m.items)-1 {
				m.sel++
				m.loadPreview()
			}
		case "k", "up":
			if m.showLogs {
				if m.logOffset < len(m.logs) {
					m.logOffset++
				}
			} else if m.sel > 0 {
				m.sel--
				m.loadPreview()
			}
		case "tab", "right":
			m.action = (m.action + 1) % len(actions.RenderOptions())
		case "shift+tab", "left":
			n := len(actions.RenderOptions())
			m.action = (m.action + n - 1) % n
		case "enter":
			return m.run(actions.RenderOptions()[m.action])
		case "n":
			return m.run(actions.New)
		case "e":
			return m.run(actions.Export)
		case "x", "delete":
			return m.run(actions.Delete)
		case "/":
			m.searching = true
			m.searchBuf = ""
		case "l":
			m.showLogs = !m.showLogs
		}
		return m, nil
	case logMsg:
		m.logs = append(m.logs, string(v))
		return m, waitLog(m.opt.Logs)
	case tea.WindowSizeMsg:
		if v.Width > 0 {
			m.width = v.Width
			m.loadPreview()
		}
	}
	return m, nil
}

func (m browseModel) updateSearch(v tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch v.Type {
	case tea.KeyEnter:
		m.searching = false
	case tea.KeyEsc:
		m.searching = false
		m.searchBuf = ""
	case tea.KeyBackspace, tea.KeyCtrlH:
		if r := []rune(m.searchBuf); len(r) > 0 {
			m.searchBuf = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.searchBuf += string(v.Runes)
	default:
		return m, nil
	}
	m.applySearch()
	return m, nil
}

func (m browseModel) updateName(v tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch v.Type {
	case tea.KeyEnter:
		id := strings.TrimSpace(m.nameBuf)
		m.naming = false
		if id == "" {
			return m, nil
		}
		m.chosen = id
		return m, tea.Quit
	case tea.KeyEsc:
		m.naming = false
		m.nameBuf = ""
	case tea.KeyBackspace, tea.KeyCtrlH:
		if r := []rune(m.nameBuf); len(r) > 0 {
			m.nameBuf = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.nameBuf += string(v.Runes)
	}
	return m, nil
}

// applySearch filters documents whose id or preview contains the query,
// case-insensitively.
func (m *browseModel) applySearch() {
	q := strings.ToLower(strings.TrimSpace(m.searchBuf))
	m.items = m.items[:0:0]
	for _, s := range m.all {
		if q == "" || strings.Contains(strings.ToLower(s.ID), q) || strings.Contains(strings.ToLower(s.Preview), q) {
			m.items = append(m.items, s)
		}
	}
	if m.sel >= len(m.items) {
		m.sel = len(m.items) - 1
	}
	if m.sel < 0 {
		m.sel = 0
	}
	m.loadPreview()
}

func (m browseModel) selected() (store.Summary, bool) {
	if m.sel < 0 || m.sel >= len(m.items) {
		return store.Summary{}, false
	}
	return m.items[m.sel], true
}

// loadPreview renders the selected document through a read-only input.
func (m *browseModel) loadPreview() {
	var doc *richtext.Document
	if s, ok := m.selected(); ok {
		d, err := m.opt.Library.Get(m.ctx, s.ID)
		if err != nil {
			m.logf("preview %s: %v", s.ID, err)
		}
		doc = d
	}
	w := m.width - 2
	if w > editorinput.DefaultWidth {
		w = editorinput.DefaultWidth
	}
	m.preview = editorinput.New(editorinput.Options{
		Content:  doc,
		ReadOnly: true,
		Width:    w,
		NoColor:  m.opt.NoColor,
		Logf:     m.logf,
	})
}

func (m browseModel) run(a actions.Action) (tea.Model, tea.Cmd) {
	if a == actions.New {
		m.naming = true
		m.nameBuf = ""
		return m, nil
	}
	s, ok := m.selected()
	if !ok {
		m.status = "No document selected"
		return m, nil
	}
	switch a {
	case actions.Open:
		m.chosen = s.ID
		return m, tea.Quit
	case actions.Export:
		if path, err := m.export(s.ID); err == nil {
			m.status = "Exported to " + path
		} else {
			m.status = "Export failed: " + err.Error()
		}
	case actions.Delete:
		if err := m.opt.Library.Delete(m.ctx, s.ID); err != nil {
			m.status = "Delete failed: " + err.Error()
			return m, nil
		}
		m.logf("deleted %s", s.ID)
		m.status = "Deleted " + s.ID
		if err := m.reload(); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

// export writes the raw document JSON to ExportDir/<id>.json.
func (m *browseModel) export(id string) (string, error) {
	doc, err := m.opt.Library.Get(m.ctx, id)
	if err != nil {
		return "", err
	}
	data, err := richtext.Encode(doc)
	if err != nil {
		return "", err
	}
	dir := m.opt.ExportDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, id+".json")
	return path, os.WriteFile(path, data, 0o644)
}

var (
	selStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	highlightStyle = lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "228", Dark: "94"}).Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"})
)

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Documents") + "\n")
	if len(m.items) == 0 {
		if len(m.all) == 0 {
			b.WriteString("No documents yet. Press n to create one.\n")
		} else {
			b.WriteString("No matches.\n")
		}
	}
	now := m.now()
	for i, s := range m.items {
		line := documents.RenderRow(s, now, m.width-2)
		if i == m.sel {
			b.WriteString(m.style(selStyle, "> "+line) + "\n")
			continue
		}
		b.WriteString("  " + m.highlight(line) + "\n")
	}

	b.WriteString("\n")
	for i, a := range actions.RenderOptions() {
		label := "[ " + string(a) + " ]"
		if i == m.action {
			label = m.style(selStyle, label)
		}
		b.WriteString(label + " ")
	}
	b.WriteString("\n(j/k) select (tab) action (enter) run (n) new (e) export (x) delete (/) search (l) logs (q) quit\n")
	switch {
	case m.naming:
		b.WriteString("New document id: " + m.nameBuf + "\n")
	case m.searching:
		b.WriteString("/" + m.searchBuf + "\n")
	case m.searchBuf != "":
		b.WriteString(fmt.Sprintf("filter %q: %d/%d\n", m.searchBuf, len(m.items), len(m.all)))
	}
	if strings.TrimSpace(m.status) != "" {
		b.WriteString(m.style(faintStyle, m.status) + "\n")
	}
	if _, ok := m.selected(); ok {
		b.WriteString("\n" + m.preview.View() + "\n")
	}
	if m.showLogs {
		b.WriteString(m.logPane())
	}
	return b.String()
}

// logPane shows the last lines of the log, scrolled by logOffset.
func (m browseModel) logPane() string {
	const maxLines = 8
	end := len(m.logs) - m.logOffset
	if end < 0 {
		end = 0
	}
	start := end - maxLines
	if start < 0 {
		start = 0
	}
	avail := m.width - 4
	if avail < 20 {
		avail = 20
	}
	lines := make([]string, 0, end-start)
	for _, ln := range m.logs[start:end] {
		if r := []rune(ln); len(r) > avail {
			ln = string(r[:avail-1]) + "…"
		}
		lines = append(lines, ln)
	}
	if len(lines) == 0 {
		lines = append(lines, "(no log output)")
	}
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginTop(1)
	return border.Render(strings.Join(lines, "\n"))
}

func (m browseModel) style(st lipgloss.Style, s string) string {
	if m.opt.NoColor {
		return s
	}
	return st.Render(s)
}

// highlight marks the first match of the search query in line.
func (m browseModel) highlight(line string) string {
	q := strings.TrimSpace(m.searchBuf)
	if q == "" || m.opt.NoColor {
		return line
	}
	p := strings.Index(strings.ToLower(line), strings.ToLower(q))
	if p < 0 || p+len(q) > len(line) {
		return line
	}
	return line[:p] + highlightStyle.Render(line[p:p+len(q)]) + line[p+len(q):]
}
