package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"draftinput/internal/config"
)

type settingsModel struct {
	cfg       config.Config
	inputMode bool
	inputBuf  string
	suggest   []string
	done      bool
	cancelled bool
	msg       string
}

// CollectSettings opens a small TUI to adjust the database path and the
// editor defaults. ok is false when the user cancelled.
func CollectSettings(seed config.Config) (cfg config.Config, ok bool, err error) {
	m := settingsModel{cfg: seed}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, rerr := p.Run()
	if rerr != nil {
		return seed, false, rerr
	}
	fm, _ := final.(settingsModel)
	if fm.cancelled || !fm.done {
		return seed, false, nil
	}
	return fm.cfg, true, nil
}

func (m settingsModel) Init() tea.Cmd { return nil }

// setDBPath accepts a file path whose parent directory exists or can be created.
func (m *settingsModel) setDBPath(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	p := expandPath(path)
	if fi, err := os.Stat(p); err == nil && fi.IsDir() {
		m.msg = fmt.Sprintf("! is a directory: %s", p)
		return
	}
	if fi, err := os.Stat(filepath.Dir(p)); err == nil && !fi.IsDir() {
		m.msg = fmt.Sprintf("! not a directory: %s", filepath.Dir(p))
		return
	}
	m.cfg.Database.Path = p
	m.msg = ""
	m.inputBuf = ""
}

func (m *settingsModel) computeSuggestions() {
	// Provide simple directory-based suggestions for current input buffer
	in := m.inputBuf
	if strings.TrimSpace(in) == "" {
		m.suggest = nil
		return
	}
	expanded := in
	if strings.HasPrefix(in, "~") {
		expanded = expandPath(in)
	}
	dir := expanded
	base := ""
	if fi, err := os.Stat(expanded); err != nil || !fi.IsDir() {
		dir = filepath.Dir(expanded)
		base = filepath.Base(expanded)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.suggest = nil
		return
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if base == "" || strings.Contains(strings.ToLower(name), strings.ToLower(base)) {
			cand := filepath.Join(dir, name)
			// Present with ~/ when within home
			if h, _ := os.UserHomeDir(); h != "" && strings.HasPrefix(cand, h) {
				cand = "~" + strings.TrimPrefix(cand, h)
			}
			out = append(out, cand)
		}
		if len(out) >= 8 {
			break
		}
	}
	m.suggest = out
}

func expandPath(p string) string {
	p = strings.TrimSpace(p)
	if strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(h, p[2:])
		}
	}
	p = os.ExpandEnv(p)
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	k := km.String()
	if m.inputMode {
		switch k {
		case "enter":
			m.inputMode = false
			m.setDBPath(m.inputBuf)
		case "tab":
			if len(m.suggest) > 0 {
				m.inputBuf = m.suggest[0]
				m.computeSuggestions()
			}
		case "esc":
			m.inputMode = false
			m.inputBuf = ""
		default:
			if km.Type == tea.KeyBackspace || km.Type == tea.KeyCtrlH {
				if r := []rune(m.inputBuf); len(r) > 0 {
					m.inputBuf = string(r[:len(r)-1])
				}
			} else if km.Type == tea.KeyRunes {
				m.inputBuf += string(km.Runes)
			}
			m.computeSuggestions()
		}
		return m, nil
	}
	ed := &m.cfg.Editor
	switch k {
	case "q", "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "p":
		m.inputMode = true
		m.inputBuf = m.cfg.Database.Path
		m.computeSuggestions()
	case "+":
		ed.MaxLength += 100
	case "-":
		if ed.MaxLength > 100 {
			ed.MaxLength -= 100
		}
	case "w":
		ed.Width += 4
	case "W":
		if ed.Width > 24 {
			ed.Width -= 4
		}
	case "r":
		ed.ReadOnly = !ed.ReadOnly
	case "d":
		ed.DefaultInput = !ed.DefaultInput
	case "b":
		ed.DefaultControlsBar = !ed.DefaultControlsBar
	case "c":
		ed.NoColor = !ed.NoColor
	case "v": // cycle verbosity 0->1->2
		m.cfg.Log.Verbosity = (m.cfg.Log.Verbosity + 1) % 3
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m settingsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + "\n\n")
	if m.msg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Render(m.msg) + "\n")
	}
	ed := m.cfg.Editor
	fmt.Fprintf(&b, "  Database: %s  (p to edit)\n", m.cfg.Database.Path)
	fmt.Fprintf(&b, "  Max length: %d  (+/-)\n", ed.MaxLength)
	fmt.Fprintf(&b, "  Width: %d  (w/W)\n", ed.Width)
	fmt.Fprintf(&b, "  Read only: %s  (r)\n", onOff(ed.ReadOnly))
	fmt.Fprintf(&b, "  Default input: %s  (d)\n", onOff(ed.DefaultInput))
	fmt.Fprintf(&b, "  Default controls bar: %s  (b)\n", onOff(ed.DefaultControlsBar))
	fmt.Fprintf(&b, "  No color: %s  (c)\n", onOff(ed.NoColor))
	fmt.Fprintf(&b, "  Verbosity: %d  (v to cycle)\n", m.cfg.Log.Verbosity)
	if m.inputMode {
		b.WriteString("\nDatabase path: " + m.inputBuf + "\n")
		for _, s := range m.suggest {
			b.WriteString(faintStyle.Render("  • ") + s + "\n")
		}
		b.WriteString("enter: set   tab: autocomplete   esc: cancel\n")
	} else {
		b.WriteString("\nenter: save   q/esc: cancel\n")
	}
	return b.String()
}
