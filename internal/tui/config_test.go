package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"draftinput/internal/config"
)

func settingsStep(m settingsModel, msg tea.KeyMsg) settingsModel {
	next, _ := m.Update(msg)
	return next.(settingsModel)
}

func TestSettingsToggles(t *testing.T) {
	m := settingsModel{cfg: config.Defaults()}
	for _, k := range []string{"+", "r", "d", "b", "v", "w"} {
		m = settingsStep(m, keyRunes(k))
	}
	ed := m.cfg.Editor
	if ed.MaxLength != 1100 || !ed.ReadOnly || !ed.DefaultInput || !ed.DefaultControlsBar || ed.Width != 64 {
		t.Fatalf("editor = %+v", ed)
	}
	if m.cfg.Log.Verbosity != 1 {
		t.Fatalf("verbosity = %d", m.cfg.Log.Verbosity)
	}
	m = settingsStep(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.done {
		t.Fatalf("enter should finish")
	}
}

func TestSettingsDBPathWithSuggestions(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	m := settingsModel{cfg: config.Defaults()}
	m = settingsStep(m, keyRunes("p"))
	m.inputBuf = ""
	m = settingsStep(m, keyRunes(filepath.Join(dir, "da")))
	if len(m.suggest) != 1 || !strings.HasSuffix(m.suggest[0], "data") {
		t.Fatalf("suggestions = %v", m.suggest)
	}
	m = settingsStep(m, tea.KeyMsg{Type: tea.KeyTab})
	m = settingsStep(m, keyRunes("/docs.db"))
	m = settingsStep(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.cfg.Database.Path != filepath.Join(dir, "data", "docs.db") {
		t.Fatalf("path = %q (msg %q)", m.cfg.Database.Path, m.msg)
	}
}

func TestSettingsRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	m := settingsModel{cfg: config.Defaults()}
	m.setDBPath(dir)
	if m.cfg.Database.Path == dir || !strings.Contains(m.msg, "is a directory") {
		t.Fatalf("path=%q msg=%q", m.cfg.Database.Path, m.msg)
	}
}
